// Package sshkeys provisions per-account secure-shell identities: an
// ed25519 keypair on disk plus a host alias block in ~/.ssh/config, so that
// several accounts on the same hosting provider can coexist.
package sshkeys

import (
	"crypto/ed25519"
	"crypto/rand"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/crypto/ssh"

	"encoding/pem"
)

// Keypair describes a generated identity on disk.
type Keypair struct {
	PrivatePath string
	PublicPath  string
	PublicLine  string // authorized_keys format, with comment
}

// Generate creates an ed25519 keypair in OpenSSH format at path (private)
// and path+".pub" (public). An empty passphrase leaves the private key
// unencrypted, matching ssh-keygen behavior.
func Generate(path, comment string, passphrase []byte) (*Keypair, error) {
	if _, err := os.Stat(path); err == nil {
		return nil, fmt.Errorf("key already exists: %s", path)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return nil, fmt.Errorf("creating key directory: %w", err)
	}

	pub, priv, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return nil, fmt.Errorf("generating key: %w", err)
	}

	var block *pem.Block

	if len(passphrase) > 0 {
		block, err = ssh.MarshalPrivateKeyWithPassphrase(priv, comment, passphrase)
	} else {
		block, err = ssh.MarshalPrivateKey(priv, comment)
	}

	if err != nil {
		return nil, fmt.Errorf("encoding private key: %w", err)
	}

	if err := os.WriteFile(path, pem.EncodeToMemory(block), 0600); err != nil {
		return nil, fmt.Errorf("writing private key: %w", err)
	}

	sshPub, err := ssh.NewPublicKey(pub)
	if err != nil {
		return nil, fmt.Errorf("encoding public key: %w", err)
	}

	line := strings.TrimSpace(string(ssh.MarshalAuthorizedKey(sshPub)))
	if comment != "" {
		line += " " + comment
	}

	pubPath := path + ".pub"
	if err := os.WriteFile(pubPath, []byte(line+"\n"), 0644); err != nil {
		return nil, fmt.Errorf("writing public key: %w", err)
	}

	return &Keypair{
		PrivatePath: path,
		PublicPath:  pubPath,
		PublicLine:  line,
	}, nil
}

// DefaultKeyPath returns the conventional private key location for a
// labelled account, e.g. ~/.ssh/id_ed25519_work.
func DefaultKeyPath(label string) (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolving home directory: %w", err)
	}

	return filepath.Join(home, ".ssh", "id_ed25519_"+label), nil
}
