package sshkeys

import (
	"bufio"
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// HostAlias is one Host block in an OpenSSH client config. The alias is
// what clone URLs reference (git@<alias>:owner/repo), while HostName is the
// real endpoint the connection goes to.
type HostAlias struct {
	Alias        string
	HostName     string
	IdentityFile string
}

// Render produces the config block for the alias. IdentitiesOnly keeps the
// agent from offering every loaded key and confusing the remote side about
// which account is connecting.
func (h HostAlias) Render() string {
	var b strings.Builder

	_, _ = fmt.Fprintf(&b, "Host %s\n", h.Alias)
	_, _ = fmt.Fprintf(&b, "    HostName %s\n", h.HostName)
	_, _ = fmt.Fprintf(&b, "    User git\n")
	_, _ = fmt.Fprintf(&b, "    IdentityFile %s\n", h.IdentityFile)
	_, _ = fmt.Fprintf(&b, "    IdentitiesOnly yes\n")

	return b.String()
}

// DefaultConfigPath returns ~/.ssh/config.
func DefaultConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolving home directory: %w", err)
	}

	return filepath.Join(home, ".ssh", "config"), nil
}

// AppendAlias appends the alias block to the config file at path, creating
// the file and its directory when missing. When a Host block for the alias
// already exists the file is left untouched and (false, nil) is returned.
func AppendAlias(path string, alias HostAlias) (bool, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return false, fmt.Errorf("creating ssh directory: %w", err)
	}

	existing, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return false, fmt.Errorf("reading ssh config: %w", err)
	}

	if hasHost(existing, alias.Alias) {
		return false, nil
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
	if err != nil {
		return false, fmt.Errorf("opening ssh config: %w", err)
	}
	defer func() { _ = f.Close() }()

	block := alias.Render()
	if len(existing) > 0 && !bytes.HasSuffix(existing, []byte("\n")) {
		block = "\n" + block
	}

	if len(existing) > 0 {
		block = "\n" + block
	}

	if _, err := f.WriteString(block); err != nil {
		return false, fmt.Errorf("writing ssh config: %w", err)
	}

	return true, nil
}

// hasHost reports whether the config already declares the alias. Host lines
// may list several patterns, so each token after the keyword is checked.
func hasHost(config []byte, alias string) bool {
	scanner := bufio.NewScanner(bytes.NewReader(config))

	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) < 2 || !strings.EqualFold(fields[0], "Host") {
			continue
		}

		for _, pattern := range fields[1:] {
			if pattern == alias {
				return true
			}
		}
	}

	return false
}
