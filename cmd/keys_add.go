package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/inovacc/grabr/internal/model"
	"github.com/inovacc/grabr/internal/prompt"
	"github.com/inovacc/grabr/internal/sshkeys"
	"github.com/inovacc/grabr/internal/store"
)

var (
	keysAddHost    string
	keysAddComment string
)

var keysAddCmd = &cobra.Command{
	Use:   "add [label]",
	Short: "Provision a new secure-shell identity",
	Long: `Generate an ed25519 keypair for a labelled account, write a matching
host alias block to ~/.ssh/config, and record the account. The printed
public key must be added to the hosting provider before clones over the
alias can authenticate.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		p := prompt.New()

		label := ""
		if len(args) > 0 {
			label = args[0]
		}

		if label == "" {
			label = p.Input("Account label (e.g. work)", "")
		}

		if label == "" {
			return fmt.Errorf("an account label is required")
		}

		host := keysAddHost
		if host == "" {
			host = p.Input("Host", "github.com")
		}

		comment := keysAddComment
		if comment == "" {
			comment = p.Input("Key comment", fmt.Sprintf("%s@%s", label, host))
		}

		passphrase, err := readPassphrase()
		if err != nil {
			return err
		}

		keyPath, err := sshkeys.DefaultKeyPath(label)
		if err != nil {
			return err
		}

		kp, err := sshkeys.Generate(keyPath, comment, passphrase)
		if err != nil {
			return err
		}

		alias := fmt.Sprintf("%s-%s", host, label)

		configPath, err := sshkeys.DefaultConfigPath()
		if err != nil {
			return err
		}

		added, err := sshkeys.AppendAlias(configPath, sshkeys.HostAlias{
			Alias:        alias,
			HostName:     host,
			IdentityFile: kp.PrivatePath,
		})
		if err != nil {
			return err
		}

		if !added {
			_, _ = fmt.Fprintf(os.Stderr, "Warning: alias %s already present in %s, left unchanged\n", alias, configPath)
		}

		if db, dbErr := store.GetDB(); dbErr == nil {
			acc := &model.Account{
				Label:        label,
				Host:         host,
				Alias:        alias,
				IdentityFile: kp.PrivatePath,
				Comment:      comment,
			}

			if saveErr := db.SaveAccount(acc); saveErr != nil {
				_, _ = fmt.Fprintf(os.Stderr, "Warning: could not record account: %v\n", saveErr)
			}
		} else {
			_, _ = fmt.Fprintf(os.Stderr, "Warning: could not record account: %v\n", dbErr)
		}

		fmt.Printf("\nIdentity %s provisioned.\n", label)
		fmt.Printf("  Private key: %s\n", kp.PrivatePath)
		fmt.Printf("  Host alias:  %s\n\n", alias)
		fmt.Printf("Add this public key to your %s account:\n\n  %s\n\n", host, kp.PublicLine)
		fmt.Printf("Clone with it via: git@%s:<owner>/<repo>.git\n", alias)

		return nil
	},
}

// readPassphrase asks for an optional key passphrase with echo disabled,
// twice for confirmation. A non-terminal stdin yields an unencrypted key.
func readPassphrase() ([]byte, error) {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return nil, nil
	}

	fmt.Print("Passphrase (blank for no passphrase): ")

	first, err := term.ReadPassword(fd)

	fmt.Println()

	if err != nil {
		return nil, fmt.Errorf("reading passphrase: %w", err)
	}

	if len(first) == 0 {
		return nil, nil
	}

	fmt.Print("Repeat passphrase: ")

	second, err := term.ReadPassword(fd)

	fmt.Println()

	if err != nil {
		return nil, fmt.Errorf("reading passphrase: %w", err)
	}

	if string(first) != string(second) {
		return nil, fmt.Errorf("passphrases do not match")
	}

	return first, nil
}

func init() {
	keysCmd.AddCommand(keysAddCmd)
	keysAddCmd.Flags().StringVar(&keysAddHost, "host", "", "Hosting provider the identity is for (default github.com)")
	keysAddCmd.Flags().StringVar(&keysAddComment, "comment", "", "Public key comment")
}
