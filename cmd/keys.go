package cmd

import (
	"github.com/spf13/cobra"
)

var keysCmd = &cobra.Command{
	Use:   "keys",
	Short: "Manage secure-shell identities",
	Long: `Provision and list per-account secure-shell identities. Each identity is
an ed25519 keypair plus a host alias block in ~/.ssh/config, so clones can
pick which account to authenticate as.`,
}

func init() {
	rootCmd.AddCommand(keysCmd)
}
