package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/inovacc/grabr/internal/application"
)

var rootCmd = &cobra.Command{
	Use:   application.AppName,
	Short: "An interactive repository acquisition tool",
	Long: `Grabr clones Git repositories from shorthand references or full URLs,
picking the transport that will actually work: it probes key-based
secure-shell access, asks before switching transports, and falls back to
HTTPS when a secure-shell clone fails. After a successful clone it offers
to set up Python or Node environments found in the working copy.

It also provisions per-account secure-shell identities (keys plus
~/.ssh/config host aliases) so several accounts on the same host coexist.`,
	SilenceUsage: true,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// GetRootCmd returns the root command for introspection purposes.
func GetRootCmd() *cobra.Command {
	return rootCmd
}
