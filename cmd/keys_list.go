package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/inovacc/grabr/internal/store"
)

var keysListCmd = &cobra.Command{
	Use:   "list",
	Short: "List provisioned secure-shell identities",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := store.GetDB()
		if err != nil {
			return err
		}

		accounts, err := db.ListAccounts()
		if err != nil {
			return err
		}

		if len(accounts) == 0 {
			printEmptyResult("identities", "grabr keys add")

			return nil
		}

		_, _ = fmt.Fprintf(os.Stdout, "%-12s %-16s %-24s %s\n", "LABEL", "HOST", "ALIAS", "IDENTITY FILE")

		for _, acc := range accounts {
			_, _ = fmt.Fprintf(os.Stdout, "%-12s %-16s %-24s %s\n",
				truncateString(acc.Label, 12),
				truncateString(acc.Host, 16),
				truncateString(acc.Alias, 24),
				acc.IdentityFile,
			)
		}

		return nil
	},
}

func init() {
	keysCmd.AddCommand(keysListCmd)
}
