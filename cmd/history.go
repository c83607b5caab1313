package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/inovacc/grabr/internal/store"
)

var historyLimit int

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List previously cloned repositories",
	Long:  `Display the clone history, newest first, with the transport each clone used and whether it went through the HTTPS fallback.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := store.GetDB()
		if err != nil {
			return err
		}

		records, err := db.ListClones()
		if err != nil {
			return err
		}

		if len(records) == 0 {
			printEmptyResult("clones", "grabr clone <owner>/<name>")

			return nil
		}

		if historyLimit > 0 && len(records) > historyLimit {
			records = records[:historyLimit]
		}

		_, _ = fmt.Fprintf(os.Stdout, "%-19s %-30s %-9s %s\n", "WHEN", "REFERENCE", "TRANSPORT", "PATH")

		for _, rec := range records {
			transport := rec.Transport
			if rec.Fallback {
				transport += "*"
			}

			_, _ = fmt.Fprintf(os.Stdout, "%-19s %-30s %-9s %s\n",
				rec.CreatedAt.Format("2006-01-02 15:04:05"),
				truncateString(rec.Reference, 30),
				transport,
				rec.Path,
			)
		}

		_, _ = fmt.Fprintln(os.Stdout, "\n* clone fell back to HTTPS after a failed secure-shell attempt")

		return nil
	},
}

func init() {
	rootCmd.AddCommand(historyCmd)
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 0, "Show at most this many entries (0 for all)")
}
