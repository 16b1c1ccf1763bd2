package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/aretw0/tracetm/internal/presentation/tui"
	"github.com/aretw0/tracetm/pkg/adapters/sqlite"
	"github.com/spf13/cobra"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Summarise runs stored in a SQLite run database",
	Run: func(cmd *cobra.Command, args []string) {
		path, _ := cmd.Flags().GetString("sqlite")

		store, err := sqlite.Open(cmd.Context(), path)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
		defer store.Close()

		stats, err := store.Stats(cmd.Context())
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
		if len(stats) == 0 {
			fmt.Println("No runs recorded.")
			return
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "MACHINE\tOUTCOME\tRUNS")
		for _, s := range stats {
			fmt.Fprintf(w, "%s\t%s\t%d\n", s.Machine, tui.VerdictLabel(s.Outcome), s.Runs)
		}
		w.Flush()
	},
}

func init() {
	rootCmd.AddCommand(historyCmd)
	historyCmd.Flags().String("sqlite", ".tracetm/runs.db", "Run database written by --store=sqlite")
}
