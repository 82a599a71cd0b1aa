package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/courtlab/go-shot-metrics/internal/report"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored matches",
	Args:  cobra.NoArgs,
	RunE:  runList,
}

func runList(cmd *cobra.Command, args []string) error {
	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	matches, err := db.ListMatches()
	if err != nil {
		return err
	}
	if len(matches) == 0 {
		fmt.Fprintln(os.Stdout, "No matches stored yet. Run 'shotmetrics ingest <shots.csv>' first.")
		return nil
	}
	report.PrintMatchTable(os.Stdout, matches)
	return nil
}
