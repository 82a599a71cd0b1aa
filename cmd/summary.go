package cmd

import (
	"fmt"
	"os"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
	"github.com/spf13/cobra"
)

var summaryCmd = &cobra.Command{
	Use:   "summary [hash-prefix]",
	Short: "Database-wide totals and shot-label breakdown",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runSummary,
}

func runSummary(cmd *cobra.Command, args []string) error {
	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	hash := ""
	if len(args) == 1 {
		match, err := db.GetMatchByPrefix(args[0])
		if err != nil {
			return err
		}
		hash = match.Hash
	}

	matches, shots, rallies, err := db.Totals()
	if err != nil {
		return err
	}
	fmt.Fprintf(os.Stdout, "\nMatches: %d  |  Shots: %d  |  Rallies: %d\n\n", matches, shots, rallies)

	labels, err := db.CountByLabel(hash)
	if err != nil {
		return err
	}
	if len(labels) == 0 {
		fmt.Fprintln(os.Stdout, "No shots stored yet.")
		return nil
	}

	table := tablewriter.NewTable(os.Stdout, tablewriter.WithConfig(tablewriter.Config{
		Row:    tw.CellConfig{Alignment: tw.CellAlignment{Global: tw.AlignRight}},
		Header: tw.CellConfig{Alignment: tw.CellAlignment{Global: tw.AlignCenter}},
	}))
	table.Header("LABEL", "SHOTS")
	for _, lc := range labels {
		table.Append(lc.Label, strconv.Itoa(lc.Count))
	}
	table.Render()
	return nil
}
