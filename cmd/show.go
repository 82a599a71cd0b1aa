package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/courtlab/go-shot-metrics/internal/engine"
	"github.com/courtlab/go-shot-metrics/internal/report"
	"github.com/courtlab/go-shot-metrics/internal/storage"
)

var showShots bool

var showCmd = &cobra.Command{
	Use:   "show <hash-prefix>",
	Short: "Show a stored match's rally, zone, and player breakdowns",
	Args:  cobra.ExactArgs(1),
	RunE:  runShow,
}

func init() {
	showCmd.Flags().BoolVar(&showShots, "shots", false, "also print the full shot stream")
}

func runShow(cmd *cobra.Command, args []string) error {
	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	return showByPrefix(db, args[0])
}

func showByPrefix(db *storage.DB, prefix string) error {
	match, shots, err := loadMatch(db, prefix)
	if err != nil {
		return err
	}
	rallies := engine.GroupRallies(shots)

	report.PrintMatchSummary(os.Stdout, *match)
	report.PrintRallyTable(os.Stdout, rallies)
	report.PrintZoneTable(os.Stdout, shots)
	report.PrintPlayerTable(os.Stdout, engine.BuildPlayerStats(shots, rallies))
	if showShots {
		report.PrintShotTable(os.Stdout, shots)
	}
	return nil
}
