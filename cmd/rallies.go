package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/courtlab/go-shot-metrics/internal/engine"
	"github.com/courtlab/go-shot-metrics/internal/model"
	"github.com/courtlab/go-shot-metrics/internal/report"
)

var (
	ralliesPlayer string
	ralliesWinner string
)

var ralliesCmd = &cobra.Command{
	Use:   "rallies <hash-prefix>",
	Short: "Show the rally timeline of a match",
	Args:  cobra.ExactArgs(1),
	RunE:  runRallies,
}

func init() {
	ralliesCmd.Flags().StringVar(&ralliesPlayer, "player", "", "only rallies this player took part in")
	ralliesCmd.Flags().StringVar(&ralliesWinner, "winner", "", "only rallies won by this player")
}

func runRallies(cmd *cobra.Command, args []string) error {
	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	_, shots, err := loadMatch(db, args[0])
	if err != nil {
		return err
	}

	rallies := engine.GroupRallies(shots)
	if ralliesPlayer != "" {
		rallies = keepRallies(rallies, func(r model.Rally) bool {
			for _, p := range r.Players() {
				if p == ralliesPlayer {
					return true
				}
			}
			return false
		})
	}
	if ralliesWinner != "" {
		rallies = keepRallies(rallies, func(r model.Rally) bool {
			return r.Winner == ralliesWinner
		})
	}

	if len(rallies) == 0 {
		fmt.Fprintln(os.Stdout, "No rallies matched.")
		return nil
	}
	report.PrintRallyTable(os.Stdout, rallies)
	return nil
}

func keepRallies(rallies []model.Rally, pred func(model.Rally) bool) []model.Rally {
	var out []model.Rally
	for _, r := range rallies {
		if pred(r) {
			out = append(out, r)
		}
	}
	return out
}
