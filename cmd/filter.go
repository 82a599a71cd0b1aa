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
	filterType      string
	filterPlayer    string
	filterZone      int
	filterDirection string
	filterSide      string
	filterMinRating float64
	filterMaxRating float64
	filterOutcome   string
	filterPosition  int
	filterBefore    string
	filterAfter     string
)

var filterCmd = &cobra.Command{
	Use:   "filter <hash-prefix>",
	Short: "Filter a match's shots by attribute",
	Args:  cobra.ExactArgs(1),
	RunE:  runFilter,
}

func init() {
	filterCmd.Flags().StringVar(&filterType, "type", "any", "shot type ('any' matches everything)")
	filterCmd.Flags().StringVar(&filterPlayer, "player", "", "hitting player id")
	filterCmd.Flags().IntVar(&filterZone, "zone", -1, "landing zone 0-5")
	filterCmd.Flags().StringVar(&filterDirection, "direction", "", "cross/left, cross/right, or straight")
	filterCmd.Flags().StringVar(&filterSide, "side", "", "court side: top or bot")
	filterCmd.Flags().Float64Var(&filterMinRating, "min-rating", 0, "minimum rating (inclusive)")
	filterCmd.Flags().Float64Var(&filterMaxRating, "max-rating", model.RatingMax, "maximum rating (inclusive)")
	filterCmd.Flags().StringVar(&filterOutcome, "outcome", "", "winner or error")
	filterCmd.Flags().IntVar(&filterPosition, "position", 0, "rally position (1 = first shot of a rally)")
	filterCmd.Flags().StringVar(&filterBefore, "before", "", "only shots before this clock (m:ss or seconds)")
	filterCmd.Flags().StringVar(&filterAfter, "after", "", "only shots after this clock (m:ss or seconds)")
}

func runFilter(cmd *cobra.Command, args []string) error {
	constraint, err := buildConstraint()
	if err != nil {
		return err
	}

	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	_, shots, err := loadMatch(db, args[0])
	if err != nil {
		return err
	}

	matched := engine.FilterShots(shots, constraint)
	if len(matched) == 0 {
		fmt.Fprintln(os.Stdout, "No shots matched.")
		return nil
	}
	fmt.Fprintf(os.Stdout, "\n%d of %d shot(s) matched\n", len(matched), len(shots))
	report.PrintShotTable(os.Stdout, matched)
	return nil
}

// buildConstraint translates the filter flags into a single constraint.
func buildConstraint() (engine.Constraint, error) {
	c := engine.NewConstraint()
	c.ShotType = filterType

	if filterPlayer != "" {
		c.Players = []string{filterPlayer}
	}
	if filterZone >= 0 {
		if filterZone > 5 {
			return c, fmt.Errorf("zone %d out of range 0-5", filterZone)
		}
		c.Zones = []int{filterZone}
	}
	if filterDirection != "" {
		c.Directions = []string{filterDirection}
	}
	if filterSide != "" {
		side := model.SideFromString(filterSide)
		if side == model.SideUnknown {
			return c, fmt.Errorf("unknown side %q (want top or bot)", filterSide)
		}
		c.Side = side
	}
	c.MinRating = filterMinRating
	c.MaxRating = filterMaxRating
	if filterOutcome != "" {
		outcome := model.OutcomeFromString(filterOutcome)
		if outcome == model.OutcomeNone {
			return c, fmt.Errorf("unknown outcome %q (want winner or error)", filterOutcome)
		}
		c.WinnerError = outcome
	}
	if filterPosition < 0 {
		return c, fmt.Errorf("position must be >= 0")
	}
	c.RallyPosition = filterPosition
	if filterBefore != "" {
		t, err := engine.ParseClock(filterBefore)
		if err != nil {
			return c, err
		}
		c.TimeBefore = t
	}
	if filterAfter != "" {
		t, err := engine.ParseClock(filterAfter)
		if err != nil {
			return c, err
		}
		c.TimeAfter = t
	}
	return c, nil
}
