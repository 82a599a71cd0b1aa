package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/courtlab/go-shot-metrics/internal/engine"
	"github.com/courtlab/go-shot-metrics/internal/report"
	"github.com/courtlab/go-shot-metrics/internal/translator"
)

var sequenceCmd = &cobra.Command{
	Use:   "sequence <hash-prefix> <pattern.json>",
	Short: "Find consecutive shot runs matching a pattern file",
	Long: `Find every run of consecutive shots matching an ordered pattern.

The pattern file holds a JSON filter, either a single step or a "sequence"
of steps:

  {"sequence": [{"shotType": "serve"}, {"shotType": "volley", "zone": 0}]}

Each step constrains one shot; steps must be satisfied by consecutive shots
in detection order. Overlapping runs are all reported.`,
	Args: cobra.ExactArgs(2),
	RunE: runSequence,
}

func runSequence(cmd *cobra.Command, args []string) error {
	pattern, err := patternFromFile(args[1])
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

	matched := engine.MatchSequence(shots, pattern)
	report.PrintSequenceMatches(os.Stdout, matched, len(pattern))
	return nil
}

// patternFromFile reads a JSON filter file and converts it into an ordered
// constraint list.
func patternFromFile(path string) ([]engine.Constraint, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read pattern: %w", err)
	}
	spec, err := translator.ParseSpec(string(data))
	if err != nil {
		return nil, fmt.Errorf("parse pattern: %w", err)
	}
	pattern, err := spec.Pattern()
	if err != nil {
		return nil, fmt.Errorf("invalid pattern: %w", err)
	}
	return pattern, nil
}
