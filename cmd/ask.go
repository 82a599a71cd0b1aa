package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/courtlab/go-shot-metrics/internal/engine"
	"github.com/courtlab/go-shot-metrics/internal/model"
	"github.com/courtlab/go-shot-metrics/internal/report"
	"github.com/courtlab/go-shot-metrics/internal/translator"
)

var (
	askModel  string
	askAPIKey string
)

var askCmd = &cobra.Command{
	Use:   "ask <hash-prefix> <question>",
	Short: "Query a match in natural language (requires ANTHROPIC_API_KEY)",
	Long: `Translate a natural-language question into a shot filter and run it:

  shotmetrics ask ab12 "serves by p1 that landed back left"
  shotmetrics ask ab12 "a serve followed by a volley winner"`,
	Args: cobra.ExactArgs(2),
	RunE: runAsk,
}

func init() {
	askCmd.Flags().StringVar(&askModel, "model", "", "Anthropic model to use (defaults to config)")
	askCmd.Flags().StringVar(&askAPIKey, "api-key", "", "Anthropic API key (falls back to $ANTHROPIC_API_KEY)")
}

func runAsk(cmd *cobra.Command, args []string) error {
	apiKey := askAPIKey
	if apiKey == "" {
		apiKey = os.Getenv("ANTHROPIC_API_KEY")
	}
	if apiKey == "" {
		return fmt.Errorf("no API key: set ANTHROPIC_API_KEY or use --api-key")
	}
	modelID := askModel
	if modelID == "" {
		modelID = cfg.AnthropicModel
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

	fmt.Fprintln(os.Stdout, "Translating question...")
	spec, err := translator.New(apiKey, modelID).Translate(cmd.Context(), args[1])
	if err != nil {
		return err
	}
	pattern, err := spec.Pattern()
	if err != nil {
		return fmt.Errorf("invalid filter from model: %w", err)
	}

	matched := engine.MatchSequence(shots, pattern)
	if spec.RallyLength != nil {
		matched = keepRallyLength(shots, matched, len(pattern), *spec.RallyLength)
	}

	report.PrintSequenceMatches(os.Stdout, matched, len(pattern))
	return nil
}

// keepRallyLength drops matched windows whose rally does not have exactly
// length shots. Windows are judged by their first shot's rally.
func keepRallyLength(shots, matched []model.Shot, windowLen, length int) []model.Shot {
	if windowLen <= 0 || length <= 0 {
		return matched
	}
	sizes := make(map[int]int)
	for _, s := range shots {
		if s.Group != 0 {
			sizes[s.Group]++
		}
	}

	var out []model.Shot
	for i := 0; i+windowLen <= len(matched); i += windowLen {
		window := matched[i : i+windowLen]
		if sizes[window[0].Group] == length {
			out = append(out, window...)
		}
	}
	return out
}
