// Package translator turns natural-language questions into typed shot
// filters using the Anthropic API. The model's output is treated as an
// untrusted, partially-populated JSON structure and is validated and
// coerced before it ever reaches the filter evaluator.
package translator

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/courtlab/go-shot-metrics/internal/engine"
	"github.com/courtlab/go-shot-metrics/internal/model"
)

const systemPrompt = `You translate questions about racket-sport match footage into a JSON filter.

Respond with ONLY a JSON object — no prose, no markdown fences. Schema:
{
  "shotType":    "serve" | "drive" | "volley" | "lob" | "overhead" | "any",
  "player":      "<player id>",
  "zone":        0-5,
  "direction":   "cross/left" | "cross/right" | "straight",
  "courtSide":   "top" | "bot",
  "minRating":   0-13,
  "maxRating":   0-13,
  "winnerError": "winner" | "error",
  "rallyPosition": <N, 1 = first shot of a rally>,
  "rallyLength":   <exact rally length in shots>,
  "sequence":    [ { same fields per step, in order } ]
}

Rules:
- Omit every field the question does not constrain.
- Use "sequence" only for multi-shot patterns ("a serve followed by a volley").
- Zones: 0-2 are front court (0 right, 1 center, 2 left as seen from the net),
  3-5 are back court. The layout mirrors across the net.
- Never invent players or shot types not implied by the question.`

// FilterSpec is the untrusted JSON shape the model returns. Pointer fields
// distinguish "absent" from zero values.
type FilterSpec struct {
	ShotType      string       `json:"shotType,omitempty"`
	Player        string       `json:"player,omitempty"`
	Zone          *int         `json:"zone,omitempty"`
	Direction     string       `json:"direction,omitempty"`
	CourtSide     string       `json:"courtSide,omitempty"`
	MinRating     *float64     `json:"minRating,omitempty"`
	MaxRating     *float64     `json:"maxRating,omitempty"`
	WinnerError   string       `json:"winnerError,omitempty"`
	RallyPosition *int         `json:"rallyPosition,omitempty"`
	RallyLength   *int         `json:"rallyLength,omitempty"`
	Sequence      []FilterSpec `json:"sequence,omitempty"`
}

var validDirections = map[string]bool{
	"cross/left":  true,
	"cross/right": true,
	"straight":    true,
}

// ParseSpec extracts and strictly decodes the JSON object from raw model
// output. Unknown fields are rejected rather than silently dropped.
func ParseSpec(raw string) (*FilterSpec, error) {
	start := strings.IndexByte(raw, '{')
	end := strings.LastIndexByte(raw, '}')
	if start < 0 || end <= start {
		return nil, fmt.Errorf("no JSON object in model output")
	}

	dec := json.NewDecoder(bytes.NewReader([]byte(raw[start : end+1])))
	dec.DisallowUnknownFields()

	var spec FilterSpec
	if err := dec.Decode(&spec); err != nil {
		return nil, fmt.Errorf("decode filter: %w", err)
	}
	return &spec, nil
}

// Coerce validates one spec and converts it into a typed constraint.
// Unknown enum values are errors; rating bounds are clamped to the legal
// range and reordered if inverted.
func (f *FilterSpec) Coerce() (engine.Constraint, error) {
	c := engine.NewConstraint()

	if f.ShotType != "" {
		c.ShotType = strings.ToLower(strings.TrimSpace(f.ShotType))
	}
	if f.Player != "" {
		c.Players = []string{f.Player}
	}
	if f.Zone != nil {
		if *f.Zone < 0 || *f.Zone > 5 {
			return c, fmt.Errorf("zone %d out of range 0-5", *f.Zone)
		}
		c.Zones = []int{*f.Zone}
	}
	if f.Direction != "" {
		if !validDirections[f.Direction] {
			return c, fmt.Errorf("unknown direction %q", f.Direction)
		}
		c.Directions = []string{f.Direction}
	}
	if f.CourtSide != "" {
		side := model.SideFromString(f.CourtSide)
		if side == model.SideUnknown {
			return c, fmt.Errorf("unknown court side %q", f.CourtSide)
		}
		c.Side = side
	}
	if f.MinRating != nil {
		c.MinRating = clampRating(*f.MinRating)
	}
	if f.MaxRating != nil {
		c.MaxRating = clampRating(*f.MaxRating)
	}
	if c.MinRating > c.MaxRating {
		c.MinRating, c.MaxRating = c.MaxRating, c.MinRating
	}
	if f.WinnerError != "" {
		outcome := model.OutcomeFromString(f.WinnerError)
		if outcome == model.OutcomeNone {
			return c, fmt.Errorf("unknown outcome %q", f.WinnerError)
		}
		c.WinnerError = outcome
	}
	if f.RallyPosition != nil {
		if *f.RallyPosition < 0 {
			return c, fmt.Errorf("rally position must be >= 0")
		}
		c.RallyPosition = *f.RallyPosition
	}
	return c, nil
}

// Pattern converts the spec into an ordered constraint list: the sequence
// steps when present, otherwise the single top-level filter.
func (f *FilterSpec) Pattern() ([]engine.Constraint, error) {
	if len(f.Sequence) == 0 {
		c, err := f.Coerce()
		if err != nil {
			return nil, err
		}
		return []engine.Constraint{c}, nil
	}

	pattern := make([]engine.Constraint, 0, len(f.Sequence))
	for i, step := range f.Sequence {
		if len(step.Sequence) > 0 {
			return nil, fmt.Errorf("step %d: nested sequences are not allowed", i+1)
		}
		c, err := step.Coerce()
		if err != nil {
			return nil, fmt.Errorf("step %d: %w", i+1, err)
		}
		pattern = append(pattern, c)
	}
	return pattern, nil
}

func clampRating(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > model.RatingMax {
		return model.RatingMax
	}
	return v
}

// Translator calls the Anthropic API to convert questions into FilterSpecs.
type Translator struct {
	client anthropic.Client
	model  string
}

// New builds a Translator for the given API key and model id.
func New(apiKey, modelID string) *Translator {
	return &Translator{
		client: anthropic.NewClient(option.WithAPIKey(apiKey)),
		model:  modelID,
	}
}

// Translate asks the model for a filter matching the question and returns
// the validated spec.
func (t *Translator) Translate(ctx context.Context, question string) (*FilterSpec, error) {
	stream := t.client.Messages.NewStreaming(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(t.model),
		MaxTokens: 512,
		System: []anthropic.TextBlockParam{
			{Text: systemPrompt},
		},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(question)),
		},
	})

	var sb strings.Builder
	for stream.Next() {
		evt := stream.Current()
		if evt.Type == "content_block_delta" {
			delta := evt.AsContentBlockDelta()
			if delta.Delta.Type == "text_delta" {
				sb.WriteString(delta.Delta.AsTextDelta().Text)
			}
		}
	}
	if err := stream.Err(); err != nil {
		if strings.Contains(err.Error(), "401") || strings.Contains(err.Error(), "authentication") {
			return nil, fmt.Errorf("API authentication failed — check your API key")
		}
		return nil, fmt.Errorf("streaming error: %w", err)
	}

	return ParseSpec(sb.String())
}
