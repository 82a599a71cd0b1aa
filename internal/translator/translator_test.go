package translator

import (
	"testing"

	"github.com/courtlab/go-shot-metrics/internal/model"
)

func intp(v int) *int          { return &v }
func floatp(v float64) *float64 { return &v }

func TestParseSpec_PlainObject(t *testing.T) {
	spec, err := ParseSpec(`{"shotType":"serve","player":"p1"}`)
	if err != nil {
		t.Fatalf("ParseSpec: %v", err)
	}
	if spec.ShotType != "serve" || spec.Player != "p1" {
		t.Errorf("unexpected spec: %+v", spec)
	}
}

// Models sometimes wrap the object in prose or fences despite instructions.
func TestParseSpec_ExtractsEmbeddedJSON(t *testing.T) {
	raw := "Here is the filter:\n```json\n{\"shotType\":\"volley\"}\n```\n"
	spec, err := ParseSpec(raw)
	if err != nil {
		t.Fatalf("ParseSpec: %v", err)
	}
	if spec.ShotType != "volley" {
		t.Errorf("shotType = %q", spec.ShotType)
	}
}

func TestParseSpec_RejectsUnknownFields(t *testing.T) {
	if _, err := ParseSpec(`{"shotType":"serve","confidence":0.9}`); err == nil {
		t.Error("expected unknown field to be rejected")
	}
}

func TestParseSpec_NoJSON(t *testing.T) {
	if _, err := ParseSpec("I cannot answer that."); err == nil {
		t.Error("expected error for prose-only output")
	}
}

func TestCoerce_Defaults(t *testing.T) {
	spec := &FilterSpec{}
	c, err := spec.Coerce()
	if err != nil {
		t.Fatalf("Coerce: %v", err)
	}
	// An empty spec is the unconstrained filter.
	s := model.Shot{Label: "lob", Rating: 3}
	if !c.MatchShot(&s, 1) {
		t.Error("empty spec should match everything")
	}
}

func TestCoerce_Fields(t *testing.T) {
	spec := &FilterSpec{
		ShotType:      "Drive",
		Player:        "p2",
		Zone:          intp(4),
		Direction:     "straight",
		CourtSide:     "bot",
		MinRating:     floatp(5),
		MaxRating:     floatp(9),
		WinnerError:   "winner",
		RallyPosition: intp(2),
	}
	c, err := spec.Coerce()
	if err != nil {
		t.Fatalf("Coerce: %v", err)
	}
	if c.ShotType != "drive" {
		t.Errorf("shot type not normalized: %q", c.ShotType)
	}
	if len(c.Zones) != 1 || c.Zones[0] != 4 {
		t.Errorf("zones = %v", c.Zones)
	}
	if c.Side != model.SideBot || c.WinnerError != model.OutcomeWinner || c.RallyPosition != 2 {
		t.Errorf("unexpected constraint: %+v", c)
	}
}

func TestCoerce_RatingsClampedAndReordered(t *testing.T) {
	spec := &FilterSpec{MinRating: floatp(20), MaxRating: floatp(-1)}
	c, err := spec.Coerce()
	if err != nil {
		t.Fatalf("Coerce: %v", err)
	}
	if c.MinRating != 0 || c.MaxRating != model.RatingMax {
		t.Errorf("ratings = [%v,%v], want [0,13]", c.MinRating, c.MaxRating)
	}
}

func TestCoerce_RejectsBadEnums(t *testing.T) {
	cases := []*FilterSpec{
		{Zone: intp(7)},
		{Direction: "diagonal"},
		{CourtSide: "left"},
		{WinnerError: "ace"},
		{RallyPosition: intp(-1)},
	}
	for i, spec := range cases {
		if _, err := spec.Coerce(); err == nil {
			t.Errorf("case %d: expected validation error", i)
		}
	}
}

func TestPattern_SingleFilter(t *testing.T) {
	spec := &FilterSpec{ShotType: "serve"}
	pattern, err := spec.Pattern()
	if err != nil {
		t.Fatalf("Pattern: %v", err)
	}
	if len(pattern) != 1 || pattern[0].ShotType != "serve" {
		t.Errorf("unexpected pattern: %+v", pattern)
	}
}

func TestPattern_Sequence(t *testing.T) {
	spec := &FilterSpec{
		Sequence: []FilterSpec{
			{ShotType: "serve", RallyPosition: intp(1)},
			{ShotType: "volley", Player: "p1"},
		},
	}
	pattern, err := spec.Pattern()
	if err != nil {
		t.Fatalf("Pattern: %v", err)
	}
	if len(pattern) != 2 {
		t.Fatalf("expected 2 steps, got %d", len(pattern))
	}
	if pattern[0].RallyPosition != 1 || pattern[1].ShotType != "volley" {
		t.Errorf("unexpected steps: %+v", pattern)
	}
}

func TestPattern_RejectsNestedSequence(t *testing.T) {
	spec := &FilterSpec{
		Sequence: []FilterSpec{
			{Sequence: []FilterSpec{{ShotType: "serve"}}},
		},
	}
	if _, err := spec.Pattern(); err == nil {
		t.Error("expected nested sequence to be rejected")
	}
}

func TestPattern_BadStepNamesStep(t *testing.T) {
	spec := &FilterSpec{
		Sequence: []FilterSpec{
			{ShotType: "serve"},
			{Direction: "sideways"},
		},
	}
	_, err := spec.Pattern()
	if err == nil {
		t.Fatal("expected error for bad step")
	}
}
