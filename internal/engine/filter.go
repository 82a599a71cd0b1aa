package engine

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/courtlab/go-shot-metrics/internal/model"
)

// TimeUnset marks an absent TimeBefore/TimeAfter bound.
const TimeUnset = -1.0

// AnyShotType is the shot-type wildcard.
const AnyShotType = "any"

// Constraint is one step of a sequence pattern: the acceptable values for a
// single shot's attributes. Empty sets and zero values mean "unconstrained"
// for their check.
type Constraint struct {
	ShotType      string   // "" or "any" = wildcard
	Players       []string // empty = any
	Zones         []int    // empty = any
	Directions    []string // empty = any
	Side          model.CourtSide // SideUnknown = unset
	MinRating     float64  // inclusive, default 0
	MaxRating     float64  // inclusive, default model.RatingMax
	WinnerError   model.Outcome // OutcomeNone = unset
	RallyPosition int      // 0 = any; N = Nth shot of its rally
	TimeBefore    float64  // timestamp must be strictly before; TimeUnset = no bound
	TimeAfter     float64  // timestamp must be strictly after; TimeUnset = no bound
}

// NewConstraint returns an unconstrained step: it matches every shot.
func NewConstraint() Constraint {
	return Constraint{
		ShotType:   AnyShotType,
		MinRating:  0,
		MaxRating:  model.RatingMax,
		TimeBefore: TimeUnset,
		TimeAfter:  TimeUnset,
	}
}

// MatchShot tests one shot against the constraint. rallyPos is the shot's
// derived rally position (see RallyPositions). The sub-checks are an
// independent conjunction evaluated in order, short-circuiting on the
// first failure.
func (c *Constraint) MatchShot(s *model.Shot, rallyPos int) bool {
	if c.ShotType != "" && c.ShotType != AnyShotType && c.ShotType != s.Label {
		return false
	}
	if len(c.Players) > 0 && !containsString(c.Players, s.PlayerID) {
		return false
	}
	if len(c.Zones) > 0 && !containsInt(c.Zones, s.Zone) {
		return false
	}
	if len(c.Directions) > 0 && !containsString(c.Directions, s.Direction) {
		return false
	}
	if c.Side != model.SideUnknown && c.Side != s.Side {
		return false
	}
	if c.WinnerError != model.OutcomeNone && c.WinnerError != s.WinnerError {
		return false
	}
	if s.Rating < c.MinRating || s.Rating > c.MaxRating {
		return false
	}
	if c.RallyPosition != 0 && rallyPos != c.RallyPosition {
		return false
	}
	if c.TimeBefore != TimeUnset && !(s.Timestamp < c.TimeBefore) {
		return false
	}
	if c.TimeAfter != TimeUnset && !(s.Timestamp > c.TimeAfter) {
		return false
	}
	return true
}

// FilterShots is the simple (non-sequence) filtering path: it returns the
// shots matching a single constraint, preserving stream order.
func FilterShots(shots []model.Shot, c Constraint) []model.Shot {
	pos := RallyPositions(shots)
	var out []model.Shot
	for i := range shots {
		if c.MatchShot(&shots[i], pos[i]) {
			out = append(out, shots[i])
		}
	}
	return out
}

// ParseClock converts a "m:ss" or plain-seconds string into total seconds.
func ParseClock(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("empty clock value")
	}
	if i := strings.IndexByte(s, ':'); i >= 0 {
		mins, err := strconv.Atoi(s[:i])
		if err != nil || mins < 0 {
			return 0, fmt.Errorf("invalid minutes in %q", s)
		}
		secs, err := strconv.ParseFloat(s[i+1:], 64)
		if err != nil || secs < 0 || secs >= 60 {
			return 0, fmt.Errorf("invalid seconds in %q", s)
		}
		return float64(mins)*60 + secs, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || v < 0 {
		return 0, fmt.Errorf("invalid clock value %q", s)
	}
	return v, nil
}

func containsString(set []string, v string) bool {
	for _, s := range set {
		if s == v {
			return true
		}
	}
	return false
}

func containsInt(set []int, v int) bool {
	for _, s := range set {
		if s == v {
			return true
		}
	}
	return false
}
