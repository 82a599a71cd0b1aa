package model

// CourtSide identifies which half of the court a player occupies.
type CourtSide int

const (
	SideUnknown CourtSide = 0
	SideTop     CourtSide = 1
	SideBot     CourtSide = 2
)

func (s CourtSide) String() string {
	switch s {
	case SideTop:
		return "top"
	case SideBot:
		return "bot"
	default:
		return "?"
	}
}

// SideFromString parses "top"/"bot", the detector's CSV vocabulary.
// Anything else maps to SideUnknown.
func SideFromString(s string) CourtSide {
	switch s {
	case "top":
		return SideTop
	case "bot":
		return SideBot
	default:
		return SideUnknown
	}
}

// Outcome classifies how a shot ended the point, if it did.
type Outcome int

const (
	OutcomeNone   Outcome = 0
	OutcomeWinner Outcome = 1
	OutcomeError  Outcome = 2
)

func (o Outcome) String() string {
	switch o {
	case OutcomeWinner:
		return "winner"
	case OutcomeError:
		return "error"
	default:
		return ""
	}
}

func OutcomeFromString(s string) Outcome {
	switch s {
	case "winner":
		return OutcomeWinner
	case "error":
		return OutcomeError
	default:
		return OutcomeNone
	}
}

// ZoneUnknown is the sentinel zone for shots with unusable coordinates.
// Valid zones are 0..5.
const ZoneUnknown = -1

// RatingMax is the top of the shot-rating scale. 0 means "no rating".
const RatingMax = 13.0

// Shot is one detected racket contact event. Raw fields come straight from
// the detector CSV; derived fields are filled in one pass at ingest and are
// immutable afterwards.
type Shot struct {
	// Identity: 0-based position in the full ordered stream. The sequence
	// matcher relies on Index contiguity to define "consecutive".
	Index int

	// Raw detector fields.
	Frame       int // source video frame number
	Label       string
	Direction   string // "cross/left", "cross/right", "straight"
	WinnerError Outcome
	CoordX      float64 // normalized court-relative landing position, [0,1]
	CoordY      float64
	PlayerZone  int // detector-provided zone of the hitting player
	Side        CourtSide
	PlayerID    string
	Group       int  // rally id; 0 = not part of a rally
	NewSequence bool // first shot of a new rally
	Rating      float64

	// Derived fields.
	Timestamp float64 // Frame / fps
	StartTime float64 // playback window start (midpoint tiling)
	EndTime   float64 // playback window end
	Zone      int     // shuttle landing zone, the single source of truth
}

// Duration is the playback window attributed to this shot.
func (s *Shot) Duration() float64 {
	return s.EndTime - s.StartTime
}

// Rally is a maximal run of shots sharing one group id, ordered by frame.
type Rally struct {
	ID     int
	Shots  []Shot
	Winner string // player id; "" when undetermined
}

// StartTime is the timestamp of the rally's first shot.
func (r *Rally) StartTime() float64 {
	if len(r.Shots) == 0 {
		return 0
	}
	return r.Shots[0].Timestamp
}

// EndTime is the timestamp of the rally's last shot.
func (r *Rally) EndTime() float64 {
	if len(r.Shots) == 0 {
		return 0
	}
	return r.Shots[len(r.Shots)-1].Timestamp
}

func (r *Rally) Duration() float64 {
	return r.EndTime() - r.StartTime()
}

// Players returns the distinct player ids in hitting order.
func (r *Rally) Players() []string {
	seen := make(map[string]struct{}, 2)
	var out []string
	for _, s := range r.Shots {
		if s.PlayerID == "" {
			continue
		}
		if _, ok := seen[s.PlayerID]; ok {
			continue
		}
		seen[s.PlayerID] = struct{}{}
		out = append(out, s.PlayerID)
	}
	return out
}

// MatchSummary is a lightweight record for list/show commands.
type MatchSummary struct {
	Hash       string // sha-256 of the source CSV, idempotency key
	Source     string // CSV path the shots were ingested from
	VideoPath  string
	IngestDate string
	FPS        float64
	ShotCount  int
	RallyCount int
}

// PlayerStats aggregates per-player shot outcomes for one match.
type PlayerStats struct {
	Hash     string
	PlayerID string

	Shots      int
	Winners    int
	Errors     int
	RalliesWon int
	RatedShots int
	RatingSum  float64
	ZoneCounts [6]int
	ServeCount int
}

// AvgRating is the mean rating over rated shots only (rating 0 = unrated).
func (p *PlayerStats) AvgRating() float64 {
	if p.RatedShots == 0 {
		return 0
	}
	return p.RatingSum / float64(p.RatedShots)
}

// WinnerErrorRatio returns winners per error; with zero errors it returns
// the winner count.
func (p *PlayerStats) WinnerErrorRatio() float64 {
	if p.Errors == 0 {
		return float64(p.Winners)
	}
	return float64(p.Winners) / float64(p.Errors)
}
