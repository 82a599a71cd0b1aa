package engine

import (
	"sort"

	"github.com/courtlab/go-shot-metrics/internal/model"
)

// GroupRallies partitions the shot stream into rallies by group id. Shots
// with group 0 belong to no rally and are dropped. Shots within a rally are
// ordered by frame; rallies are ordered by start time.
//
// Winner rule: if the rally's last shot is a winner, its player wins; if it
// is an error, the first other player appearing in the rally wins. A rally
// whose last shot has no outcome gets Winner == "": undetermined, never
// guessed. With more than two players the "first other player" pick is
// arbitrary but deterministic.
func GroupRallies(shots []model.Shot) []model.Rally {
	buckets := make(map[int][]model.Shot)
	for _, s := range shots {
		if s.Group == 0 {
			continue
		}
		buckets[s.Group] = append(buckets[s.Group], s)
	}

	rallies := make([]model.Rally, 0, len(buckets))
	for id, bucket := range buckets {
		sort.Slice(bucket, func(i, j int) bool { return bucket[i].Frame < bucket[j].Frame })
		rallies = append(rallies, model.Rally{
			ID:     id,
			Shots:  bucket,
			Winner: rallyWinner(bucket),
		})
	}

	sort.Slice(rallies, func(i, j int) bool { return rallies[i].StartTime() < rallies[j].StartTime() })
	return rallies
}

func rallyWinner(shots []model.Shot) string {
	if len(shots) == 0 {
		return ""
	}
	last := shots[len(shots)-1]
	switch last.WinnerError {
	case model.OutcomeWinner:
		return last.PlayerID
	case model.OutcomeError:
		for _, s := range shots {
			if s.PlayerID != "" && s.PlayerID != last.PlayerID {
				return s.PlayerID
			}
		}
		return ""
	default:
		return ""
	}
}

// RallyPositions computes, for every shot, its 1-based position within its
// rally: walk backward while the previous shot shares the group id and the
// current shot is not flagged as the start of a new sequence. This is the
// derivation the rally-position predicate tests against.
func RallyPositions(shots []model.Shot) []int {
	pos := make([]int, len(shots))
	for i := range shots {
		p := 1
		for j := i; j > 0; j-- {
			if shots[j].NewSequence {
				break
			}
			if shots[j-1].Group != shots[j].Group {
				break
			}
			p++
		}
		pos[i] = p
	}
	return pos
}
