package engine

import "github.com/courtlab/go-shot-metrics/internal/model"

// MatchSequence slides a window the length of the pattern over the shot
// stream and reports every window whose shots satisfy the pattern's steps
// in order. Matched shots must be physically consecutive: each internal
// pair must have strictly adjacent indexes, not merely be order-consistent.
//
// The result is the flat concatenation of all matching windows; consumers
// re-chunk it into groups of len(pattern). Overlapping matches all
// contribute their shots, with no deduplication. Empty pattern or a stream
// shorter than the pattern yields an empty result, never an error.
func MatchSequence(shots []model.Shot, pattern []Constraint) []model.Shot {
	n := len(pattern)
	if n == 0 || len(shots) < n {
		return nil
	}

	pos := RallyPositions(shots)

	var out []model.Shot
	for i := 0; i+n <= len(shots); i++ {
		matched := true
		for j := 0; j < n; j++ {
			if j > 0 && shots[i+j].Index != shots[i+j-1].Index+1 {
				matched = false
				break
			}
			if !pattern[j].MatchShot(&shots[i+j], pos[i+j]) {
				matched = false
				break
			}
		}
		if matched {
			out = append(out, shots[i:i+n]...)
		}
	}
	return out
}
