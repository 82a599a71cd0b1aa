package engine

import (
	"fmt"
	"math"

	"github.com/courtlab/go-shot-metrics/internal/model"
)

// edgePad is the playback padding applied before the first shot and after
// the last one, in seconds.
const edgePad = 0.5

// DeriveBoundaries fills StartTime/EndTime for every shot in place so the
// windows exactly tile the timeline: each interior boundary is the midpoint
// between neighboring timestamps, so endTime[i] == startTime[i+1] with no
// gaps or overlaps. The slice must already be ordered by index.
//
// A shot with a NaN timestamp is a data-quality error: its boundaries and
// its neighbors' would be undefined, so the whole derivation fails rather
// than defaulting silently.
func DeriveBoundaries(shots []model.Shot) error {
	for i := range shots {
		if math.IsNaN(shots[i].Timestamp) {
			return fmt.Errorf("shot %d: missing timestamp, cannot derive playback boundaries", shots[i].Index)
		}
	}

	for i := range shots {
		if i == 0 {
			shots[i].StartTime = math.Max(0, shots[i].Timestamp-edgePad)
		} else {
			shots[i].StartTime = (shots[i-1].Timestamp + shots[i].Timestamp) / 2
		}
		if i == len(shots)-1 {
			shots[i].EndTime = shots[i].Timestamp + edgePad
		} else {
			shots[i].EndTime = (shots[i].Timestamp + shots[i+1].Timestamp) / 2
		}
	}
	return nil
}
