package engine

import (
	"testing"

	"github.com/courtlab/go-shot-metrics/internal/model"
)

// rallyShot builds one shot for rally tests. Frame doubles as timestamp to
// keep ordering assertions readable.
func rallyShot(index, frame, group int, player string, outcome model.Outcome, newSeq bool) model.Shot {
	return model.Shot{
		Index:       index,
		Frame:       frame,
		Group:       group,
		PlayerID:    player,
		WinnerError: outcome,
		NewSequence: newSeq,
		Timestamp:   float64(frame),
	}
}

func TestGroupRallies_BucketsAndOrder(t *testing.T) {
	shots := []model.Shot{
		// Rally 2 starts later in time but appears first in the slice.
		rallyShot(3, 300, 2, "p1", model.OutcomeNone, true),
		rallyShot(4, 330, 2, "p2", model.OutcomeWinner, false),
		rallyShot(0, 100, 1, "p1", model.OutcomeNone, true),
		rallyShot(1, 130, 1, "p2", model.OutcomeNone, false),
		rallyShot(2, 160, 1, "p1", model.OutcomeError, false),
		// Group 0 never joins a rally.
		rallyShot(5, 400, 0, "p1", model.OutcomeNone, false),
	}

	rallies := GroupRallies(shots)
	if len(rallies) != 2 {
		t.Fatalf("expected 2 rallies, got %d", len(rallies))
	}
	if rallies[0].ID != 1 || rallies[1].ID != 2 {
		t.Errorf("rallies not sorted by start time: got ids %d, %d", rallies[0].ID, rallies[1].ID)
	}
	if len(rallies[0].Shots) != 3 {
		t.Errorf("rally 1: expected 3 shots, got %d", len(rallies[0].Shots))
	}
	for _, r := range rallies {
		for _, s := range r.Shots {
			if s.Group != r.ID {
				t.Errorf("rally %d contains shot with group %d", r.ID, s.Group)
			}
		}
	}
}

func TestGroupRallies_WinnerFromTerminalWinner(t *testing.T) {
	shots := []model.Shot{
		rallyShot(0, 100, 1, "p1", model.OutcomeNone, true),
		rallyShot(1, 130, 1, "p2", model.OutcomeWinner, false),
	}
	rallies := GroupRallies(shots)
	if rallies[0].Winner != "p2" {
		t.Errorf("winner = %q, want p2", rallies[0].Winner)
	}
}

func TestGroupRallies_WinnerFromTerminalError(t *testing.T) {
	shots := []model.Shot{
		rallyShot(0, 100, 1, "p1", model.OutcomeNone, true),
		rallyShot(1, 130, 1, "p2", model.OutcomeNone, false),
		rallyShot(2, 160, 1, "p1", model.OutcomeError, false),
	}
	rallies := GroupRallies(shots)
	if rallies[0].Winner != "p2" {
		t.Errorf("winner = %q, want p2 (p1 committed the error)", rallies[0].Winner)
	}
}

// A rally whose last shot carries no outcome stays undetermined.
func TestGroupRallies_NoOutcomeMeansNoWinner(t *testing.T) {
	shots := []model.Shot{
		rallyShot(0, 100, 1, "p1", model.OutcomeNone, true),
		rallyShot(1, 130, 1, "p2", model.OutcomeNone, false),
	}
	rallies := GroupRallies(shots)
	if rallies[0].Winner != "" {
		t.Errorf("winner = %q, want undetermined", rallies[0].Winner)
	}
}

// With more than two players the "first other player" pick is arbitrary but
// must stay deterministic and name a player from the rally.
func TestGroupRallies_MultiPlayerErrorIsDeterministic(t *testing.T) {
	shots := []model.Shot{
		rallyShot(0, 100, 1, "p2", model.OutcomeNone, true),
		rallyShot(1, 130, 1, "p3", model.OutcomeNone, false),
		rallyShot(2, 160, 1, "p1", model.OutcomeError, false),
	}
	first := GroupRallies(shots)[0].Winner
	if first != "p2" {
		t.Errorf("winner = %q, want p2 (first non-erring player in frame order)", first)
	}
	for i := 0; i < 5; i++ {
		if w := GroupRallies(shots)[0].Winner; w != first {
			t.Fatalf("winner changed between runs: %q vs %q", first, w)
		}
	}
}

func TestGroupRallies_EmptyStream(t *testing.T) {
	if rallies := GroupRallies(nil); len(rallies) != 0 {
		t.Errorf("expected no rallies, got %d", len(rallies))
	}
}

func TestRallyPositions(t *testing.T) {
	shots := []model.Shot{
		rallyShot(0, 100, 1, "p1", model.OutcomeNone, true),  // rally 1, pos 1
		rallyShot(1, 130, 1, "p2", model.OutcomeNone, false), // pos 2
		rallyShot(2, 160, 1, "p1", model.OutcomeNone, false), // pos 3
		rallyShot(3, 200, 2, "p2", model.OutcomeNone, true),  // rally 2, pos 1
		rallyShot(4, 230, 2, "p1", model.OutcomeNone, false), // pos 2
	}
	want := []int{1, 2, 3, 1, 2}
	got := RallyPositions(shots)
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("position[%d] = %d, want %d", i, got[i], want[i])
		}
	}
}

// A group change resets the position even without a new_sequence marker, so
// the walk and the grouper agree on rally boundaries.
func TestRallyPositions_GroupChangeResets(t *testing.T) {
	shots := []model.Shot{
		rallyShot(0, 100, 1, "p1", model.OutcomeNone, false),
		rallyShot(1, 130, 1, "p2", model.OutcomeNone, false),
		rallyShot(2, 160, 2, "p1", model.OutcomeNone, false),
	}
	got := RallyPositions(shots)
	want := []int{1, 2, 1}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("position[%d] = %d, want %d", i, got[i], want[i])
		}
	}
}
