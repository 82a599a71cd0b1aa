package storage

import (
	"testing"

	"github.com/courtlab/go-shot-metrics/internal/model"
)

func openMemDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(":memory:")
	if err != nil {
		t.Fatalf("open in-memory db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func sampleMatch(hash string) model.MatchSummary {
	return model.MatchSummary{
		Hash:       hash,
		Source:     "shots.csv",
		VideoPath:  "match.mp4",
		IngestDate: "2026-08-01",
		FPS:        30,
		ShotCount:  2,
		RallyCount: 1,
	}
}

func TestMatchInsertAndExists(t *testing.T) {
	db := openMemDB(t)

	if err := db.InsertMatch(sampleMatch("abc123")); err != nil {
		t.Fatalf("InsertMatch: %v", err)
	}

	exists, err := db.MatchExists("abc123")
	if err != nil {
		t.Fatalf("MatchExists: %v", err)
	}
	if !exists {
		t.Error("expected match to exist after insert")
	}

	exists2, _ := db.MatchExists("nonexistent")
	if exists2 {
		t.Error("expected non-existent match to not exist")
	}
}

func TestShotsRoundTrip(t *testing.T) {
	db := openMemDB(t)
	if err := db.InsertMatch(sampleMatch("h1")); err != nil {
		t.Fatalf("InsertMatch: %v", err)
	}

	shots := []model.Shot{
		{
			Index: 0, Frame: 30, Label: "serve", Direction: "straight",
			WinnerError: model.OutcomeNone, CoordX: 0.5, CoordY: 0.1,
			Side: model.SideTop, PlayerID: "p1", Group: 1, NewSequence: true,
			Rating: 8.5, Timestamp: 1, StartTime: 0.5, EndTime: 1.5, Zone: 4,
		},
		{
			Index: 1, Frame: 60, Label: "drive", Direction: "cross/left",
			WinnerError: model.OutcomeWinner, CoordX: 0.2, CoordY: 0.9,
			Side: model.SideBot, PlayerID: "p2", Group: 1,
			Rating: 11, Timestamp: 2, StartTime: 1.5, EndTime: 2.5, Zone: 3,
		},
	}
	if err := db.InsertShots("h1", shots); err != nil {
		t.Fatalf("InsertShots: %v", err)
	}

	got, err := db.GetShots("h1")
	if err != nil {
		t.Fatalf("GetShots: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 shots, got %d", len(got))
	}
	if got[0].Label != "serve" || !got[0].NewSequence || got[0].Side != model.SideTop {
		t.Errorf("shot 0 round-trip mismatch: %+v", got[0])
	}
	if got[1].WinnerError != model.OutcomeWinner || got[1].Zone != 3 {
		t.Errorf("shot 1 round-trip mismatch: %+v", got[1])
	}
}

func TestGetMatchByPrefix(t *testing.T) {
	db := openMemDB(t)
	db.InsertMatch(sampleMatch("deadbeef1234"))
	db.InsertMatch(sampleMatch("cafe00001111"))

	m, err := db.GetMatchByPrefix("dead")
	if err != nil {
		t.Fatalf("GetMatchByPrefix: %v", err)
	}
	if m.Hash != "deadbeef1234" {
		t.Errorf("got %s", m.Hash)
	}

	if _, err := db.GetMatchByPrefix("zzz"); err == nil {
		t.Error("expected error for unknown prefix")
	}
}

func TestGetMatchByPrefix_Ambiguous(t *testing.T) {
	db := openMemDB(t)
	db.InsertMatch(sampleMatch("aa11"))
	db.InsertMatch(sampleMatch("aa22"))

	if _, err := db.GetMatchByPrefix("aa"); err == nil {
		t.Error("expected error for ambiguous prefix")
	}
}

func TestRalliesAndDelete(t *testing.T) {
	db := openMemDB(t)
	db.InsertMatch(sampleMatch("h1"))

	rallies := []model.Rally{
		{ID: 2, Winner: "p1", Shots: []model.Shot{{Timestamp: 10}, {Timestamp: 12}}},
		{ID: 1, Winner: "p2", Shots: []model.Shot{{Timestamp: 1}, {Timestamp: 3}}},
	}
	if err := db.InsertRallies("h1", rallies); err != nil {
		t.Fatalf("InsertRallies: %v", err)
	}

	got, err := db.GetRallies("h1")
	if err != nil {
		t.Fatalf("GetRallies: %v", err)
	}
	if len(got) != 2 || got[0].ID != 1 {
		t.Errorf("rallies not ordered by start time: %+v", got)
	}

	if err := db.DeleteMatch("h1"); err != nil {
		t.Fatalf("DeleteMatch: %v", err)
	}
	exists, _ := db.MatchExists("h1")
	if exists {
		t.Error("match still exists after delete")
	}
	left, _ := db.GetRallies("h1")
	if len(left) != 0 {
		t.Error("rallies not removed with match")
	}
}

func TestCountByLabelAndTotals(t *testing.T) {
	db := openMemDB(t)
	db.InsertMatch(sampleMatch("h1"))
	db.InsertShots("h1", []model.Shot{
		{Index: 0, Label: "drive"},
		{Index: 1, Label: "drive"},
		{Index: 2, Label: "serve"},
	})

	counts, err := db.CountByLabel("h1")
	if err != nil {
		t.Fatalf("CountByLabel: %v", err)
	}
	if len(counts) != 2 || counts[0].Label != "drive" || counts[0].Count != 2 {
		t.Errorf("unexpected label counts: %+v", counts)
	}

	matches, shots, rallies, err := db.Totals()
	if err != nil {
		t.Fatalf("Totals: %v", err)
	}
	if matches != 1 || shots != 3 || rallies != 0 {
		t.Errorf("totals = %d,%d,%d", matches, shots, rallies)
	}
}

func TestRunQuery(t *testing.T) {
	db := openMemDB(t)
	db.InsertMatch(sampleMatch("h1"))

	cols, rows, err := db.RunQuery("SELECT hash, fps FROM matches")
	if err != nil {
		t.Fatalf("RunQuery: %v", err)
	}
	if len(cols) != 2 || len(rows) != 1 {
		t.Fatalf("unexpected shape: cols=%v rows=%v", cols, rows)
	}
	if rows[0][0] != "h1" {
		t.Errorf("hash = %q", rows[0][0])
	}
}
