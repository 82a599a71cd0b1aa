package api

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/courtlab/go-shot-metrics/internal/model"
	"github.com/courtlab/go-shot-metrics/internal/storage"
)

func testRouter(t *testing.T) http.Handler {
	t.Helper()
	db, err := storage.Open(":memory:")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := db.InsertMatch(model.MatchSummary{
		Hash: "feedface0000", Source: "shots.csv", IngestDate: "2026-08-01",
		FPS: 30, ShotCount: 3, RallyCount: 1,
	}); err != nil {
		t.Fatalf("insert match: %v", err)
	}
	shots := []model.Shot{
		{Index: 0, Frame: 30, Label: "serve", PlayerID: "p1", Group: 1, NewSequence: true,
			Zone: 4, Timestamp: 1, StartTime: 0.5, EndTime: 1.5, Rating: 8},
		{Index: 1, Frame: 60, Label: "drive", PlayerID: "p2", Group: 1,
			Zone: 1, Timestamp: 2, StartTime: 1.5, EndTime: 2.5},
		{Index: 2, Frame: 90, Label: "volley", PlayerID: "p1", Group: 1,
			WinnerError: model.OutcomeWinner, Zone: 0, Timestamp: 3, StartTime: 2.5, EndTime: 3.5},
	}
	if err := db.InsertShots("feedface0000", shots); err != nil {
		t.Fatalf("insert shots: %v", err)
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewRouter(ServerConfig{DB: db, Logger: logger})
}

func doRequest(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestHealthRoute(t *testing.T) {
	h := testRouter(t)
	rec := doRequest(t, h, http.MethodGet, "/health", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d", rec.Code)
	}
	var resp HealthResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Status != "ok" || resp.Matches != 1 || resp.Shots != 3 {
		t.Errorf("unexpected health: %+v", resp)
	}
}

func TestShotsRoute_PrefixLookup(t *testing.T) {
	h := testRouter(t)
	rec := doRequest(t, h, http.MethodGet, "/matches/feedface/shots", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d: %s", rec.Code, rec.Body.String())
	}
	var shots []ShotResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &shots); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(shots) != 3 || shots[0].Label != "serve" {
		t.Errorf("unexpected shots: %+v", shots)
	}
}

func TestShotsRoute_UnknownMatch(t *testing.T) {
	h := testRouter(t)
	rec := doRequest(t, h, http.MethodGet, "/matches/ffff/shots", "")
	if rec.Code != http.StatusNotFound {
		t.Errorf("status %d, want 404", rec.Code)
	}
}

func TestRalliesRoute(t *testing.T) {
	h := testRouter(t)
	rec := doRequest(t, h, http.MethodGet, "/matches/feedface/rallies", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d", rec.Code)
	}
	var rallies []RallyResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &rallies); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(rallies) != 1 || rallies[0].Winner != "p1" || rallies[0].ShotCount != 3 {
		t.Errorf("unexpected rallies: %+v", rallies)
	}
}

func TestHeatmapRoute(t *testing.T) {
	h := testRouter(t)
	rec := doRequest(t, h, http.MethodGet, "/matches/feedface/heatmap", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d", rec.Code)
	}
	var resp HeatmapResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Zones[4] != 1 || resp.Zones[1] != 1 || resp.Zones[0] != 1 {
		t.Errorf("unexpected heatmap: %+v", resp)
	}
}

func TestFilterRoute(t *testing.T) {
	h := testRouter(t)
	rec := doRequest(t, h, http.MethodPost, "/matches/feedface/filter", `{"shotType":"serve"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d: %s", rec.Code, rec.Body.String())
	}
	var shots []ShotResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &shots); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(shots) != 1 || shots[0].Index != 0 {
		t.Errorf("unexpected filter result: %+v", shots)
	}
}

func TestFilterRoute_RejectsUnknownFields(t *testing.T) {
	h := testRouter(t)
	rec := doRequest(t, h, http.MethodPost, "/matches/feedface/filter", `{"shotType":"serve","bogus":1}`)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status %d, want 400", rec.Code)
	}
}

func TestSequenceRoute(t *testing.T) {
	h := testRouter(t)
	body := `{"sequence":[{"shotType":"serve"},{"shotType":"drive"}]}`
	rec := doRequest(t, h, http.MethodPost, "/matches/feedface/sequence", body)
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d: %s", rec.Code, rec.Body.String())
	}
	var resp SequenceResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.PatternLength != 2 || resp.MatchCount != 1 || len(resp.Shots) != 2 {
		t.Errorf("unexpected sequence response: %+v", resp)
	}
	if resp.Shots[0].Index != 0 || resp.Shots[1].Index != 1 {
		t.Errorf("matched wrong shots: %+v", resp.Shots)
	}
}
