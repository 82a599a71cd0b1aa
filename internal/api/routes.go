// Package api exposes a read-only JSON surface over stored matches for
// timeline and heatmap renderers.
package api

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/courtlab/go-shot-metrics/internal/engine"
	"github.com/courtlab/go-shot-metrics/internal/model"
	"github.com/courtlab/go-shot-metrics/internal/translator"
)

func NewRouter(cfg ServerConfig) *chi.Mux {
	r := chi.NewRouter()

	r.Use(RecoveryMiddleware(cfg.Logger))
	r.Use(LoggingMiddleware(cfg.Logger))

	r.Get("/health", healthHandler(cfg))
	r.Get("/matches", listMatchesHandler(cfg))
	r.Get("/matches/{hash}/shots", shotsHandler(cfg))
	r.Get("/matches/{hash}/rallies", ralliesHandler(cfg))
	r.Get("/matches/{hash}/heatmap", heatmapHandler(cfg))
	r.Post("/matches/{hash}/filter", filterHandler(cfg))
	r.Post("/matches/{hash}/sequence", sequenceHandler(cfg))

	return r
}

func healthHandler(cfg ServerConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		matches, shots, _, err := cfg.DB.Totals()
		if err != nil {
			WriteError(w, http.StatusInternalServerError, err.Error(), "STORAGE_ERROR")
			return
		}
		WriteJSON(w, http.StatusOK, HealthResponse{Status: "ok", Matches: matches, Shots: shots})
	}
}

func listMatchesHandler(cfg ServerConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		matches, err := cfg.DB.ListMatches()
		if err != nil {
			WriteError(w, http.StatusInternalServerError, err.Error(), "STORAGE_ERROR")
			return
		}
		out := make([]MatchResponse, 0, len(matches))
		for _, m := range matches {
			out = append(out, MatchToResponse(m))
		}
		WriteJSON(w, http.StatusOK, out)
	}
}

// loadShots resolves the hash prefix from the URL and loads the stream.
// A nil return means the response has already been written.
func loadShots(cfg ServerConfig, w http.ResponseWriter, r *http.Request) []model.Shot {
	match, err := cfg.DB.GetMatchByPrefix(chi.URLParam(r, "hash"))
	if err != nil {
		WriteError(w, http.StatusNotFound, err.Error(), "MATCH_NOT_FOUND")
		return nil
	}
	shots, err := cfg.DB.GetShots(match.Hash)
	if err != nil {
		WriteError(w, http.StatusInternalServerError, err.Error(), "STORAGE_ERROR")
		return nil
	}
	return shots
}

func shotsHandler(cfg ServerConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		shots := loadShots(cfg, w, r)
		if shots == nil {
			return
		}
		out := make([]ShotResponse, 0, len(shots))
		for _, s := range shots {
			out = append(out, ShotToResponse(s))
		}
		WriteJSON(w, http.StatusOK, out)
	}
}

func ralliesHandler(cfg ServerConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		shots := loadShots(cfg, w, r)
		if shots == nil {
			return
		}
		rallies := engine.GroupRallies(shots)
		out := make([]RallyResponse, 0, len(rallies))
		for _, rally := range rallies {
			out = append(out, RallyResponse{
				ID:        rally.ID,
				StartTime: rally.StartTime(),
				EndTime:   rally.EndTime(),
				ShotCount: len(rally.Shots),
				Winner:    rally.Winner,
			})
		}
		WriteJSON(w, http.StatusOK, out)
	}
}

func heatmapHandler(cfg ServerConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		shots := loadShots(cfg, w, r)
		if shots == nil {
			return
		}
		var resp HeatmapResponse
		for _, s := range shots {
			if s.Zone >= 0 && s.Zone < 6 {
				resp.Zones[s.Zone]++
			} else {
				resp.Unknown++
			}
		}
		WriteJSON(w, http.StatusOK, resp)
	}
}

// decodeSpec reads a FilterSpec request body with unknown fields rejected.
func decodeSpec(r *http.Request) (*translator.FilterSpec, error) {
	body, err := io.ReadAll(io.LimitReader(r.Body, 1<<20))
	if err != nil {
		return nil, err
	}
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.DisallowUnknownFields()
	var spec translator.FilterSpec
	if err := dec.Decode(&spec); err != nil {
		return nil, err
	}
	return &spec, nil
}

func filterHandler(cfg ServerConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		spec, err := decodeSpec(r)
		if err != nil {
			WriteError(w, http.StatusBadRequest, err.Error(), "BAD_FILTER")
			return
		}
		constraint, err := spec.Coerce()
		if err != nil {
			WriteError(w, http.StatusBadRequest, err.Error(), "BAD_FILTER")
			return
		}
		shots := loadShots(cfg, w, r)
		if shots == nil {
			return
		}
		matched := engine.FilterShots(shots, constraint)
		out := make([]ShotResponse, 0, len(matched))
		for _, s := range matched {
			out = append(out, ShotToResponse(s))
		}
		WriteJSON(w, http.StatusOK, out)
	}
}

func sequenceHandler(cfg ServerConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		spec, err := decodeSpec(r)
		if err != nil {
			WriteError(w, http.StatusBadRequest, err.Error(), "BAD_PATTERN")
			return
		}
		pattern, err := spec.Pattern()
		if err != nil {
			WriteError(w, http.StatusBadRequest, err.Error(), "BAD_PATTERN")
			return
		}
		shots := loadShots(cfg, w, r)
		if shots == nil {
			return
		}
		matched := engine.MatchSequence(shots, pattern)
		resp := SequenceResponse{
			PatternLength: len(pattern),
			MatchCount:    len(matched) / len(pattern),
			Shots:         make([]ShotResponse, 0, len(matched)),
		}
		for _, s := range matched {
			resp.Shots = append(resp.Shots, ShotToResponse(s))
		}
		WriteJSON(w, http.StatusOK, resp)
	}
}
