package api

import (
	"encoding/json"
	"net/http"

	"github.com/courtlab/go-shot-metrics/internal/model"
)

type HealthResponse struct {
	Status  string `json:"status"`
	Matches int    `json:"matches"`
	Shots   int    `json:"shots"`
}

type MatchResponse struct {
	Hash       string  `json:"hash"`
	Source     string  `json:"source"`
	VideoPath  string  `json:"video_path,omitempty"`
	IngestDate string  `json:"ingest_date"`
	FPS        float64 `json:"fps"`
	ShotCount  int     `json:"shot_count"`
	RallyCount int     `json:"rally_count"`
}

type ShotResponse struct {
	Index       int     `json:"index"`
	Frame       int     `json:"frame"`
	Label       string  `json:"label"`
	Direction   string  `json:"direction,omitempty"`
	WinnerError string  `json:"winner_error,omitempty"`
	PlayerID    string  `json:"player_id"`
	Side        string  `json:"side"`
	Zone        int     `json:"zone"`
	Rating      float64 `json:"rating,omitempty"`
	Group       int     `json:"group,omitempty"`
	Timestamp   float64 `json:"timestamp"`
	StartTime   float64 `json:"start_time"`
	EndTime     float64 `json:"end_time"`
}

type RallyResponse struct {
	ID        int     `json:"id"`
	StartTime float64 `json:"start_time"`
	EndTime   float64 `json:"end_time"`
	ShotCount int     `json:"shot_count"`
	Winner    string  `json:"winner,omitempty"`
}

type HeatmapResponse struct {
	Zones   [6]int `json:"zones"`
	Unknown int    `json:"unknown"`
}

type SequenceResponse struct {
	PatternLength int            `json:"pattern_length"`
	MatchCount    int            `json:"match_count"`
	Shots         []ShotResponse `json:"shots"`
}

type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

func ShotToResponse(s model.Shot) ShotResponse {
	return ShotResponse{
		Index:       s.Index,
		Frame:       s.Frame,
		Label:       s.Label,
		Direction:   s.Direction,
		WinnerError: s.WinnerError.String(),
		PlayerID:    s.PlayerID,
		Side:        s.Side.String(),
		Zone:        s.Zone,
		Rating:      s.Rating,
		Group:       s.Group,
		Timestamp:   s.Timestamp,
		StartTime:   s.StartTime,
		EndTime:     s.EndTime,
	}
}

func MatchToResponse(m model.MatchSummary) MatchResponse {
	return MatchResponse{
		Hash:       m.Hash,
		Source:     m.Source,
		VideoPath:  m.VideoPath,
		IngestDate: m.IngestDate,
		FPS:        m.FPS,
		ShotCount:  m.ShotCount,
		RallyCount: m.RallyCount,
	}
}

func WriteJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func WriteError(w http.ResponseWriter, status int, msg, code string) {
	WriteJSON(w, status, ErrorResponse{Error: msg, Code: code})
}
