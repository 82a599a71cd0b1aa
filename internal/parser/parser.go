// Package parser ingests detector CSV files into ordered shot streams.
package parser

import (
	"crypto/sha256"
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/courtlab/go-shot-metrics/internal/engine"
	"github.com/courtlab/go-shot-metrics/internal/model"
)

// Result is one parsed match: the ordered shot stream with all derived
// fields populated, plus data-quality warnings for the caller to surface.
type Result struct {
	Hash     string // sha-256 of the file, idempotency key
	Shots    []model.Shot
	Warnings []string
}

// ParseCSV reads a per-shot detection CSV and returns the ordered stream.
// Index is assigned by row order; timestamps, zones, and playback
// boundaries are derived in one pass immediately after reading.
//
// Missing optional fields get best-effort defaults (label → "", rating → 0,
// coordinates → 0,0 with the zone forced to the unknown sentinel), each
// recorded as a warning rather than silently corrupting downstream zones.
func ParseCSV(path string, fps float64) (*Result, error) {
	if fps <= 0 {
		return nil, fmt.Errorf("fps must be positive, got %v", fps)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open csv: %w", err)
	}
	defer f.Close()

	// Hash file for idempotency key.
	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return nil, fmt.Errorf("hash csv: %w", err)
	}
	hash := fmt.Sprintf("%x", h.Sum(nil))

	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return nil, fmt.Errorf("seek csv: %w", err)
	}

	r := csv.NewReader(f)
	r.TrimLeadingSpace = true

	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	cols := make(map[string]int, len(header))
	for i, name := range header {
		cols[strings.TrimSpace(strings.ToLower(name))] = i
	}
	if _, ok := cols["frame"]; !ok {
		return nil, fmt.Errorf("csv has no frame column")
	}

	res := &Result{Hash: hash}
	row := rowReader{cols: cols}
	lastFrame := -1
	line := 1

	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read csv line %d: %w", line+1, err)
		}
		line++
		row.record = record

		frame, err := strconv.Atoi(row.get("frame"))
		if err != nil || frame < 0 {
			res.warnf("line %d: unusable frame %q, row skipped", line, row.get("frame"))
			continue
		}
		if frame < lastFrame {
			res.warnf("line %d: frame %d is out of order (previous %d)", line, frame, lastFrame)
		}
		lastFrame = frame

		shot := model.Shot{
			Index:       len(res.Shots),
			Frame:       frame,
			Label:       row.get("shot_label"),
			Direction:   row.get("shot_direction"),
			WinnerError: model.OutcomeFromString(row.get("winner_error")),
			Side:        model.SideFromString(row.get("player_court_side")),
			PlayerID:    row.get("player_id"),
			Timestamp:   float64(frame) / fps,
		}

		x, y, coordsOK := row.coords()
		shot.CoordX, shot.CoordY = x, y
		if coordsOK {
			shot.Zone = engine.ClassifyZone(x, y)
		} else {
			shot.Zone = model.ZoneUnknown
			res.warnf("line %d: missing coordinates, zone unknown", line)
		}

		if v := row.get("zone_player"); v != "" {
			if z, err := strconv.Atoi(v); err == nil {
				shot.PlayerZone = z
			}
		}
		if v := row.get("group"); v != "" {
			if g, err := strconv.Atoi(v); err == nil {
				shot.Group = g
			} else {
				res.warnf("line %d: unusable group %q, treated as no rally", line, v)
			}
		}
		if v := row.get("new_sequence"); v != "" {
			shot.NewSequence = v == "true" || v == "1" || v == "True"
		}
		if v := row.get("shot_rating"); v != "" {
			rating, err := strconv.ParseFloat(v, 64)
			if err != nil || math.IsNaN(rating) || rating < 0 {
				res.warnf("line %d: unusable rating %q, treated as unrated", line, v)
			} else {
				shot.Rating = rating
			}
		}

		res.Shots = append(res.Shots, shot)
	}

	if err := engine.DeriveBoundaries(res.Shots); err != nil {
		return nil, fmt.Errorf("derive boundaries: %w", err)
	}
	return res, nil
}

func (r *Result) warnf(format string, args ...interface{}) {
	r.Warnings = append(r.Warnings, fmt.Sprintf(format, args...))
}

// rowReader resolves named columns against one CSV record.
type rowReader struct {
	cols   map[string]int
	record []string
}

func (r *rowReader) get(name string) string {
	i, ok := r.cols[name]
	if !ok || i >= len(r.record) {
		return ""
	}
	return strings.TrimSpace(r.record[i])
}

// coords reads the landing position either from coord_x/coord_y columns or
// from a combined normalized_coordinates column like "[0.42, 0.81]".
func (r *rowReader) coords() (x, y float64, ok bool) {
	xs, ys := r.get("coord_x"), r.get("coord_y")
	if xs == "" || ys == "" {
		pair := strings.Trim(r.get("normalized_coordinates"), "[]() ")
		parts := strings.FieldsFunc(pair, func(c rune) bool { return c == ',' || c == ';' || c == ' ' })
		if len(parts) == 2 {
			xs, ys = parts[0], parts[1]
		}
	}
	if xs == "" || ys == "" {
		return 0, 0, false
	}
	xv, errX := strconv.ParseFloat(xs, 64)
	yv, errY := strconv.ParseFloat(ys, 64)
	if errX != nil || errY != nil {
		return 0, 0, false
	}
	return xv, yv, true
}
