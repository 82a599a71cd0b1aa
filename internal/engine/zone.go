// Package engine implements the analytics core: zone classification,
// playback boundary derivation, rally grouping, and sequence pattern
// matching over an ordered shot stream. Every function is pure; callers
// may re-invoke on every pattern edit without side effects.
package engine

import (
	"math"

	"github.com/courtlab/go-shot-metrics/internal/model"
)

// zoneGrid maps (row, column) of the 3x4 court grid to a zone id.
// Rows run top of the frame to bottom; the layout mirrors across the net
// (row 1/row 2 boundary) and across the center line, so zone N on the top
// half faces zone N on the bottom half.
var zoneGrid = [4][3]int{
	{5, 4, 3}, // top back court
	{2, 1, 0}, // top front court
	{0, 1, 2}, // bottom front court
	{3, 4, 5}, // bottom back court
}

// ClassifyZone maps a normalized landing coordinate to one of six court
// zones. x splits into 3 equal columns, y into 4 equal rows. Out-of-range
// inputs fall into the nearest edge bucket; NaN coordinates return
// model.ZoneUnknown so bad detector rows cannot masquerade as real zones.
func ClassifyZone(x, y float64) int {
	if math.IsNaN(x) || math.IsNaN(y) {
		return model.ZoneUnknown
	}
	col := int(x * 3)
	if col < 0 {
		col = 0
	} else if col > 2 {
		col = 2
	}
	row := int(y * 4)
	if row < 0 {
		row = 0
	} else if row > 3 {
		row = 3
	}
	return zoneGrid[row][col]
}
