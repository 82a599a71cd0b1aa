// Package report renders analysis results as terminal tables.
package report

import (
	"fmt"
	"io"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/courtlab/go-shot-metrics/internal/export"
	"github.com/courtlab/go-shot-metrics/internal/model"
)

func newTable(w io.Writer) *tablewriter.Table {
	return tablewriter.NewTable(w, tablewriter.WithConfig(tablewriter.Config{
		Row: tw.CellConfig{
			Alignment: tw.CellAlignment{Global: tw.AlignRight},
		},
		Header: tw.CellConfig{
			Alignment: tw.CellAlignment{Global: tw.AlignCenter},
		},
	}))
}

// PrintMatchSummary prints a one-line summary header for the match.
func PrintMatchSummary(w io.Writer, m model.MatchSummary) {
	fmt.Fprintf(w, "\nSource: %s  |  Ingested: %s  |  FPS: %.0f  |  Shots: %d  |  Rallies: %d  |  Hash: %s\n\n",
		m.Source, m.IngestDate, m.FPS, m.ShotCount, m.RallyCount, shortHash(m.Hash))
}

// PrintMatchTable lists stored matches for the list command.
func PrintMatchTable(w io.Writer, matches []model.MatchSummary) {
	table := newTable(w)
	table.Header("HASH", "SOURCE", "INGESTED", "FPS", "SHOTS", "RALLIES")
	for _, m := range matches {
		table.Append(
			shortHash(m.Hash),
			m.Source,
			m.IngestDate,
			fmt.Sprintf("%.0f", m.FPS),
			strconv.Itoa(m.ShotCount),
			strconv.Itoa(m.RallyCount),
		)
	}
	table.Render()
}

// PrintShotTable prints a shot stream.
func PrintShotTable(w io.Writer, shots []model.Shot) {
	table := newTable(w)
	table.Header("IDX", "TIME", "LABEL", "PLAYER", "SIDE", "ZONE", "DIR", "RATING", "OUTCOME", "RALLY")
	for _, s := range shots {
		table.Append(
			strconv.Itoa(s.Index),
			formatClock(s.Timestamp),
			s.Label,
			s.PlayerID,
			s.Side.String(),
			zoneStr(s.Zone),
			s.Direction,
			ratingStr(s.Rating),
			s.WinnerError.String(),
			groupStr(s.Group),
		)
	}
	table.Render()
}

// PrintSequenceMatches prints matcher output re-chunked into windows, each
// with its aggregate playback range.
func PrintSequenceMatches(w io.Writer, shots []model.Shot, windowLen int) {
	if windowLen <= 0 || len(shots) == 0 {
		fmt.Fprintln(w, "No matches.")
		return
	}
	n := len(shots) / windowLen
	fmt.Fprintf(w, "\n%d match(es) of %d shot(s) each\n", n, windowLen)

	for i := 0; i < len(shots); i += windowLen {
		window := shots[i : i+windowLen]
		fmt.Fprintf(w, "\nMatch %d  [%s – %s]\n",
			i/windowLen+1,
			formatClock(window[0].StartTime),
			formatClock(window[len(window)-1].EndTime))
		PrintShotTable(w, window)
	}
}

// PrintRallyTable prints the rally timeline.
func PrintRallyTable(w io.Writer, rallies []model.Rally) {
	table := newTable(w)
	table.Header("RALLY", "START", "END", "SHOTS", "PLAYERS", "WINNER")
	for _, r := range rallies {
		winner := r.Winner
		if winner == "" {
			winner = "—"
		}
		table.Append(
			strconv.Itoa(r.ID),
			formatClock(r.StartTime()),
			formatClock(r.EndTime()),
			strconv.Itoa(len(r.Shots)),
			strconv.Itoa(len(r.Players())),
			winner,
		)
	}
	table.Render()
}

// PrintPlayerTable prints per-player aggregates.
func PrintPlayerTable(w io.Writer, stats []model.PlayerStats) {
	table := newTable(w)
	table.Header("PLAYER", "SHOTS", "SERVES", "WINNERS", "ERRORS", "W/E", "RALLIES_WON", "AVG_RATING")
	for _, p := range stats {
		avg := "—"
		if p.RatedShots > 0 {
			avg = fmt.Sprintf("%.1f", p.AvgRating())
		}
		table.Append(
			p.PlayerID,
			strconv.Itoa(p.Shots),
			strconv.Itoa(p.ServeCount),
			strconv.Itoa(p.Winners),
			strconv.Itoa(p.Errors),
			fmt.Sprintf("%.2f", p.WinnerErrorRatio()),
			strconv.Itoa(p.RalliesWon),
			avg,
		)
	}
	table.Render()
}

// PrintZoneTable prints the landing-zone distribution, back court to front,
// plus the count of shots with no usable coordinates.
func PrintZoneTable(w io.Writer, shots []model.Shot) {
	var counts [6]int
	unknown := 0
	for _, s := range shots {
		if s.Zone >= 0 && s.Zone < 6 {
			counts[s.Zone]++
		} else {
			unknown++
		}
	}

	table := newTable(w)
	table.Header("ZONE", "AREA", "SHOTS")
	areas := []string{"front right", "front center", "front left", "back right", "back center", "back left"}
	for z := 0; z < 6; z++ {
		table.Append(strconv.Itoa(z), areas[z], strconv.Itoa(counts[z]))
	}
	table.Render()
	if unknown > 0 {
		fmt.Fprintf(w, "%d shot(s) with unknown zone (missing coordinates)\n", unknown)
	}
}

// PrintClipTable prints the time ranges an export would cut.
func PrintClipTable(w io.Writer, clips []export.Clip) {
	table := newTable(w)
	table.Header("CLIP", "START", "END", "LENGTH")
	for i, c := range clips {
		table.Append(
			strconv.Itoa(i+1),
			formatClock(c.Start),
			formatClock(c.End),
			fmt.Sprintf("%.1fs", c.Duration()),
		)
	}
	table.Render()
}

func shortHash(h string) string {
	if len(h) > 12 {
		return h[:12]
	}
	return h
}

func zoneStr(z int) string {
	if z < 0 {
		return "?"
	}
	return strconv.Itoa(z)
}

func ratingStr(r float64) string {
	if r == 0 {
		return "—"
	}
	return fmt.Sprintf("%.1f", r)
}

func groupStr(g int) string {
	if g == 0 {
		return "—"
	}
	return strconv.Itoa(g)
}

// formatClock renders seconds as m:ss.s for table cells.
func formatClock(seconds float64) string {
	if seconds < 0 {
		seconds = 0
	}
	mins := int(seconds) / 60
	rest := seconds - float64(mins*60)
	return fmt.Sprintf("%d:%04.1f", mins, rest)
}
