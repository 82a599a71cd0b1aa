package engine

import (
	"sort"

	"github.com/courtlab/go-shot-metrics/internal/model"
)

// BuildPlayerStats aggregates per-player shot and rally outcomes for one
// match, for the dashboard tables. Players are ordered by shot count, most
// active first.
func BuildPlayerStats(shots []model.Shot, rallies []model.Rally) []model.PlayerStats {
	byPlayer := make(map[string]*model.PlayerStats)
	get := func(id string) *model.PlayerStats {
		p, ok := byPlayer[id]
		if !ok {
			p = &model.PlayerStats{PlayerID: id}
			byPlayer[id] = p
		}
		return p
	}

	for _, s := range shots {
		if s.PlayerID == "" {
			continue
		}
		p := get(s.PlayerID)
		p.Shots++
		switch s.WinnerError {
		case model.OutcomeWinner:
			p.Winners++
		case model.OutcomeError:
			p.Errors++
		}
		if s.Rating > 0 {
			p.RatedShots++
			p.RatingSum += s.Rating
		}
		if s.Zone >= 0 && s.Zone < len(p.ZoneCounts) {
			p.ZoneCounts[s.Zone]++
		}
		if s.Label == "serve" {
			p.ServeCount++
		}
	}

	for _, r := range rallies {
		if r.Winner == "" {
			continue
		}
		get(r.Winner).RalliesWon++
	}

	out := make([]model.PlayerStats, 0, len(byPlayer))
	for _, p := range byPlayer {
		out = append(out, *p)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Shots != out[j].Shots {
			return out[i].Shots > out[j].Shots
		}
		return out[i].PlayerID < out[j].PlayerID
	})
	return out
}
