// Package anomalies finds the season's standout single-gameweek records: the
// best score, the most points left on a bench, and the players who scored most
// while almost nobody in the league owned them.
package anomalies

import (
	"fmt"
	"sort"

	"github.com/aatrey56/fpl-league-insights/internal/model"
	"github.com/aatrey56/fpl-league-insights/internal/points"
	"github.com/aatrey56/fpl-league-insights/internal/stats"
)

const (
	// DifferentialOwnership is the most managers that may own a player in a
	// gameweek for it to count towards the differential table.
	DifferentialOwnership = 2
	// DifferentialTop is the size of the differential table.
	DifferentialTop = 5

	unknownTeam = "UNK"
)

// HighScore is a single manager-gameweek record.
type HighScore struct {
	Points      int    `json:"points"`
	Event       int    `json:"event"`
	Entry       int    `json:"entry"`
	ManagerName string `json:"manager_name"`
	TeamName    string `json:"team_name"`
}

type DifferentialPlayer struct {
	Element       int    `json:"element"`
	PlayerName    string `json:"player_name"`
	TeamShortName string `json:"team_short_name"`
	Points        int    `json:"points"`
}

// SeasonAnomalies holds the records; either high score is nil when no manager
// has a value for it.
type SeasonAnomalies struct {
	BestGameweekScore   *HighScore           `json:"best_gameweek_score"`
	BiggestBenchWaste   *HighScore           `json:"biggest_bench_waste"`
	DifferentialTopFive []DifferentialPlayer `json:"differential_top_five"`
}

// Find scans every manager gameweek with history or picks. On equal values the
// earlier manager and gameweek keep the record.
func Find(league *model.League) SeasonAnomalies {
	out := SeasonAnomalies{DifferentialTopFive: []DifferentialPlayer{}}
	if league == nil {
		return out
	}

	for i := range league.Managers {
		m := &league.Managers[i]
		history := m.HistoryByEvent()
		for _, gw := range managerEvents(m, league.CurrentEvent) {
			h, hasHistory := history[gw]
			picks, _ := m.Picks.Usable(gw)

			if pts, ok := points.ResolveGameweekPoints(h, hasHistory, picks); ok {
				if out.BestGameweekScore == nil || pts > out.BestGameweekScore.Points {
					out.BestGameweekScore = highScore(m, gw, pts)
				}
			}
			if bench, ok := points.ResolveBenchWaste(h, hasHistory, picks); ok {
				if out.BiggestBenchWaste == nil || bench > out.BiggestBenchWaste.Points {
					out.BiggestBenchWaste = highScore(m, gw, bench)
				}
			}
		}
	}

	out.DifferentialTopFive = differentials(league)
	return out
}

func highScore(m *model.Manager, gw int, pts int) *HighScore {
	return &HighScore{
		Points:      pts,
		Event:       gw,
		Entry:       m.Entry,
		ManagerName: m.PlayerName,
		TeamName:    m.EntryName,
	}
}

// managerEvents is every gameweek the manager has history or picks for, plus
// the current gameweek, ascending.
func managerEvents(m *model.Manager, current int) []int {
	set := stats.NewSet()
	for _, h := range m.History {
		set[h.Event] = struct{}{}
	}
	for gw := range m.Picks {
		set[gw] = struct{}{}
	}
	if current > 0 {
		set[current] = struct{}{}
	}
	out := make([]int, 0, len(set))
	for gw := range set {
		out = append(out, gw)
	}
	sort.Ints(out)
	return out
}

type eventElement struct {
	event, element int
}

// differentials totals each player's points over the gameweeks where at most
// DifferentialOwnership picks in the league held them.
func differentials(league *model.League) []DifferentialPlayer {
	owned := map[eventElement]int{}
	scored := map[eventElement]int{}
	for _, m := range league.Managers {
		for gw, picks := range m.Picks {
			for _, p := range picks {
				key := eventElement{gw, p.Element}
				owned[key]++
				if _, seen := scored[key]; !seen && p.Points != nil {
					scored[key] = *p.Points
				}
			}
		}
	}

	totals := map[int]int{}
	for key, count := range owned {
		if count > DifferentialOwnership {
			continue
		}
		totals[key.element] += scored[key]
	}

	ids := make([]int, 0, len(totals))
	for id := range totals {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		if totals[ids[i]] != totals[ids[j]] {
			return totals[ids[i]] > totals[ids[j]]
		}
		return ids[i] < ids[j]
	})
	if len(ids) > DifferentialTop {
		ids = ids[:DifferentialTop]
	}

	players := league.Catalog.PlayerByID()
	teams := league.Catalog.TeamShort()
	out := make([]DifferentialPlayer, 0, len(ids))
	for _, id := range ids {
		row := DifferentialPlayer{
			Element:       id,
			PlayerName:    fmt.Sprintf("Player #%d", id),
			TeamShortName: unknownTeam,
			Points:        totals[id],
		}
		if p, ok := players[id]; ok {
			row.PlayerName = p.WebName
			if short, ok := teams[p.TeamID]; ok {
				row.TeamShortName = short
			}
		}
		out = append(out, row)
	}
	return out
}
