package points

import (
	"github.com/aatrey56/fpl-league-insights/internal/model"
)

// LiveStats is one element's row from gw/<gw>/live.json.
type LiveStats struct {
	Minutes     int `json:"minutes"`
	TotalPoints int `json:"total_points"`
}

type PlayerPoints struct {
	Element    int  `json:"element"`
	Position   int  `json:"position"`
	Multiplier int  `json:"multiplier"`
	Captain    bool `json:"captain"`
	Points     *int `json:"points"`
	Total      int  `json:"total"`
}

type Result struct {
	EntryID     int            `json:"entry_id"`
	Gameweek    int            `json:"gameweek"`
	Players     []PlayerPoints `json:"players"`
	TotalPoints int            `json:"total_points"`
	BenchWaste  int            `json:"bench_waste"`
}

// BuildResult itemizes a manager's gameweek: every pick with its weighted total,
// plus the derived gameweek score and bench waste.
func BuildResult(entryID int, gw int, picks []model.Pick) *Result {
	players := make([]PlayerPoints, 0, len(picks))
	for _, p := range picks {
		players = append(players, PlayerPoints{
			Element:    p.Element,
			Position:   p.Position,
			Multiplier: p.Multiplier,
			Captain:    p.IsCaptain,
			Points:     p.Points,
			Total:      weighted(p),
		})
	}
	total, _ := GameweekPoints(picks)
	bench, _ := BenchWaste(picks)
	return &Result{
		EntryID:     entryID,
		Gameweek:    gw,
		Players:     players,
		TotalPoints: total,
		BenchWaste:  bench,
	}
}

func weighted(p model.Pick) int {
	m := p.Multiplier
	if m < 0 {
		m = 0
	}
	return p.PointsOr(0) * m
}

// GameweekPoints derives a gameweek score from picks: Σ points × max(multiplier, 0),
// unknown points counted as 0. ok is false when there are no picks.
func GameweekPoints(picks []model.Pick) (int, bool) {
	if len(picks) == 0 {
		return 0, false
	}
	total := 0
	for _, p := range picks {
		total += weighted(p)
	}
	return total, true
}

// BenchWaste sums bench points that never counted (position > 11, multiplier 0),
// unknown points counted as 0. ok is false when there are no picks.
func BenchWaste(picks []model.Pick) (int, bool) {
	if len(picks) == 0 {
		return 0, false
	}
	total := 0
	for _, p := range picks {
		if p.Position > model.StarterCount && p.Multiplier == 0 {
			total += p.PointsOr(0)
		}
	}
	return total, true
}

// ResolveGameweekPoints prefers the authoritative history row and falls back to
// the value derived from picks.
func ResolveGameweekPoints(history model.GameweekHistory, hasHistory bool, picks []model.Pick) (int, bool) {
	if hasHistory {
		return history.Points, true
	}
	return GameweekPoints(picks)
}

// ResolveBenchWaste prefers history points_on_bench and falls back to BenchWaste.
func ResolveBenchWaste(history model.GameweekHistory, hasHistory bool, picks []model.Pick) (int, bool) {
	if hasHistory {
		return history.PointsOnBench, true
	}
	return BenchWaste(picks)
}
