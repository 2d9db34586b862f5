// Package insights is the league analytics entry point. Compute walks every
// analysis gameweek once, accumulating each manager's all-play record,
// captaincy, bench, template and differential tallies, then finalizes the
// ratios that need league-wide totals.
package insights

import (
	"sort"

	"github.com/aatrey56/fpl-league-insights/internal/model"
	"github.com/aatrey56/fpl-league-insights/internal/ownership"
	"github.com/aatrey56/fpl-league-insights/internal/roi"
)

// ManagerInsight is the derived season record of one league entry. Pointer
// fields are nil when their inputs were missing or a denominator was zero.
type ManagerInsight struct {
	Entry       int    `json:"entry"`
	TeamName    string `json:"team_name"`
	ManagerName string `json:"manager_name"`
	LeagueRank  int    `json:"league_rank"`

	AllPlayPoints         int      `json:"all_play_points"`
	AllPlayPossiblePoints int      `json:"all_play_possible_points"`
	AllPlayWins           int      `json:"all_play_wins"`
	AllPlayDraws          int      `json:"all_play_draws"`
	AllPlayLosses         int      `json:"all_play_losses"`
	AllPlayWinRatePct     *float64 `json:"all_play_win_rate_pct"`
	AllPlayPointRatePct   *float64 `json:"all_play_point_rate_pct"`

	CaptaincyEfficiencyPct *float64 `json:"captaincy_efficiency_pct"`
	CaptaincyActualPoints  int      `json:"captaincy_actual_points"`
	CaptaincyOptimalPoints int      `json:"captaincy_optimal_points"`
	CaptaincyMissedPoints  int      `json:"captaincy_missed_points"`
	BenchOptimizationLoss  int      `json:"bench_optimization_loss"`

	TransferROI      *int `json:"transfer_roi"`
	TransferInPoints int  `json:"transfer_in_points"`
	TransferHitCost  int  `json:"transfer_hit_cost"`
	TransferCount    int  `json:"transfer_count"`

	ChipROITotal  float64    `json:"chip_roi_total"`
	ChipROIByType roi.ByType `json:"chip_roi_by_type"`

	ConsistencyStdDev    *float64 `json:"consistency_std_dev"`
	ConsistencyIndex     *float64 `json:"consistency_index"`
	TopThreeGameweeks    int      `json:"top_three_gameweeks"`
	BottomThreeGameweeks int      `json:"bottom_three_gameweeks"`

	TemplateSimilarityPct *float64                       `json:"template_similarity_pct"`
	DifferentialPoints    int                            `json:"differential_points"`
	DifferentialPointsPct *float64                       `json:"differential_points_pct"`
	PositionContribution  ownership.PositionContribution `json:"position_contribution"`
}

// ChipEvent is one chip use with its estimated return.
type ChipEvent struct {
	Entry            int      `json:"entry"`
	TeamName         string   `json:"team_name"`
	ManagerName      string   `json:"manager_name"`
	Chip             string   `json:"chip"`
	Event            int      `json:"event"`
	EstimatedGain    float64  `json:"estimated_gain"`
	VersusLeagueMean *float64 `json:"versus_league_mean"`
	Baseline         *float64 `json:"baseline"`
	WindowSize       int      `json:"window_size"`
}

type Result struct {
	LeagueID       int              `json:"league_id"`
	CurrentEvent   int              `json:"current_event"`
	AnalysisEvents []int            `json:"analysis_events"`
	Managers       []ManagerInsight `json:"managers"`
	ChipEvents     []ChipEvent      `json:"chip_events"`
}

// Manager returns the insight for entry, if the league has it.
func (r *Result) Manager(entry int) (ManagerInsight, bool) {
	for _, m := range r.Managers {
		if m.Entry == entry {
			return m, true
		}
	}
	return ManagerInsight{}, false
}

// ChipEventsFor filters chip events by chip name; an empty name keeps all of them.
func (r *Result) ChipEventsFor(chip string) []ChipEvent {
	out := make([]ChipEvent, 0, len(r.ChipEvents))
	for _, ev := range r.ChipEvents {
		if chip == "" || ev.Chip == chip {
			out = append(out, ev)
		}
	}
	return out
}

// Compute derives every manager's insight record and the league chip events.
// Managers come back ordered by league rank, chip events by estimated gain
// descending. The league is only read.
func Compute(league *model.League) Result {
	if league == nil {
		return Result{Managers: []ManagerInsight{}, ChipEvents: []ChipEvent{}}
	}
	events := AnalysisEvents(league)
	acc := accumulate(league, events)
	managers := finalize(acc)

	sort.SliceStable(managers, func(i, j int) bool {
		return managers[i].LeagueRank < managers[j].LeagueRank
	})
	chips := acc.chipEvents
	sort.SliceStable(chips, func(i, j int) bool {
		return chips[i].EstimatedGain > chips[j].EstimatedGain
	})

	return Result{
		LeagueID:       league.ID,
		CurrentEvent:   league.CurrentEvent,
		AnalysisEvents: events,
		Managers:       managers,
		ChipEvents:     chips,
	}
}

// AnalysisEvents is the set of gameweeks the season analysis covers: every
// finished gameweek of the season calendar, or when the calendar has none, the
// gameweeks in manager histories up to the league's current gameweek.
func AnalysisEvents(league *model.League) []int {
	if finished := league.Catalog.FinishedEvents(); len(finished) > 0 {
		return finished
	}
	seen := map[int]struct{}{}
	out := []int{}
	for _, m := range league.Managers {
		for _, h := range m.History {
			if league.CurrentEvent > 0 && h.Event > league.CurrentEvent {
				continue
			}
			if _, dup := seen[h.Event]; dup {
				continue
			}
			seen[h.Event] = struct{}{}
			out = append(out, h.Event)
		}
	}
	sort.Ints(out)
	return out
}
