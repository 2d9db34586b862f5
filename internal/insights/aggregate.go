package insights

import (
	"github.com/aatrey56/fpl-league-insights/internal/allplay"
	"github.com/aatrey56/fpl-league-insights/internal/lineup"
	"github.com/aatrey56/fpl-league-insights/internal/model"
	"github.com/aatrey56/fpl-league-insights/internal/ownership"
	"github.com/aatrey56/fpl-league-insights/internal/points"
	"github.com/aatrey56/fpl-league-insights/internal/roi"
	"github.com/aatrey56/fpl-league-insights/internal/stats"
)

// tally is a manager's running totals during the accumulation pass.
type tally struct {
	manager *model.Manager
	history map[int]model.GameweekHistory
	points  map[int]int

	captainActual  int
	captainOptimal int
	benchLoss      int

	similarity   []float64
	differential int
	contribution ownership.PositionContribution

	transfers  roi.TransferSummary
	chipTotal  float64
	chipByType roi.ByType
}

// accumulation is everything the first pass produces.
type accumulation struct {
	events     []int
	tallies    []*tally
	table      allplay.Table
	chipEvents []ChipEvent
}

func accumulate(league *model.League, events []int) *accumulation {
	elementTypes := league.Catalog.ElementTypes()

	acc := &accumulation{events: events, chipEvents: []ChipEvent{}}
	entries := make([]int, 0, len(league.Managers))
	for i := range league.Managers {
		m := &league.Managers[i]
		entries = append(entries, m.Entry)
		acc.tallies = append(acc.tallies, &tally{
			manager: m,
			history: m.HistoryByEvent(),
			points:  map[int]int{},
		})
	}
	acc.table = allplay.NewTable(entries)

	leagueMean := map[int]float64{}
	for _, gw := range events {
		if mean, ok := acc.playGameweek(gw, elementTypes); ok {
			leagueMean[gw] = mean
		}
	}

	for _, t := range acc.tallies {
		t.transfers = roi.Transfers(t.manager.Transfers, t.manager.Picks, t.history)
		acc.scoreChips(t, leagueMean)
	}
	return acc
}

// playGameweek runs one analysis gameweek across the league and returns the
// league mean score, when any manager scored.
func (acc *accumulation) playGameweek(gw int, elementTypes map[int]int) (float64, bool) {
	scores := make([]allplay.Score, 0, len(acc.tallies))
	pickLists := make([][]model.Pick, 0, len(acc.tallies))
	for _, t := range acc.tallies {
		picks, _ := t.manager.Picks.Usable(gw)
		h, hasHistory := t.history[gw]
		if pts, ok := points.ResolveGameweekPoints(h, hasHistory, picks); ok {
			t.points[gw] = pts
			scores = append(scores, allplay.Score{Entry: t.manager.Entry, Points: pts})
		}
		pickLists = append(pickLists, picks)
	}

	counts, participants := ownership.Count(pickLists)
	if participants == 0 {
		participants = len(acc.tallies)
	}
	var template stats.Set
	if len(counts) > 0 {
		template = ownership.Template(counts, ownership.TemplateSize)
	}
	threshold := ownership.LowOwnershipThreshold(participants)

	for _, t := range acc.tallies {
		picks, ok := t.manager.Picks.Usable(gw)
		if !ok {
			continue
		}
		if actual, optimal, ok := lineup.Captaincy(picks); ok {
			t.captainActual += actual
			t.captainOptimal += optimal
		}
		t.benchLoss += lineup.BenchLoss(picks, elementTypes)

		if template != nil {
			squad := stats.NewSet()
			for _, p := range picks {
				squad[p.Element] = struct{}{}
			}
			if sim, ok := stats.JaccardSimilarity(squad, template); ok {
				t.similarity = append(t.similarity, sim)
			}
		}
		if len(counts) > 0 {
			contribution, differential := ownership.Contribution(picks, counts, threshold, elementTypes)
			t.contribution.Add(contribution)
			t.differential += differential
		}
	}

	acc.table.Play(scores)

	values := make([]float64, 0, len(scores))
	for _, s := range scores {
		values = append(values, float64(s.Points))
	}
	return stats.Average(values)
}

// scoreChips evaluates every chip the manager played inside the analysis window.
func (acc *accumulation) scoreChips(t *tally, leagueMean map[int]float64) {
	inWindow := stats.NewSet(acc.events...)
	for _, chip := range t.manager.Chips {
		if !inWindow.Has(chip.Event) {
			continue
		}
		picks, _ := t.manager.Picks.Lookup(chip.Event)
		outcome := roi.EvaluateChip(chip.Name, chip.Event, roi.ChipContext{
			Events:        acc.events,
			PointsByEvent: t.points,
			LeagueMean:    leagueMean,
			Picks:         picks,
		})
		t.chipByType.Add(chip.Name, outcome.EstimatedGain)
		t.chipTotal += outcome.EstimatedGain
		acc.chipEvents = append(acc.chipEvents, ChipEvent{
			Entry:            t.manager.Entry,
			TeamName:         t.manager.EntryName,
			ManagerName:      t.manager.PlayerName,
			Chip:             chip.Name,
			Event:            chip.Event,
			EstimatedGain:    outcome.EstimatedGain,
			VersusLeagueMean: outcome.VersusLeagueMean,
			Baseline:         outcome.Baseline,
			WindowSize:       outcome.WindowSize,
		})
	}
}

// finalize turns the accumulated tallies into insight records. The consistency
// index needs every manager's standard deviation first.
func finalize(acc *accumulation) []ManagerInsight {
	stdDevs := make([]*float64, len(acc.tallies))
	maxStdDev := 0.0
	for i, t := range acc.tallies {
		series := make([]float64, 0, len(acc.events))
		for _, gw := range acc.events {
			if pts, ok := t.points[gw]; ok {
				series = append(series, float64(pts))
			}
		}
		sd, ok := stats.StandardDeviation(series)
		stdDevs[i] = stats.Optional(sd, ok)
		if ok {
			maxStdDev = max(maxStdDev, sd)
		}
	}

	out := make([]ManagerInsight, 0, len(acc.tallies))
	for i, t := range acc.tallies {
		m := t.manager
		rec := acc.table.Get(m.Entry)
		winRate, winOK := rec.WinRatePct()
		pointRate, pointOK := rec.PointRatePct()
		captainPct, captainOK := stats.ToPercent(float64(t.captainActual), float64(t.captainOptimal))
		diffPct, diffOK := stats.ToPercent(float64(t.differential), float64(t.contribution.Total))

		var templatePct *float64
		if avg, ok := stats.Average(t.similarity); ok {
			templatePct = stats.Optional(avg*100, true)
		}

		out = append(out, ManagerInsight{
			Entry:       m.Entry,
			TeamName:    m.EntryName,
			ManagerName: m.PlayerName,
			LeagueRank:  m.Rank,

			AllPlayPoints:         rec.Points,
			AllPlayPossiblePoints: rec.PossiblePoints,
			AllPlayWins:           rec.Wins,
			AllPlayDraws:          rec.Draws,
			AllPlayLosses:         rec.Losses,
			AllPlayWinRatePct:     stats.Optional(winRate, winOK),
			AllPlayPointRatePct:   stats.Optional(pointRate, pointOK),

			CaptaincyEfficiencyPct: stats.Optional(captainPct, captainOK),
			CaptaincyActualPoints:  t.captainActual,
			CaptaincyOptimalPoints: t.captainOptimal,
			CaptaincyMissedPoints:  max(0, t.captainOptimal-t.captainActual),
			BenchOptimizationLoss:  t.benchLoss,

			TransferROI:      t.transfers.ROI,
			TransferInPoints: t.transfers.InPoints,
			TransferHitCost:  t.transfers.HitCost,
			TransferCount:    t.transfers.Count,

			ChipROITotal:  t.chipTotal,
			ChipROIByType: t.chipByType,

			ConsistencyStdDev:    stdDevs[i],
			ConsistencyIndex:     consistencyIndex(stdDevs[i], maxStdDev),
			TopThreeGameweeks:    rec.TopThree,
			BottomThreeGameweeks: rec.BottomThree,

			TemplateSimilarityPct: templatePct,
			DifferentialPoints:    t.differential,
			DifferentialPointsPct: stats.Optional(diffPct, diffOK),
			PositionContribution:  t.contribution,
		})
	}
	return out
}

// consistencyIndex scales a manager's spread against the league's widest:
// 100 is perfectly steady. A league where nobody varies scores everyone 100.
func consistencyIndex(sd *float64, maxStdDev float64) *float64 {
	if sd == nil {
		return nil
	}
	if maxStdDev <= 0 {
		return stats.Optional(100, true)
	}
	return stats.Optional((1-*sd/maxStdDev)*100, true)
}
