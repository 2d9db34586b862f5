package roi

import (
	"github.com/aatrey56/fpl-league-insights/internal/model"
	"github.com/aatrey56/fpl-league-insights/internal/stats"
)

const (
	// BaselineLookback is how many prior analysis gameweeks form a manager's baseline.
	BaselineLookback = 3
	// WildcardWindow is the chip gameweek plus the two that follow it.
	WildcardWindow = 3
)

// ByType accumulates estimated chip gain per chip name.
type ByType struct {
	Wildcard      float64 `json:"wildcard"`
	TripleCaptain float64 `json:"3xc"`
	BenchBoost    float64 `json:"bboost"`
	FreeHit       float64 `json:"freehit"`
}

// Add credits gain to the named chip; unknown names are reported with false.
func (b *ByType) Add(name string, gain float64) bool {
	switch name {
	case model.ChipWildcard:
		b.Wildcard += gain
	case model.ChipTripleCaptain:
		b.TripleCaptain += gain
	case model.ChipBenchBoost:
		b.BenchBoost += gain
	case model.ChipFreeHit:
		b.FreeHit += gain
	default:
		return false
	}
	return true
}

// Baseline averages a manager's points over up to lookback analysis gameweeks
// before target. Gameweeks without points are skipped; ok is false when none remain.
func Baseline(events []int, pointsByEvent map[int]int, target int, lookback int) (float64, bool) {
	prior := make([]int, 0, len(events))
	for _, gw := range events {
		if gw < target {
			prior = append(prior, gw)
		}
	}
	if len(prior) > lookback {
		prior = prior[len(prior)-lookback:]
	}
	values := make([]float64, 0, len(prior))
	for _, gw := range prior {
		if pts, ok := pointsByEvent[gw]; ok {
			values = append(values, float64(pts))
		}
	}
	return stats.Average(values)
}

// ChipContext is what a chip evaluation may read about its manager and gameweek.
type ChipContext struct {
	// Events are the analysis gameweeks in ascending order.
	Events []int
	// PointsByEvent holds the manager's resolved points per analysis gameweek.
	PointsByEvent map[int]int
	// LeagueMean holds the league mean score per analysis gameweek.
	LeagueMean map[int]float64
	// Picks are the manager's picks for the chip gameweek; may be nil.
	Picks []model.Pick
}

// Outcome is the estimated effect of one chip use.
type Outcome struct {
	EstimatedGain    float64  `json:"estimated_gain"`
	VersusLeagueMean *float64 `json:"versus_league_mean"`
	Baseline         *float64 `json:"baseline"`
	WindowSize       int      `json:"window_size"`
}

// EvaluateChip estimates the points gained by playing chip in gameweek event.
// Unknown chip names yield a zero gain.
func EvaluateChip(chip string, event int, ctx ChipContext) Outcome {
	baseline, hasBaseline := Baseline(ctx.Events, ctx.PointsByEvent, event, BaselineLookback)
	out := Outcome{
		Baseline:   stats.Optional(baseline, hasBaseline),
		WindowSize: 1,
	}
	eventPoints, hasPoints := ctx.PointsByEvent[event]
	mean, hasMean := ctx.LeagueMean[event]
	if hasPoints && hasMean {
		out.VersusLeagueMean = stats.Optional(float64(eventPoints)-mean, true)
	}

	switch chip {
	case model.ChipTripleCaptain:
		if captain, ok := model.Captain(ctx.Picks); ok {
			out.EstimatedGain = float64(captain.PointsOr(0))
		}
	case model.ChipBenchBoost:
		bench := 0
		for _, p := range ctx.Picks {
			if p.Position > model.StarterCount && p.Multiplier == 0 {
				bench += p.PointsOr(0)
			}
		}
		out.EstimatedGain = float64(bench)
	case model.ChipFreeHit:
		if hasBaseline && hasPoints {
			out.EstimatedGain = float64(eventPoints) - baseline
		}
	case model.ChipWildcard:
		evaluateWildcard(event, ctx, baseline, hasBaseline, &out)
	default:
		out.VersusLeagueMean = nil
	}
	return out
}

// evaluateWildcard compares the chip gameweek and the two after it against the
// trailing baseline, and sums the per-gameweek margin over the league mean.
func evaluateWildcard(event int, ctx ChipContext, baseline float64, hasBaseline bool, out *Outcome) {
	window := make([]int, 0, WildcardWindow)
	for _, gw := range ctx.Events {
		if gw >= event && gw < event+WildcardWindow {
			window = append(window, gw)
		}
	}
	actual := 0
	size := 0
	for _, gw := range window {
		if pts, ok := ctx.PointsByEvent[gw]; ok {
			actual += pts
			size++
		}
	}
	out.WindowSize = size
	out.VersusLeagueMean = nil
	if size == 0 {
		return
	}
	if hasBaseline {
		out.EstimatedGain = float64(actual) - baseline*float64(size)
	}
	margin := 0.0
	for _, gw := range window {
		pts, ok := ctx.PointsByEvent[gw]
		mean, hasMean := ctx.LeagueMean[gw]
		if !ok || !hasMean {
			continue
		}
		margin += float64(pts) - mean
	}
	out.VersusLeagueMean = &margin
}
