package points

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aatrey56/fpl-league-insights/internal/model"
)

// pick builds a pick; pts < 0 means "unknown points".
func pick(elem, pos, mult, pts int) model.Pick {
	p := model.Pick{Element: elem, Position: pos, Multiplier: mult}
	if pts >= 0 {
		p.Points = model.IntPtr(pts)
	}
	return p
}

func TestGameweekPoints_AppliesMultipliers(t *testing.T) {
	picks := []model.Pick{
		pick(10, 1, 1, 6),
		pick(20, 2, 2, 5),  // captain doubled
		pick(30, 12, 0, 8), // benched, not counted
	}
	got, ok := GameweekPoints(picks)
	require.True(t, ok)
	assert.Equal(t, 16, got)
}

func TestGameweekPoints_UnknownPointsCountAsZero(t *testing.T) {
	picks := []model.Pick{
		pick(10, 1, 1, 6),
		pick(20, 2, 1, -1),
	}
	got, ok := GameweekPoints(picks)
	require.True(t, ok)
	assert.Equal(t, 6, got)
}

func TestGameweekPoints_NegativeMultiplierClamped(t *testing.T) {
	got, ok := GameweekPoints([]model.Pick{pick(10, 1, -1, 9)})
	require.True(t, ok)
	assert.Equal(t, 0, got)
}

func TestGameweekPoints_EmptyIsUndefined(t *testing.T) {
	_, ok := GameweekPoints(nil)
	assert.False(t, ok)
	_, ok = GameweekPoints([]model.Pick{})
	assert.False(t, ok)
}

func TestBenchWaste(t *testing.T) {
	picks := []model.Pick{
		pick(10, 11, 1, 7), // position 11 is a starter
		pick(20, 12, 0, 4),
		pick(30, 13, 0, -1), // unknown counts as 0
		pick(40, 14, 1, 9),  // bench boosted, counted, not waste
		pick(50, 15, 0, 2),
	}
	got, ok := BenchWaste(picks)
	require.True(t, ok)
	assert.Equal(t, 6, got)

	_, ok = BenchWaste(nil)
	assert.False(t, ok)
}

func TestResolveGameweekPoints_HistoryTakesPrecedence(t *testing.T) {
	picks := []model.Pick{pick(10, 1, 1, 6)}

	got, ok := ResolveGameweekPoints(model.GameweekHistory{Event: 3, Points: 71}, true, picks)
	require.True(t, ok)
	assert.Equal(t, 71, got)

	got, ok = ResolveGameweekPoints(model.GameweekHistory{}, false, picks)
	require.True(t, ok)
	assert.Equal(t, 6, got)

	_, ok = ResolveGameweekPoints(model.GameweekHistory{}, false, nil)
	assert.False(t, ok)
}

func TestResolveBenchWaste_HistoryTakesPrecedence(t *testing.T) {
	picks := []model.Pick{pick(10, 12, 0, 5)}

	got, ok := ResolveBenchWaste(model.GameweekHistory{PointsOnBench: 11}, true, picks)
	require.True(t, ok)
	assert.Equal(t, 11, got)

	got, ok = ResolveBenchWaste(model.GameweekHistory{}, false, picks)
	require.True(t, ok)
	assert.Equal(t, 5, got)
}

func TestBuildResult_FieldsPopulated(t *testing.T) {
	picks := []model.Pick{
		{Element: 10, Position: 1, Multiplier: 2, IsCaptain: true, Points: model.IntPtr(8)},
		pick(20, 12, 0, 3),
	}

	r := BuildResult(99, 7, picks)

	assert.Equal(t, 99, r.EntryID)
	assert.Equal(t, 7, r.Gameweek)
	require.Len(t, r.Players, 2)
	assert.True(t, r.Players[0].Captain)
	assert.Equal(t, 16, r.Players[0].Total)
	assert.Equal(t, 0, r.Players[1].Total)
	assert.Equal(t, 16, r.TotalPoints)
	assert.Equal(t, 3, r.BenchWaste)
}

func TestBuildResult_EmptyPicks(t *testing.T) {
	r := BuildResult(1, 1, nil)
	assert.Equal(t, 0, r.TotalPoints)
	assert.Empty(t, r.Players)
}
