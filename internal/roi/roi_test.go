package roi

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aatrey56/fpl-league-insights/internal/model"
)

// --- Transfers ---

func TestTransfers_NoneLeavesROINil(t *testing.T) {
	got := Transfers(nil, nil, nil)
	assert.Nil(t, got.ROI)
	assert.Zero(t, got.Count)
}

func TestTransfers_ScoresIncomingPlayersLessHits(t *testing.T) {
	transfers := []model.Transfer{
		{Event: 5, ElementIn: 10, ElementOut: 1},
		{Event: 3, ElementIn: 20, ElementOut: 2},
		{Event: 5, ElementIn: 30, ElementOut: 3},
	}
	picks := model.PicksByEvent{
		3: {{Element: 20, Position: 4, Multiplier: 1, Points: model.IntPtr(6)}},
		5: {
			{Element: 10, Position: 1, Multiplier: 1, Points: model.IntPtr(2)},
			{Element: 30, Position: 2, Multiplier: 1, Points: nil},
		},
	}
	history := map[int]model.GameweekHistory{
		5: {Event: 5, EventTransfersCost: 4},
	}

	got := Transfers(transfers, picks, history)
	require.NotNil(t, got.ROI)
	assert.Equal(t, 4, *got.ROI) // (6 - 0) + (2 + 0 - 4)
	assert.Equal(t, 8, got.InPoints)
	assert.Equal(t, 4, got.HitCost)
	assert.Equal(t, 3, got.Count)

	require.Len(t, got.Weeks, 2)
	assert.Equal(t, TransferWeek{Event: 3, Count: 1, InPoints: 6, Net: 6}, got.Weeks[0])
	assert.Equal(t, TransferWeek{Event: 5, Count: 2, InPoints: 2, HitCost: 4, Net: -2}, got.Weeks[1])
}

func TestTransfers_IncomingPlayerMissingFromPicks(t *testing.T) {
	// Picks for the gameweek were never fetched: incoming points count as 0.
	got := Transfers([]model.Transfer{{Event: 2, ElementIn: 7}}, model.PicksByEvent{}, nil)
	require.NotNil(t, got.ROI)
	assert.Equal(t, 0, *got.ROI)
	assert.Equal(t, 1, got.Count)
}

// --- Baseline ---

func TestBaseline(t *testing.T) {
	events := []int{1, 2, 3, 4, 5, 6}
	points := map[int]int{1: 100, 2: 40, 3: 50, 5: 60, 6: 90}

	got, ok := Baseline(events, points, 6, 3)
	require.True(t, ok)
	// Lookback window is GW3-5; GW4 has no points.
	assert.InDelta(t, 55.0, got, 1e-9)

	_, ok = Baseline(events, points, 1, 3)
	assert.False(t, ok, "no prior gameweeks")

	_, ok = Baseline([]int{4, 5}, map[int]int{}, 6, 3)
	assert.False(t, ok, "prior gameweeks without points")
}

// --- Chips ---

func chipContext(points map[int]int, means map[int]float64, picks []model.Pick) ChipContext {
	events := []int{7, 8, 9, 10, 11, 12}
	return ChipContext{Events: events, PointsByEvent: points, LeagueMean: means, Picks: picks}
}

func TestEvaluateChip_FreeHit(t *testing.T) {
	ctx := chipContext(
		map[int]int{7: 50, 8: 50, 9: 50, 10: 75},
		map[int]float64{10: 60},
		nil,
	)
	got := EvaluateChip(model.ChipFreeHit, 10, ctx)
	assert.InDelta(t, 25.0, got.EstimatedGain, 1e-9)
	require.NotNil(t, got.Baseline)
	assert.InDelta(t, 50.0, *got.Baseline, 1e-9)
	require.NotNil(t, got.VersusLeagueMean)
	assert.InDelta(t, 15.0, *got.VersusLeagueMean, 1e-9)
	assert.Equal(t, 1, got.WindowSize)
}

func TestEvaluateChip_FreeHitWithoutBaseline(t *testing.T) {
	got := EvaluateChip(model.ChipFreeHit, 7, chipContext(map[int]int{7: 80}, nil, nil))
	assert.Zero(t, got.EstimatedGain)
	assert.Nil(t, got.Baseline)
	assert.Nil(t, got.VersusLeagueMean)
}

func TestEvaluateChip_TripleCaptain(t *testing.T) {
	picks := []model.Pick{
		{Element: 1, Position: 1, Multiplier: 3, IsCaptain: true, Points: model.IntPtr(12)},
		{Element: 2, Position: 2, Multiplier: 1, Points: model.IntPtr(5)},
	}
	got := EvaluateChip(model.ChipTripleCaptain, 8, chipContext(map[int]int{8: 70}, map[int]float64{8: 55}, picks))
	assert.InDelta(t, 12.0, got.EstimatedGain, 1e-9)
	require.NotNil(t, got.VersusLeagueMean)
	assert.InDelta(t, 15.0, *got.VersusLeagueMean, 1e-9)

	got = EvaluateChip(model.ChipTripleCaptain, 8, chipContext(nil, nil, nil))
	assert.Zero(t, got.EstimatedGain, "no picks, no captain")
}

func TestEvaluateChip_BenchBoostUsesBenchedPicksOnly(t *testing.T) {
	picks := []model.Pick{
		{Element: 1, Position: 1, Multiplier: 1, Points: model.IntPtr(9)},
		{Element: 12, Position: 12, Multiplier: 0, Points: model.IntPtr(3)},
		{Element: 13, Position: 13, Multiplier: 0, Points: nil},
		{Element: 14, Position: 14, Multiplier: 1, Points: model.IntPtr(6)},
		{Element: 15, Position: 15, Multiplier: 0, Points: model.IntPtr(2)},
	}
	got := EvaluateChip(model.ChipBenchBoost, 9, chipContext(nil, nil, picks))
	assert.InDelta(t, 5.0, got.EstimatedGain, 1e-9)
	assert.Nil(t, got.VersusLeagueMean)
}

func TestEvaluateChip_Wildcard(t *testing.T) {
	ctx := chipContext(
		map[int]int{7: 40, 8: 50, 9: 60, 10: 70, 11: 65, 12: 80},
		map[int]float64{10: 55, 11: 60, 12: 50},
		nil,
	)
	got := EvaluateChip(model.ChipWildcard, 10, ctx)
	// Window GW10-12 = 215 against baseline 50 * 3.
	assert.InDelta(t, 65.0, got.EstimatedGain, 1e-9)
	assert.Equal(t, 3, got.WindowSize)
	require.NotNil(t, got.VersusLeagueMean)
	assert.InDelta(t, 15.0+5.0+30.0, *got.VersusLeagueMean, 1e-9)
}

func TestEvaluateChip_WildcardWindowTruncated(t *testing.T) {
	ctx := chipContext(
		map[int]int{9: 50, 10: 50, 11: 50, 12: 62},
		map[int]float64{12: 52},
		nil,
	)
	got := EvaluateChip(model.ChipWildcard, 12, ctx)
	assert.Equal(t, 1, got.WindowSize)
	assert.InDelta(t, 12.0, got.EstimatedGain, 1e-9)
	require.NotNil(t, got.VersusLeagueMean)
	assert.InDelta(t, 10.0, *got.VersusLeagueMean, 1e-9)
}

func TestEvaluateChip_WildcardWithoutPoints(t *testing.T) {
	got := EvaluateChip(model.ChipWildcard, 10, chipContext(map[int]int{7: 40}, nil, nil))
	assert.Zero(t, got.WindowSize)
	assert.Zero(t, got.EstimatedGain)
	assert.Nil(t, got.VersusLeagueMean)
}

func TestEvaluateChip_UnknownChip(t *testing.T) {
	got := EvaluateChip("manager", 10, chipContext(map[int]int{10: 70}, map[int]float64{10: 50}, nil))
	assert.Zero(t, got.EstimatedGain)
	assert.Nil(t, got.VersusLeagueMean)
}

func TestByType_Add(t *testing.T) {
	var b ByType
	assert.True(t, b.Add(model.ChipWildcard, 10))
	assert.True(t, b.Add(model.ChipWildcard, -4))
	assert.True(t, b.Add(model.ChipFreeHit, 25))
	assert.False(t, b.Add("manager", 99))
	assert.Equal(t, ByType{Wildcard: 6, FreeHit: 25}, b)
}
