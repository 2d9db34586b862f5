package lineup

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aatrey56/fpl-league-insights/internal/model"
)

type squadPlayer struct {
	elem, elementType, pos, pts int
}

// buildSquad returns picks plus the element-type lookup for them.
func buildSquad(players []squadPlayer) ([]model.Pick, map[int]int) {
	picks := make([]model.Pick, 0, len(players))
	types := make(map[int]int, len(players))
	for _, p := range players {
		mult := 1
		if p.pos > model.StarterCount {
			mult = 0
		}
		picks = append(picks, model.Pick{Element: p.elem, Position: p.pos, Multiplier: mult, Points: model.IntPtr(p.pts)})
		types[p.elem] = p.elementType
	}
	return picks, types
}

func TestCaptaincy_MissedBestScorer(t *testing.T) {
	picks := []model.Pick{
		{Element: 1, Position: 1, Multiplier: 2, IsCaptain: true, Points: model.IntPtr(10)},
		{Element: 2, Position: 2, Multiplier: 1, Points: model.IntPtr(15)},
		{Element: 3, Position: 12, Multiplier: 0, Points: nil},
	}
	actual, optimal, ok := Captaincy(picks)
	require.True(t, ok)
	assert.Equal(t, 20, actual)
	assert.Equal(t, 30, optimal)
}

func TestCaptaincy_BestScorerChosen(t *testing.T) {
	picks := []model.Pick{
		{Element: 1, Position: 1, Multiplier: 3, IsCaptain: true, Points: model.IntPtr(12)},
		{Element: 2, Position: 2, Multiplier: 1, Points: model.IntPtr(4)},
	}
	actual, optimal, ok := Captaincy(picks)
	require.True(t, ok)
	assert.Equal(t, 36, actual)
	assert.Equal(t, actual, optimal)
}

func TestCaptaincy_BenchedCaptainUsesMultiplierOne(t *testing.T) {
	// Captain did not play and the armband passed on: multiplier 0 is floored to 1.
	picks := []model.Pick{
		{Element: 1, Position: 1, Multiplier: 0, IsCaptain: true, Points: model.IntPtr(0)},
		{Element: 2, Position: 2, Multiplier: 2, IsViceCaptain: true, Points: model.IntPtr(8)},
	}
	actual, optimal, ok := Captaincy(picks)
	require.True(t, ok)
	assert.Equal(t, 0, actual)
	assert.Equal(t, 8, optimal)
}

func TestCaptaincy_Undefined(t *testing.T) {
	_, _, ok := Captaincy([]model.Pick{{Element: 1, Position: 1, Multiplier: 1, Points: model.IntPtr(5)}})
	assert.False(t, ok, "no captain")

	_, _, ok = Captaincy([]model.Pick{{Element: 1, Position: 1, Multiplier: 2, IsCaptain: true}})
	assert.False(t, ok, "captain with unknown points")
}

func TestOptimalStarterPoints_SearchesAllFormations(t *testing.T) {
	picks, types := buildSquad([]squadPlayer{
		{1, model.Goalkeeper, 1, 6},
		{2, model.Defender, 2, 8},
		{3, model.Defender, 3, 6},
		{4, model.Defender, 4, 5},
		{5, model.Defender, 5, 2},
		{6, model.Midfielder, 6, 9},
		{7, model.Midfielder, 7, 7},
		{8, model.Midfielder, 8, 4},
		{9, model.Midfielder, 9, 1},
		{10, model.Forward, 10, 5},
		{11, model.Forward, 11, 2},
		{12, model.Goalkeeper, 12, 1},
		{13, model.Defender, 13, 3},
		{14, model.Midfielder, 14, 3},
		{15, model.Forward, 15, 10},
	})

	require.Equal(t, 55, ActualStarterPoints(picks))

	// Best is 4-4-2: 6 + (8+6+5+3) + (9+7+4+3) + (10+5) = 66.
	optimal, ok := OptimalStarterPoints(picks, types)
	require.True(t, ok)
	assert.Equal(t, 66, optimal)
	assert.Equal(t, 11, BenchLoss(picks, types))
}

func TestOptimalStarterPoints_NoGoalkeeper(t *testing.T) {
	picks, types := buildSquad([]squadPlayer{
		{2, model.Defender, 1, 8},
		{3, model.Defender, 2, 6},
		{4, model.Defender, 3, 5},
		{6, model.Midfielder, 4, 9},
		{7, model.Midfielder, 5, 7},
		{10, model.Forward, 6, 5},
	})
	_, ok := OptimalStarterPoints(picks, types)
	assert.False(t, ok)
	assert.Equal(t, 0, BenchLoss(picks, types))
}

func TestOptimalStarterPoints_InfeasibleFormationsSkipped(t *testing.T) {
	// Only two defenders: no formation with d >= 3 can be filled.
	picks, types := buildSquad([]squadPlayer{
		{1, model.Goalkeeper, 1, 6},
		{2, model.Defender, 2, 8},
		{3, model.Defender, 3, 6},
		{6, model.Midfielder, 4, 9},
		{7, model.Midfielder, 5, 7},
		{8, model.Midfielder, 6, 7},
		{9, model.Midfielder, 7, 7},
		{10, model.Midfielder, 8, 7},
		{11, model.Forward, 9, 5},
		{12, model.Forward, 10, 5},
		{13, model.Forward, 11, 5},
	})
	_, ok := OptimalStarterPoints(picks, types)
	assert.False(t, ok)
}

func TestOptimalStarterPoints_UnknownPointsAndElementsIgnored(t *testing.T) {
	picks, types := buildSquad([]squadPlayer{
		{1, model.Goalkeeper, 1, 2},
		{2, model.Defender, 2, 1},
		{3, model.Defender, 3, 1},
		{4, model.Defender, 4, 1},
		{5, model.Midfielder, 5, 1},
		{6, model.Midfielder, 6, 1},
		{7, model.Midfielder, 7, 1},
		{8, model.Midfielder, 8, 1},
		{9, model.Midfielder, 9, 1},
		{10, model.Forward, 10, 1},
		{11, model.Forward, 11, 1},
	})
	// A defender with unknown points counts as 0; element 999 is not in the catalog.
	picks[1].Points = nil
	picks = append(picks, model.Pick{Element: 999, Position: 12, Points: model.IntPtr(50)})

	optimal, ok := OptimalStarterPoints(picks, types)
	require.True(t, ok)
	// Best legal: GK 2 + 3 DEF (1+1+0) + 5 MID (5) + 2 FWD (2) = 11.
	assert.Equal(t, 11, optimal)
}

func TestBenchLoss_NeverNegative(t *testing.T) {
	// Starters outscore anything the optimizer can field (a starter unknown to the catalog).
	picks, types := buildSquad([]squadPlayer{
		{1, model.Goalkeeper, 1, 1},
		{2, model.Defender, 2, 1},
		{3, model.Defender, 3, 1},
		{4, model.Defender, 4, 1},
		{5, model.Midfielder, 5, 1},
		{6, model.Midfielder, 6, 1},
		{7, model.Midfielder, 7, 1},
		{8, model.Midfielder, 8, 1},
		{9, model.Forward, 9, 1},
		{10, model.Forward, 10, 1},
		{11, model.Forward, 11, 1},
	})
	picks = append(picks, model.Pick{Element: 500, Position: 5, Multiplier: 1, Points: model.IntPtr(20)})
	assert.Equal(t, 0, BenchLoss(picks, types))
}
