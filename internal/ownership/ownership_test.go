package ownership

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/aatrey56/fpl-league-insights/internal/model"
	"github.com/aatrey56/fpl-league-insights/internal/stats"
)

func TestCount_OncePerManager(t *testing.T) {
	counts, participants := Count([][]model.Pick{
		{{Element: 1}, {Element: 2}, {Element: 1}},
		{{Element: 1}, {Element: 3}},
		{},
		nil,
	})
	assert.Equal(t, 2, participants)
	assert.Equal(t, Counts{1: 2, 2: 1, 3: 1}, counts)
}

func TestTemplate_OrdersByCountThenID(t *testing.T) {
	counts := Counts{5: 3, 2: 1, 9: 3, 4: 2, 1: 1}
	assert.Equal(t, stats.NewSet(5, 9, 4), Template(counts, 3))
	assert.Equal(t, stats.NewSet(5, 9, 4, 1), Template(counts, 4))
	assert.Len(t, Template(counts, TemplateSize), 5)
	assert.Empty(t, Template(Counts{}, TemplateSize))
}

func TestLowOwnershipThreshold(t *testing.T) {
	cases := map[int]int{0: 2, 4: 2, 10: 2, 14: 2, 15: 3, 20: 4, 32: 6}
	for participants, want := range cases {
		assert.Equal(t, want, LowOwnershipThreshold(participants), "participants=%d", participants)
	}
}

func TestContribution(t *testing.T) {
	types := map[int]int{1: model.Goalkeeper, 2: model.Defender, 3: model.Midfielder, 4: model.Forward, 5: model.Defender}
	picks := []model.Pick{
		{Element: 1, Position: 1, Multiplier: 1, Points: model.IntPtr(6)},
		{Element: 2, Position: 2, Multiplier: 1, Points: nil},
		{Element: 3, Position: 3, Multiplier: 2, IsCaptain: true, Points: model.IntPtr(8)},
		{Element: 4, Position: 4, Multiplier: 1, Points: model.IntPtr(5)},
		{Element: 5, Position: 12, Multiplier: 0, Points: model.IntPtr(9)},
		{Element: 77, Position: 5, Multiplier: 1, Points: model.IntPtr(1)},
	}
	counts := Counts{1: 10, 2: 1, 3: 2, 4: 3, 5: 1, 77: 1}

	got, differential := Contribution(picks, counts, 2, types)
	assert.Equal(t, PositionContribution{GK: 6, MID: 16, FWD: 5, CaptainBonus: 8, Total: 28}, got)
	// Element 3 (16 weighted) and element 77 (1) are owned by at most two managers;
	// element 5 is benched.
	assert.Equal(t, 17, differential)
}

func TestContribution_TripleCaptainBonus(t *testing.T) {
	picks := []model.Pick{{Element: 3, Position: 3, Multiplier: 3, IsCaptain: true, Points: model.IntPtr(10)}}
	got, _ := Contribution(picks, Counts{3: 5}, 2, map[int]int{3: model.Forward})
	assert.Equal(t, 20, got.CaptainBonus)
	assert.Equal(t, 30, got.FWD)
}

func TestPositionContribution_Add(t *testing.T) {
	c := PositionContribution{GK: 1, Total: 1}
	c.Add(PositionContribution{DEF: 2, MID: 3, FWD: 4, CaptainBonus: 3, Total: 9})
	assert.Equal(t, PositionContribution{GK: 1, DEF: 2, MID: 3, FWD: 4, CaptainBonus: 3, Total: 10}, c)
}
