package allplay

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func totalPoints(t Table) int {
	total := 0
	for _, r := range t {
		total += r.Points
	}
	return total
}

func TestPlay_ThreeManagersWithTie(t *testing.T) {
	table := NewTable([]int{1, 2, 3})
	table.Play([]Score{{Entry: 1, Points: 60}, {Entry: 2, Points: 60}, {Entry: 3, Points: 40}})

	assert.Equal(t, 4, table.Get(1).Points)
	assert.Equal(t, 4, table.Get(2).Points)
	assert.Equal(t, 0, table.Get(3).Points)
	for _, e := range []int{1, 2, 3} {
		assert.Equal(t, 6, table.Get(e).PossiblePoints, "entry %d", e)
	}

	assert.Equal(t, Record{Points: 4, PossiblePoints: 6, Wins: 1, Draws: 1, TopThree: 1, BottomThree: 1}, table.Get(1))
	assert.Equal(t, 2, table.Get(3).Losses)
}

func TestPlay_PointsConservation(t *testing.T) {
	// No ties: 3 * C(n,2). Each tied pair removes exactly 1 point.
	cases := []struct {
		name   string
		scores []int
		want   int
	}{
		{"no ties", []int{10, 20, 30, 40, 50}, 3 * 10},
		{"one tied pair", []int{10, 10, 30, 40, 50}, 3*10 - 1},
		{"all tied", []int{7, 7, 7, 7}, 3*6 - 6},
		{"single manager", []int{99}, 0},
		{"empty", nil, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			entries := make([]int, len(tc.scores))
			rows := make([]Score, len(tc.scores))
			for i, s := range tc.scores {
				entries[i] = i + 1
				rows[i] = Score{Entry: i + 1, Points: s}
			}
			table := NewTable(entries)
			table.Play(rows)
			assert.Equal(t, tc.want, totalPoints(table))
		})
	}
}

func TestPlay_MatchesEqualOpponentsAcrossGameweeks(t *testing.T) {
	table := NewTable([]int{1, 2, 3, 4})
	table.Play([]Score{{1, 50}, {2, 40}, {3, 40}, {4, 30}})
	table.Play([]Score{{1, 20}, {2, 70}}) // 3 and 4 have no score this week

	assert.Equal(t, 3+1, table.Get(1).Matches())
	assert.Equal(t, 3+1, table.Get(2).Matches())
	assert.Equal(t, 3, table.Get(3).Matches())
	assert.Equal(t, 3, table.Get(4).Matches())
}

func TestPlay_FinishSlotsArePositional(t *testing.T) {
	// Four-way tie for third: only the first three by input order get top-three credit.
	table := NewTable([]int{1, 2, 3, 4, 5, 6, 7})
	ranked := table.Play([]Score{
		{1, 90}, {2, 80}, {3, 50}, {4, 50}, {5, 50}, {6, 50}, {7, 10},
	})

	require.Len(t, ranked, 7)
	assert.Equal(t, []int{1, 2, 3, 4, 5, 6, 7}, entriesOf(ranked))
	assert.Equal(t, 1, table.Get(3).TopThree)
	assert.Equal(t, 0, table.Get(4).TopThree)
	assert.Equal(t, 0, table.Get(4).BottomThree)
	assert.Equal(t, 1, table.Get(5).BottomThree)
	assert.Equal(t, 1, table.Get(7).BottomThree)
}

func TestPlay_SmallGameweekCountsTopAndBottom(t *testing.T) {
	table := NewTable([]int{1, 2})
	table.Play([]Score{{1, 10}, {2, 20}})
	assert.Equal(t, 1, table.Get(1).TopThree)
	assert.Equal(t, 1, table.Get(1).BottomThree)
}

func TestPlay_DoesNotMutateInput(t *testing.T) {
	rows := []Score{{1, 10}, {2, 30}, {3, 20}}
	table := NewTable([]int{1, 2, 3})
	table.Play(rows)
	assert.Equal(t, []Score{{1, 10}, {2, 30}, {3, 20}}, rows)
}

func TestPlay_UnknownEntriesIgnored(t *testing.T) {
	table := NewTable([]int{1})
	table.Play([]Score{{1, 10}, {99, 30}})
	assert.Equal(t, Record{TopThree: 1, BottomThree: 1}, table.Get(1))
	assert.Equal(t, Record{}, table.Get(99))
}

func TestRecord_Rates(t *testing.T) {
	_, ok := Record{}.WinRatePct()
	assert.False(t, ok)
	_, ok = Record{}.PointRatePct()
	assert.False(t, ok)

	r := Record{Points: 7, PossiblePoints: 12, Wins: 2, Draws: 1, Losses: 1}
	win, ok := r.WinRatePct()
	require.True(t, ok)
	assert.InDelta(t, 62.5, win, 1e-9)
	pts, ok := r.PointRatePct()
	require.True(t, ok)
	assert.InDelta(t, 58.333333, pts, 1e-5)
}

func entriesOf(rows []Score) []int {
	out := make([]int, len(rows))
	for i, r := range rows {
		out[i] = r.Entry
	}
	return out
}
