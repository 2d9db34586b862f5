// Package allplay scores every gameweek as a round robin: each manager plays
// every other manager who has a score for that gameweek.
package allplay

import (
	"sort"

	"github.com/aatrey56/fpl-league-insights/internal/stats"
)

const (
	winPoints   = 3
	drawPoints  = 1
	finishSlots = 3
)

// Score is one manager's points for a gameweek.
type Score struct {
	Entry  int
	Points int
}

// Record accumulates a manager's all-play results across gameweeks.
type Record struct {
	Points         int `json:"all_play_points"`
	PossiblePoints int `json:"all_play_possible_points"`
	Wins           int `json:"all_play_wins"`
	Draws          int `json:"all_play_draws"`
	Losses         int `json:"all_play_losses"`
	TopThree       int `json:"top_three_gameweeks"`
	BottomThree    int `json:"bottom_three_gameweeks"`
}

func (r Record) Matches() int {
	return r.Wins + r.Draws + r.Losses
}

// WinRatePct counts a draw as half a win.
func (r Record) WinRatePct() (float64, bool) {
	return stats.ToPercent(float64(r.Wins)+0.5*float64(r.Draws), float64(r.Matches()))
}

func (r Record) PointRatePct() (float64, bool) {
	return stats.ToPercent(float64(r.Points), float64(r.PossiblePoints))
}

// Table holds records keyed by entry id.
type Table map[int]*Record

func NewTable(entries []int) Table {
	t := make(Table, len(entries))
	for _, e := range entries {
		t[e] = &Record{}
	}
	return t
}

// Get returns the record for entry, or a zero record when the entry never played.
func (t Table) Get(entry int) Record {
	if r, ok := t[entry]; ok {
		return *r
	}
	return Record{}
}

// Play scores one gameweek into the table. Rows are ranked by points descending
// with ties kept in input order; the top and bottom three finish slots go by
// that position, not by score. Entries missing from the table are ignored.
func (t Table) Play(rows []Score) []Score {
	ranked := make([]Score, len(rows))
	copy(ranked, rows)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Points > ranked[j].Points
	})

	n := len(ranked)
	for i, row := range ranked {
		rec, ok := t[row.Entry]
		if !ok {
			continue
		}
		if i < finishSlots {
			rec.TopThree++
		}
		if i >= max(0, n-finishSlots) {
			rec.BottomThree++
		}
	}

	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			left, right := ranked[i], ranked[j]
			l, lok := t[left.Entry]
			r, rok := t[right.Entry]
			if !lok || !rok {
				continue
			}
			l.PossiblePoints += winPoints
			r.PossiblePoints += winPoints
			switch {
			case left.Points > right.Points:
				l.Points += winPoints
				l.Wins++
				r.Losses++
			case left.Points < right.Points:
				r.Points += winPoints
				r.Wins++
				l.Losses++
			default:
				l.Points += drawPoints
				r.Points += drawPoints
				l.Draws++
				r.Draws++
			}
		}
	}
	return ranked
}
