// Package ownership measures how closely a manager follows the league: overlap
// with the gameweek's most-owned squad, and points from players few rivals own.
package ownership

import (
	"sort"

	"github.com/aatrey56/fpl-league-insights/internal/model"
	"github.com/aatrey56/fpl-league-insights/internal/stats"
)

const (
	// TemplateSize is one full squad.
	TemplateSize = 15

	minLowOwnership   = 2
	lowOwnershipShare = 0.2
)

// Counts maps element id to the number of managers owning it in one gameweek.
type Counts map[int]int

// Count tallies ownership across the managers' pick lists for one gameweek.
// An element counts once per manager; participants is the number of non-empty lists.
func Count(pickLists [][]model.Pick) (Counts, int) {
	counts := Counts{}
	participants := 0
	for _, picks := range pickLists {
		if len(picks) == 0 {
			continue
		}
		participants++
		seen := stats.NewSet()
		for _, p := range picks {
			if seen.Has(p.Element) {
				continue
			}
			seen[p.Element] = struct{}{}
			counts[p.Element]++
		}
	}
	return counts, participants
}

// Template is the size most-owned elements, by count descending then id ascending.
func Template(counts Counts, size int) stats.Set {
	ids := make([]int, 0, len(counts))
	for id := range counts {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		ci, cj := counts[ids[i]], counts[ids[j]]
		if ci != cj {
			return ci > cj
		}
		return ids[i] < ids[j]
	})
	if len(ids) > size {
		ids = ids[:size]
	}
	return stats.NewSet(ids...)
}

// LowOwnershipThreshold is the ownership count at or below which an owned
// element is a differential: max(2, floor(0.2 * participants)).
func LowOwnershipThreshold(participants int) int {
	return max(minLowOwnership, int(lowOwnershipShare*float64(participants)))
}

// PositionContribution splits a manager's played points by position. Captain
// bonus is the extra points from the armband and is already included in the
// position buckets.
type PositionContribution struct {
	GK           int `json:"gk"`
	DEF          int `json:"def"`
	MID          int `json:"mid"`
	FWD          int `json:"fwd"`
	CaptainBonus int `json:"captain_bonus"`
	Total        int `json:"total"`
}

// Add folds another gameweek's contribution into c.
func (c *PositionContribution) Add(o PositionContribution) {
	c.GK += o.GK
	c.DEF += o.DEF
	c.MID += o.MID
	c.FWD += o.FWD
	c.CaptainBonus += o.CaptainBonus
	c.Total += o.Total
}

func (c *PositionContribution) credit(elementType int, pts int) {
	switch elementType {
	case model.Goalkeeper:
		c.GK += pts
	case model.Defender:
		c.DEF += pts
	case model.Midfielder:
		c.MID += pts
	case model.Forward:
		c.FWD += pts
	}
}

// Contribution scores one manager's gameweek. Only picks that counted
// (multiplier > 0) are included, each weighted by its multiplier. The returned
// differential is the weighted points from elements owned by at most threshold
// managers.
func Contribution(picks []model.Pick, counts Counts, threshold int, elementTypes map[int]int) (PositionContribution, int) {
	var c PositionContribution
	differential := 0
	for _, p := range picks {
		if p.Multiplier <= 0 {
			continue
		}
		weighted := p.PointsOr(0) * p.Multiplier
		c.Total += weighted
		c.credit(elementTypes[p.Element], weighted)

		if p.IsCaptain && p.Points != nil {
			c.CaptainBonus += max(0, p.Multiplier-1) * *p.Points
		}
		if owned := counts[p.Element]; owned > 0 && owned <= threshold {
			differential += weighted
		}
	}
	return c, differential
}
