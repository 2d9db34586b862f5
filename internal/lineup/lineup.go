// Package lineup measures selection decisions: the captain a manager chose
// against the best available, and the starting XI fielded against the best
// legal XI the squad allowed.
package lineup

import (
	"sort"

	"github.com/aatrey56/fpl-league-insights/internal/model"
)

// Formation bounds for the ten outfield starters.
const (
	minDef, maxDef = 3, 5
	minMid, maxMid = 2, 5
	minFwd, maxFwd = 1, 3
	outfieldSlots  = model.StarterCount - 1
)

// Captaincy returns the captain's points and the points the best scorer in the
// squad would have returned with the same multiplier. ok is false when there is
// no captain or the captain's points are unknown.
func Captaincy(picks []model.Pick) (actual int, optimal int, ok bool) {
	captain, found := model.Captain(picks)
	if !found || captain.Points == nil {
		return 0, 0, false
	}
	multiplier := max(1, captain.Multiplier)
	best := 0
	for _, p := range picks {
		best = max(best, p.PointsOr(0))
	}
	return *captain.Points * multiplier, best * multiplier, true
}

// ActualStarterPoints sums base points over positions 1-11, unknown as 0.
func ActualStarterPoints(picks []model.Pick) int {
	total := 0
	for _, p := range picks {
		if p.IsStarter() {
			total += p.PointsOr(0)
		}
	}
	return total
}

// OptimalStarterPoints searches every legal formation for the highest-scoring
// starting XI the squad could have fielded. ok is false when no formation can be
// filled, e.g. the squad has no goalkeeper.
func OptimalStarterPoints(picks []model.Pick, elementTypes map[int]int) (int, bool) {
	byPos := map[int][]int{}
	for _, p := range picks {
		pos, known := elementTypes[p.Element]
		if !known {
			continue
		}
		byPos[pos] = append(byPos[pos], p.PointsOr(0))
	}
	for _, pts := range byPos {
		sort.Sort(sort.Reverse(sort.IntSlice(pts)))
	}

	gk := byPos[model.Goalkeeper]
	if len(gk) == 0 {
		return 0, false
	}
	def, mid, fwd := byPos[model.Defender], byPos[model.Midfielder], byPos[model.Forward]

	best, found := 0, false
	for d := minDef; d <= maxDef; d++ {
		for m := minMid; m <= maxMid; m++ {
			for f := minFwd; f <= maxFwd; f++ {
				if d+m+f != outfieldSlots {
					continue
				}
				if len(def) < d || len(mid) < m || len(fwd) < f {
					continue
				}
				total := gk[0] + top(def, d) + top(mid, m) + top(fwd, f)
				if !found || total > best {
					best, found = total, true
				}
			}
		}
	}
	return best, found
}

func top(sorted []int, n int) int {
	total := 0
	for _, v := range sorted[:n] {
		total += v
	}
	return total
}

// BenchLoss is the points left on the bench by the starting XI chosen, never
// negative. Gameweeks with no legal formation contribute 0.
func BenchLoss(picks []model.Pick, elementTypes map[int]int) int {
	optimal, ok := OptimalStarterPoints(picks, elementTypes)
	if !ok {
		return 0
	}
	return max(0, optimal-ActualStarterPoints(picks))
}
