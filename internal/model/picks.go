package model

import "sort"

// Pick is one player's slot in a manager's squad for a gameweek. Points is nil
// when the live score feed had no value for the player.
type Pick struct {
	Element       int  `json:"element"`
	Position      int  `json:"position"`
	Multiplier    int  `json:"multiplier"`
	IsCaptain     bool `json:"is_captain"`
	IsViceCaptain bool `json:"is_vice_captain"`
	Points        *int `json:"points"`
}

func (p Pick) IsStarter() bool {
	return p.Position <= StarterCount
}

// PointsOr returns the pick's points, or def when they are unknown.
func (p Pick) PointsOr(def int) int {
	if p.Points == nil {
		return def
	}
	return *p.Points
}

// PicksByEvent maps gameweek to pick list. A missing key means the gameweek was
// never fetched; an empty list means it was fetched and empty.
type PicksByEvent map[int][]Pick

// Lookup returns the picks for event and whether the gameweek was fetched.
func (p PicksByEvent) Lookup(event int) ([]Pick, bool) {
	picks, ok := p[event]
	return picks, ok
}

// Usable returns the picks for event only when they can drive a derivation.
func (p PicksByEvent) Usable(event int) ([]Pick, bool) {
	picks, ok := p[event]
	if !ok || len(picks) == 0 {
		return nil, false
	}
	return picks, true
}

// Events returns the fetched gameweeks in ascending order.
func (p PicksByEvent) Events() []int {
	out := make([]int, 0, len(p))
	for gw := range p {
		out = append(out, gw)
	}
	sort.Ints(out)
	return out
}

// Captain returns the captain pick, if the list has one.
func Captain(picks []Pick) (Pick, bool) {
	for _, p := range picks {
		if p.IsCaptain {
			return p, true
		}
	}
	return Pick{}, false
}

// IntPtr is a convenience for building picks with known points.
func IntPtr(v int) *int {
	return &v
}
