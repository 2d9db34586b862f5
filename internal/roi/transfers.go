// Package roi estimates the point return of transfers and chips.
package roi

import (
	"sort"

	"github.com/aatrey56/fpl-league-insights/internal/model"
)

// TransferWeek is the transfer activity of a single gameweek.
type TransferWeek struct {
	Event    int `json:"event"`
	Count    int `json:"count"`
	InPoints int `json:"in_points"`
	HitCost  int `json:"hit_cost"`
	Net      int `json:"net"`
}

// TransferSummary totals a manager's transfers. ROI is nil when the manager
// made no transfers, which is different from transfers that netted zero.
type TransferSummary struct {
	ROI      *int           `json:"transfer_roi"`
	InPoints int            `json:"transfer_in_points"`
	HitCost  int            `json:"transfer_hit_cost"`
	Count    int            `json:"transfer_count"`
	Weeks    []TransferWeek `json:"weeks,omitempty"`
}

// Transfers scores each gameweek's incoming players on the points they returned
// that gameweek, less the gameweek's transfer hit taken from history.
func Transfers(transfers []model.Transfer, picks model.PicksByEvent, history map[int]model.GameweekHistory) TransferSummary {
	out := TransferSummary{}
	if len(transfers) == 0 {
		return out
	}

	byEvent := make(map[int][]model.Transfer)
	for _, tr := range transfers {
		byEvent[tr.Event] = append(byEvent[tr.Event], tr)
	}
	events := make([]int, 0, len(byEvent))
	for gw := range byEvent {
		events = append(events, gw)
	}
	sort.Ints(events)

	roi := 0
	for _, gw := range events {
		rows := byEvent[gw]
		weekPicks := picks[gw]
		inPoints := 0
		for _, tr := range rows {
			inPoints += pickPoints(weekPicks, tr.ElementIn)
		}
		hit := history[gw].EventTransfersCost
		net := inPoints - hit

		out.InPoints += inPoints
		out.HitCost += hit
		out.Count += len(rows)
		roi += net
		out.Weeks = append(out.Weeks, TransferWeek{
			Event:    gw,
			Count:    len(rows),
			InPoints: inPoints,
			HitCost:  hit,
			Net:      net,
		})
	}
	out.ROI = &roi
	return out
}

// pickPoints is the element's points in the pick list, 0 when absent or unknown.
func pickPoints(picks []model.Pick, element int) int {
	for _, p := range picks {
		if p.Element == element {
			return p.PointsOr(0)
		}
	}
	return 0
}
