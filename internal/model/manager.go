package model

// Chip names as reported by the upstream history endpoint.
const (
	ChipWildcard      = "wildcard"
	ChipTripleCaptain = "3xc"
	ChipBenchBoost    = "bboost"
	ChipFreeHit       = "freehit"
)

// StarterCount is the number of slots in a starting XI; positions above it are bench.
const StarterCount = 11

type GameweekHistory struct {
	Event              int `json:"event"`
	Points             int `json:"points"`
	TotalPoints        int `json:"total_points"`
	Rank               int `json:"rank"`
	RankSort           int `json:"rank_sort"`
	OverallRank        int `json:"overall_rank"`
	Bank               int `json:"bank"`
	Value              int `json:"value"`
	EventTransfers     int `json:"event_transfers"`
	EventTransfersCost int `json:"event_transfers_cost"`
	PointsOnBench      int `json:"points_on_bench"`
}

type ChipUsage struct {
	Name  string `json:"name"`
	Time  string `json:"time"`
	Event int    `json:"event"`
}

type Transfer struct {
	Entry          int    `json:"entry"`
	Event          int    `json:"event"`
	ElementIn      int    `json:"element_in"`
	ElementInCost  int    `json:"element_in_cost"`
	ElementOut     int    `json:"element_out"`
	ElementOutCost int    `json:"element_out_cost"`
	Time           string `json:"time"`
}

// Manager is one league entry together with everything fetched for it.
type Manager struct {
	Entry      int               `json:"entry"`
	PlayerName string            `json:"player_name"`
	EntryName  string            `json:"entry_name"`
	Rank       int               `json:"rank"`
	LastRank   int               `json:"last_rank"`
	Total      int               `json:"total"`
	EventTotal int               `json:"event_total"`
	History    []GameweekHistory `json:"history"`
	Chips      []ChipUsage       `json:"chips"`
	Picks      PicksByEvent      `json:"picks_by_event,omitempty"`
	Transfers  []Transfer        `json:"transfers,omitempty"`
}

func (m *Manager) HistoryByEvent() map[int]GameweekHistory {
	out := make(map[int]GameweekHistory, len(m.History))
	for _, h := range m.History {
		out[h.Event] = h
	}
	return out
}

// ChipForEvent returns the chip played in gameweek event, or "" when none was.
func (m *Manager) ChipForEvent(event int) string {
	for _, c := range m.Chips {
		if c.Event == event {
			return c.Name
		}
	}
	return ""
}

// League is the fully materialized input of one analysis run. Analytics code
// reads it and never mutates it.
type League struct {
	ID           int       `json:"id"`
	Name         string    `json:"name"`
	Managers     []Manager `json:"managers"`
	Catalog      *Catalog  `json:"catalog,omitempty"`
	CurrentEvent int       `json:"current_event"`
}

// RankChange is positive when a manager moved up. New entries (lastRank 0) report 0.
func RankChange(rank int, lastRank int) int {
	if lastRank == 0 {
		return 0
	}
	return lastRank - rank
}
