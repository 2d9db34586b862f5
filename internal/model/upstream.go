package model

// Upstream documents as cached in the raw store. The bootstrap document decodes
// directly into Catalog.

// StandingsRow is one entry of a classic league table.
type StandingsRow struct {
	ID         int    `json:"id"`
	Entry      int    `json:"entry"`
	EntryName  string `json:"entry_name"`
	PlayerName string `json:"player_name"`
	Rank       int    `json:"rank"`
	LastRank   int    `json:"last_rank"`
	RankSort   int    `json:"rank_sort"`
	Total      int    `json:"total"`
	EventTotal int    `json:"event_total"`
}

type StandingsPage struct {
	HasNext bool           `json:"has_next"`
	Page    int            `json:"page"`
	Results []StandingsRow `json:"results"`
}

type LeagueInfo struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// StandingsDoc is /leagues-classic/{id}/standings/. The raw store keeps every
// page merged into one document.
type StandingsDoc struct {
	League    LeagueInfo    `json:"league"`
	Standings StandingsPage `json:"standings"`
}

// HistoryDoc is /entry/{id}/history/.
type HistoryDoc struct {
	Current []GameweekHistory `json:"current"`
	Chips   []ChipUsage       `json:"chips"`
}
