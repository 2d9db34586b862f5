// Package breakdown summarizes, player by player, what a manager's squad
// returned over the season and how the same players did for rival managers.
package breakdown

import (
	"fmt"
	"sort"

	"github.com/aatrey56/fpl-league-insights/internal/model"
)

const unknownTeam = "UNK"

// Row is one player's season inside one manager's squad.
type Row struct {
	Element                     int    `json:"element"`
	PlayerName                  string `json:"player_name"`
	TeamShortName               string `json:"team_short_name"`
	EarnedPointsIgnoreCaptaincy int    `json:"earned_points_ignore_captaincy"`
	TotalPlayerPoints           int    `json:"total_player_points"`
	TotalPointsEarned           int    `json:"total_points_earned"`
	WeeksOwned                  int    `json:"weeks_owned"`
	WeeksPlayed                 int    `json:"weeks_played"`
	TimesCaptained              int    `json:"times_captained"`
	CaptainBonusPoints          int    `json:"captain_bonus_points"`
	StarterPointsTotal          int    `json:"starter_points_total"`
	StarterPointsCount          int    `json:"starter_points_count"`
}

// AvgWhenStarting is the mean score over starts with known points.
func (r Row) AvgWhenStarting() (float64, bool) {
	if r.StarterPointsCount == 0 {
		return 0, false
	}
	return float64(r.StarterPointsTotal) / float64(r.StarterPointsCount), true
}

// ManagerRows builds one row per player the manager ever picked, sorted by
// points earned, then weeks owned, then name.
func ManagerRows(picks model.PicksByEvent, catalog *model.Catalog) []Row {
	players := catalog.PlayerByID()
	teams := catalog.TeamShort()
	byElement := map[int]*Row{}

	for _, gw := range picks.Events() {
		for _, p := range picks[gw] {
			row, ok := byElement[p.Element]
			if !ok {
				row = newRow(p.Element, players, teams)
				byElement[p.Element] = row
			}

			row.WeeksOwned++
			if p.IsStarter() {
				row.WeeksPlayed++
				if p.Points != nil {
					row.EarnedPointsIgnoreCaptaincy += *p.Points
					row.TotalPointsEarned += *p.Points
					row.StarterPointsTotal += *p.Points
					row.StarterPointsCount++
				}
			}
			if p.IsCaptain {
				row.TimesCaptained++
				if p.Points != nil && p.IsStarter() {
					bonus := max(0, p.Multiplier-1) * *p.Points
					row.CaptainBonusPoints += bonus
					row.TotalPointsEarned += bonus
				}
			}
		}
	}

	out := make([]Row, 0, len(byElement))
	for _, row := range byElement {
		out = append(out, *row)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].TotalPointsEarned != out[j].TotalPointsEarned {
			return out[i].TotalPointsEarned > out[j].TotalPointsEarned
		}
		if out[i].WeeksOwned != out[j].WeeksOwned {
			return out[i].WeeksOwned > out[j].WeeksOwned
		}
		if out[i].PlayerName != out[j].PlayerName {
			return out[i].PlayerName < out[j].PlayerName
		}
		return out[i].Element < out[j].Element
	})
	return out
}

func newRow(element int, players map[int]model.Player, teams map[int]string) *Row {
	row := &Row{
		Element:       element,
		PlayerName:    fmt.Sprintf("Player #%d", element),
		TeamShortName: unknownTeam,
	}
	if p, ok := players[element]; ok {
		row.PlayerName = p.WebName
		row.TotalPlayerPoints = p.TotalPoints
		if short, ok := teams[p.TeamID]; ok {
			row.TeamShortName = short
		}
	}
	return row
}

// ManagerMeta names a manager in rival rows.
type ManagerMeta struct {
	EntryName  string `json:"entry_name"`
	PlayerName string `json:"player_name"`
}

// OtherManagerRow is a rival manager's row for a player.
type OtherManagerRow struct {
	Entry       int    `json:"entry"`
	EntryName   string `json:"entry_name"`
	ManagerName string `json:"manager_name"`
	Row         Row    `json:"row"`
}

// OtherManagers returns, for each player in entry's rows, the rows every other
// manager has for the same player.
func OtherManagers(rowsByEntry map[int][]Row, entry int, meta map[int]ManagerMeta) map[int][]OtherManagerRow {
	entries := make([]int, 0, len(rowsByEntry))
	for e := range rowsByEntry {
		entries = append(entries, e)
	}
	sort.Ints(entries)

	peers := map[int][]OtherManagerRow{}
	for _, e := range entries {
		if e == entry {
			continue
		}
		m, ok := meta[e]
		if !ok {
			m = ManagerMeta{EntryName: fmt.Sprintf("Manager %d", e)}
		}
		for _, row := range rowsByEntry[e] {
			peers[row.Element] = append(peers[row.Element], OtherManagerRow{
				Entry:       e,
				EntryName:   m.EntryName,
				ManagerName: m.PlayerName,
				Row:         row,
			})
		}
	}

	out := make(map[int][]OtherManagerRow, len(rowsByEntry[entry]))
	for _, row := range rowsByEntry[entry] {
		list := peers[row.Element]
		if list == nil {
			list = []OtherManagerRow{}
		}
		sort.SliceStable(list, func(i, j int) bool {
			a, b := list[i], list[j]
			if a.Row.TotalPointsEarned != b.Row.TotalPointsEarned {
				return a.Row.TotalPointsEarned > b.Row.TotalPointsEarned
			}
			if a.Row.WeeksOwned != b.Row.WeeksOwned {
				return a.Row.WeeksOwned > b.Row.WeeksOwned
			}
			return a.EntryName < b.EntryName
		})
		out[row.Element] = list
	}
	return out
}

// League builds rows and rival rows for every manager in the league.
func League(league *model.League) (map[int][]Row, map[int]ManagerMeta) {
	rows := make(map[int][]Row, len(league.Managers))
	meta := make(map[int]ManagerMeta, len(league.Managers))
	for _, m := range league.Managers {
		rows[m.Entry] = ManagerRows(m.Picks, league.Catalog)
		meta[m.Entry] = ManagerMeta{EntryName: m.EntryName, PlayerName: m.PlayerName}
	}
	return rows, meta
}

// Team is one manager's full breakdown as written to disk and served by the
// team_breakdown tool. OtherManagers is keyed by element id.
type Team struct {
	LeagueID      int                       `json:"league_id"`
	Entry         int                       `json:"entry"`
	EntryName     string                    `json:"entry_name"`
	ManagerName   string                    `json:"manager_name"`
	Rows          []Row                     `json:"rows"`
	OtherManagers map[int][]OtherManagerRow `json:"other_managers"`
}

// ForEntry builds entry's Team from the output of League. It reports false
// when the league has no such entry.
func ForEntry(leagueID int, rows map[int][]Row, meta map[int]ManagerMeta, entry int) (Team, bool) {
	m, ok := meta[entry]
	if !ok {
		return Team{}, false
	}
	own := rows[entry]
	if own == nil {
		own = []Row{}
	}
	return Team{
		LeagueID:      leagueID,
		Entry:         entry,
		EntryName:     m.EntryName,
		ManagerName:   m.PlayerName,
		Rows:          own,
		OtherManagers: OtherManagers(rows, entry, meta),
	}, true
}
