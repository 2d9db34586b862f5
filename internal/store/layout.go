package store

import "fmt"

// Relative paths of the raw files under a store root.

func BootstrapPath() string {
	return "bootstrap/bootstrap-static.json"
}

func StandingsPath(leagueID int) string {
	return fmt.Sprintf("league/%d/standings.json", leagueID)
}

func HistoryPath(entryID int) string {
	return fmt.Sprintf("entry/%d/history.json", entryID)
}

func TransfersPath(entryID int) string {
	return fmt.Sprintf("entry/%d/transfers.json", entryID)
}

func PicksPath(entryID int, gw int) string {
	return fmt.Sprintf("entry/%d/gw/%d/picks.json", entryID, gw)
}

func LivePath(gw int) string {
	return fmt.Sprintf("gw/%d/live.json", gw)
}
