// Package reconcile checks loaded pick lists against the rules the upstream
// game guarantees and reports what does not line up. Issues are informational;
// analytics still run over the data as loaded.
package reconcile

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/aatrey56/fpl-league-insights/internal/model"
)

// Issue kinds.
const (
	MultipleCaptains      = "multiple_captains"
	MultipleViceCaptains  = "multiple_vice_captains"
	StarterCount          = "starter_count"
	UnknownElement        = "unknown_element"
	MissingPicks          = "missing_picks"
	TransferInNotPicked   = "transfer_in_not_picked"
	TransferOutStillOwned = "transfer_out_still_owned"
)

type EntryIssue struct {
	EntryID  int    `json:"entry_id"`
	Gameweek int    `json:"gameweek"`
	Kind     string `json:"kind"`
	Elements []int  `json:"elements,omitempty"`
	Count    int    `json:"count,omitempty"`
}

type Report struct {
	LeagueID         int          `json:"league_id"`
	GeneratedAtUTC   string       `json:"generated_at_utc"`
	CheckedPickLists int          `json:"checked_pick_lists"`
	Entries          []EntryIssue `json:"entries"`
}

// CountKind returns how many issues of kind the report holds.
func (r *Report) CountKind(kind string) int {
	n := 0
	for _, e := range r.Entries {
		if e.Kind == kind {
			n++
		}
	}
	return n
}

// ForEntry returns the issues reported for one entry.
func (r *Report) ForEntry(entryID int) []EntryIssue {
	out := make([]EntryIssue, 0)
	for _, e := range r.Entries {
		if e.EntryID == entryID {
			out = append(out, e)
		}
	}
	return out
}

// BuildReport checks every manager's pick lists and transfers. A gameweek with
// a history row but no fetched picks is reported as missing.
func BuildReport(league *model.League) *Report {
	report := &Report{
		LeagueID:       league.ID,
		GeneratedAtUTC: time.Now().UTC().Format(time.RFC3339),
		Entries:        make([]EntryIssue, 0),
	}
	known := league.Catalog.PlayerByID()

	for _, m := range league.Managers {
		for _, h := range m.History {
			if _, fetched := m.Picks.Lookup(h.Event); !fetched {
				report.Entries = append(report.Entries, EntryIssue{EntryID: m.Entry, Gameweek: h.Event, Kind: MissingPicks})
			}
		}
		for _, gw := range m.Picks.Events() {
			picks := m.Picks[gw]
			if len(picks) == 0 {
				continue
			}
			report.CheckedPickLists++
			report.Entries = append(report.Entries, checkPicks(m.Entry, gw, picks, known)...)
		}
		report.Entries = append(report.Entries, checkTransfers(m)...)
	}

	sort.SliceStable(report.Entries, func(i, j int) bool {
		a, b := report.Entries[i], report.Entries[j]
		if a.EntryID != b.EntryID {
			return a.EntryID < b.EntryID
		}
		return a.Gameweek < b.Gameweek
	})
	return report
}

func checkPicks(entryID int, gw int, picks []model.Pick, known map[int]model.Player) []EntryIssue {
	var issues []EntryIssue
	captains, vices, starters := 0, 0, 0
	unknown := make([]int, 0)
	for _, p := range picks {
		if p.IsCaptain {
			captains++
		}
		if p.IsViceCaptain {
			vices++
		}
		if p.IsStarter() {
			starters++
		}
		if len(known) > 0 {
			if _, ok := known[p.Element]; !ok {
				unknown = append(unknown, p.Element)
			}
		}
	}
	if captains > 1 {
		issues = append(issues, EntryIssue{EntryID: entryID, Gameweek: gw, Kind: MultipleCaptains, Count: captains})
	}
	if vices > 1 {
		issues = append(issues, EntryIssue{EntryID: entryID, Gameweek: gw, Kind: MultipleViceCaptains, Count: vices})
	}
	if starters != model.StarterCount {
		issues = append(issues, EntryIssue{EntryID: entryID, Gameweek: gw, Kind: StarterCount, Count: starters})
	}
	if len(unknown) > 0 {
		issues = append(issues, EntryIssue{EntryID: entryID, Gameweek: gw, Kind: UnknownElement, Elements: unknown})
	}
	return issues
}

// checkTransfers replays each gameweek's transfers against that gameweek's
// picks: players brought in should be picked, players sold should be gone.
// Gameweeks without fetched picks are skipped.
func checkTransfers(m model.Manager) []EntryIssue {
	type move struct{ in, out []int }
	byEvent := map[int]*move{}
	for _, tr := range m.Transfers {
		mv, ok := byEvent[tr.Event]
		if !ok {
			mv = &move{}
			byEvent[tr.Event] = mv
		}
		mv.in = append(mv.in, tr.ElementIn)
		mv.out = append(mv.out, tr.ElementOut)
	}
	events := make([]int, 0, len(byEvent))
	for gw := range byEvent {
		events = append(events, gw)
	}
	sort.Ints(events)

	var issues []EntryIssue
	for _, gw := range events {
		picks, ok := m.Picks.Usable(gw)
		if !ok {
			continue
		}
		owned := make(map[int]bool, len(picks))
		for _, p := range picks {
			owned[p.Element] = true
		}
		mv := byEvent[gw]
		bought := make(map[int]bool, len(mv.in))
		missing := make([]int, 0)
		for _, el := range mv.in {
			bought[el] = true
			if !owned[el] {
				missing = append(missing, el)
			}
		}
		kept := make([]int, 0)
		for _, el := range mv.out {
			if owned[el] && !bought[el] {
				kept = append(kept, el)
			}
		}
		if len(missing) > 0 {
			issues = append(issues, EntryIssue{EntryID: m.Entry, Gameweek: gw, Kind: TransferInNotPicked, Elements: missing})
		}
		if len(kept) > 0 {
			issues = append(issues, EntryIssue{EntryID: m.Entry, Gameweek: gw, Kind: TransferOutStillOwned, Elements: kept})
		}
	}
	return issues
}

func WriteReport(path string, report *Report) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	b, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return err
	}

	b = append(b, '\n')
	return os.WriteFile(path, b, 0o644)
}
