package ledger

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/aatrey56/fpl-league-insights/internal/model"
	"github.com/aatrey56/fpl-league-insights/internal/points"
)

// EntryEventRaw is /entry/{entry}/event/{gw}/picks as served upstream.
type EntryEventRaw struct {
	ActiveChip    string          `json:"active_chip"`
	EntryHistory  json.RawMessage `json:"entry_history"`
	Picks         []EntryPick     `json:"picks"`
	AutomaticSubs []EntrySub      `json:"automatic_subs"`
}

type EntryPick struct {
	Element       int  `json:"element"`
	IsCaptain     bool `json:"is_captain"`
	IsViceCaptain bool `json:"is_vice_captain"`
	Multiplier    int  `json:"multiplier"`
	Position      int  `json:"position"`
}

type EntrySub struct {
	Entry      int `json:"entry"`
	ElementIn  int `json:"element_in"`
	ElementOut int `json:"element_out"`
	Event      int `json:"event"`
}

// LiveRaw is /event/{gw}/live.
type LiveRaw struct {
	Elements []struct {
		ID    int              `json:"id"`
		Stats points.LiveStats `json:"stats"`
	} `json:"elements"`
}

func ParseEntryEvent(body []byte) (EntryEventRaw, error) {
	var raw EntryEventRaw
	if err := json.Unmarshal(body, &raw); err != nil {
		return EntryEventRaw{}, fmt.Errorf("decode entry event: %w", err)
	}
	return raw, nil
}

// ParseLive indexes a live feed by element id.
func ParseLive(body []byte) (map[int]points.LiveStats, error) {
	var raw LiveRaw
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("decode live: %w", err)
	}
	out := make(map[int]points.LiveStats, len(raw.Elements))
	for _, el := range raw.Elements {
		out[el.ID] = el.Stats
	}
	return out, nil
}

// BuildPicks attaches each element's live total points to the raw picks.
// Elements missing from live (or a nil live feed) get nil points.
func BuildPicks(raw []EntryPick, live map[int]points.LiveStats) []model.Pick {
	out := make([]model.Pick, 0, len(raw))
	for _, p := range raw {
		pick := model.Pick{
			Element:       p.Element,
			Position:      p.Position,
			Multiplier:    p.Multiplier,
			IsCaptain:     p.IsCaptain,
			IsViceCaptain: p.IsViceCaptain,
		}
		if stats, ok := live[p.Element]; ok {
			pick.Points = model.IntPtr(stats.TotalPoints)
		}
		out = append(out, pick)
	}
	return out
}

// EntrySnapshot is one manager's scored gameweek, written to the derived root.
type EntrySnapshot struct {
	LeagueID       int            `json:"league_id"`
	EntryID        int            `json:"entry_id"`
	Gameweek       int            `json:"gameweek"`
	GeneratedAtUTC string         `json:"generated_at_utc"`
	ActiveChip     string         `json:"active_chip,omitempty"`
	Points         *points.Result `json:"points"`
	Subs           []EntrySub     `json:"subs"`
}

func BuildEntrySnapshot(leagueID int, entryID int, gw int, raw EntryEventRaw, picks []model.Pick) *EntrySnapshot {
	return &EntrySnapshot{
		LeagueID:       leagueID,
		EntryID:        entryID,
		Gameweek:       gw,
		GeneratedAtUTC: time.Now().UTC().Format(time.RFC3339),
		ActiveChip:     raw.ActiveChip,
		Points:         points.BuildResult(entryID, gw, picks),
		Subs:           raw.AutomaticSubs,
	}
}

func WriteEntrySnapshot(path string, snapshot *EntrySnapshot) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	b, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return err
	}

	b = append(b, '\n')
	return os.WriteFile(path, b, 0o644)
}
