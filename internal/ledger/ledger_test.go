package ledger

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aatrey56/fpl-league-insights/internal/model"
	"github.com/aatrey56/fpl-league-insights/internal/points"
)

// ---------------------------------------------------------------------------
// Parsing
// ---------------------------------------------------------------------------

func TestParseLive(t *testing.T) {
	body := []byte(`{"elements":[
		{"id": 1, "stats": {"minutes": 90, "total_points": 12}},
		{"id": 2, "stats": {"minutes": 0, "total_points": 0}}
	]}`)
	live, err := ParseLive(body)
	require.NoError(t, err)
	assert.Equal(t, map[int]points.LiveStats{
		1: {Minutes: 90, TotalPoints: 12},
		2: {},
	}, live)

	_, err = ParseLive([]byte("{"))
	assert.Error(t, err)
}

func TestParseEntryEvent(t *testing.T) {
	body := []byte(`{
		"active_chip": "bboost",
		"entry_history": {"event": 4, "points": 70},
		"picks": [{"element": 5, "position": 1, "multiplier": 2, "is_captain": true, "is_vice_captain": false}],
		"automatic_subs": [{"entry": 9, "element_in": 7, "element_out": 5, "event": 4}]
	}`)
	raw, err := ParseEntryEvent(body)
	require.NoError(t, err)
	assert.Equal(t, "bboost", raw.ActiveChip)
	require.Len(t, raw.Picks, 1)
	assert.True(t, raw.Picks[0].IsCaptain)
	require.Len(t, raw.AutomaticSubs, 1)
	assert.Equal(t, 7, raw.AutomaticSubs[0].ElementIn)
}

// ---------------------------------------------------------------------------
// BuildPicks
// ---------------------------------------------------------------------------

func TestBuildPicks_JoinsLivePoints(t *testing.T) {
	raw := []EntryPick{
		{Element: 1, Position: 1, Multiplier: 2, IsCaptain: true},
		{Element: 2, Position: 12, Multiplier: 0},
		{Element: 3, Position: 2, Multiplier: 1, IsViceCaptain: true},
	}
	live := map[int]points.LiveStats{1: {TotalPoints: 8}, 2: {TotalPoints: 0}}

	picks := BuildPicks(raw, live)
	require.Len(t, picks, 3)
	require.NotNil(t, picks[0].Points)
	assert.Equal(t, 8, *picks[0].Points)
	assert.True(t, picks[0].IsCaptain)
	require.NotNil(t, picks[1].Points, "zero from the feed is known")
	assert.Equal(t, 0, *picks[1].Points)
	assert.Nil(t, picks[2].Points, "missing from the feed is unknown")
	assert.True(t, picks[2].IsViceCaptain)
}

func TestBuildPicks_NoLiveFeed(t *testing.T) {
	picks := BuildPicks([]EntryPick{{Element: 1, Position: 1, Multiplier: 1}}, nil)
	require.Len(t, picks, 1)
	assert.Nil(t, picks[0].Points)
	assert.Empty(t, BuildPicks(nil, nil))
}

// ---------------------------------------------------------------------------
// Snapshots
// ---------------------------------------------------------------------------

func TestEntrySnapshot_WriteAndRead(t *testing.T) {
	raw := EntryEventRaw{ActiveChip: "3xc", AutomaticSubs: []EntrySub{{ElementIn: 4, ElementOut: 3}}}
	picks := []model.Pick{
		{Element: 1, Position: 1, Multiplier: 3, IsCaptain: true, Points: model.IntPtr(10)},
		{Element: 2, Position: 12, Multiplier: 0, Points: model.IntPtr(6)},
	}
	snap := BuildEntrySnapshot(100, 7, 4, raw, picks)
	assert.Equal(t, 30, snap.Points.TotalPoints)
	assert.Equal(t, 6, snap.Points.BenchWaste)
	assert.NotEmpty(t, snap.GeneratedAtUTC)

	path := filepath.Join(t.TempDir(), "snapshots", "entry", "7", "gw", "4.json")
	require.NoError(t, WriteEntrySnapshot(path, snap))

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	var got EntrySnapshot
	require.NoError(t, json.Unmarshal(b, &got))
	assert.Equal(t, 7, got.EntryID)
	assert.Equal(t, "3xc", got.ActiveChip)
	require.NotNil(t, got.Points)
	assert.Len(t, got.Points.Players, 2)
}
