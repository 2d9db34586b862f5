// Package dataset materializes a model.League from the raw store.
package dataset

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/sirupsen/logrus"

	"github.com/aatrey56/fpl-league-insights/internal/ledger"
	"github.com/aatrey56/fpl-league-insights/internal/logging"
	"github.com/aatrey56/fpl-league-insights/internal/model"
	"github.com/aatrey56/fpl-league-insights/internal/points"
	"github.com/aatrey56/fpl-league-insights/internal/reconcile"
	"github.com/aatrey56/fpl-league-insights/internal/store"
)

// ErrNoStandings is returned when the league's standings were never fetched.
var ErrNoStandings = errors.New("dataset: no standings for league")

type Options struct {
	// Log receives debug lines for optional files that are missing.
	Log *logrus.Entry
}

// Load reads everything cached for leagueID. Bootstrap and standings are
// required; a manager's missing history, transfers, picks or live feed only
// leaves that data out.
func Load(ctx context.Context, st *store.JSONStore, leagueID int, opts Options) (*model.League, *reconcile.Report, error) {
	log := opts.Log
	if log == nil {
		log = logging.WithComponent("dataset")
	}
	log = log.WithField("league_id", leagueID)

	var catalog model.Catalog
	if err := st.ReadJSON(store.BootstrapPath(), &catalog); err != nil {
		return nil, nil, fmt.Errorf("load bootstrap: %w", err)
	}

	var standings model.StandingsDoc
	if err := st.ReadJSON(store.StandingsPath(leagueID), &standings); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, nil, fmt.Errorf("%w %d", ErrNoStandings, leagueID)
		}
		return nil, nil, fmt.Errorf("load standings: %w", err)
	}

	l := &loader{st: st, log: log, live: make(map[int]map[int]points.LiveStats)}
	league := &model.League{
		ID:           leagueID,
		Name:         standings.League.Name,
		Managers:     make([]model.Manager, 0, len(standings.Standings.Results)),
		Catalog:      &catalog,
		CurrentEvent: catalog.CurrentGameweek(),
	}

	for _, row := range standings.Standings.Results {
		if err := ctx.Err(); err != nil {
			return nil, nil, err
		}
		m, err := l.manager(row)
		if err != nil {
			return nil, nil, err
		}
		league.Managers = append(league.Managers, m)
	}

	sort.SliceStable(league.Managers, func(i, j int) bool {
		return league.Managers[i].Rank < league.Managers[j].Rank
	})

	report := reconcile.BuildReport(league)
	if len(report.Entries) > 0 {
		log.WithField("issues", len(report.Entries)).Warn("pick data issues found")
	}
	log.WithFields(logrus.Fields{
		"managers":      len(league.Managers),
		"current_event": league.CurrentEvent,
	}).Debug("league loaded")
	return league, report, nil
}

type loader struct {
	st  *store.JSONStore
	log *logrus.Entry

	// live feeds by gameweek; nil when the feed is missing
	live map[int]map[int]points.LiveStats
}

func (l *loader) manager(row model.StandingsRow) (model.Manager, error) {
	m := model.Manager{
		Entry:      row.Entry,
		PlayerName: row.PlayerName,
		EntryName:  row.EntryName,
		Rank:       row.Rank,
		LastRank:   row.LastRank,
		Total:      row.Total,
		EventTotal: row.EventTotal,
		History:    []model.GameweekHistory{},
		Chips:      []model.ChipUsage{},
		Picks:      model.PicksByEvent{},
		Transfers:  []model.Transfer{},
	}
	log := l.log.WithField("entry_id", row.Entry)

	var history model.HistoryDoc
	switch err := l.st.ReadJSON(store.HistoryPath(row.Entry), &history); {
	case errors.Is(err, store.ErrNotFound):
		log.Debug("history missing")
	case err != nil:
		return m, err
	default:
		if history.Current != nil {
			m.History = history.Current
		}
		if history.Chips != nil {
			m.Chips = history.Chips
		}
	}

	switch err := l.st.ReadJSON(store.TransfersPath(row.Entry), &m.Transfers); {
	case errors.Is(err, store.ErrNotFound):
		log.Debug("transfers missing")
	case err != nil:
		return m, err
	}
	if m.Transfers == nil {
		m.Transfers = []model.Transfer{}
	}

	for _, h := range m.History {
		body, err := l.st.ReadRaw(store.PicksPath(row.Entry, h.Event))
		if errors.Is(err, store.ErrNotFound) {
			log.WithField("gameweek", h.Event).Debug("picks missing")
			continue
		}
		if err != nil {
			return m, err
		}
		raw, err := ledger.ParseEntryEvent(body)
		if err != nil {
			return m, fmt.Errorf("entry %d gw %d: %w", row.Entry, h.Event, err)
		}
		live, err := l.liveFor(h.Event)
		if err != nil {
			return m, err
		}
		m.Picks[h.Event] = ledger.BuildPicks(raw.Picks, live)
	}
	return m, nil
}

func (l *loader) liveFor(gw int) (map[int]points.LiveStats, error) {
	if live, ok := l.live[gw]; ok {
		return live, nil
	}
	body, err := l.st.ReadRaw(store.LivePath(gw))
	if errors.Is(err, store.ErrNotFound) {
		l.log.WithField("gameweek", gw).Debug("live feed missing")
		l.live[gw] = nil
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	live, err := ledger.ParseLive(body)
	if err != nil {
		return nil, fmt.Errorf("gw %d: %w", gw, err)
	}
	l.live[gw] = live
	return live, nil
}
