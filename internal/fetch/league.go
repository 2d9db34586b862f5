package fetch

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

type LeagueOptions struct {
	Force       bool
	Concurrency int
}

// LeagueReport summarizes a league fetch. Failures lists the non-fatal requests
// that could not be completed.
type LeagueReport struct {
	LeagueID  int      `json:"league_id"`
	Managers  int      `json:"managers"`
	Gameweeks []int    `json:"gameweeks"`
	Failures  []string `json:"failures"`
}

type failures struct {
	mu   sync.Mutex
	list []string
}

func (f *failures) add(format string, args ...any) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.list = append(f.list, fmt.Sprintf(format, args...))
}

// FetchLeague caches everything one league's analysis needs: the bootstrap,
// all standings pages, each played gameweek's live feed, and every manager's
// history, transfers and picks. Bootstrap and standings failures abort; a
// manager's missing transfers or gameweek picks are recorded and skipped.
func (c *Client) FetchLeague(ctx context.Context, leagueID int, opts LeagueOptions) (*LeagueReport, error) {
	log := c.logger().WithField("league_id", leagueID)

	catalog, err := c.BootstrapStatic(ctx, opts.Force)
	if err != nil {
		return nil, fmt.Errorf("bootstrap: %w", err)
	}
	standings, err := c.LeagueStandings(ctx, leagueID, opts.Force)
	if err != nil {
		return nil, fmt.Errorf("standings: %w", err)
	}

	current := catalog.CurrentGameweek()
	gameweeks := make([]int, 0, current)
	for gw := 1; gw <= current; gw++ {
		gameweeks = append(gameweeks, gw)
	}

	report := &LeagueReport{
		LeagueID:  leagueID,
		Managers:  len(standings.Standings.Results),
		Gameweeks: gameweeks,
	}
	failed := &failures{}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(1, opts.Concurrency))

	for _, gw := range gameweeks {
		g.Go(func() error {
			if err := c.EventLive(gctx, gw, opts.Force); err != nil {
				if gctx.Err() != nil {
					return gctx.Err()
				}
				failed.add("live gw %d: %v", gw, err)
			}
			return nil
		})
	}

	for _, row := range standings.Standings.Results {
		entry := row.Entry
		g.Go(func() error {
			return c.fetchManager(gctx, entry, current, opts.Force, failed)
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	sort.Strings(failed.list)
	report.Failures = failed.list
	if report.Failures == nil {
		report.Failures = []string{}
	}
	log.WithFields(logrus.Fields{
		"managers":  report.Managers,
		"gameweeks": len(gameweeks),
		"failures":  len(report.Failures),
	}).Info("league fetched")
	return report, nil
}

// fetchManager only returns an error when the context is done.
func (c *Client) fetchManager(ctx context.Context, entry int, current int, force bool, failed *failures) error {
	history, err := c.EntryHistory(ctx, entry, force)
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		failed.add("history entry %d: %v", entry, err)
		return nil
	}

	if err := c.EntryTransfers(ctx, entry, force); err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		failed.add("transfers entry %d: %v", entry, err)
	}

	for _, h := range history.Current {
		if h.Event > current {
			continue
		}
		if err := c.EntryEventPicks(ctx, entry, h.Event, force); err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			failed.add("picks entry %d gw %d: %v", entry, h.Event, err)
		}
	}
	return nil
}

func (c *Client) logger() *logrus.Entry {
	if c.Log != nil {
		return c.Log
	}
	return logrus.NewEntry(logrus.StandardLogger())
}
