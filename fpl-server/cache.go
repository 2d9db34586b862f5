package main

import (
	"context"
	"strconv"
	"time"

	lru "github.com/hashicorp/golang-lru"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/singleflight"

	"github.com/aatrey56/fpl-league-insights/internal/anomalies"
	"github.com/aatrey56/fpl-league-insights/internal/breakdown"
	"github.com/aatrey56/fpl-league-insights/internal/dataset"
	"github.com/aatrey56/fpl-league-insights/internal/insights"
	"github.com/aatrey56/fpl-league-insights/internal/metrics"
	"github.com/aatrey56/fpl-league-insights/internal/model"
	"github.com/aatrey56/fpl-league-insights/internal/reconcile"
	"github.com/aatrey56/fpl-league-insights/internal/store"
)

// analysis is everything the tools serve for one league, computed once per
// standings file version.
type analysis struct {
	League    *model.League
	Report    *reconcile.Report
	Insights  insights.Result
	Anomalies anomalies.SeasonAnomalies
	Rows      map[int][]breakdown.Row
	Meta      map[int]breakdown.ManagerMeta

	stamp time.Time
}

type leagueCache struct {
	st      *store.JSONStore
	lru     *lru.Cache
	group   singleflight.Group
	metrics *metrics.Manager
	log     *logrus.Entry
}

func newLeagueCache(st *store.JSONStore, size int, m *metrics.Manager, log *logrus.Entry) (*leagueCache, error) {
	c, err := lru.New(size)
	if err != nil {
		return nil, err
	}
	return &leagueCache{st: st, lru: c, metrics: m, log: log}, nil
}

// get returns the league's analysis, recomputing it when the cached copy is
// older than the standings file on disk.
func (c *leagueCache) get(ctx context.Context, leagueID int) (*analysis, error) {
	stamp, err := c.st.ModTime(store.StandingsPath(leagueID))
	if err != nil {
		return nil, err
	}
	if v, ok := c.lru.Get(leagueID); ok {
		if a := v.(*analysis); a.stamp.Equal(stamp) {
			c.metrics.CacheHit()
			return a, nil
		}
	}
	c.metrics.CacheMiss()

	v, err, _ := c.group.Do(strconv.Itoa(leagueID), func() (any, error) {
		a, err := c.compute(ctx, leagueID)
		if err != nil {
			return nil, err
		}
		a.stamp = stamp
		c.lru.Add(leagueID, a)
		return a, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*analysis), nil
}

func (c *leagueCache) compute(ctx context.Context, leagueID int) (*analysis, error) {
	start := time.Now()
	league, report, err := dataset.Load(ctx, c.st, leagueID, dataset.Options{Log: c.log})
	if err != nil {
		return nil, err
	}
	c.metrics.ObserveComputation("load", time.Since(start))

	start = time.Now()
	a := &analysis{
		League:    league,
		Report:    report,
		Insights:  insights.Compute(league),
		Anomalies: anomalies.Find(league),
	}
	a.Rows, a.Meta = breakdown.League(league)
	c.metrics.ObserveComputation("analysis", time.Since(start))

	c.log.WithFields(logrus.Fields{
		"league_id": leagueID,
		"managers":  len(league.Managers),
	}).Info("league analysis cached")
	return a, nil
}
