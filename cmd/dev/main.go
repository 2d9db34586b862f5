package main

import (
	"context"
	"errors"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/aatrey56/fpl-league-insights/internal/config"
	"github.com/aatrey56/fpl-league-insights/internal/dataset"
	"github.com/aatrey56/fpl-league-insights/internal/fetch"
	"github.com/aatrey56/fpl-league-insights/internal/logging"
	"github.com/aatrey56/fpl-league-insights/internal/metrics"
	"github.com/aatrey56/fpl-league-insights/internal/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("load config")
	}

	var (
		leagueID    = flag.Int("league", cfg.LeagueID, "classic league id")
		rawRoot     = flag.String("raw-root", cfg.RawRoot, "root directory for raw JSON")
		derivedRoot = flag.String("derived-root", cfg.DerivedRoot, "root directory for derived JSON")
		doFetch     = flag.Bool("fetch", false, "fetch the league from the upstream API before deriving")
		force       = flag.Bool("force", false, "ignore cached raw files when fetching")
		concurrency = flag.Int("concurrency", cfg.FetchConcurrency, "parallel manager fetches")
		intervalMS  = flag.Int("interval-ms", cfg.FetchIntervalMS, "minimum spacing between requests in ms")
		pretty      = flag.Bool("pretty", true, "pretty-print raw JSON to disk")
		snapshots   = flag.Bool("snapshots", true, "write per-entry gameweek point snapshots")
	)
	flag.Parse()

	log := logging.Init(cfg.LogLevel, cfg.LogFormat).WithField("component", "dev")
	if *leagueID <= 0 {
		log.Fatal("league id required: pass -league or set FPL_INSIGHTS_LEAGUE_ID")
	}
	log = log.WithField("league_id", *leagueID)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	st := store.NewJSONStore(*rawRoot)
	m := metrics.NewManager()

	if *doFetch {
		client := fetch.NewClient(st)
		client.BaseURL = cfg.FetchBaseURL
		client.UserAgent = cfg.FetchUserAgent
		client.HTTP.Timeout = time.Duration(cfg.FetchTimeoutS) * time.Second
		client.Retries = cfg.FetchRetries
		client.PrettyWrite = *pretty
		client.Metrics = m
		client.Log = log.WithField("component", "fetch")
		client.SetInterval(time.Duration(*intervalMS) * time.Millisecond)

		start := time.Now()
		report, err := client.FetchLeague(ctx, *leagueID, fetch.LeagueOptions{Force: *force, Concurrency: *concurrency})
		if err != nil {
			log.WithError(err).Fatal("fetch league")
		}
		m.ObserveComputation("fetch", time.Since(start))
		for _, f := range report.Failures {
			log.WithField("failure", f).Warn("fetch incomplete")
		}
	}

	league, report, err := dataset.Load(ctx, st, *leagueID, dataset.Options{Log: log})
	if err != nil {
		if errors.Is(err, dataset.ErrNoStandings) || errors.Is(err, store.ErrNotFound) {
			log.WithError(err).Fatal("missing cached data; run with -fetch")
		}
		log.WithError(err).Fatal("load league")
	}

	d := &deriver{
		raw:         st,
		derivedRoot: *derivedRoot,
		metrics:     m,
		log:         log,
		snapshots:   *snapshots,
	}
	if err := d.run(league, report); err != nil {
		log.WithError(err).Fatal("derive")
	}
	log.WithField("managers", len(league.Managers)).Info("done")
}
