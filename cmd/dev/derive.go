package main

import (
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/aatrey56/fpl-league-insights/internal/anomalies"
	"github.com/aatrey56/fpl-league-insights/internal/breakdown"
	"github.com/aatrey56/fpl-league-insights/internal/insights"
	"github.com/aatrey56/fpl-league-insights/internal/ledger"
	"github.com/aatrey56/fpl-league-insights/internal/metrics"
	"github.com/aatrey56/fpl-league-insights/internal/model"
	"github.com/aatrey56/fpl-league-insights/internal/reconcile"
	"github.com/aatrey56/fpl-league-insights/internal/store"
)

// deriver writes every derived document for one loaded league.
type deriver struct {
	raw         *store.JSONStore
	derivedRoot string
	metrics     *metrics.Manager
	log         *logrus.Entry
	snapshots   bool
}

func (d *deriver) run(league *model.League, report *reconcile.Report) error {
	out := store.NewJSONStore(d.derivedRoot)
	gw := league.CurrentEvent

	start := time.Now()
	result := insights.Compute(league)
	d.metrics.ObserveComputation("insights", time.Since(start))
	if err := out.WriteJSON(fmt.Sprintf("summary/insights/%d/gw/%d.json", league.ID, gw), result); err != nil {
		return err
	}

	start = time.Now()
	found := anomalies.Find(league)
	d.metrics.ObserveComputation("anomalies", time.Since(start))
	if err := out.WriteJSON(fmt.Sprintf("summary/anomalies/%d/gw/%d.json", league.ID, gw), found); err != nil {
		return err
	}

	start = time.Now()
	rows, meta := breakdown.League(league)
	for _, m := range league.Managers {
		team, _ := breakdown.ForEntry(league.ID, rows, meta, m.Entry)
		if err := out.WriteJSON(fmt.Sprintf("summary/breakdown/%d/entry/%d.json", league.ID, m.Entry), team); err != nil {
			return err
		}
	}
	d.metrics.ObserveComputation("breakdown", time.Since(start))

	if err := reconcile.WriteReport(filepath.Join(d.derivedRoot, fmt.Sprintf("reconcile/%d.json", league.ID)), report); err != nil {
		return err
	}

	written := 0
	if d.snapshots {
		n, err := d.writeSnapshots(league)
		if err != nil {
			return err
		}
		written = n
	}

	d.log.WithFields(logrus.Fields{
		"gameweek":    gw,
		"chip_events": len(result.ChipEvents),
		"issues":      len(report.Entries),
		"snapshots":   written,
	}).Info("derived summaries written")
	return nil
}

// writeSnapshots scores every loaded pick list and writes it next to the raw
// event's chip and automatic subs.
func (d *deriver) writeSnapshots(league *model.League) (int, error) {
	written := 0
	for _, m := range league.Managers {
		for _, gw := range m.Picks.Events() {
			body, err := d.raw.ReadRaw(store.PicksPath(m.Entry, gw))
			if errors.Is(err, store.ErrNotFound) {
				continue
			}
			if err != nil {
				return written, err
			}
			raw, err := ledger.ParseEntryEvent(body)
			if err != nil {
				return written, err
			}

			snap := ledger.BuildEntrySnapshot(league.ID, m.Entry, gw, raw, m.Picks[gw])
			path := filepath.Join(d.derivedRoot, fmt.Sprintf("snapshots/%d/entry/%d/gw/%d.json", league.ID, m.Entry, gw))
			if err := ledger.WriteEntrySnapshot(path, snap); err != nil {
				return written, err
			}
			written++
		}
	}
	return written, nil
}
