package main

import (
	"flag"
	"path/filepath"

	"github.com/sirupsen/logrus"

	"github.com/aatrey56/fpl-league-insights/internal/config"
	"github.com/aatrey56/fpl-league-insights/internal/logging"
	"github.com/aatrey56/fpl-league-insights/internal/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("load config")
	}

	var (
		rawRoot  = flag.String("raw-root", cfg.RawRoot, "root directory for raw JSON")
		outPath  = flag.String("out", filepath.Join(cfg.DerivedRoot, "schema_inventory.json"), "output path")
		maxFiles = flag.Int("max-files", 0, "max files per endpoint (0 = no limit)")
	)
	flag.Parse()

	log := logging.Init(cfg.LogLevel, cfg.LogFormat).WithField("component", "schema-inventory")
	inv := buildInventory(*rawRoot, *maxFiles, log)

	out := store.NewJSONStore(filepath.Dir(*outPath))
	if err := out.WriteJSON(filepath.Base(*outPath), inv); err != nil {
		log.WithError(err).Fatal("write inventory")
	}
	log.WithFields(logrus.Fields{"out": *outPath, "endpoints": len(inv.Endpoints)}).Info("inventory written")
}
