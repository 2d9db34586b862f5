package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/aatrey56/fpl-league-insights/internal/config"
	"github.com/aatrey56/fpl-league-insights/internal/logging"
	"github.com/aatrey56/fpl-league-insights/internal/metrics"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("load config")
	}

	flag.StringVar(&cfg.Addr, "addr", cfg.Addr, "HTTP listen address")
	flag.StringVar(&cfg.MCPPath, "path", cfg.MCPPath, "HTTP path for MCP endpoint")
	flag.StringVar(&cfg.RawRoot, "raw-root", cfg.RawRoot, "root directory for raw JSON")
	flag.IntVar(&cfg.LeagueID, "league", cfg.LeagueID, "default classic league id")
	flag.BoolVar(&cfg.RequireAuth, "require-auth", cfg.RequireAuth, "require API key auth (FPL_INSIGHTS_API_KEY)")
	flag.StringVar(&cfg.AuthHeader, "auth-header", cfg.AuthHeader, "HTTP header to read API key from")
	flag.Parse()

	log := logging.Init(cfg.LogLevel, cfg.LogFormat).WithField("component", "fpl-server")
	if err := cfg.Validate(); err != nil {
		log.WithError(err).Fatal("invalid config")
	}

	srv, err := newServer(cfg, metrics.NewManager(), log)
	if err != nil {
		log.WithError(err).Fatal("build server")
	}

	httpServer := &http.Server{
		Addr:              cfg.Addr,
		Handler:           srv.routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			log.WithError(err).Warn("shutdown")
		}
	}()

	log.WithFields(logrus.Fields{"addr": cfg.Addr, "path": cfg.MCPPath, "tools": len(srv.registry)}).Info("MCP HTTP server listening")
	if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.WithError(err).Fatal("listen")
	}
}
