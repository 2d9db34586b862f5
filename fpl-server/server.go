package main

import (
	"crypto/subtle"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/sirupsen/logrus"

	"github.com/aatrey56/fpl-league-insights/internal/breakdown"
	"github.com/aatrey56/fpl-league-insights/internal/config"
	"github.com/aatrey56/fpl-league-insights/internal/insights"
	"github.com/aatrey56/fpl-league-insights/internal/logging"
	"github.com/aatrey56/fpl-league-insights/internal/metrics"
	"github.com/aatrey56/fpl-league-insights/internal/store"
)

const requestIDHeader = "X-Request-ID"

type server struct {
	cfg      *config.Config
	mcp      *mcp.Server
	cache    *leagueCache
	metrics  *metrics.Manager
	log      *logrus.Entry
	registry []toolInfo
}

func newServer(cfg *config.Config, m *metrics.Manager, log *logrus.Entry) (*server, error) {
	cache, err := newLeagueCache(store.NewJSONStore(cfg.RawRoot), cfg.CacheSize, m, log.WithField("component", "cache"))
	if err != nil {
		return nil, err
	}
	s := &server{
		cfg: cfg,
		mcp: mcp.NewServer(
			&mcp.Implementation{
				Name:    "fpl-league-insights",
				Version: "0.1.0",
			},
			nil,
		),
		cache:    cache,
		metrics:  m,
		log:      log,
		registry: make([]toolInfo, 0, 8),
	}
	s.registerTools()
	return s, nil
}

// routes mounts /health, /tools, /metrics and the MCP endpoint behind the
// request-id and auth middleware.
func (s *server) routes() http.Handler {
	handler := mcp.NewStreamableHTTPHandler(func(r *http.Request) *mcp.Server {
		return s.mcp
	}, &mcp.StreamableHTTPOptions{JSONResponse: true})

	mux := http.NewServeMux()
	mux.HandleFunc("/health", s.withAuth(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	}))
	mux.HandleFunc("/tools", s.withAuth(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		b, _ := json.MarshalIndent(map[string]any{"tools": s.registry}, "", "  ")
		w.Write(b)
	}))
	mux.Handle("/metrics", s.withAuth(s.metrics.Handler().ServeHTTP))
	mux.HandleFunc(s.cfg.MCPPath, s.withAuth(handler.ServeHTTP))
	return s.withRequestID(mux)
}

func (s *server) withRequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := strings.TrimSpace(r.Header.Get(requestIDHeader))
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set(requestIDHeader, id)
		logging.WithRequestID(id).WithFields(logrus.Fields{
			"method": r.Method,
			"path":   r.URL.Path,
		}).Debug("request")
		next.ServeHTTP(w, r)
	})
}

// withAuth accepts the key from the configured header or a bearer token. With
// auth disabled every request passes.
func (s *server) withAuth(next http.HandlerFunc) http.HandlerFunc {
	apiKey := strings.TrimSpace(s.cfg.APIKey)
	return func(w http.ResponseWriter, r *http.Request) {
		if !s.cfg.RequireAuth || apiKey == "" {
			next(w, r)
			return
		}
		key := strings.TrimSpace(r.Header.Get(s.cfg.AuthHeader))
		if key == "" {
			if authz := r.Header.Get("Authorization"); strings.HasPrefix(strings.ToLower(authz), "bearer ") {
				key = strings.TrimSpace(authz[7:])
			}
		}
		if subtle.ConstantTimeCompare([]byte(key), []byte(apiKey)) != 1 {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte(`{"error":"unauthorized"}`))
			return
		}
		next(w, r)
	}
}

func chipEventsForEntry(a *analysis, entry int) []insights.ChipEvent {
	out := make([]insights.ChipEvent, 0)
	for _, ev := range a.Insights.ChipEvents {
		if ev.Entry == entry {
			out = append(out, ev)
		}
	}
	return out
}

func breakdownFor(a *analysis, entry int) (breakdown.Team, bool) {
	return breakdown.ForEntry(a.League.ID, a.Rows, a.Meta, entry)
}
