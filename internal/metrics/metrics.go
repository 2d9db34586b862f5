// Package metrics exposes Prometheus metrics for computations, MCP tool calls,
// the result cache and upstream fetches.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "fpl_insights"

// Manager owns a registry and the metrics registered on it.
type Manager struct {
	registry *prometheus.Registry

	computations        *prometheus.CounterVec
	computationDuration *prometheus.HistogramVec
	toolCalls           *prometheus.CounterVec
	toolErrors          *prometheus.CounterVec
	cacheHits           prometheus.Counter
	cacheMisses         prometheus.Counter
	fetches             *prometheus.CounterVec
}

// NewManager registers every metric on a fresh registry.
func NewManager() *Manager {
	reg := prometheus.NewRegistry()
	auto := promauto.With(reg)
	return &Manager{
		registry: reg,
		computations: auto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "computations_total",
			Help:      "Analytics computations run, by kind.",
		}, []string{"kind"}),
		computationDuration: auto.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "computation_duration_seconds",
			Help:      "Analytics computation duration, by kind.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"kind"}),
		toolCalls: auto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "tool_calls_total",
			Help:      "MCP tool calls, by tool.",
		}, []string{"tool"}),
		toolErrors: auto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "tool_errors_total",
			Help:      "MCP tool calls that returned an error result, by tool.",
		}, []string{"tool"}),
		cacheHits: auto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_hits_total",
			Help:      "League result cache hits.",
		}),
		cacheMisses: auto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_misses_total",
			Help:      "League result cache misses.",
		}),
		fetches: auto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "upstream_fetches_total",
			Help:      "Upstream API requests, by status code (0 for transport errors).",
		}, []string{"status"}),
	}
}

// ObserveComputation records one computation of kind that took d.
func (m *Manager) ObserveComputation(kind string, d time.Duration) {
	if m == nil {
		return
	}
	m.computations.WithLabelValues(kind).Inc()
	m.computationDuration.WithLabelValues(kind).Observe(d.Seconds())
}

func (m *Manager) ToolCall(tool string, failed bool) {
	if m == nil {
		return
	}
	m.toolCalls.WithLabelValues(tool).Inc()
	if failed {
		m.toolErrors.WithLabelValues(tool).Inc()
	}
}

func (m *Manager) CacheHit() {
	if m == nil {
		return
	}
	m.cacheHits.Inc()
}

func (m *Manager) CacheMiss() {
	if m == nil {
		return
	}
	m.cacheMisses.Inc()
}

// Fetch records an upstream response status.
func (m *Manager) Fetch(status int) {
	if m == nil {
		return
	}
	m.fetches.WithLabelValues(strconv.Itoa(status)).Inc()
}

// Registry exposes the registry for gathering in tests.
func (m *Manager) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus text format.
func (m *Manager) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
