// Package metrics instruments the search pipeline with Prometheus
// collectors. Everything registers on a private registry so embedding
// the service in tests or other binaries never trips duplicate
// registration.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the pipeline's collectors. A nil *Metrics is valid
// and records nothing, so instrumentation stays optional.
type Metrics struct {
	registry      *prometheus.Registry
	ingests       *prometheus.CounterVec
	queries       *prometheus.CounterVec
	queryDuration prometheus.Histogram
	indexEntries  prometheus.Gauge
	fetchCache    *prometheus.CounterVec
}

// New creates the collector set on a fresh registry.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		ingests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "loupe_ingests_total",
				Help: "Total number of document ingests by status",
			},
			[]string{"status"},
		),
		queries: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "loupe_queries_total",
				Help: "Total number of search queries by status",
			},
			[]string{"status"},
		),
		queryDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "loupe_query_duration_seconds",
				Help:    "Search query latency in seconds",
				Buckets: prometheus.ExponentialBuckets(0.0005, 2, 14), // 0.5ms to ~4s
			},
		),
		indexEntries: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "loupe_index_entries",
				Help: "Number of entries in the vector index",
			},
		),
		fetchCache: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "loupe_fetch_cache_total",
				Help: "Fetch cache lookups by result",
			},
			[]string{"result"},
		),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		m.ingests,
		m.queries,
		m.queryDuration,
		m.indexEntries,
		m.fetchCache,
	)
	return m
}

// RecordIngest counts one ingest attempt.
func (m *Metrics) RecordIngest(err error) {
	if m == nil {
		return
	}
	m.ingests.WithLabelValues(statusLabel(err)).Inc()
}

// RecordQuery counts one query and, when it succeeded, observes its
// latency.
func (m *Metrics) RecordQuery(duration time.Duration, err error) {
	if m == nil {
		return
	}
	m.queries.WithLabelValues(statusLabel(err)).Inc()
	if err == nil {
		m.queryDuration.Observe(duration.Seconds())
	}
}

// SetIndexEntries records the current vector index size.
func (m *Metrics) SetIndexEntries(n int) {
	if m == nil {
		return
	}
	m.indexEntries.Set(float64(n))
}

// RecordFetchCache counts one fetch cache lookup.
func (m *Metrics) RecordFetchCache(hit bool) {
	if m == nil {
		return
	}
	result := "miss"
	if hit {
		result = "hit"
	}
	m.fetchCache.WithLabelValues(result).Inc()
}

// Handler serves the registry in Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func statusLabel(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}
