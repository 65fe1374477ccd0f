package server

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/rshade/puretable/internal/view"
)

const metricsNamespace = "puretable"

// Load outcomes.
const (
	outcomeSuccess = "success"
	outcomeFailure = "failure"
)

// Metrics holds the server's Prometheus collectors on a private registry.
type Metrics struct {
	registry       *prometheus.Registry
	derivations    prometheus.Counter
	deriveDuration prometheus.Histogram
	documentLoads  *prometheus.CounterVec
	requests       *prometheus.CounterVec
}

// NewMetrics registers the collectors. deriver, when non-nil, also exports
// its cache counters.
func NewMetrics(deriver *view.Deriver) *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		derivations: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "derivations_total",
			Help:      "Number of views derived.",
		}),
		deriveDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Name:      "derivation_duration_seconds",
			Help:      "Time spent deriving a view, cache hits included.",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 8), //nolint:mnd // 100µs to ~1.6s.
		}),
		documentLoads: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "document_loads_total",
			Help:      "Document uploads by outcome.",
		}, []string{"outcome"}),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by route and status code.",
		}, []string{"route", "code"}),
	}

	m.registry.MustRegister(
		m.derivations,
		m.deriveDuration,
		m.documentLoads,
		m.requests,
		collectors.NewGoCollector(),
	)

	if deriver != nil {
		m.registry.MustRegister(
			prometheus.NewGaugeFunc(prometheus.GaugeOpts{
				Namespace: metricsNamespace,
				Name:      "view_cache_entries",
				Help:      "Derived views held in the cache.",
			}, func() float64 { return float64(deriver.Stats().Size) }),
			prometheus.NewCounterFunc(prometheus.CounterOpts{
				Namespace: metricsNamespace,
				Name:      "view_cache_hits_total",
				Help:      "Views served from the cache.",
			}, func() float64 { return float64(deriver.Stats().Hits) }),
			prometheus.NewCounterFunc(prometheus.CounterOpts{
				Namespace: metricsNamespace,
				Name:      "view_cache_misses_total",
				Help:      "Views that had to be derived.",
			}, func() float64 { return float64(deriver.Stats().Misses) }),
		)
	}

	// Outcomes are pre-created so they appear at zero.
	m.documentLoads.WithLabelValues(outcomeSuccess)
	m.documentLoads.WithLabelValues(outcomeFailure)

	return m
}

// Registry returns the registry the collectors live on.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}
