// Package observability provides Prometheus metrics for the simulator API.
package observability

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all Prometheus metrics for the application.
type Metrics struct {
	registry *prometheus.Registry

	// HTTP metrics
	HTTPRequests *prometheus.CounterVec
	HTTPDuration *prometheus.HistogramVec

	// Simulation metrics
	SimulationsRun     *prometheus.CounterVec
	SimulationDuration *prometheus.HistogramVec
	TrialsSimulated    prometheus.Counter
	UndefinedIRR       prometheus.Counter
	CacheHits          *prometheus.CounterVec
	PortfolioStoreSize prometheus.Gauge
}

// NewMetrics registers every metric on a fresh registry, so several
// instances (e.g. in tests) never collide.
func NewMetrics(namespace string) *Metrics {
	if namespace == "" {
		namespace = "realestate_sim"
	}
	reg := prometheus.NewRegistry()
	f := promauto.With(reg)

	return &Metrics{
		registry: reg,

		HTTPRequests: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total HTTP requests by route, method and status",
		}, []string{"route", "method", "status"}),
		HTTPDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request latency",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route", "method"}),

		SimulationsRun: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "simulation",
			Name:      "runs_total",
			Help:      "Simulation requests by kind (property, portfolio)",
		}, []string{"kind"}),
		SimulationDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "simulation",
			Name:      "duration_seconds",
			Help:      "Wall time of a simulation request",
			Buckets:   []float64{.001, .005, .01, .05, .1, .5, 1, 2.5, 5, 10, 30},
		}, []string{"kind"}),
		TrialsSimulated: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "simulation",
			Name:      "portfolio_trials_total",
			Help:      "Monte Carlo portfolio trials executed",
		}),
		UndefinedIRR: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "simulation",
			Name:      "irr_undefined_total",
			Help:      "Property runs where the IRR solver found no root",
		}),
		CacheHits: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "cache",
			Name:      "lookups_total",
			Help:      "Result cache lookups by outcome (hit, miss)",
		}, []string{"outcome"}),
		PortfolioStoreSize: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "portfolio",
			Name:      "entries",
			Help:      "Entries currently in the saved portfolio",
		}),
	}
}

// Registry exposes the underlying registry (tests gather from it).
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler returns the /metrics HTTP handler.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// ObserveSimulation records one simulation request. A nil receiver is a no-op.
func (m *Metrics) ObserveSimulation(kind string, started time.Time, trials int) {
	if m == nil {
		return
	}
	m.SimulationsRun.WithLabelValues(kind).Inc()
	m.SimulationDuration.WithLabelValues(kind).Observe(time.Since(started).Seconds())
	if trials > 0 {
		m.TrialsSimulated.Add(float64(trials))
	}
}

func (m *Metrics) ObserveCache(hit bool) {
	if m == nil {
		return
	}
	if hit {
		m.CacheHits.WithLabelValues("hit").Inc()
		return
	}
	m.CacheHits.WithLabelValues("miss").Inc()
}

func (m *Metrics) ObserveUndefinedIRR() {
	if m == nil {
		return
	}
	m.UndefinedIRR.Inc()
}

func (m *Metrics) SetPortfolioSize(n int) {
	if m == nil {
		return
	}
	m.PortfolioStoreSize.Set(float64(n))
}

// ObserveRequest records one HTTP request.
func (m *Metrics) ObserveRequest(route, method string, status int, d time.Duration) {
	if m == nil {
		return
	}
	m.HTTPRequests.WithLabelValues(route, method, http.StatusText(status)).Inc()
	m.HTTPDuration.WithLabelValues(route, method).Observe(d.Seconds())
}
