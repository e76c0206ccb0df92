// Package observability provides Prometheus metrics for monitoring.
package observability

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all Prometheus metrics for the application.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	// Simulation metrics
	SimulationsTotal   *prometheus.CounterVec
	SimulationDuration prometheus.Histogram
	SimulatedCells     prometheus.Counter
	KellySolves        prometheus.Counter

	// HTTP metrics
	HTTPRequests *prometheus.CounterVec
	HTTPDuration *prometheus.HistogramVec

	// Storage metrics
	RunsStored prometheus.Counter
}

// NewMetrics registers all metrics on reg. A nil reg uses the default
// Prometheus registerer.
func NewMetrics(namespace string, reg prometheus.Registerer) *Metrics {
	if namespace == "" {
		namespace = "kelly_montecarlo"
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(reg)

	return &Metrics{
		SimulationsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "engine",
			Name:      "simulations_total",
			Help:      "Total number of simulation runs by status",
		}, []string{"status"}),
		SimulationDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "engine",
			Name:      "simulation_duration_seconds",
			Help:      "Wall time of simulation plus analytics",
			Buckets:   prometheus.ExponentialBuckets(0.001, 4, 10),
		}),
		SimulatedCells: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "engine",
			Name:      "simulated_cells_total",
			Help:      "Total simulation x period cells generated",
		}),
		KellySolves: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "kelly",
			Name:      "solves_total",
			Help:      "Total number of standalone Kelly fraction solves",
		}),
		HTTPRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "HTTP requests by method, route and status",
		}, []string{"method", "route", "status"}),
		HTTPDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request latency by route",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
		RunsStored: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "storage",
			Name:      "runs_stored_total",
			Help:      "Total simulation runs persisted",
		}),
	}
}

// Handler returns an HTTP handler for the /metrics endpoint.
func Handler(g prometheus.Gatherer) http.Handler {
	if g == nil {
		return promhttp.Handler()
	}
	return promhttp.HandlerFor(g, promhttp.HandlerOpts{})
}

// RecordSimulation records one finished run.
func (m *Metrics) RecordSimulation(status string, cells int, seconds float64) {
	if m == nil {
		return
	}
	m.SimulationsTotal.WithLabelValues(status).Inc()
	if status == "ok" {
		m.SimulatedCells.Add(float64(cells))
		m.SimulationDuration.Observe(seconds)
	}
}

func (m *Metrics) RecordKellySolve() {
	if m == nil {
		return
	}
	m.KellySolves.Inc()
}

func (m *Metrics) RecordRunStored() {
	if m == nil {
		return
	}
	m.RunsStored.Inc()
}

func (m *Metrics) RecordHTTP(method, route, status string, seconds float64) {
	if m == nil {
		return
	}
	m.HTTPRequests.WithLabelValues(method, route, status).Inc()
	m.HTTPDuration.WithLabelValues(method, route).Observe(seconds)
}
