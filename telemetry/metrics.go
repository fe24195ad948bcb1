// Package telemetry registers the Prometheus collectors for recon runs and HTTP traffic.
package telemetry

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	globalMetrics *Metrics
	metricsOnce   sync.Once
)

// Metrics holds the process-wide collectors
type Metrics struct {
	ReconRunsTotal     *prometheus.CounterVec
	ReconSearchesTotal *prometheus.CounterVec
	ReconRunDuration   prometheus.Histogram
	HTTPRequestsTotal  *prometheus.CounterVec
}

// NewMetrics returns the collectors, registering them on first use.
//
// Metrics:
//   - recon_runs_total{status} - recon runs by outcome (sent, config_error, delivery_error)
//   - recon_target_searches_total{outcome} - per-target lookups (results, empty, api_error, error)
//   - recon_run_duration_seconds - wall time of a recon run
//   - http_requests_total{method,route,status} - handled HTTP requests
func NewMetrics() *Metrics {
	metricsOnce.Do(func() {
		globalMetrics = &Metrics{
			ReconRunsTotal: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Name: "recon_runs_total",
					Help: "Total number of recon runs by status",
				},
				[]string{"status"},
			),
			ReconSearchesTotal: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Name: "recon_target_searches_total",
					Help: "Total number of per-target recon searches by outcome",
				},
				[]string{"outcome"},
			),
			ReconRunDuration: promauto.NewHistogram(
				prometheus.HistogramOpts{
					Name:    "recon_run_duration_seconds",
					Help:    "Duration of recon runs in seconds",
					Buckets: prometheus.ExponentialBuckets(0.1, 2, 10),
				},
			),
			HTTPRequestsTotal: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Name: "http_requests_total",
					Help: "Total number of HTTP requests handled",
				},
				[]string{"method", "route", "status"},
			),
		}
	})

	return globalMetrics
}

// RecordReconRun records a finished run
func (m *Metrics) RecordReconRun(status string, durationSeconds float64) {
	m.ReconRunsTotal.WithLabelValues(status).Inc()
	m.ReconRunDuration.Observe(durationSeconds)
}

// RecordSearch records one target lookup
func (m *Metrics) RecordSearch(outcome string) {
	m.ReconSearchesTotal.WithLabelValues(outcome).Inc()
}

// RecordRequest records one HTTP request
func (m *Metrics) RecordRequest(method, route, status string) {
	m.HTTPRequestsTotal.WithLabelValues(method, route, status).Inc()
}
