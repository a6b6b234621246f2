// Package metrics owns the Prometheus registry and every collector the api
// and worker binaries export.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Metrics struct {
	registry *prometheus.Registry

	RequestTotal     *prometheus.CounterVec
	RequestDuration  *prometheus.HistogramVec
	BidsPlaced       prometheus.Counter
	BidsRejected     *prometheus.CounterVec
	BidStatusChanges *prometheus.CounterVec
	DriftedJobs      prometheus.Gauge
	OrphanedBids     prometheus.Gauge
	AuditRuns        *prometheus.CounterVec
}

func New() *Metrics {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	m := &Metrics{
		registry: registry,
		RequestTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "bidboard_http_requests_total",
			Help: "Total HTTP requests handled by the API.",
		}, []string{"method", "route", "status"}),
		RequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "bidboard_http_request_duration_seconds",
			Help:    "API request latency in seconds.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route", "status"}),
		BidsPlaced: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "bidboard_bids_placed_total",
			Help: "Bids stored together with their bid_count increment.",
		}),
		BidsRejected: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "bidboard_bids_rejected_total",
			Help: "Bid placements refused by the store.",
		}, []string{"reason"}),
		BidStatusChanges: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "bidboard_bid_status_changes_total",
			Help: "Successful bid status transitions by target status.",
		}, []string{"to"}),
		DriftedJobs: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "bidboard_bid_count_drift_jobs",
			Help: "Jobs whose bid_count disagreed with their bids at the last audit.",
		}),
		OrphanedBids: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "bidboard_orphaned_bids",
			Help: "Bids referencing a deleted job at the last audit.",
		}),
		AuditRuns: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "bidboard_audit_runs_total",
			Help: "Drift audit passes by outcome.",
		}, []string{"outcome"}),
	}
	registry.MustRegister(
		m.RequestTotal,
		m.RequestDuration,
		m.BidsPlaced,
		m.BidsRejected,
		m.BidStatusChanges,
		m.DriftedJobs,
		m.OrphanedBids,
		m.AuditRuns,
	)
	return m
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Registry exposes the underlying registry, mainly for tests.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// The helpers below are nil-safe so services can run without metrics.

func (m *Metrics) BidPlaced() {
	if m == nil {
		return
	}
	m.BidsPlaced.Inc()
}

func (m *Metrics) BidRejected(reason string) {
	if m == nil {
		return
	}
	m.BidsRejected.WithLabelValues(reason).Inc()
}

func (m *Metrics) StatusChanged(to string) {
	if m == nil {
		return
	}
	m.BidStatusChanges.WithLabelValues(to).Inc()
}
