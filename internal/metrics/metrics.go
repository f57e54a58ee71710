// Package metrics provides Prometheus metrics for the pulse service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "pulse"

// HTTP metrics
var (
	// HTTPRequestsTotal counts HTTP requests by method, path, and status.
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	// HTTPRequestDuration tracks HTTP request latency.
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request latency in seconds",
			Buckets:   []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
		},
		[]string{"method", "path"},
	)
)

// Engine metrics
var (
	// SnapshotsTotal counts completed snapshot passes by outcome.
	SnapshotsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "engine",
			Name:      "snapshots_total",
			Help:      "Total snapshot passes (fetch + analyze + evaluate)",
		},
		[]string{"outcome"},
	)

	// ProjectsByHealth tracks the current project count per health label.
	ProjectsByHealth = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "engine",
			Name:      "projects_by_health",
			Help:      "Projects in the latest snapshot, by health classification",
		},
		[]string{"health"},
	)

	// AlertsGenerated tracks alerts produced in the latest snapshot, by severity.
	AlertsGenerated = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "engine",
			Name:      "alerts_generated",
			Help:      "Alerts produced in the latest snapshot, by severity",
		},
		[]string{"severity"},
	)

	// AnalyzerRequestsTotal counts external analyzer calls by outcome.
	AnalyzerRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "analyzer",
			Name:      "requests_total",
			Help:      "External analyzer calls by outcome",
		},
		[]string{"outcome"},
	)

	// DismissalsTotal counts user alert dismissals.
	DismissalsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "alerts",
			Name:      "dismissals_total",
			Help:      "Total alert dismissals recorded",
		},
	)
)
