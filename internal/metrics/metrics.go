// Package metrics holds the Prometheus collectors exported on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Engagement lifecycle
var (
	// ItemsCreated counts user-submitted reviews and comments by kind and sentiment.
	ItemsCreated = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "engagement_items_created_total",
			Help: "User-submitted engagement items by kind and sentiment",
		},
		[]string{"kind", "sentiment"},
	)

	// ItemsExpired counts rows physically removed by the expiry sweep.
	ItemsExpired = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "engagement_items_expired_total",
			Help: "Expired engagement items removed by the sweep",
		},
		[]string{"kind"},
	)

	SweepFailures = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "engagement_sweep_failures_total",
			Help: "Expiry sweep runs that returned an error",
		},
	)

	SweepDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "engagement_sweep_duration_seconds",
			Help:    "Expiry sweep duration in seconds",
			Buckets: []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5},
		},
	)

	// SyntheticCreated counts generated items by kind and text source (ai/template).
	SyntheticCreated = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "engagement_synthetic_created_total",
			Help: "Synthetic engagement items created by kind and text source",
		},
		[]string{"kind", "source"},
	)
)

// AI text generation
var (
	AIRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ai_requests_total",
			Help: "AI text generation requests by result",
		},
		[]string{"result"},
	)

	// CircuitBreakerState tracks the AI breaker (0=closed, 1=half-open, 2=open).
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "Current circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"component"},
	)
)

// Scheduler
var JobRuns = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "scheduler_job_runs_total",
		Help: "Scheduled job runs by job and status",
	},
	[]string{"job", "status"},
)
