package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// AuthAttempts records authentication attempts by result (success|failure).
	AuthAttempts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "progtrack_auth_attempts_total",
			Help: "Total number of authentication attempts",
		},
		[]string{"result"},
	)

	// AuditEntriesRecorded counts audit entries persisted, by entity kind and action.
	AuditEntriesRecorded = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "progtrack_audit_entries_total",
			Help: "Total number of audit entries recorded",
		},
		[]string{"entity", "action"},
	)

	// AuditWriteFailures counts audit persistence failures that were swallowed.
	AuditWriteFailures = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "progtrack_audit_write_failures_total",
			Help: "Total number of audit writes that failed and were dropped",
		},
	)

	// ReviewTransitions counts review decisions by entity kind and resulting status.
	ReviewTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "progtrack_review_transitions_total",
			Help: "Total number of review status transitions",
		},
		[]string{"entity", "status"},
	)

	// APILatency measures HTTP request latencies.
	APILatency = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "progtrack_api_latency_seconds",
			Help:    "API endpoint latency",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)
)
