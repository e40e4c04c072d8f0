// Package metrics provides Prometheus instrumentation for the ledger and
// hold lifecycle engine.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HoldsTotal counts hold lifecycle operations by outcome.
	HoldsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "lockbay_holds_total",
		Help: "Hold operations by op (place/consume/release) and outcome",
	}, []string{"op", "outcome"})

	// IdempotentHits counts duplicate invocations short-circuited by the
	// ledger idempotency check.
	IdempotentHits = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "lockbay_idempotent_hits_total",
		Help: "Duplicate hold operations resolved idempotently",
	}, []string{"op"})

	// RetriesScheduled counts retry scheduling decisions by error code.
	RetriesScheduled = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "lockbay_retries_scheduled_total",
		Help: "Retries scheduled by the orchestrator, by error code",
	}, []string{"code"})

	// RetriesExhausted counts cashouts escalated to admin review.
	RetriesExhausted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "lockbay_retries_exhausted_total",
		Help: "Cashouts finalized to FAILED_HELD after retry exhaustion",
	})

	// DoubleSendBlocked counts retry attempts rejected by the
	// CONSUMED_SENT guard.
	DoubleSendBlocked = promauto.NewCounter(prometheus.CounterOpts{
		Name: "lockbay_double_send_blocked_total",
		Help: "Retry attempts rejected because funds already left the system",
	})

	// Classifications counts classifier outcomes by code and failure type.
	Classifications = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "lockbay_classifications_total",
		Help: "Failure classifications by error code and failure type",
	}, []string{"code", "type"})

	// SweepRuns counts retry sweep executions.
	SweepRuns = promauto.NewCounter(prometheus.CounterOpts{
		Name: "lockbay_sweep_runs_total",
		Help: "Retry sweep executions",
	})

	// SweepDuration tracks how long one sweep takes.
	SweepDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "lockbay_sweep_duration_seconds",
		Help:    "Retry sweep duration in seconds",
		Buckets: prometheus.DefBuckets,
	})

	// WebhooksTotal counts inbound payment webhooks by provider and outcome.
	WebhooksTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "lockbay_webhooks_total",
		Help: "Inbound payment webhooks by provider and outcome",
	}, []string{"provider", "outcome"})

	// SecurityRejections counts hard security rejections on admin-gated ops.
	SecurityRejections = promauto.NewCounter(prometheus.CounterOpts{
		Name: "lockbay_security_rejections_total",
		Help: "Admin-gated operations rejected for failed authorization",
	})

	// HTTPRequestDuration tracks request duration by method and path.
	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "lockbay_http_request_duration_seconds",
		Help:    "HTTP request duration in seconds",
		Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0},
	}, []string{"method", "path"})
)
