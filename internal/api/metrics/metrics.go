// Package metrics defines and registers all custom Prometheus metrics for
// the Airflow gateway. It is the single source of truth for metric names,
// labels, and help strings; metrics register with the default registry at
// package init via promauto.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "airflow_gateway"

// ── Outbound proxy metrics ────────────────────────────────────────────────────

// AirflowRequestsTotal counts outbound calls to the Airflow API.
// Labels:
//   - method: the HTTP verb of the outbound call
//   - status: the numeric response status, or "unreachable" when no
//     response was received at all
var AirflowRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "airflow_requests_total",
		Help:      "Total number of outbound requests to the Airflow REST API.",
	},
	[]string{"method", "status"},
)

// AirflowRequestDuration measures outbound call latency end-to-end.
var AirflowRequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "airflow_request_duration_seconds",
		Help:      "Duration of outbound Airflow calls from send to first response.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"method"},
)

// ── Authentication metrics ────────────────────────────────────────────────────

// TokenRejectionsTotal counts bearer tokens that failed validation. The
// pipeline continues anonymously after a rejection; this counter is the only
// place those failures are visible.
// Label:
//   - reason: "malformed", "signature", "expired", "inactive_user"
var TokenRejectionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "token_rejections_total",
		Help:      "Total number of bearer tokens rejected during authentication.",
	},
	[]string{"reason"},
)

// ── Audit sink metrics ────────────────────────────────────────────────────────

// AuditQueueDepth tracks the number of audit entries waiting to be written.
var AuditQueueDepth = promauto.NewGauge(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "audit_queue_depth",
		Help:      "Current number of action log entries pending in the audit queue.",
	},
)

// AuditWriteFailuresTotal counts audit entries that could not be persisted.
// Failures never affect the primary response; this counter and the server
// log are their only reporting channel.
var AuditWriteFailuresTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "audit_write_failures_total",
		Help:      "Total number of action log entries that failed to persist.",
	},
)

// AuditDroppedTotal counts audit entries dropped because the queue was full.
var AuditDroppedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "audit_dropped_total",
		Help:      "Total number of action log entries dropped due to a full queue.",
	},
)
