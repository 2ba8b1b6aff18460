// Package metrics defines and registers the custom Prometheus metrics of the
// tracking API. HTTP request metrics come from echoprometheus; the counters
// here cover authentication and domain outcomes.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "tracking"

// ── Auth metrics ──────────────────────────────────────────────────────────────

// LoginAttemptsTotal counts sign-in attempts.
// Label:
//   - result: "success", "invalid_credentials" or "error"
var LoginAttemptsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "login_attempts_total",
		Help:      "Total number of sign-in attempts, by result.",
	},
	[]string{"result"},
)

// TokenRejectionsTotal counts bearer tokens refused by the auth middleware.
// Label:
//   - reason: "missing", "malformed", "bad_signature", "expired", "unknown_subject", "other"
var TokenRejectionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "token_rejections_total",
		Help:      "Total number of rejected bearer tokens, by internal reason.",
	},
	[]string{"reason"},
)

// AccessDeniedTotal counts authenticated requests refused by the access policy.
// Label:
//   - operation: the protected operation (e.g. "series:write")
var AccessDeniedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "access_denied_total",
		Help:      "Total number of requests denied by role, by operation.",
	},
	[]string{"operation"},
)

// ── Domain metrics ────────────────────────────────────────────────────────────

// RangeViolationsTotal counts measurement writes rejected by series bounds.
// Label:
//   - kind: "BelowMin" or "AboveMax"
var RangeViolationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "range_violations_total",
		Help:      "Total number of measurement values rejected for falling outside series bounds.",
	},
	[]string{"kind"},
)

// WritesTotal counts successful mutations.
// Labels:
//   - entity: "series" or "measurement"
//   - op: "create", "update" or "delete"
var WritesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "writes_total",
		Help:      "Total number of successful writes, by entity and operation.",
	},
	[]string{"entity", "op"},
)
