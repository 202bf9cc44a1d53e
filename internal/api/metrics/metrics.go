// Package metrics defines and registers all custom Prometheus metrics for the
// blog list API. It is the single source of truth for metric names, labels,
// and help strings.
//
// Metrics are registered with the default Prometheus registry on package
// initialisation via promauto. HTTP request metrics come from echoprometheus
// under the same namespace.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Namespace prefixes every metric the service exposes.
const Namespace = "bloglist"

// ── Identity metrics ──────────────────────────────────────────────────────────

// UsersRegisteredTotal counts successful registrations.
var UsersRegisteredTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: Namespace,
		Name:      "users_registered_total",
		Help:      "Total number of users registered.",
	},
)

// LoginAttemptsTotal counts login attempts.
// Label:
//   - result: "success", "invalid_credentials" or "error"
var LoginAttemptsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: Namespace,
		Name:      "login_attempts_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// ── Blog metrics ──────────────────────────────────────────────────────────────

// BlogsCreatedTotal counts newly created blogs.
var BlogsCreatedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: Namespace,
		Name:      "blogs_created_total",
		Help:      "Total number of blogs created.",
	},
)

// BlogsDeletedTotal counts blogs removed by their owner.
var BlogsDeletedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: Namespace,
		Name:      "blogs_deleted_total",
		Help:      "Total number of blogs deleted.",
	},
)

// OwnershipViolationsTotal counts delete attempts refused because the caller
// does not own the blog.
var OwnershipViolationsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: Namespace,
		Name:      "ownership_violations_total",
		Help:      "Total number of blog deletions refused for a non-owner.",
	},
)
