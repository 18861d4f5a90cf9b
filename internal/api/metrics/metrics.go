// Package metrics defines and registers all custom Prometheus metrics for the
// Mentawai Shores web service. It is the single source of truth for metric
// names, labels, and help strings.
//
// Metrics are registered with the default Prometheus registry on package
// initialisation (promauto) and exposed on GET /metrics.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "mentawai"

// ── Inbound HTTP ──────────────────────────────────────────────────────────────

// HTTPRequestsTotal counts requests served by the web service.
// Labels:
//   - method: HTTP method
//   - route: echo route template (e.g. "/properties/:property")
//   - status: response status code
var HTTPRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "http_requests_total",
		Help:      "Total number of HTTP requests served, by method, route and status.",
	},
	[]string{"method", "route", "status"},
)

// HTTPRequestDuration measures inbound request latency.
var HTTPRequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "http_request_duration_seconds",
		Help:      "Duration of HTTP requests served, by method and route.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"method", "route"},
)

// ── Upstream marketplace API ──────────────────────────────────────────────────

// UpstreamRequestDuration measures calls made by the API client.
// Labels:
//   - method: HTTP method
//   - route: API path template (e.g. "/properties/{id}")
//   - status: upstream status code, or "error" when no response arrived
var UpstreamRequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "upstream_request_duration_seconds",
		Help:      "Duration of marketplace API calls, by method, route and status.",
		Buckets:   prometheus.DefBuckets, // .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10
	},
	[]string{"method", "route", "status"},
)

// UpstreamAuthExpiredTotal counts 401 answers that ended a session.
var UpstreamAuthExpiredTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "upstream_auth_expired_total",
		Help:      "Total number of upstream 401 responses, by API route.",
	},
	[]string{"route"},
)

// ── Sessions ──────────────────────────────────────────────────────────────────

// SessionActionsTotal counts session store actions.
// Labels:
//   - action: login, register, logout, fetch_profile, update_profile, change_password, expire
//   - result: "ok" or "error"
var SessionActionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "session_actions_total",
		Help:      "Total number of session store actions, by action and result.",
	},
	[]string{"action", "result"},
)

// ── Catalog cache ─────────────────────────────────────────────────────────────

// CatalogCacheTotal counts catalog cache lookups.
// Labels:
//   - key: cache entry (categories, islands, featured, stats)
//   - result: "hit" or "miss"
var CatalogCacheTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "catalog_cache_total",
		Help:      "Total number of catalog cache lookups, labelled by result (hit/miss).",
	},
	[]string{"key", "result"},
)

// ObserveUpstream records one marketplace API call.
func ObserveUpstream(method, route, status string, d time.Duration) {
	UpstreamRequestDuration.WithLabelValues(method, route, status).Observe(d.Seconds())
}

// ObserveHTTPRequest records one inbound request.
func ObserveHTTPRequest(method, route, status string, d time.Duration) {
	HTTPRequestsTotal.WithLabelValues(method, route, status).Inc()
	HTTPRequestDuration.WithLabelValues(method, route).Observe(d.Seconds())
}

// SessionAction records the outcome of a session store action.
func SessionAction(action string, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	SessionActionsTotal.WithLabelValues(action, result).Inc()
}
