// Package metrics defines the Prometheus collectors exported on /metrics.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTPRequestsTotal counts requests by method, route template and status.
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "blog_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "route", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "blog_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	// ReactionTogglesTotal counts toggles by outcome: created, switched, removed.
	ReactionTogglesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "blog_reaction_toggles_total",
			Help: "Total number of reaction toggles by outcome",
		},
		[]string{"outcome"},
	)

	// ViewsRecordedTotal counts post views by outcome: created, repeat, failed.
	ViewsRecordedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "blog_views_recorded_total",
			Help: "Total number of post views by outcome",
		},
		[]string{"outcome"},
	)

	StatsCacheTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "blog_stats_cache_total",
			Help: "Stats cache lookups by result",
		},
		[]string{"result"},
	)
)

func RecordHTTPRequest(method, route string, status int, elapsed time.Duration) {
	if route == "" {
		route = "unmatched"
	}
	HTTPRequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	HTTPRequestDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

func RecordReactionToggle(outcome string) {
	ReactionTogglesTotal.WithLabelValues(outcome).Inc()
}

func RecordView(outcome string) {
	ViewsRecordedTotal.WithLabelValues(outcome).Inc()
}

func RecordStatsCache(hit bool) {
	if hit {
		StatsCacheTotal.WithLabelValues("hit").Inc()
		return
	}
	StatsCacheTotal.WithLabelValues("miss").Inc()
}
