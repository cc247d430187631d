// Package observability provides Prometheus metrics and OpenTelemetry tracing.
package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// ApplicationsSubmitted counts adoption applications accepted for review.
	ApplicationsSubmitted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "pawhaven_applications_submitted_total",
		Help: "Total number of adoption applications submitted",
	})

	// ApplicationsReviewed counts review decisions by outcome.
	ApplicationsReviewed = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "pawhaven_applications_reviewed_total",
		Help: "Total number of adoption applications reviewed by outcome",
	}, []string{"outcome"})

	// RedisErrorRate counts Redis errors by operation type.
	RedisErrorRate = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "pawhaven_redis_error_rate_total",
		Help: "Total number of Redis errors by operation type",
	}, []string{"operation"})

	// CacheHits counts cache lookups by key family and result.
	CacheHits = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "pawhaven_cache_lookups_total",
		Help: "Total number of cache lookups by key family and result",
	}, []string{"family", "result"})

	// WebSocketBackpressureDrops counts messages dropped due to backpressure by hub and reason.
	WebSocketBackpressureDrops = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "pawhaven_websocket_backpressure_drops_total",
		Help: "Total number of WebSocket messages dropped due to backpressure",
	}, []string{"hub", "reason"})
)
