// Package metrics defines Prometheus metrics for the WiziShop client.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "wizishop"

// API call metrics.
var (
	APIRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "api_requests_total",
		Help:      "Total number of WiziShop API requests by method and status.",
	}, []string{"method", "status"})

	APIRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "api_request_duration_seconds",
		Help:      "Duration of WiziShop API requests in seconds, excluding throttle cooldowns.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method"})

	LoginsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of credential logins by outcome.",
	}, []string{"outcome"})
)

// Rate limit metrics.
var (
	RateLimitRemaining = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "ratelimit_remaining",
		Help:      "Remaining API calls as last reported by the X-RateLimit-Remaining header.",
	})

	ThrottleCooldownsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "throttle_cooldowns_total",
		Help:      "Total number of cooldown pauses taken because the remaining calls fell below the floor.",
	})
)

// Failure sink metrics.
var (
	FailuresRecordedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "failures_recorded_total",
		Help:      "Total number of failed write payloads handed to the failure sink.",
	}, []string{"operation"})
)

// Mock API server metrics.
var (
	MockRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "mock",
		Name:      "http_requests_total",
		Help:      "Total number of requests served by the mock API by method, route and status.",
	}, []string{"method", "path", "status"})

	MockRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "mock",
		Name:      "http_request_duration_seconds",
		Help:      "Duration of requests served by the mock API in seconds.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	MockRateLimitRejectionsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "mock",
		Name:      "ratelimit_rejections_total",
		Help:      "Total number of requests the mock API rejected with 429 after the call budget ran out.",
	})
)
