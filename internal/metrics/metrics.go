// Package metrics defines Prometheus metrics for the MWS client.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "mws"

// Request metrics.
var (
	RequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "requests_total",
		Help:      "Total number of MWS requests by section, action and HTTP status.",
	}, []string{"section", "action", "status"})

	RequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "request_duration_seconds",
		Help:      "Duration of MWS requests in seconds.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"section", "action"})
)

// Throttling metrics.
var (
	ThrottledTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "throttled_total",
		Help:      "Total number of requests rejected by MWS with RequestThrottled.",
	}, []string{"section", "action"})

	QuotaRemaining = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "quota_remaining",
		Help:      "Remaining hourly quota reported by the x-mws-quota-remaining header.",
	}, []string{"section", "action"})

	QuotaLimitHits = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "quota_limit_hits_total",
		Help:      "Total number of times the client-side hourly quota was exhausted.",
	})

	RateLimiterHourlyUsage = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "rate_limiter_hourly_usage",
		Help:      "Calls made within the client-side rate limiter's current hourly window.",
	})
)

// Service status metrics, set by the status monitor.
var (
	ServiceStatus = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "service_status",
		Help:      "Last GetServiceStatus result per section: 0 GREEN, 1 GREEN_I, 2 YELLOW, 3 RED.",
	}, []string{"section"})

	ServiceStatusErrorsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "service_status_errors_total",
		Help:      "Total number of GetServiceStatus checks that failed.",
	}, []string{"section"})

	ServiceStatusLastCheck = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "service_status_last_check_timestamp",
		Help:      "Unix timestamp of the last completed status check round.",
	})
)
