package metrics

import (
	"strconv"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	once sync.Once

	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "shareit",
			Name:      "http_requests_total",
			Help:      "HTTP requests by route and status code.",
		},
		[]string{"route", "code"},
	)

	httpDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "shareit",
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by route.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"route"},
	)

	domainEvents = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "shareit",
			Name:      "events_total",
			Help:      "Domain events published by type.",
		},
		[]string{"type"},
	)

	rateLimited = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "shareit",
			Name:      "rate_limited_total",
			Help:      "Requests rejected by the rate limiter.",
		},
	)

	upstreamRetries = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "shareit",
			Name:      "gateway_upstream_retries_total",
			Help:      "Forwarded calls retried by the gateway, by reason.",
		},
		[]string{"reason"},
	)
)

// Register registers Prometheus metrics. Safe to call multiple times.
func Register() {
	once.Do(func() {
		prometheus.MustRegister(httpRequests, httpDuration, domainEvents, rateLimited, upstreamRetries)
	})
}

// ObserveHTTP records one served request.
func ObserveHTTP(route string, code int, dur time.Duration) {
	httpRequests.WithLabelValues(route, strconv.Itoa(code)).Inc()
	httpDuration.WithLabelValues(route).Observe(dur.Seconds())
}

// IncEvent counts a published domain event.
func IncEvent(eventType string) {
	domainEvents.WithLabelValues(eventType).Inc()
}

func IncRateLimited() {
	rateLimited.Inc()
}

// IncUpstreamRetry counts a gateway retry. reason is "error" or the upstream status code.
func IncUpstreamRetry(reason string) {
	upstreamRetries.WithLabelValues(reason).Inc()
}
