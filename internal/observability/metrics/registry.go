package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTP metrics track HTTP request patterns and performance
var (
	// HTTPRequestsTotal counts total HTTP requests by method, path, and status
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	// HTTPRequestDuration measures HTTP request duration in seconds
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)
)

// Feed metrics track the paginated product feed
var (
	// PageFetchesTotal counts page fetches that reached the active query.
	// Labels: phase (first, next), outcome (success, error)
	PageFetchesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "feed_page_fetches_total",
			Help: "Total number of feed page fetches applied to the active query",
		},
		[]string{"phase", "outcome"},
	)

	// PageFetchDuration measures page fetch latency as seen by the controller
	PageFetchDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "feed_page_fetch_duration_seconds",
			Help:    "Feed page fetch duration in seconds",
			Buckets: []float64{0.01, 0.05, 0.1, 0.2, 0.5, 1.0, 2.0, 5.0},
		},
		[]string{"phase"},
	)

	// StaleResultsTotal counts fetch results dropped because their query was superseded
	StaleResultsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "feed_stale_results_total",
			Help: "Total number of feed fetch results discarded as stale",
		},
	)

	// FilterChangesTotal counts filter changes that reset the feed
	FilterChangesTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "feed_filter_changes_total",
			Help: "Total number of feed resets caused by filter changes",
		},
	)

	// SentinelTriggersTotal counts near-bottom triggers emitted by scroll sentinels
	SentinelTriggersTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "feed_sentinel_triggers_total",
			Help: "Total number of near-bottom triggers emitted",
		},
	)
)

// Database metrics track database performance
var (
	// DBQueryDuration measures database query duration
	DBQueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "db_query_duration_seconds",
			Help:    "Database query duration in seconds",
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 10),
		},
		[]string{"operation"},
	)
)

// Resilience metrics track circuit breakers guarding the store and the feed API
var (
	// CircuitBreakerState is 0 when closed, 1 when half-open and 2 when open
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)
)

// RecordHTTPRequest records an HTTP request with its metadata
func RecordHTTPRequest(method, path, status string, duration time.Duration) {
	HTTPRequestsTotal.WithLabelValues(method, path, status).Inc()
	HTTPRequestDuration.WithLabelValues(method, path, status).Observe(duration.Seconds())
}

// RecordPageFetch records a page fetch that was applied to the active query.
func RecordPageFetch(phase, outcome string, duration time.Duration) {
	PageFetchesTotal.WithLabelValues(phase, outcome).Inc()
	PageFetchDuration.WithLabelValues(phase).Observe(duration.Seconds())
}

// RecordStaleResult records a discarded stale fetch result.
func RecordStaleResult() {
	StaleResultsTotal.Inc()
}

// RecordFilterChange records a feed reset.
func RecordFilterChange() {
	FilterChangesTotal.Inc()
}

// RecordSentinelTrigger records a near-bottom trigger.
func RecordSentinelTrigger() {
	SentinelTriggersTotal.Inc()
}

// RecordDBQuery records the duration of a database query operation.
// Operation should describe the query type (e.g., "search_products", "get_user").
func RecordDBQuery(operation string, duration time.Duration) {
	DBQueryDuration.WithLabelValues(operation).Observe(duration.Seconds())
}

// SetCircuitBreakerState records the current state of a named circuit breaker.
func SetCircuitBreakerState(name string, state int) {
	CircuitBreakerState.WithLabelValues(name).Set(float64(state))
}
