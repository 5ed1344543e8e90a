// Package metrics provides Prometheus metrics registry and recording utilities.
//
// This package centralizes the application's metrics:
//   - HTTP request metrics (count, duration)
//   - Feed metrics (page fetches, stale results, filter changes, sentinel triggers)
//   - Database query metrics
//
// All metrics are registered with the Prometheus default registry and exposed via the
// /metrics endpoint of cmd/api.
//
// Example usage:
//
//	import "booksaetong/internal/observability/metrics"
//
//	start := time.Now()
//	page, err := fetcher.FetchPage(ctx, id, cursor)
//	metrics.RecordPageFetch("next", "success", time.Since(start))
package metrics
