// Package observability groups the logging, metrics and tracing infrastructure
// shared by the feed engine, the HTTP API and the CLI.
//
// Subpackages:
//   - logging: slog loggers in JSON or text, with request-scoped loggers on the context
//   - metrics: Prometheus collectors for HTTP, page fetches, the sentinel and the store
//   - tracing: OpenTelemetry tracer, provider setup and HTTP server spans
//
// Example usage:
//
//	import (
//	    "booksaetong/internal/observability/logging"
//	    "booksaetong/internal/observability/metrics"
//	)
//
//	func main() {
//	    logger := logging.New(os.Stdout, "json", logging.ParseLevel("info"))
//	    logger.Info("application started")
//
//	    metrics.RecordFilterChange()
//	}
package observability
