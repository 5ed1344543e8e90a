// Package tracing provides OpenTelemetry tracing integration.
//
// The feed controller opens one span per page fetch ("feed.FetchPage") and the HTTP
// API wraps every request in a server span via Middleware. InitProvider installs an
// SDK tracer provider and the W3C trace-context propagator; without it the global
// no-op provider is used and spans cost nothing.
//
// Example usage:
//
//	import "booksaetong/internal/observability/tracing"
//
//	func main() {
//	    shutdown := tracing.InitProvider()
//	    defer func() { _ = shutdown(context.Background()) }()
//	}
//
//	func loadPage(ctx context.Context) {
//	    ctx, span := tracing.GetTracer().Start(ctx, "load-page")
//	    defer span.End()
//	}
package tracing
