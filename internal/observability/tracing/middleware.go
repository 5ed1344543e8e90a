package tracing

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"

	"booksaetong/internal/observability/metrics"
)

// responseWriter wraps http.ResponseWriter to capture status code.
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func newResponseWriter(w http.ResponseWriter) *responseWriter {
	return &responseWriter{
		ResponseWriter: w,
		statusCode:     http.StatusOK,
	}
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// Middleware wraps every request in a server span and records the request in the
// HTTP metrics.
//
// Incoming W3C trace context is honored and the trace ID is echoed in X-Trace-Id.
// Spans and metrics are labelled with the matched ServeMux pattern, so
// /products/{id} stays one series; 5xx responses mark the span as failed.
//
//	mux := http.NewServeMux()
//	mux.Handle("GET /products/around", handler)
//	http.ListenAndServe(":8080", tracing.Middleware(mux))
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		parent := otel.GetTextMapPropagator().Extract(r.Context(), propagation.HeaderCarrier(r.Header))

		ctx, span := tracer.Start(parent, r.Method+" "+r.URL.Path, trace.WithSpanKind(trace.SpanKindServer))
		defer span.End()
		w.Header().Set("X-Trace-Id", span.SpanContext().TraceID().String())

		rec := newResponseWriter(w)
		req := r.WithContext(ctx)
		next.ServeHTTP(rec, req)

		path := routeOf(req)
		span.SetName(r.Method + " " + path)
		span.SetAttributes(
			attribute.String("http.method", r.Method),
			attribute.String("http.route", path),
			attribute.String("http.path", r.URL.Path),
			attribute.Int("http.status_code", rec.statusCode),
		)
		if rec.statusCode >= http.StatusInternalServerError {
			span.SetAttributes(attribute.Bool("error", true))
			span.SetStatus(codes.Error, http.StatusText(rec.statusCode))
		}

		metrics.RecordHTTPRequest(r.Method, path, strconv.Itoa(rec.statusCode), time.Since(start))
	})
}

// routeOf returns the path part of the pattern ServeMux matched, or the raw path when
// the handler was not reached through a mux.
func routeOf(r *http.Request) string {
	if r.Pattern == "" {
		return r.URL.Path
	}
	if _, path, ok := strings.Cut(r.Pattern, " "); ok {
		return path
	}
	return r.Pattern
}
