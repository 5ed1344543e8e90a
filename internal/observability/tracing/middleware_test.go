package tracing

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"booksaetong/internal/observability/metrics"
)

// useRecorder installs an in-memory exporter as the global provider for one test.
func useRecorder(t *testing.T) (*sdktrace.TracerProvider, *tracetest.InMemoryExporter) {
	t.Helper()
	exporter := tracetest.NewInMemoryExporter()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSyncer(exporter))
	otel.SetTracerProvider(tp)
	tracer = otel.Tracer("booksaetong")
	t.Cleanup(func() {
		otel.SetTracerProvider(sdktrace.NewTracerProvider())
		tracer = otel.Tracer("booksaetong")
	})
	return tp, exporter
}

func attrMap(attrs []attribute.KeyValue) map[attribute.Key]attribute.Value {
	m := make(map[attribute.Key]attribute.Value, len(attrs))
	for _, kv := range attrs {
		m[kv.Key] = kv.Value
	}
	return m
}

func serve(h http.Handler, req *http.Request) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	Middleware(h).ServeHTTP(rr, req)
	return rr
}

func TestMiddleware_CreatesSpan(t *testing.T) {
	tp, exporter := useRecorder(t)

	serve(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("OK"))
	}), httptest.NewRequest(http.MethodGet, "/products/around", nil))
	_ = tp.ForceFlush(context.Background())

	spans := exporter.GetSpans()
	require.Len(t, spans, 1)
	assert.Equal(t, "GET /products/around", spans[0].Name)

	attrs := attrMap(spans[0].Attributes)
	assert.Equal(t, "GET", attrs["http.method"].AsString())
	assert.Equal(t, "/products/around", attrs["http.path"].AsString())
	assert.Equal(t, int64(200), attrs["http.status_code"].AsInt64())
	_, hasError := attrs["error"]
	assert.False(t, hasError)
}

func TestMiddleware_AddsTraceIDToResponse(t *testing.T) {
	useRecorder(t)

	rr := serve(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}),
		httptest.NewRequest(http.MethodGet, "/healthz", nil))

	assert.Len(t, rr.Header().Get("X-Trace-Id"), 32)
}

func TestMiddleware_PropagatesTraceContext(t *testing.T) {
	tp, exporter := useRecorder(t)
	otel.SetTextMapPropagator(propagation.TraceContext{})
	t.Cleanup(func() { otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator()) })

	req := httptest.NewRequest(http.MethodGet, "/products/around", nil)
	req.Header.Set("traceparent", "00-4bf92f3577b34da6a3ce929d0e0e4736-00f067aa0ba902b7-01")
	serve(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}), req)
	_ = tp.ForceFlush(context.Background())

	spans := exporter.GetSpans()
	require.Len(t, spans, 1)
	assert.Equal(t, "4bf92f3577b34da6a3ce929d0e0e4736", spans[0].SpanContext.TraceID().String())
}

func TestMiddleware_ServerErrorMarksSpan(t *testing.T) {
	tp, exporter := useRecorder(t)

	serve(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}), httptest.NewRequest(http.MethodGet, "/products/around", nil))
	_ = tp.ForceFlush(context.Background())

	spans := exporter.GetSpans()
	require.Len(t, spans, 1)
	assert.True(t, attrMap(spans[0].Attributes)["error"].AsBool())
	assert.Equal(t, codes.Error, spans[0].Status.Code)
}

func TestMiddleware_ClientErrorIsNotAnError(t *testing.T) {
	tp, exporter := useRecorder(t)

	serve(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	}), httptest.NewRequest(http.MethodGet, "/products/around?cursor=bad", nil))
	_ = tp.ForceFlush(context.Background())

	spans := exporter.GetSpans()
	require.Len(t, spans, 1)
	_, hasError := attrMap(spans[0].Attributes)["error"]
	assert.False(t, hasError)
	assert.Equal(t, codes.Unset, spans[0].Status.Code)
}

func TestMiddleware_RecordsHTTPMetrics(t *testing.T) {
	useRecorder(t)
	counter := metrics.HTTPRequestsTotal.WithLabelValues("GET", "/metrics-probe", "418")
	before := testutil.ToFloat64(counter)

	serve(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}), httptest.NewRequest(http.MethodGet, "/metrics-probe", nil))

	assert.Equal(t, before+1, testutil.ToFloat64(counter))
}

func TestMiddleware_UsesRoutePattern(t *testing.T) {
	tp, exporter := useRecorder(t)
	mux := http.NewServeMux()
	mux.HandleFunc("GET /products/{id}", func(w http.ResponseWriter, r *http.Request) {})
	counter := metrics.HTTPRequestsTotal.WithLabelValues("GET", "/products/{id}", "200")
	before := testutil.ToFloat64(counter)

	for _, id := range []string{"p-1", "p-2"} {
		serve(mux, httptest.NewRequest(http.MethodGet, "/products/"+id, nil))
	}
	_ = tp.ForceFlush(context.Background())

	spans := exporter.GetSpans()
	require.Len(t, spans, 2)
	assert.Equal(t, "GET /products/{id}", spans[0].Name)
	attrs := attrMap(spans[1].Attributes)
	assert.Equal(t, "/products/{id}", attrs["http.route"].AsString())
	assert.Equal(t, "/products/p-2", attrs["http.path"].AsString())
	assert.Equal(t, before+2, testutil.ToFloat64(counter))
}

func TestResponseWriter_CapturesStatusCode(t *testing.T) {
	rw := newResponseWriter(httptest.NewRecorder())
	assert.Equal(t, http.StatusOK, rw.statusCode)

	rw.WriteHeader(http.StatusCreated)
	assert.Equal(t, http.StatusCreated, rw.statusCode)
}

func TestInitProvider(t *testing.T) {
	exporter := tracetest.NewInMemoryExporter()
	shutdown := InitProvider(sdktrace.WithSyncer(exporter))
	t.Cleanup(func() {
		otel.SetTracerProvider(sdktrace.NewTracerProvider())
		otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator())
	})

	_, span := otel.Tracer("booksaetong").Start(context.Background(), "probe")
	span.End()

	spans := exporter.GetSpans()
	require.Len(t, spans, 1)
	assert.Equal(t, "probe", spans[0].Name)
	require.NoError(t, shutdown(context.Background()))
	assert.Contains(t, otel.GetTextMapPropagator().Fields(), "traceparent")
}
