package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/phrazzld/account-api/internal/api/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

func captureTraceID(t *testing.T, mw func(http.Handler) http.Handler) string {
	t.Helper()
	return captureTraceIDFor(t, mw, httptest.NewRequest(http.MethodPost, "/api/accounts", nil))
}

func captureTraceIDFor(t *testing.T, mw func(http.Handler) http.Handler, req *http.Request) string {
	t.Helper()
	var traceID string
	handler := mw(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		traceID = shared.GetTraceID(r.Context())
		w.WriteHeader(http.StatusNoContent)
	}))

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	require.Equal(t, http.StatusNoContent, rr.Code)
	return traceID
}

func TestTraceMiddlewareUsesSpanTraceID(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))

	traceID := captureTraceID(t, NewTraceMiddleware(tp))

	spans := recorder.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, "POST /api/accounts", spans[0].Name())
	assert.Equal(t, trace.SpanKindServer, spans[0].SpanKind())
	assert.Equal(t, spans[0].SpanContext().TraceID().String(), traceID)
}

func TestTraceMiddlewareFallsBackToRandomID(t *testing.T) {
	first := captureTraceID(t, NewTraceMiddleware(noop.NewTracerProvider()))
	second := captureTraceID(t, NewTraceMiddleware(noop.NewTracerProvider()))

	assert.Len(t, first, 32)
	assert.Len(t, second, 32)
	assert.NotEqual(t, first, second)
}

func TestTraceMiddlewareWithGlobalProvider(t *testing.T) {
	assert.NotEmpty(t, captureTraceID(t, TraceMiddleware))
}

func TestTraceMiddlewareContinuesInboundTrace(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))

	req := httptest.NewRequest(http.MethodPost, "/api/accounts", nil)
	req.Header.Set("traceparent", "00-4bf92f3577b34da6a3ce929d0e0e4736-00f067aa0ba902b7-01")

	traceID := captureTraceIDFor(t, NewTraceMiddleware(tp), req)

	assert.Equal(t, "4bf92f3577b34da6a3ce929d0e0e4736", traceID)
	spans := recorder.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, "00f067aa0ba902b7", spans[0].Parent().SpanID().String())
}
