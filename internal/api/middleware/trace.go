package middleware

import (
	"log/slog"
	"net/http"

	"github.com/phrazzld/account-api/internal/api/shared"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "github.com/phrazzld/account-api/internal/api/middleware"

// TraceMiddleware adds a trace ID to the request context using the global
// OpenTelemetry tracer provider. See NewTraceMiddleware.
func TraceMiddleware(next http.Handler) http.Handler {
	return NewTraceMiddleware(otel.GetTracerProvider())(next)
}

// NewTraceMiddleware returns middleware that starts a server span for each
// request and stores a trace ID in the request context. An inbound W3C
// traceparent header makes the span a child of the caller's trace. When the
// span has a valid trace ID it is used so error responses and exported
// traces correlate; otherwise a random ID is generated.
//
// It should be applied early in the middleware chain so that all
// subsequent handlers have access to the trace ID.
func NewTraceMiddleware(tp trace.TracerProvider) func(http.Handler) http.Handler {
	tracer := tp.Tracer(tracerName)
	propagator := propagation.TraceContext{}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := propagator.Extract(r.Context(), propagation.HeaderCarrier(r.Header))
			ctx, span := tracer.Start(ctx, r.Method+" "+r.URL.Path,
				trace.WithSpanKind(trace.SpanKindServer),
				trace.WithAttributes(
					attribute.String("http.request.method", r.Method),
					attribute.String("url.path", r.URL.Path),
				))
			defer span.End()

			if sc := span.SpanContext(); sc.HasTraceID() {
				ctx = shared.WithTraceID(ctx, sc.TraceID().String())
			} else {
				ctx = shared.SetTraceID(ctx)
			}

			slog.DebugContext(ctx, "request started",
				slog.String("trace_id", shared.GetTraceID(ctx)),
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.String("remote_addr", r.RemoteAddr))

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
