package tracing_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/phrazzld/account-api/internal/config"
	"github.com/phrazzld/account-api/internal/platform/tracing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProvider_WithoutEndpointRecordsLocally(t *testing.T) {
	ctx := context.Background()
	tp, err := tracing.NewProvider(ctx, config.TracingConfig{ServiceName: "account-api-test"})
	require.NoError(t, err)
	t.Cleanup(func() { _ = tp.Shutdown(ctx) })

	_, span := tp.Tracer("test").Start(ctx, "op")
	defer span.End()

	assert.True(t, span.IsRecording())
	assert.True(t, span.SpanContext().HasTraceID())
}

func TestNewProvider_ExportsToOTLPEndpoint(t *testing.T) {
	var hits atomic.Int32
	collector := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost && r.URL.Path == "/v1/traces" {
			hits.Add(1)
		}
		w.WriteHeader(http.StatusOK)
	}))
	t.Cleanup(collector.Close)

	ctx := context.Background()
	tp, err := tracing.NewProvider(ctx, config.TracingConfig{
		ServiceName:  "account-api-test",
		OTLPEndpoint: collector.URL + "/v1/traces",
	})
	require.NoError(t, err)

	_, span := tp.Tracer("test").Start(ctx, "op")
	span.End()

	require.NoError(t, tp.ForceFlush(ctx))
	require.NoError(t, tp.Shutdown(ctx))
	assert.GreaterOrEqual(t, hits.Load(), int32(1))
}
