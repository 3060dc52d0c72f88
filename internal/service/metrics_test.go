package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/phrazzld/account-api/internal/mocks"
	"github.com/phrazzld/account-api/internal/service"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func TestRegistrationMetrics(t *testing.T) {
	registry := prometheus.NewRegistry()
	metrics := service.NewRegistrationMetrics(registry)

	accounts := mocks.NewMockAccountStore()
	svc := newService(t, accounts, service.WithMetrics(metrics))
	ctx := context.Background()

	_, err := svc.Register(ctx, validInput())
	require.NoError(t, err)
	_, err = svc.Register(ctx, validInput())
	require.ErrorIs(t, err, service.ErrConflict)

	bad := validInput()
	bad.Username = "x"
	_, err = svc.Register(ctx, bad)
	require.Error(t, err)

	accounts.FindByUsernameError = errors.New("db down")
	other := validInput()
	other.Username = "bob_02"
	_, err = svc.Register(ctx, other)
	require.ErrorIs(t, err, service.ErrUnavailable)

	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.Attempts.WithLabelValues(service.OutcomeSuccess)))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.Attempts.WithLabelValues(service.OutcomeConflict)))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.Attempts.WithLabelValues(service.OutcomeValidation)))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.Attempts.WithLabelValues(service.OutcomeUnavailable)))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.AccountsCreated))
	assert.Equal(t, 1, testutil.CollectAndCount(metrics.Duration))
}

func TestRegistrationTracing(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	t.Cleanup(func() { _ = tp.Shutdown(context.Background()) })

	accounts := mocks.NewMockAccountStore()
	svc := newService(t, accounts, service.WithTracerProvider(tp))

	_, err := svc.Register(context.Background(), validInput())
	require.NoError(t, err)

	accounts.CreateError = errors.New("disk full")
	other := validInput()
	other.Username = "bob_02"
	_, err = svc.Register(context.Background(), other)
	require.Error(t, err)

	spans := recorder.Ended()
	require.Len(t, spans, 2)

	assert.Equal(t, "RegistrationService.Register", spans[0].Name())
	assert.Contains(t, spans[0].Attributes(), attribute.String("registration.outcome", service.OutcomeSuccess))
	assert.Equal(t, codes.Unset, spans[0].Status().Code)

	assert.Contains(t, spans[1].Attributes(), attribute.String("registration.outcome", service.OutcomeUnavailable))
	assert.Equal(t, codes.Error, spans[1].Status().Code)
}
