package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/phrazzld/account-api/internal/domain"
	"github.com/phrazzld/account-api/internal/redact"
	"github.com/phrazzld/account-api/internal/store"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "github.com/phrazzld/account-api/internal/service"

// RegisterInput carries the raw, unvalidated registration fields.
type RegisterInput struct {
	Username string
	Password string
	Email    string
}

// RegistrationService registers new accounts.
type RegistrationService interface {
	// Register validates the input, checks that the username is free, and
	// persists a new account. It returns the new account's ID.
	//
	// Errors: *domain.ValidationError for bad input, ErrConflict when the
	// username is taken, ErrUnavailable for any storage failure.
	Register(ctx context.Context, input RegisterInput) (domain.AccountID, error)
}

// RegistrationServiceImpl implements the RegistrationService interface.
// It holds no per-request state and is safe for concurrent use.
type RegistrationServiceImpl struct {
	accounts store.AccountStore
	params   domain.Argon2Params
	metrics  *RegistrationMetrics
	tracer   trace.Tracer
	logger   *slog.Logger
}

// Option configures a RegistrationServiceImpl.
type Option func(*RegistrationServiceImpl)

// WithArgon2Params sets the cost parameters used to hash new passwords.
func WithArgon2Params(params domain.Argon2Params) Option {
	return func(s *RegistrationServiceImpl) { s.params = params }
}

// WithMetrics records registration outcomes in m.
func WithMetrics(m *RegistrationMetrics) Option {
	return func(s *RegistrationServiceImpl) { s.metrics = m }
}

// WithTracerProvider overrides the global OpenTelemetry tracer provider.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(s *RegistrationServiceImpl) { s.tracer = tp.Tracer(tracerName) }
}

// NewRegistrationService creates a new RegistrationService.
func NewRegistrationService(
	accounts store.AccountStore,
	logger *slog.Logger,
	opts ...Option,
) (RegistrationService, error) {
	if accounts == nil {
		return nil, errors.New("account store cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	s := &RegistrationServiceImpl{
		accounts: accounts,
		params:   domain.DefaultArgon2Params(),
		tracer:   otel.Tracer(tracerName),
		logger:   logger.With("component", "registration_service"),
	}
	for _, opt := range opts {
		opt(s)
	}

	if err := s.params.Validate(); err != nil {
		return nil, fmt.Errorf("invalid argon2 parameters: %w", err)
	}

	return s, nil
}

// Register implements RegistrationService.Register.
func (s *RegistrationServiceImpl) Register(ctx context.Context, input RegisterInput) (domain.AccountID, error) {
	start := time.Now()
	ctx, span := s.tracer.Start(ctx, "RegistrationService.Register")
	defer span.End()

	id, outcome, err := s.register(ctx, input)

	s.metrics.observe(outcome, time.Since(start).Seconds())
	span.SetAttributes(attribute.String("registration.outcome", outcome))
	if outcome == OutcomeUnavailable {
		span.RecordError(err)
		span.SetStatus(codes.Error, "registration unavailable")
	}

	return id, err
}

func (s *RegistrationServiceImpl) register(
	ctx context.Context,
	input RegisterInput,
) (domain.AccountID, string, error) {
	log := s.logger

	// Validate. Username first so bad input never pays for a hash.
	username, err := domain.NewUsername(input.Username)
	if err != nil {
		log.Debug("registration rejected", "reason", err.Error())
		return domain.AccountID{}, OutcomeValidation, err
	}
	log = log.With("username", username.String())

	password, err := domain.NewPasswordWithParams(input.Password, s.params)
	if err != nil {
		var vErr *domain.ValidationError
		if errors.As(err, &vErr) {
			log.Debug("registration rejected", "reason", err.Error())
			return domain.AccountID{}, OutcomeValidation, err
		}
		log.Error("failed to hash password", "error", err)
		return domain.AccountID{}, OutcomeUnavailable, fmt.Errorf("%w: %w", ErrUnavailable, err)
	}

	email, err := domain.NewEmail(input.Email)
	if err != nil {
		log.Debug("registration rejected", "reason", err.Error())
		return domain.AccountID{}, OutcomeValidation, err
	}

	// Check availability. This is a fast path only; the store's unique
	// constraint decides races.
	if err := ctx.Err(); err != nil {
		return domain.AccountID{}, OutcomeUnavailable, fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	_, err = s.accounts.FindByUsername(ctx, username)
	switch {
	case err == nil:
		log.Info("registration rejected: username taken")
		return domain.AccountID{}, OutcomeConflict, ErrConflict
	case errors.Is(err, store.ErrNotFound):
	default:
		log.Error("failed to check username availability", "error", redact.Error(err))
		return domain.AccountID{}, OutcomeUnavailable, fmt.Errorf("%w: %w", ErrUnavailable, err)
	}

	account := domain.NewAccount(username, password, email)

	if err := ctx.Err(); err != nil {
		return domain.AccountID{}, OutcomeUnavailable, fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	id, err := s.accounts.Create(ctx, account)
	if err != nil {
		if errors.Is(err, store.ErrUsernameExists) {
			log.Info("registration rejected by store: username taken")
			return domain.AccountID{}, OutcomeConflict, fmt.Errorf("%w: %w", ErrConflict, err)
		}
		log.Error("failed to persist account", "error", redact.Error(err))
		return domain.AccountID{}, OutcomeUnavailable, fmt.Errorf("%w: %w", ErrUnavailable, err)
	}

	log.Info("account registered",
		"account_id", id.String(),
		"email", redact.Email(email.String()))
	return id, OutcomeSuccess, nil
}
