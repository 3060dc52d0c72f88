package service

import "errors"

// Service errors returned by RegistrationService.Register. Validation failures
// are returned as *domain.ValidationError and are not wrapped in either.
//
// Error handling principles:
// 1. Expected conditions are reported with these sentinels; check them with errors.Is
// 2. The underlying cause stays in the chain for logs and diagnosis
// 3. The API layer maps them to HTTP status codes and decides what is safe to show
var (
	// ErrConflict indicates the username is already registered, either found
	// by the availability check or rejected by the store's unique constraint.
	// API layer should map this to HTTP 409 Conflict.
	ErrConflict = errors.New("username already registered")

	// ErrUnavailable indicates a storage or infrastructure failure unrelated
	// to the input. Callers may retry with backoff; the service never retries.
	// API layer should map this to HTTP 503 Service Unavailable.
	ErrUnavailable = errors.New("registration temporarily unavailable")
)
