package domain

import (
	"errors"
	"fmt"
)

// Common domain errors used across the application.
var (
	// ErrValidation is returned when a domain value fails validation.
	// It is never returned bare; look at the ValidationError for details.
	ErrValidation = errors.New("validation failed")

	// ErrTooShort is returned when an input is below its minimum length.
	ErrTooShort = errors.New("too short")

	// ErrTooLong is returned when an input exceeds its maximum length.
	ErrTooLong = errors.New("too long")

	// ErrInvalidCharacters is returned when an input contains characters
	// outside its permitted alphabet.
	ErrInvalidCharacters = errors.New("invalid characters")

	// ErrInvalidFormat is returned when data is not in the expected format.
	ErrInvalidFormat = errors.New("invalid format")

	// ErrMalformedID is returned when an account ID cannot be parsed.
	ErrMalformedID = errors.New("malformed identifier")

	// ErrInvalidHashParams is returned when Argon2 cost parameters are out of range.
	ErrInvalidHashParams = errors.New("invalid hash parameters")

	// ErrInvalidRecord is returned when a stored account no longer satisfies
	// the domain invariants it was created under.
	ErrInvalidRecord = errors.New("invalid account record")
)

// ValidationError describes a single failed validation of an input field.
// It matches both ErrValidation and its kind (ErrTooShort, ErrTooLong, ...)
// under errors.Is.
type ValidationError struct {
	Field string
	Kind  error
}

// NewValidationError creates a ValidationError for field with the given kind.
func NewValidationError(field string, kind error) *ValidationError {
	return &ValidationError{Field: field, Kind: kind}
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %v", e.Field, e.Kind)
}

// Unwrap exposes both the generic validation sentinel and the specific kind.
func (e *ValidationError) Unwrap() []error {
	return []error{ErrValidation, e.Kind}
}
