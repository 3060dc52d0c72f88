package api

import (
	"errors"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/phrazzld/account-api/internal/domain"
	"github.com/phrazzld/account-api/internal/service"
)

// Messages returned to clients for errors whose details must stay internal.
const (
	unavailableMessage = "Service temporarily unavailable, please retry"
	unexpectedMessage  = "An unexpected error occurred"
)

// MapErrorToStatusCode maps internal errors to appropriate HTTP status codes
// based on the error type. This prevents leaking internal error types or
// messages to clients.
func MapErrorToStatusCode(err error) int {
	switch {
	case errors.Is(err, domain.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, service.ErrConflict):
		return http.StatusConflict
	case errors.Is(err, service.ErrUnavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a sanitized, user-friendly error message
// based on the error type. Validation messages name the field and the rule
// it broke and carry no input values, so they are returned as-is.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return unexpectedMessage
	}

	var validationErr *domain.ValidationError
	switch {
	case errors.As(err, &validationErr):
		return validationErr.Error()
	case errors.Is(err, service.ErrConflict):
		return "Username already registered"
	case errors.Is(err, service.ErrUnavailable):
		return unavailableMessage
	default:
		return unexpectedMessage
	}
}

// SanitizeValidationError turns a request-shape validation failure into a
// "field: rule" message matching the domain's validation errors.
func SanitizeValidationError(err error) string {
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		fe := fieldErrs[0]
		return strings.ToLower(fe.Field()) + ": " + getValidationTagMessage(fe.Tag())
	}
	return "Validation error"
}

// getValidationTagMessage maps validation tags to user-friendly error messages
func getValidationTagMessage(tag string) string {
	switch tag {
	case "required":
		return "required"
	case "min":
		return "too short"
	case "max":
		return "too long"
	default:
		return "invalid"
	}
}
