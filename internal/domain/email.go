package domain

import (
	"regexp"
	"strings"
	"unicode"
)

// MaxEmailLength is the maximum length of an address in bytes.
const MaxEmailLength = 254

// emailPattern accepts anything shaped like local@domain.tld. RE2's \s is
// ASCII only, so NewEmail rejects Unicode whitespace separately.
var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Email is a contact address. The stored form is always lower-cased.
type Email struct {
	value string
}

// NewEmail validates raw and lower-cases it. The length check runs before
// the format check.
func NewEmail(raw string) (Email, error) {
	if len(raw) > MaxEmailLength {
		return Email{}, NewValidationError("email", ErrTooLong)
	}
	if strings.IndexFunc(raw, unicode.IsSpace) >= 0 || !emailPattern.MatchString(raw) {
		return Email{}, NewValidationError("email", ErrInvalidFormat)
	}
	return Email{value: strings.ToLower(raw)}, nil
}

// String returns the normalized address.
func (e Email) String() string {
	return e.value
}

// IsZero reports whether e is the zero value.
func (e Email) IsZero() bool {
	return e.value == ""
}
