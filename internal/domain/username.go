package domain

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Username length bounds, counted in characters after trimming.
const (
	MinUsernameLength = 3
	MaxUsernameLength = 20
)

// Username is the human-chosen handle an account is looked up by.
// The stored form is always trimmed.
type Username struct {
	value string
}

// NewUsername trims raw and validates it. Checks run in order: length
// (ErrTooShort, ErrTooLong) and then alphabet (ErrInvalidCharacters).
// Letters, digits, '_' and '-' are allowed.
func NewUsername(raw string) (Username, error) {
	trimmed := strings.TrimSpace(raw)

	n := utf8.RuneCountInString(trimmed)
	if n < MinUsernameLength {
		return Username{}, NewValidationError("username", ErrTooShort)
	}
	if n > MaxUsernameLength {
		return Username{}, NewValidationError("username", ErrTooLong)
	}

	for _, r := range trimmed {
		if !isUsernameRune(r) {
			return Username{}, NewValidationError("username", ErrInvalidCharacters)
		}
	}

	return Username{value: trimmed}, nil
}

func isUsernameRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsNumber(r) || r == '_' || r == '-'
}

// String returns the normalized username.
func (u Username) String() string {
	return u.value
}

// IsZero reports whether u is the zero value.
func (u Username) IsZero() bool {
	return u.value == ""
}
