package store

import (
	"errors"
	"fmt"
	"testing"

	"github.com/phrazzld/account-api/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestIsNotFoundError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected bool
	}{
		{name: "nil error", err: nil, expected: false},
		{name: "generic error", err: errors.New("some error"), expected: false},
		{name: "ErrNotFound", err: ErrNotFound, expected: true},
		{name: "ErrAccountNotFound", err: ErrAccountNotFound, expected: true},
		{
			name:     "wrapped ErrAccountNotFound",
			err:      fmt.Errorf("failed to find account: %w", ErrAccountNotFound),
			expected: true,
		},
		{name: "ErrUsernameExists", err: ErrUsernameExists, expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, IsNotFoundError(tt.err))
		})
	}
}

func TestIsDuplicateError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected bool
	}{
		{name: "nil error", err: nil, expected: false},
		{name: "ErrDuplicate", err: ErrDuplicate, expected: true},
		{name: "ErrUsernameExists", err: ErrUsernameExists, expected: true},
		{
			name:     "store error wrapping ErrUsernameExists",
			err:      NewStoreError("account", "create", "unique violation", ErrUsernameExists),
			expected: true,
		},
		{name: "ErrAccountNotFound", err: ErrAccountNotFound, expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, IsDuplicateError(tt.err))
		})
	}
}

func TestStoreError(t *testing.T) {
	t.Run("with wrapped error", func(t *testing.T) {
		cause := errors.New("connection reset")
		err := NewStoreError("account", "create", "insert failed", cause)

		assert.Equal(t, "create operation on account failed: insert failed: connection reset", err.Error())
		assert.ErrorIs(t, err, cause)
	})

	t.Run("without wrapped error", func(t *testing.T) {
		err := NewStoreError("account", "read", "no rows", nil)

		assert.Equal(t, "read operation on account failed: no rows", err.Error())
		assert.Nil(t, errors.Unwrap(err))
	})
}

func TestNewCorruptRecordError(t *testing.T) {
	_, cause := domain.RestoreAccount(domain.AccountRecord{ID: "bogus"})

	err := NewCorruptRecordError("account", cause)

	assert.ErrorIs(t, err, ErrCorruptRecord)
	assert.ErrorIs(t, err, domain.ErrInvalidRecord)
	assert.ErrorIs(t, err, domain.ErrMalformedID)
	assert.False(t, IsNotFoundError(err))
}
