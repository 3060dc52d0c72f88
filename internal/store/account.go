package store

import (
	"context"

	"github.com/phrazzld/account-api/internal/domain"
)

// AccountStore defines the interface for account persistence.
type AccountStore interface {
	// Create saves a new account and returns its ID.
	// The write is all-or-nothing: on error nothing is persisted.
	// Returns an error matching ErrUsernameExists if the username is taken,
	// including when a concurrent Create for the same username won the race.
	Create(ctx context.Context, account *domain.Account) (domain.AccountID, error)

	// FindByUsername retrieves an account by its normalized username.
	// Returns ErrAccountNotFound if no account has that username.
	// Returns ErrCorruptRecord if the stored row no longer validates.
	FindByUsername(ctx context.Context, username domain.Username) (*domain.Account, error)
}
