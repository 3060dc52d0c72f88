package postgres

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/phrazzld/account-api/internal/store"
)

// SQLSTATE codes the account store distinguishes.
const (
	sqlStateUniqueViolation  = "23505"
	sqlStateNotNullViolation = "23502"
)

// usernameConstraint is the unique constraint on accounts.username, as named
// by 00001_create_accounts.sql.
const usernameConstraint = "accounts_username_key"

// MapError translates driver errors into store sentinels. The driver error
// stays in the chain.
//
// A unique violation on usernameConstraint becomes store.ErrUsernameExists;
// one on any other constraint (the primary key, say) only store.ErrDuplicate.
func MapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%w: %w", store.ErrNotFound, err)
	}

	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}

	switch {
	case pgErr.Code == sqlStateUniqueViolation && pgErr.ConstraintName == usernameConstraint:
		return fmt.Errorf("%w: %w", store.ErrUsernameExists, err)
	case pgErr.Code == sqlStateUniqueViolation:
		return fmt.Errorf("%w: constraint %s: %w", store.ErrDuplicate, pgErr.ConstraintName, err)
	case pgErr.Code == sqlStateNotNullViolation:
		return fmt.Errorf("column %s must not be null: %w", pgErr.ColumnName, err)
	default:
		return err
	}
}
