package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/phrazzld/account-api/internal/domain"
	"github.com/phrazzld/account-api/internal/store"
)

var accountColumns = []string{
	"id", "username", "email", "password_hash",
	"created_at", "updated_at", "created_by", "updated_by",
}

// PostgresAccountStore implements the store.AccountStore interface
// using a PostgreSQL database as the storage backend.
type PostgresAccountStore struct {
	db     store.DBTX
	sb     sq.StatementBuilderType
	logger *slog.Logger
}

// NewPostgresAccountStore creates a new PostgreSQL implementation of the AccountStore interface.
// It accepts a database connection or transaction that should be initialized and managed by the caller.
// If logger is nil, a default logger will be used.
func NewPostgresAccountStore(db store.DBTX, logger *slog.Logger) *PostgresAccountStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresAccountStore{
		db:     db,
		sb:     sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
		logger: logger.With(slog.String("component", "account_store"), slog.String("driver", "postgres")),
	}
}

// Ensure PostgresAccountStore implements store.AccountStore interface
var _ store.AccountStore = (*PostgresAccountStore)(nil)

// Create implements store.AccountStore.Create.
// A single INSERT is atomic, so a failed or cancelled call leaves no row behind.
func (s *PostgresAccountStore) Create(ctx context.Context, account *domain.Account) (domain.AccountID, error) {
	rec := account.Record()

	query, args, err := s.sb.
		Insert("accounts").
		Columns(accountColumns...).
		Values(
			rec.ID,
			rec.Username,
			rec.Email,
			rec.PasswordHash,
			rec.CreatedAt,
			rec.UpdatedAt,
			rec.CreatedBy,
			rec.UpdatedBy,
		).
		ToSql()
	if err != nil {
		return domain.AccountID{}, fmt.Errorf("failed to build insert query: %w", err)
	}

	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		mapped := MapError(err)
		if store.IsDuplicateError(mapped) {
			s.logger.Debug("account insert rejected by unique constraint",
				slog.String("username", rec.Username))
			return domain.AccountID{}, store.NewStoreError("account", "create", "unique violation", mapped)
		}
		s.logger.Error("failed to insert account",
			slog.String("account_id", rec.ID),
			slog.String("error", err.Error()))
		return domain.AccountID{}, store.NewStoreError("account", "create", "insert failed", mapped)
	}

	s.logger.Debug("account created", slog.String("account_id", rec.ID))
	return account.ID(), nil
}

// FindByUsername implements store.AccountStore.FindByUsername.
func (s *PostgresAccountStore) FindByUsername(
	ctx context.Context,
	username domain.Username,
) (*domain.Account, error) {
	query, args, err := s.sb.
		Select(accountColumns...).
		From("accounts").
		Where(sq.Eq{"username": username.String()}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build select query: %w", err)
	}

	var (
		rec       domain.AccountRecord
		id        string
		updatedAt sql.NullTime
		createdBy sql.NullString
		updatedBy sql.NullString
	)
	err = s.db.QueryRowContext(ctx, query, args...).Scan(
		&id,
		&rec.Username,
		&rec.Email,
		&rec.PasswordHash,
		&rec.CreatedAt,
		&updatedAt,
		&createdBy,
		&updatedBy,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, store.ErrAccountNotFound
	}
	if err != nil {
		s.logger.Error("failed to query account",
			slog.String("username", username.String()),
			slog.String("error", err.Error()))
		return nil, store.NewStoreError("account", "read", "query failed", MapError(err))
	}

	rec.ID = id
	rec.UpdatedAt = nullTimePtr(updatedAt)
	rec.CreatedBy = nullStringPtr(createdBy)
	rec.UpdatedBy = nullStringPtr(updatedBy)

	account, err := domain.RestoreAccount(rec)
	if err != nil {
		s.logger.Error("stored account failed validation",
			slog.String("account_id", id),
			slog.String("error", err.Error()))
		return nil, store.NewCorruptRecordError("account", err)
	}

	return account, nil
}

func nullTimePtr(v sql.NullTime) *time.Time {
	if !v.Valid {
		return nil
	}
	t := v.Time.UTC()
	return &t
}

func nullStringPtr(v sql.NullString) *string {
	if !v.Valid {
		return nil
	}
	return &v.String
}
