package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/phrazzld/account-api/internal/domain"
	"github.com/phrazzld/account-api/internal/platform/migrate"
	"github.com/phrazzld/account-api/internal/store"
	msqlite "modernc.org/sqlite"
	sqlite3lib "modernc.org/sqlite/lib"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// Migrations describes the embedded SQLite schema migrations.
var Migrations = migrate.Source{Dialect: "sqlite3", FS: migrationsFS, Dir: "migrations"}

var accountColumns = []string{
	"id", "username", "email", "password_hash",
	"created_at", "updated_at", "created_by", "updated_by",
}

// toMillis normalizes timestamps into millisecond precision for storage.
func toMillis(value time.Time) int64 {
	return value.UTC().UnixMilli()
}

// fromMillis restores millisecond precision and keeps UTC normalization.
func fromMillis(value int64) time.Time {
	return time.UnixMilli(value).UTC()
}

// Open opens (creating if needed) the database at path and configures it for
// a single writer. Pass ":memory:" for a private in-memory database.
func Open(path string) (*sql.DB, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}

	dsn := path + "?_pragma=busy_timeout(5000)&_pragma=foreign_keys(1)"
	if path != ":memory:" {
		dsn += "&_pragma=journal_mode(WAL)"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	// One connection: SQLite has a single writer, and every ":memory:"
	// connection would otherwise be its own database.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	return db, nil
}

// Migrate runs a goose command (up, down, status, version) against db.
func Migrate(ctx context.Context, db *sql.DB, command string, logger *slog.Logger) error {
	return migrate.Run(ctx, db, Migrations, command, logger)
}

// AccountStore implements store.AccountStore over SQLite.
type AccountStore struct {
	db     store.DBTX
	sb     sq.StatementBuilderType
	logger *slog.Logger
}

// NewAccountStore creates a SQLite account store. The schema must already
// be migrated. If logger is nil, a default logger will be used.
func NewAccountStore(db store.DBTX, logger *slog.Logger) *AccountStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &AccountStore{
		db:     db,
		sb:     sq.StatementBuilder.PlaceholderFormat(sq.Question),
		logger: logger.With(slog.String("component", "account_store"), slog.String("driver", "sqlite")),
	}
}

var _ store.AccountStore = (*AccountStore)(nil)

// Create implements store.AccountStore.Create.
func (s *AccountStore) Create(ctx context.Context, account *domain.Account) (domain.AccountID, error) {
	rec := account.Record()

	var updatedAt *int64
	if rec.UpdatedAt != nil {
		v := toMillis(*rec.UpdatedAt)
		updatedAt = &v
	}

	query, args, err := s.sb.
		Insert("accounts").
		Columns(accountColumns...).
		Values(
			rec.ID,
			rec.Username,
			rec.Email,
			rec.PasswordHash,
			toMillis(rec.CreatedAt),
			updatedAt,
			rec.CreatedBy,
			rec.UpdatedBy,
		).
		ToSql()
	if err != nil {
		return domain.AccountID{}, fmt.Errorf("failed to build insert query: %w", err)
	}

	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		mapped := mapError(err)
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

	return account.ID(), nil
}

// FindByUsername implements store.AccountStore.FindByUsername.
func (s *AccountStore) FindByUsername(ctx context.Context, username domain.Username) (*domain.Account, error) {
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
		createdAt int64
		updatedAt sql.NullInt64
		createdBy sql.NullString
		updatedBy sql.NullString
	)
	err = s.db.QueryRowContext(ctx, query, args...).Scan(
		&rec.ID,
		&rec.Username,
		&rec.Email,
		&rec.PasswordHash,
		&createdAt,
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
		return nil, store.NewStoreError("account", "read", "query failed", err)
	}

	rec.CreatedAt = fromMillis(createdAt)
	if updatedAt.Valid {
		t := fromMillis(updatedAt.Int64)
		rec.UpdatedAt = &t
	}
	if createdBy.Valid {
		rec.CreatedBy = &createdBy.String
	}
	if updatedBy.Valid {
		rec.UpdatedBy = &updatedBy.String
	}

	account, err := domain.RestoreAccount(rec)
	if err != nil {
		s.logger.Error("stored account failed validation",
			slog.String("account_id", rec.ID),
			slog.String("error", err.Error()))
		return nil, store.NewCorruptRecordError("account", err)
	}
	return account, nil
}

// mapError translates SQLite unique constraint failures into store errors.
func mapError(err error) error {
	var sqliteErr *msqlite.Error
	if !errors.As(err, &sqliteErr) {
		return err
	}
	switch sqliteErr.Code() {
	case sqlite3lib.SQLITE_CONSTRAINT,
		sqlite3lib.SQLITE_CONSTRAINT_UNIQUE,
		sqlite3lib.SQLITE_CONSTRAINT_PRIMARYKEY:
	default:
		return err
	}

	msg := sqliteErr.Error()
	switch {
	case strings.Contains(msg, "UNIQUE constraint failed: accounts.username"):
		return fmt.Errorf("%w: %w", store.ErrUsernameExists, err)
	case strings.Contains(msg, "UNIQUE constraint failed"):
		return fmt.Errorf("%w: %w", store.ErrDuplicate, err)
	}
	return err
}
