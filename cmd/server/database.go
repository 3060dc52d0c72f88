package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	_ "github.com/jackc/pgx/v5/stdlib" // pgx driver
	"github.com/phrazzld/account-api/internal/config"
	"github.com/phrazzld/account-api/internal/platform/postgres"
	"github.com/phrazzld/account-api/internal/platform/sqlite"
	"github.com/phrazzld/account-api/internal/store"
)

const (
	driverPostgres = "postgres"
	driverSQLite   = "sqlite"
)

// openDatabase establishes a connection for the configured driver and
// verifies it within cfg.ConnectTimeout.
func openDatabase(ctx context.Context, cfg config.DatabaseConfig, logger *slog.Logger) (*sql.DB, error) {
	var (
		db  *sql.DB
		err error
	)

	switch cfg.Driver {
	case driverPostgres:
		db, err = sql.Open("pgx", cfg.URL)
		if err != nil {
			return nil, fmt.Errorf("failed to open database connection: %w", err)
		}
		db.SetMaxOpenConns(cfg.MaxOpenConns)
		db.SetMaxIdleConns(cfg.MaxIdleConns)
		db.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	case driverSQLite:
		// sqlite.Open pins the pool to a single connection.
		db, err = sqlite.Open(cfg.URL)
		if err != nil {
			return nil, fmt.Errorf("failed to open database connection: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}

	pingCtx, cancel := context.WithTimeout(ctx, cfg.ConnectTimeout)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	logger.Info("Database connection established", "driver", cfg.Driver)
	return db, nil
}

// newAccountStore returns the AccountStore implementation for driver.
func newAccountStore(driver string, db *sql.DB, logger *slog.Logger) (store.AccountStore, error) {
	switch driver {
	case driverPostgres:
		return postgres.NewPostgresAccountStore(db, logger), nil
	case driverSQLite:
		return sqlite.NewAccountStore(db, logger), nil
	default:
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}
}

// runMigrations executes a goose command using the schema for driver.
func runMigrations(ctx context.Context, driver string, db *sql.DB, command string, logger *slog.Logger) error {
	logger.Info("Executing migrations", "command", command, "driver", driver)

	var err error
	switch driver {
	case driverPostgres:
		err = postgres.Migrate(ctx, db, command, logger)
	case driverSQLite:
		err = sqlite.Migrate(ctx, db, command, logger)
	default:
		return fmt.Errorf("unsupported database driver %q", driver)
	}
	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	return nil
}

func closeDatabase(db *sql.DB, logger *slog.Logger) {
	if err := db.Close(); err != nil {
		logger.Error("Error closing database connection", "error", err)
	}
}
