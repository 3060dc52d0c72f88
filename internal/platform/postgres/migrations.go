package postgres

import (
	"context"
	"database/sql"
	"embed"
	"log/slog"

	"github.com/phrazzld/account-api/internal/platform/migrate"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// Migrations describes the embedded PostgreSQL schema migrations.
var Migrations = migrate.Source{Dialect: "postgres", FS: migrationsFS, Dir: "migrations"}

// Migrate runs a goose command (up, down, status, version) against db.
func Migrate(ctx context.Context, db *sql.DB, command string, logger *slog.Logger) error {
	return migrate.Run(ctx, db, Migrations, command, logger)
}
