// Package migrate applies embedded goose migrations for the SQL account stores.
package migrate

import (
	"context"
	"database/sql"
	"fmt"
	"io/fs"
	"log/slog"
	"sync"

	"github.com/pressly/goose/v3"
)

// TableName is the goose version table used by every dialect.
const TableName = "schema_migrations"

// Command names accepted by Run.
const (
	CommandUp      = "up"
	CommandDown    = "down"
	CommandStatus  = "status"
	CommandVersion = "version"
)

// goose keeps dialect, base FS and logger in package globals, so runs are
// serialized.
var gooseMu sync.Mutex

// Source describes one set of migrations.
type Source struct {
	// Dialect is a goose dialect name such as "postgres" or "sqlite3".
	Dialect string
	// FS holds the .sql files; Dir is the directory inside FS.
	FS  fs.FS
	Dir string
}

// Run executes a goose command against db. For CommandVersion the current
// schema version is logged.
func Run(ctx context.Context, db *sql.DB, src Source, command string, logger *slog.Logger) error {
	if logger == nil {
		logger = slog.Default()
	}
	log := logger.With("component", "migrations", "dialect", src.Dialect, "command", command)

	gooseMu.Lock()
	defer gooseMu.Unlock()

	goose.SetLogger(&slogGooseLogger{logger: log})
	goose.SetBaseFS(src.FS)
	goose.SetTableName(TableName)
	defer goose.SetBaseFS(nil)

	if err := goose.SetDialect(src.Dialect); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}

	dir := src.Dir
	if dir == "" {
		dir = "."
	}

	var err error
	switch command {
	case CommandUp:
		err = goose.UpContext(ctx, db, dir)
	case CommandDown:
		err = goose.DownContext(ctx, db, dir)
	case CommandStatus:
		err = goose.StatusContext(ctx, db, dir)
	case CommandVersion:
		var version int64
		version, err = goose.GetDBVersionContext(ctx, db)
		if err == nil {
			log.Info("current schema version", "version", version)
		}
	default:
		return fmt.Errorf("unknown migration command %q", command)
	}
	if err != nil {
		return fmt.Errorf("failed to run migration command %q: %w", command, err)
	}

	log.Debug("migration command completed")
	return nil
}

// Up applies all pending migrations.
func Up(ctx context.Context, db *sql.DB, src Source, logger *slog.Logger) error {
	return Run(ctx, db, src, CommandUp, logger)
}

// slogGooseLogger adapts the goose logger interface to slog.
type slogGooseLogger struct {
	logger *slog.Logger
}

// Printf implements goose.Logger by forwarding messages to Info.
func (l *slogGooseLogger) Printf(format string, v ...interface{}) {
	l.logger.Info(fmt.Sprintf(format, v...))
}

// Fatalf implements goose.Logger. It logs at Error and does NOT exit; goose
// returns the error to Run, which hands it back to the caller.
func (l *slogGooseLogger) Fatalf(format string, v ...interface{}) {
	l.logger.Error(fmt.Sprintf(format, v...))
}
