package store

import (
	"context"
	"database/sql"
)

// DBTX is the slice of database/sql that the SQL account stores need.
// *sql.DB, *sql.Conn and *sql.Tx all satisfy it, so a store can run inside
// a caller's transaction.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

var (
	_ DBTX = (*sql.DB)(nil)
	_ DBTX = (*sql.Conn)(nil)
	_ DBTX = (*sql.Tx)(nil)
)
