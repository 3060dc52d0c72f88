package testdb

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"strings"
	"testing"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib" // pgx driver
	"github.com/phrazzld/account-api/internal/platform/postgres"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
)

// TestTimeout defines a default timeout for test database operations.
const TestTimeout = 30 * time.Second

// PostgresImage is the container image used when no external database is configured.
const PostgresImage = "postgres:16-alpine"

// GetTestDatabaseURL returns the database URL for tests.
// It checks ACCOUNTS_TEST_DB_URL and DATABASE_URL in that order.
func GetTestDatabaseURL() string {
	if u := os.Getenv("ACCOUNTS_TEST_DB_URL"); u != "" {
		return u
	}
	return os.Getenv("DATABASE_URL")
}

// OpenPostgres returns a connection to a PostgreSQL database with all
// migrations applied. The connection (and the container, if one was
// started) is released when the test finishes.
func OpenPostgres(t *testing.T) *sql.DB {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 2*TestTimeout)
	defer cancel()

	dsn := GetTestDatabaseURL()
	if dsn == "" {
		dsn = startContainer(ctx, t)
	}

	db, err := sql.Open("pgx", dsn)
	require.NoError(t, err, "failed to open database connection")
	t.Cleanup(func() { _ = db.Close() })

	require.NoError(t, db.PingContext(ctx), "failed to ping database")
	require.NoError(t, postgres.Migrate(ctx, db, "up", nil), "failed to run migrations")

	return db
}

// TruncateTables empties the given tables between tests.
func TruncateTables(t *testing.T, db *sql.DB, tables ...string) {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), TestTimeout)
	defer cancel()

	query := fmt.Sprintf("TRUNCATE TABLE %s", strings.Join(tables, ", "))
	_, err := db.ExecContext(ctx, query)
	require.NoError(t, err, "failed to truncate tables")
}

func startContainer(ctx context.Context, t *testing.T) string {
	t.Helper()

	container, err := tcpostgres.Run(ctx, PostgresImage,
		tcpostgres.WithDatabase("accounts_test"),
		tcpostgres.WithUsername("accounts"),
		tcpostgres.WithPassword("accounts"),
		tcpostgres.BasicWaitStrategies(),
	)
	require.NoError(t, err, "failed to start postgres container")
	t.Cleanup(func() {
		if err := testcontainers.TerminateContainer(container); err != nil {
			t.Logf("failed to terminate postgres container: %v", err)
		}
	})

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err, "failed to get postgres connection string")

	return dsn
}
