// Package testdb provides a migrated PostgreSQL database for integration
// tests. It reuses an external database when ACCOUNTS_TEST_DB_URL or
// DATABASE_URL is set and otherwise starts a disposable container.
package testdb
