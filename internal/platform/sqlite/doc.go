// Package sqlite implements the account store on an embedded SQLite
// database (modernc.org/sqlite, no cgo). It backs local development and
// in-process end-to-end tests. Timestamps are stored as Unix milliseconds.
package sqlite
