// Package postgres implements the account store on PostgreSQL through the
// pgx database/sql driver. The schema ships as embedded goose migrations and
// the unique constraint on accounts.username is what arbitrates concurrent
// registrations of the same name.
package postgres
