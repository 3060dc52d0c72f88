// Package store defines the persistence port for accounts. Implementations
// live under internal/platform and must be safe for concurrent use; the
// uniqueness of usernames is enforced by the store, not by its callers.
package store
