// Package service contains the application use cases. It orchestrates the
// domain values and the store port (internal/store) and translates their
// failures into the small set of errors callers are expected to handle:
// validation failures from the domain package, ErrConflict and ErrUnavailable.
//
// Services receive their dependencies through constructor injection and
// never depend on a concrete storage implementation.
package service
