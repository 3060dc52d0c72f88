// Package domain contains the account aggregate and the value objects it is
// built from. Every value is validated at construction, so a value that
// exists is a value that is valid. Nothing in this package performs I/O.
package domain
