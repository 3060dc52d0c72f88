package domain

import "time"

// Audit records who created or last changed an account, and when.
// Only CreatedAt is set on registration.
type Audit struct {
	CreatedAt time.Time
	UpdatedAt *time.Time
	CreatedBy *string
	UpdatedBy *string
}
