package domain

import (
	"fmt"
	"time"
)

// Account is the registered-user aggregate. It is immutable: every field is
// fixed at construction and exposed through accessors only.
type Account struct {
	id       AccountID
	username Username
	password Password
	email    Email
	audit    Audit
}

// NewAccount assembles a new account from already validated values. It
// allocates a fresh ID and stamps CreatedAt with the instant embedded in it.
func NewAccount(username Username, password Password, email Email) *Account {
	id := NewAccountID()
	return &Account{
		id:       id,
		username: username,
		password: password,
		email:    email,
		audit:    Audit{CreatedAt: id.Time()},
	}
}

// AccountRecord is the flat, persisted shape of an account.
type AccountRecord struct {
	ID           string
	Username     string
	PasswordHash string
	Email        string
	CreatedAt    time.Time
	UpdatedAt    *time.Time
	CreatedBy    *string
	UpdatedBy    *string
}

// RestoreAccount rebuilds an account from a stored record, re-running the
// same validation NewAccount's inputs went through. A record that no longer
// validates yields an error wrapping ErrInvalidRecord.
func RestoreAccount(rec AccountRecord) (*Account, error) {
	id, err := ParseAccountID(rec.ID)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidRecord, err)
	}
	username, err := NewUsername(rec.Username)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidRecord, err)
	}
	if username.String() != rec.Username {
		return nil, fmt.Errorf("%w: username is not normalized", ErrInvalidRecord)
	}
	email, err := NewEmail(rec.Email)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidRecord, err)
	}
	if rec.PasswordHash == "" {
		return nil, fmt.Errorf("%w: empty password hash", ErrInvalidRecord)
	}

	return &Account{
		id:       id,
		username: username,
		password: PasswordFromHash(rec.PasswordHash),
		email:    email,
		audit: Audit{
			CreatedAt: rec.CreatedAt.UTC(),
			UpdatedAt: rec.UpdatedAt,
			CreatedBy: rec.CreatedBy,
			UpdatedBy: rec.UpdatedBy,
		},
	}, nil
}

// Record flattens the account into its persisted shape.
func (a *Account) Record() AccountRecord {
	return AccountRecord{
		ID:           a.id.String(),
		Username:     a.username.String(),
		PasswordHash: a.password.Hash(),
		Email:        a.email.String(),
		CreatedAt:    a.audit.CreatedAt,
		UpdatedAt:    a.audit.UpdatedAt,
		CreatedBy:    a.audit.CreatedBy,
		UpdatedBy:    a.audit.UpdatedBy,
	}
}

func (a *Account) ID() AccountID { return a.id }
func (a *Account) Username() Username { return a.username }
func (a *Account) Password() Password { return a.password }
func (a *Account) Email() Email { return a.email }
func (a *Account) Audit() Audit { return a.audit }
func (a *Account) CreatedAt() time.Time { return a.audit.CreatedAt }
