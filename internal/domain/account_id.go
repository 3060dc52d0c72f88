package domain

import (
	"bytes"
	"time"

	"github.com/google/uuid"
)

// AccountID identifies an account. It is a UUIDv7: the leading 48 bits hold
// the creation time in Unix milliseconds, so IDs sort in creation order.
type AccountID struct {
	uuid uuid.UUID
}

// NewAccountID generates a fresh time-ordered account ID.
// IDs generated later in the same process always compare greater.
func NewAccountID() AccountID {
	return AccountID{uuid: uuid.Must(uuid.NewV7())}
}

// ParseAccountID parses the canonical hyphenated form of an account ID.
// Text that is not a valid UUID, or is the nil UUID, fails with ErrMalformedID.
func ParseAccountID(s string) (AccountID, error) {
	if len(s) != 36 {
		return AccountID{}, NewValidationError("id", ErrMalformedID)
	}
	u, err := uuid.Parse(s)
	if err != nil || u == uuid.Nil {
		return AccountID{}, NewValidationError("id", ErrMalformedID)
	}
	return AccountID{uuid: u}, nil
}

// String returns the canonical lowercase hyphenated form.
func (id AccountID) String() string {
	return id.uuid.String()
}

// IsZero reports whether id is the zero value.
func (id AccountID) IsZero() bool {
	return id.uuid == uuid.Nil
}

// UUID returns the underlying UUID.
func (id AccountID) UUID() uuid.UUID {
	return id.uuid
}

// Compare returns -1, 0 or +1 depending on whether id sorts before, equal to,
// or after other.
func (id AccountID) Compare(other AccountID) int {
	return bytes.Compare(id.uuid[:], other.uuid[:])
}

// Before reports whether id sorts before other.
func (id AccountID) Before(other AccountID) bool {
	return id.Compare(other) < 0
}

// Time returns the creation instant embedded in the ID, at millisecond precision.
func (id AccountID) Time() time.Time {
	u := id.uuid
	ms := int64(u[0])<<40 | int64(u[1])<<32 | int64(u[2])<<24 |
		int64(u[3])<<16 | int64(u[4])<<8 | int64(u[5])
	return time.UnixMilli(ms).UTC()
}

// MarshalText implements encoding.TextMarshaler.
func (id AccountID) MarshalText() ([]byte, error) {
	return []byte(id.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (id *AccountID) UnmarshalText(b []byte) error {
	parsed, err := ParseAccountID(string(b))
	if err != nil {
		return err
	}
	*id = parsed
	return nil
}
