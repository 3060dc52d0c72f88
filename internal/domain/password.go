package domain

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"unicode/utf8"

	"golang.org/x/crypto/argon2"
)

// MinPasswordLength is the minimum length of a plaintext password, in characters.
const MinPasswordLength = 8

const (
	argon2Variant = "argon2id"
	argon2Version = "v=19"

	// Upper bounds on cost. They also apply to decoded hashes, so a tampered
	// record cannot make verification run or allocate without limit.
	maxArgon2Memory     = 256 * 1024
	maxArgon2Iterations = 64
	maxArgon2KeyLength  = 1024
)

var errMalformedHash = errors.New("malformed argon2 hash")

// Argon2Params are the Argon2id cost parameters. Memory is in KiB.
type Argon2Params struct {
	Memory      uint32
	Iterations  uint32
	Parallelism uint8
	SaltLength  uint32
	KeyLength   uint32
}

// DefaultArgon2Params returns the OWASP baseline for interactive logins:
// 19 MiB, two passes, one lane.
func DefaultArgon2Params() Argon2Params {
	return Argon2Params{
		Memory:      19 * 1024,
		Iterations:  2,
		Parallelism: 1,
		SaltLength:  16,
		KeyLength:   32,
	}
}

// Validate checks that p describes a usable Argon2id configuration.
func (p Argon2Params) Validate() error {
	switch {
	case p.Iterations == 0:
		return fmt.Errorf("%w: iterations must be greater than zero", ErrInvalidHashParams)
	case p.Iterations > maxArgon2Iterations:
		return fmt.Errorf("%w: iterations must be at most %d", ErrInvalidHashParams, maxArgon2Iterations)
	case p.Parallelism == 0:
		return fmt.Errorf("%w: parallelism must be greater than zero", ErrInvalidHashParams)
	case p.Memory < 8*uint32(p.Parallelism):
		return fmt.Errorf("%w: memory must be at least 8 KiB per lane", ErrInvalidHashParams)
	case p.Memory > maxArgon2Memory:
		return fmt.Errorf("%w: memory must be at most %d KiB", ErrInvalidHashParams, maxArgon2Memory)
	case p.SaltLength < 8:
		return fmt.Errorf("%w: salt length must be at least 8 bytes", ErrInvalidHashParams)
	case p.KeyLength < 16:
		return fmt.Errorf("%w: key length must be at least 16 bytes", ErrInvalidHashParams)
	case p.KeyLength > maxArgon2KeyLength:
		return fmt.Errorf("%w: key length must be at most %d bytes", ErrInvalidHashParams, maxArgon2KeyLength)
	}
	return nil
}

// Password holds an Argon2id hash artifact in PHC string form. The plaintext
// is never kept.
type Password struct {
	hash string
}

// NewPassword hashes plain with DefaultArgon2Params.
func NewPassword(plain string) (Password, error) {
	return NewPasswordWithParams(plain, DefaultArgon2Params())
}

// NewPasswordWithParams hashes plain with a fresh random salt and the given
// cost parameters. Passwords shorter than MinPasswordLength fail with
// ErrTooShort before any hashing work is done.
func NewPasswordWithParams(plain string, params Argon2Params) (Password, error) {
	if utf8.RuneCountInString(plain) < MinPasswordLength {
		return Password{}, NewValidationError("password", ErrTooShort)
	}
	if err := params.Validate(); err != nil {
		return Password{}, err
	}

	salt := make([]byte, params.SaltLength)
	if _, err := rand.Read(salt); err != nil {
		return Password{}, fmt.Errorf("failed to generate salt: %w", err)
	}

	key := argon2.IDKey([]byte(plain), salt, params.Iterations, params.Memory, params.Parallelism, params.KeyLength)

	return Password{hash: encodeArgon2Hash(params, salt, key)}, nil
}

// PasswordFromHash wraps an existing hash artifact without re-hashing it.
// The artifact is not validated; use IsWellFormed to check it.
func PasswordFromHash(hash string) Password {
	return Password{hash: hash}
}

// Verify reports whether candidate matches the stored hash. The comparison
// runs in constant time. A malformed stored hash never matches.
func (p Password) Verify(candidate string) bool {
	params, salt, expected, err := decodeArgon2Hash(p.hash)
	if err != nil {
		return false
	}
	computed := argon2.IDKey([]byte(candidate), salt, params.Iterations, params.Memory, params.Parallelism, params.KeyLength)
	return subtle.ConstantTimeCompare(computed, expected) == 1
}

// IsWellFormed reports whether the stored hash can be decoded.
func (p Password) IsWellFormed() bool {
	_, _, _, err := decodeArgon2Hash(p.hash)
	return err == nil
}

// Hash returns the encoded hash artifact.
func (p Password) Hash() string {
	return p.hash
}

// String never reveals the hash.
func (p Password) String() string {
	return "[REDACTED]"
}

// LogValue keeps the hash out of structured logs.
func (p Password) LogValue() slog.Value {
	return slog.StringValue("[REDACTED]")
}

// Format: $argon2id$v=19$m=<memory>,t=<iterations>,p=<parallelism>$<salt>$<key>
func encodeArgon2Hash(params Argon2Params, salt, key []byte) string {
	return fmt.Sprintf("$%s$%s$m=%d,t=%d,p=%d$%s$%s",
		argon2Variant,
		argon2Version,
		params.Memory,
		params.Iterations,
		params.Parallelism,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(key),
	)
}

func decodeArgon2Hash(encoded string) (Argon2Params, []byte, []byte, error) {
	parts := strings.Split(encoded, "$")
	if len(parts) != 6 || parts[0] != "" {
		return Argon2Params{}, nil, nil, errMalformedHash
	}
	if parts[1] != argon2Variant {
		return Argon2Params{}, nil, nil, fmt.Errorf("%w: unexpected variant %q", errMalformedHash, parts[1])
	}
	if parts[2] != argon2Version {
		return Argon2Params{}, nil, nil, fmt.Errorf("%w: unsupported version %q", errMalformedHash, parts[2])
	}

	params, err := parseArgon2Params(parts[3])
	if err != nil {
		return Argon2Params{}, nil, nil, err
	}

	salt, err := base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil {
		return Argon2Params{}, nil, nil, fmt.Errorf("%w: decode salt: %v", errMalformedHash, err)
	}
	key, err := base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil {
		return Argon2Params{}, nil, nil, fmt.Errorf("%w: decode key: %v", errMalformedHash, err)
	}

	params.SaltLength = uint32(len(salt))
	params.KeyLength = uint32(len(key))
	if err := params.Validate(); err != nil {
		return Argon2Params{}, nil, nil, fmt.Errorf("%w: %v", errMalformedHash, err)
	}

	return params, salt, key, nil
}

func parseArgon2Params(segment string) (Argon2Params, error) {
	entries := strings.Split(segment, ",")
	if len(entries) != 3 {
		return Argon2Params{}, errMalformedHash
	}

	var params Argon2Params
	for _, entry := range entries {
		key, value, ok := strings.Cut(entry, "=")
		if !ok {
			return Argon2Params{}, errMalformedHash
		}

		switch key {
		case "m":
			v, err := strconv.ParseUint(value, 10, 32)
			if err != nil {
				return Argon2Params{}, fmt.Errorf("%w: parse m: %v", errMalformedHash, err)
			}
			params.Memory = uint32(v)
		case "t":
			v, err := strconv.ParseUint(value, 10, 32)
			if err != nil {
				return Argon2Params{}, fmt.Errorf("%w: parse t: %v", errMalformedHash, err)
			}
			params.Iterations = uint32(v)
		case "p":
			v, err := strconv.ParseUint(value, 10, 8)
			if err != nil {
				return Argon2Params{}, fmt.Errorf("%w: parse p: %v", errMalformedHash, err)
			}
			params.Parallelism = uint8(v)
		default:
			return Argon2Params{}, errMalformedHash
		}
	}

	return params, nil
}
