package password

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"golang.org/x/crypto/bcrypt"
)

// Hash hashes a password using bcrypt and returns the encoded hash string.
// Format: $2a$<cost>$<salt+digest>, salt is generated per call.
func (c Config) Hash(password string) (string, error) {
	if err := c.Validate(password); err != nil {
		return "", err
	}

	cost := c.Cost
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}

	b, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", fmt.Errorf("bcrypt: %w", err)
	}
	return string(b), nil
}

// Verify checks whether password matches the given encoded hash.
// Returns (true, nil) for a match, (false, nil) for mismatch,
// and (false, ErrInvalidHash) for malformed/unsupported hashes.
//
// Verification cost comes from the stored hash, so hashes provisioned with an
// older cost keep verifying after the configured cost changes.
func (c Config) Verify(encodedHash, password string) (bool, error) {
	if !strings.HasPrefix(encodedHash, "$2") {
		return false, ErrInvalidHash
	}

	err := bcrypt.CompareHashAndPassword([]byte(encodedHash), []byte(password))
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
		return false, nil
	case errors.Is(err, bcrypt.ErrHashTooShort):
		return false, ErrInvalidHash
	default:
		var costErr bcrypt.InvalidCostError
		var prefixErr bcrypt.InvalidHashPrefixError
		var versionErr bcrypt.HashVersionTooNewError
		if errors.As(err, &costErr) || errors.As(err, &prefixErr) || errors.As(err, &versionErr) {
			return false, ErrInvalidHash
		}
		return false, err
	}
}

// Validate checks password policy. It does not mutate input.
func (c Config) Validate(password string) error {
	if utf8.RuneCountInString(password) < c.Policy.MinLength {
		return ErrPasswordTooShort
	}
	// Byte length matters here: bcrypt only consumes the first 72 bytes.
	if len(password) > c.Policy.MaxLength {
		return ErrPasswordTooLong
	}
	return nil
}
