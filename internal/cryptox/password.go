// Package cryptox implements the password-credential transforms: hashing a
// plaintext password into an opaque stored credential and verifying a
// candidate against it. It holds no state and is safe for concurrent use.
package cryptox

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// DefaultCost is the bcrypt work factor used when no cost is configured.
const DefaultCost = 10

// HashPassword transforms a plaintext password into a stored credential.
// bcrypt embeds a fresh random salt on every call, so two hashes of the same
// password never match byte-for-byte. An out-of-range cost falls back to
// bcrypt's own default.
func HashPassword(plaintext string, cost int) (string, error) {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(plaintext), cost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

// VerifyPassword reports whether plaintext matches the stored credential.
// Any malformed credential compares as false; this function never errors.
func VerifyPassword(plaintext, credential string) bool {
	return bcrypt.CompareHashAndPassword([]byte(credential), []byte(plaintext)) == nil
}
