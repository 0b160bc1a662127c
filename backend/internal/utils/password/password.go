// Package password hashes and verifies user passwords with bcrypt.
package password

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// DefaultCost is the bcrypt work factor used for stored credentials.
const DefaultCost = 10

// MaxLength is the number of leading password bytes bcrypt takes into account.
const MaxLength = 72

type Hasher struct {
	cost int
}

func New(cost int) *Hasher {
	return &Hasher{cost: cost}
}

// Hash returns a salted bcrypt hash of plaintext. Only the first MaxLength bytes count.
func (h *Hasher) Hash(plaintext string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword(truncate(plaintext), h.cost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}

// Verify reports whether plaintext matches hash. A mismatch is (false, nil);
// an error means the hash itself is unusable.
func (h *Hasher) Verify(plaintext, hash string) (bool, error) {
	err := bcrypt.CompareHashAndPassword([]byte(hash), truncate(plaintext))
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
		return false, nil
	default:
		return false, fmt.Errorf("failed to verify password: %w", err)
	}
}

// truncate cuts plaintext to the bytes bcrypt uses, so longer passwords
// hash and verify the same as their 72-byte prefix.
func truncate(plaintext string) []byte {
	b := []byte(plaintext)
	if len(b) > MaxLength {
		b = b[:MaxLength]
	}
	return b
}
