package token

import (
	"fmt"

	"github.com/google/uuid"
)

// NewVerificationToken returns an unguessable opaque token (UUIDv4, 122 random bits
// drawn from crypto/rand).
func NewVerificationToken() (string, error) {
	u, err := uuid.NewRandom()
	if err != nil {
		return "", fmt.Errorf("generate verification token: %w", err)
	}
	return u.String(), nil
}

// NewTokenID returns a unique identifier for the jti claim of a signed token.
func NewTokenID() string {
	return uuid.NewString()
}
