package domain

import (
	"context"
	"time"
)

// Purpose scopes an OTP or verification token to one follow-up action.
type Purpose string

const (
	PurposeRegister Purpose = "register"
	PurposeReset    Purpose = "reset"
)

func (p Purpose) Valid() bool {
	return p == PurposeRegister || p == PurposeReset
}

// OTPKey is the ephemeral-store key holding the pending code for (purpose, email).
func OTPKey(purpose Purpose, email string) string {
	return "otp:" + string(purpose) + ":" + email
}

// VerifiedKey is the ephemeral-store key binding a verification token to an email.
func VerifiedKey(purpose Purpose, token string) string {
	return "verified:" + string(purpose) + ":" + token
}

// VerificationResult is what a successful OTP check yields. Exactly one of the
// fields is meaningful depending on the protocol that produced it.
type VerificationResult struct {
	VerificationToken string
	EmailVerified     bool
}

// EphemeralStore is a TTL key-value store. Implementations must be safe for
// concurrent use and must never return an expired entry.
type EphemeralStore interface {
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	// Get returns found=false for a missing or expired key; err is reserved for backend failures.
	Get(ctx context.Context, key string) (value string, found bool, err error)
	Delete(ctx context.Context, key string) error
	// Take atomically reads and removes a key.
	Take(ctx context.Context, key string) (value string, found bool, err error)
	// CompareAndDelete removes key only while it still holds value. It reports
	// whether the entry was removed.
	CompareAndDelete(ctx context.Context, key, value string) (bool, error)
}
