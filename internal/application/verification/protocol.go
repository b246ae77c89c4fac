package verification

import (
	"context"

	"github.com/jobportal-auth/internal/domain"
)

// Protocol is a way of proving control of an email address with a one-time code.
type Protocol interface {
	Request(ctx context.Context, email string, purpose domain.Purpose) error
	Verify(ctx context.Context, email, code string, purpose domain.Purpose) (*domain.VerificationResult, error)
}

var (
	_ Protocol = (*TokenExchange)(nil)
	_ Protocol = (*RecordOTP)(nil)
)
