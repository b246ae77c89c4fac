package verification

import (
	"context"
	"fmt"
	"time"

	"github.com/jobportal-auth/internal/domain"
	pkgtoken "github.com/jobportal-auth/internal/pkg/token"
)

// CodeService issues and checks ephemeral one-time codes.
type CodeService interface {
	Request(ctx context.Context, email string, purpose domain.Purpose) error
	Verify(ctx context.Context, email, code string, purpose domain.Purpose) error
}

// TokenExchange trades a valid one-time code for a short-lived verification
// token bound to (purpose, email). The token is single use.
type TokenExchange struct {
	codes CodeService
	store domain.EphemeralStore
	ttl   time.Duration
}

func NewTokenExchange(codes CodeService, store domain.EphemeralStore, ttl time.Duration) *TokenExchange {
	return &TokenExchange{codes: codes, store: store, ttl: ttl}
}

func (x *TokenExchange) Request(ctx context.Context, email string, purpose domain.Purpose) error {
	return x.codes.Request(ctx, email, purpose)
}

func (x *TokenExchange) Verify(ctx context.Context, email, code string, purpose domain.Purpose) (*domain.VerificationResult, error) {
	if err := x.codes.Verify(ctx, email, code, purpose); err != nil {
		return nil, err
	}
	tok, err := pkgtoken.NewVerificationToken()
	if err != nil {
		return nil, err
	}
	if err := x.store.Set(ctx, domain.VerifiedKey(purpose, tok), domain.NormalizeEmail(email), x.ttl); err != nil {
		return nil, fmt.Errorf("store verification token: %w", err)
	}
	return &domain.VerificationResult{VerificationToken: tok}, nil
}

// Peek checks that token is live and bound to email without consuming it.
func (x *TokenExchange) Peek(ctx context.Context, purpose domain.Purpose, token, email string) error {
	bound, found, err := x.store.Get(ctx, domain.VerifiedKey(purpose, token))
	if err != nil {
		return fmt.Errorf("load verification token: %w", err)
	}
	if !found || bound != domain.NormalizeEmail(email) {
		return domain.ErrInvalidToken
	}
	return nil
}

// Consume atomically removes token. Callers Peek first so a mismatched
// email never reaches here in practice; if it does the token is still gone.
func (x *TokenExchange) Consume(ctx context.Context, purpose domain.Purpose, token, email string) error {
	bound, found, err := x.store.Take(ctx, domain.VerifiedKey(purpose, token))
	if err != nil {
		return fmt.Errorf("consume verification token: %w", err)
	}
	if !found || bound != domain.NormalizeEmail(email) {
		return domain.ErrInvalidToken
	}
	return nil
}
