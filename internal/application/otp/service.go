package otp

import (
	"context"
	"crypto/subtle"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/jobportal-auth/internal/domain"
	"github.com/jobportal-auth/internal/infrastructure/mail"
	"github.com/jobportal-auth/internal/pkg/otpcode"
	"github.com/jobportal-auth/internal/pkg/ratelimit"
)

// Options tunes code lifetime and the per-identity limiters.
type Options struct {
	TTL             time.Duration
	RequestInterval time.Duration
	RequestBurst    int
	VerifyInterval  time.Duration
	VerifyBurst     int
}

// DefaultOptions: codes live 5 minutes; 3 requests then 1 per 20s; 5 verifies then 1 per 10s.
var DefaultOptions = Options{
	TTL:             5 * time.Minute,
	RequestInterval: 20 * time.Second,
	RequestBurst:    3,
	VerifyInterval:  10 * time.Second,
	VerifyBurst:     5,
}

// Service issues and checks purpose-scoped one-time codes held in an
// ephemeral store.
type Service struct {
	store    domain.EphemeralStore
	gen      *otpcode.Generator
	mailer   mail.Mailer
	ttl      time.Duration
	requests *ratelimit.Keyed
	verifies *ratelimit.Keyed
}

func NewService(store domain.EphemeralStore, gen *otpcode.Generator, mailer mail.Mailer, opts Options) *Service {
	return &Service{
		store:    store,
		gen:      gen,
		mailer:   mailer,
		ttl:      opts.TTL,
		requests: ratelimit.Every(opts.RequestInterval, opts.RequestBurst),
		verifies: ratelimit.Every(opts.VerifyInterval, opts.VerifyBurst),
	}
}

// Run evicts idle limiter entries until ctx is done.
func (s *Service) Run(ctx context.Context) {
	go s.requests.Run(ctx, 5*time.Minute)
	s.verifies.Run(ctx, 5*time.Minute)
}

// Request generates a code, stores it (replacing any pending one) and mails it.
// The outcome does not depend on whether an account exists for email.
func (s *Service) Request(ctx context.Context, email string, purpose domain.Purpose) error {
	if !purpose.Valid() {
		return domain.NewValidationError("purpose", "must be one of: register reset")
	}
	email = domain.NormalizeEmail(email)
	if !s.requests.Allow(limitKey(purpose, email)) {
		return domain.ErrTooManyRequests
	}

	code, err := s.gen.Generate()
	if err != nil {
		return err
	}
	if err := s.store.Set(ctx, domain.OTPKey(purpose, email), code, s.ttl); err != nil {
		return fmt.Errorf("store otp: %w", err)
	}

	subject, body := message(purpose, code, s.ttl)
	if err := s.mailer.SendEmail(ctx, email, subject, body); err != nil {
		slog.ErrorContext(ctx, "otp delivery failed", "purpose", purpose, "err", err)
		return fmt.Errorf("%w: %v", domain.ErrDelivery, err)
	}
	return nil
}

// Verify checks code against the pending one and consumes it on success.
// Missing, expired and wrong codes all yield domain.ErrInvalidOTP.
func (s *Service) Verify(ctx context.Context, email, code string, purpose domain.Purpose) error {
	if !purpose.Valid() {
		return domain.NewValidationError("purpose", "must be one of: register reset")
	}
	email = domain.NormalizeEmail(email)
	if !s.verifies.Allow(limitKey(purpose, email)) {
		return domain.ErrTooManyRequests
	}

	key := domain.OTPKey(purpose, email)
	stored, found, err := s.store.Get(ctx, key)
	if err != nil {
		return fmt.Errorf("load otp: %w", err)
	}
	if !found || !equal(stored, code) {
		return domain.ErrInvalidOTP
	}

	// Only one concurrent verifier removes the entry. A code re-issued since
	// the read no longer matches and is left in place.
	removed, err := s.store.CompareAndDelete(ctx, key, stored)
	if err != nil {
		return fmt.Errorf("consume otp: %w", err)
	}
	if !removed {
		return domain.ErrInvalidOTP
	}
	return nil
}

func equal(a, b string) bool {
	return subtle.ConstantTimeCompare([]byte(a), []byte(b)) == 1
}

func limitKey(purpose domain.Purpose, email string) string {
	return string(purpose) + ":" + email
}

func message(purpose domain.Purpose, code string, ttl time.Duration) (subject, body string) {
	p := string(purpose)
	subject = fmt.Sprintf("Your %s OTP Code", strings.ToUpper(p[:1])+p[1:])
	body = fmt.Sprintf("Your OTP code is %s. It is valid for %d minutes.", code, int(ttl.Minutes()))
	return subject, body
}
