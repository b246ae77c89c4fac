package verification

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jobportal-auth/internal/application/otp"
	"github.com/jobportal-auth/internal/domain"
	"github.com/jobportal-auth/internal/infrastructure/mail"
	"github.com/jobportal-auth/internal/pkg/otpcode"
	"github.com/jobportal-auth/internal/pkg/ratelimit"
)

// UserStore is the slice of the user repository the record protocol needs.
type UserStore interface {
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	SetOTP(ctx context.Context, userID, otp string, createdAt time.Time) error
	SetVerified(ctx context.Context, userID, otp string) error
}

// RecordOTP keeps the code on the user record itself. It only serves the
// register purpose: a successful check marks the account verified.
type RecordOTP struct {
	users    UserStore
	gen      *otpcode.Generator
	mailer   mail.Mailer
	ttl      time.Duration
	requests *ratelimit.Keyed
	verifies *ratelimit.Keyed
	now      func() time.Time
}

// NewRecordOTP takes the code lifetime and per-email limits from opts.
func NewRecordOTP(users UserStore, gen *otpcode.Generator, mailer mail.Mailer, opts otp.Options) *RecordOTP {
	return &RecordOTP{
		users:    users,
		gen:      gen,
		mailer:   mailer,
		ttl:      opts.TTL,
		requests: ratelimit.Every(opts.RequestInterval, opts.RequestBurst),
		verifies: ratelimit.Every(opts.VerifyInterval, opts.VerifyBurst),
		now:      time.Now,
	}
}

// Run evicts idle limiter entries until ctx is done.
func (r *RecordOTP) Run(ctx context.Context) {
	go r.requests.Run(ctx, 5*time.Minute)
	r.verifies.Run(ctx, 5*time.Minute)
}

// Request re-sends a code. Unknown and already-verified addresses succeed
// silently so the response does not reveal account state.
func (r *RecordOTP) Request(ctx context.Context, email string, _ domain.Purpose) error {
	email = domain.NormalizeEmail(email)
	if !r.requests.Allow(email) {
		return domain.ErrTooManyRequests
	}
	u, err := r.users.GetByEmail(ctx, email)
	if errors.Is(err, domain.ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	if u.IsVerified {
		return nil
	}
	return r.Send(ctx, u)
}

// Send generates a fresh code for u, stores it on the record and mails it.
func (r *RecordOTP) Send(ctx context.Context, u *domain.User) error {
	code, err := r.gen.Generate()
	if err != nil {
		return err
	}
	if err := r.users.SetOTP(ctx, u.UserID, code, r.now()); err != nil {
		return fmt.Errorf("store otp: %w", err)
	}
	body := fmt.Sprintf("Your OTP code is %s. It is valid for %d minutes.", code, int(r.ttl.Minutes()))
	if err := r.mailer.SendEmail(ctx, u.Email, "Verify your email", body); err != nil {
		slog.ErrorContext(ctx, "verification email failed", "user_id", u.UserID, "err", err)
		return fmt.Errorf("%w: %v", domain.ErrDelivery, err)
	}
	return nil
}

// Verify checks code against the one stored on the record and marks the
// account verified. Attempts are throttled per address.
func (r *RecordOTP) Verify(ctx context.Context, email, code string, _ domain.Purpose) (*domain.VerificationResult, error) {
	email = domain.NormalizeEmail(email)
	if !r.verifies.Allow(email) {
		return nil, domain.ErrTooManyRequests
	}
	u, err := r.users.GetByEmail(ctx, email)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, domain.ErrInvalidOTP
	}
	if err != nil {
		return nil, err
	}
	if u.OTP == nil || u.OTPCreatedAt == nil {
		return nil, domain.ErrInvalidOTP
	}
	if subtle.ConstantTimeCompare([]byte(*u.OTP), []byte(code)) != 1 {
		return nil, domain.ErrInvalidOTP
	}
	if r.now().Sub(*u.OTPCreatedAt) > r.ttl {
		return nil, domain.ErrInvalidOTP
	}

	err = r.users.SetVerified(ctx, u.UserID, code)
	if errors.Is(err, domain.ErrConflict) {
		return nil, domain.ErrInvalidOTP
	}
	if err != nil {
		return nil, err
	}
	return &domain.VerificationResult{EmailVerified: true}, nil
}
