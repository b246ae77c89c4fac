package account

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/jobportal-auth/internal/application/verification"
	"github.com/jobportal-auth/internal/domain"
	jwtinfra "github.com/jobportal-auth/internal/infrastructure/jwt"
	"github.com/jobportal-auth/internal/pkg/id"
	"github.com/jobportal-auth/internal/pkg/password"
	"github.com/jobportal-auth/internal/pkg/validate"
)

type CompleteRegistrationRequest struct {
	Email             string `json:"email" validate:"required,email,max=254"`
	FirstName         string `json:"first_name" validate:"required,max=30"`
	LastName          string `json:"last_name" validate:"required,max=30"`
	Password          string `json:"password" validate:"required,max=128"`
	VerificationToken string `json:"verification_token" validate:"required"`
	Role              string `json:"role" validate:"omitempty,oneof=job_seeker employer"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type ResetPasswordRequest struct {
	Email             string `json:"email" validate:"required,email"`
	VerificationToken string `json:"verification_token" validate:"required"`
	NewPassword       string `json:"new_password" validate:"required,max=128"`
}

// RegisterRequest is the signup form of the record-resident OTP flow.
type RegisterRequest struct {
	Email           string  `json:"email" validate:"required,email,max=254"`
	FirstName       string  `json:"first_name" validate:"required,max=30"`
	LastName        string  `json:"last_name" validate:"required,max=30"`
	PhoneNumber     *string `json:"phone_number" validate:"omitempty,max=15"`
	Role            string  `json:"role" validate:"omitempty,oneof=job_seeker employer"`
	Password        string  `json:"password" validate:"required,max=128"`
	ConfirmPassword string  `json:"confirm_password" validate:"required"`
}

type RegisterResult struct {
	User    *domain.User
	OTPSent bool
}

type Service interface {
	CompleteRegistration(ctx context.Context, req CompleteRegistrationRequest) (*domain.AuthResult, error)
	Login(ctx context.Context, req LoginRequest) (*domain.AuthResult, error)
	ResetPassword(ctx context.Context, req ResetPasswordRequest) error
	Refresh(ctx context.Context, refreshToken string) (string, error)

	Register(ctx context.Context, req RegisterRequest) (*RegisterResult, error)
	VerifyEmail(ctx context.Context, email, otp string) error
	ResendOTP(ctx context.Context, email string) error
}

type userStore interface {
	Get(ctx context.Context, userID string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	Create(ctx context.Context, u *domain.User) error
	SetPassword(ctx context.Context, userID, hash string) error
}

type tokenExchange interface {
	Peek(ctx context.Context, purpose domain.Purpose, token, email string) error
	Consume(ctx context.Context, purpose domain.Purpose, token, email string) error
}

type recordProtocol interface {
	verification.Protocol
	Send(ctx context.Context, u *domain.User) error
}

type tokenIssuer interface {
	IssuePair(u *domain.User) (*domain.TokenPair, error)
	VerifyRefresh(token string) (*jwtinfra.Claims, error)
	AccessFromRefresh(c *jwtinfra.Claims) (string, error)
}

type service struct {
	users           userStore
	exchange        tokenExchange
	record          recordProtocol
	tokens          tokenIssuer
	requireVerified bool
	now             func() time.Time

	dummyOnce sync.Once
	dummyHash string
}

type ServiceDeps struct {
	UserRepo        userStore
	Exchange        tokenExchange
	RecordOTP       recordProtocol
	Tokens          tokenIssuer
	RequireVerified bool
}

func NewService(deps ServiceDeps) Service {
	return &service{
		users:           deps.UserRepo,
		exchange:        deps.Exchange,
		record:          deps.RecordOTP,
		tokens:          deps.Tokens,
		requireVerified: deps.RequireVerified,
		now:             time.Now,
	}
}

func (s *service) CompleteRegistration(ctx context.Context, req CompleteRegistrationRequest) (*domain.AuthResult, error) {
	if err := validate.Struct(req); err != nil {
		return nil, err
	}
	email := domain.NormalizeEmail(req.Email)

	if err := s.exchange.Peek(ctx, domain.PurposeRegister, req.VerificationToken, email); err != nil {
		return nil, err
	}
	if err := checkPassword("password", req.Password, email, req.FirstName, req.LastName); err != nil {
		return nil, err
	}
	if err := s.ensureEmailFree(ctx, email); err != nil {
		return nil, err
	}
	role := req.Role
	if role == "" {
		role = domain.RoleJobSeeker
	}
	u, err := s.newUser(email, req.FirstName, req.LastName, role, req.Password)
	if err != nil {
		return nil, err
	}
	if err := s.exchange.Consume(ctx, domain.PurposeRegister, req.VerificationToken, email); err != nil {
		return nil, err
	}
	u.IsVerified = true
	if err := s.users.Create(ctx, u); err != nil {
		return nil, err
	}

	pair, err := s.tokens.IssuePair(u)
	if err != nil {
		return nil, err
	}
	return &domain.AuthResult{User: u, Tokens: pair}, nil
}

func (s *service) Login(ctx context.Context, req LoginRequest) (*domain.AuthResult, error) {
	if err := validate.Struct(req); err != nil {
		return nil, err
	}
	u, err := s.users.GetByEmail(ctx, domain.NormalizeEmail(req.Email))
	if errors.Is(err, domain.ErrNotFound) {
		// Spend the same bcrypt time as a real check.
		password.Verify(s.dummy(), req.Password)
		return nil, domain.ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}
	if !password.Verify(u.PasswordHash, req.Password) {
		return nil, domain.ErrInvalidCredentials
	}
	if !u.IsActive {
		return nil, domain.ErrAccountDisabled
	}
	if s.requireVerified && !u.IsVerified {
		return nil, domain.ErrAccountNotVerified
	}

	pair, err := s.tokens.IssuePair(u)
	if err != nil {
		return nil, err
	}
	return &domain.AuthResult{User: u, Tokens: pair}, nil
}

func (s *service) ResetPassword(ctx context.Context, req ResetPasswordRequest) error {
	if err := validate.Struct(req); err != nil {
		return err
	}
	email := domain.NormalizeEmail(req.Email)

	if err := s.exchange.Peek(ctx, domain.PurposeReset, req.VerificationToken, email); err != nil {
		return err
	}
	if err := checkPassword("new_password", req.NewPassword, email); err != nil {
		return err
	}
	u, err := s.users.GetByEmail(ctx, email)
	if errors.Is(err, domain.ErrNotFound) {
		return domain.ErrUserNotFound
	}
	if err != nil {
		return err
	}
	hash, err := password.Hash(req.NewPassword)
	if err != nil {
		return err
	}
	if err := s.exchange.Consume(ctx, domain.PurposeReset, req.VerificationToken, email); err != nil {
		return err
	}
	return s.users.SetPassword(ctx, u.UserID, hash)
}

func (s *service) Refresh(ctx context.Context, refreshToken string) (string, error) {
	claims, err := s.tokens.VerifyRefresh(refreshToken)
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrUnauthorized, err)
	}
	u, err := s.users.Get(ctx, claims.UserID)
	if errors.Is(err, domain.ErrNotFound) {
		return "", domain.ErrUnauthorized
	}
	if err != nil {
		return "", err
	}
	if !u.IsActive {
		return "", domain.ErrAccountDisabled
	}
	return s.tokens.AccessFromRefresh(claims)
}

func (s *service) Register(ctx context.Context, req RegisterRequest) (*RegisterResult, error) {
	if err := validate.Struct(req); err != nil {
		return nil, err
	}
	email := domain.NormalizeEmail(req.Email)
	if req.Password != req.ConfirmPassword {
		return nil, domain.NewValidationError("confirm_password", "Passwords do not match.")
	}
	if err := checkPassword("password", req.Password, email, req.FirstName, req.LastName); err != nil {
		return nil, err
	}
	if err := s.ensureEmailFree(ctx, email); err != nil {
		return nil, err
	}

	role := req.Role
	if role == "" {
		role = domain.RoleJobSeeker
	}
	u, err := s.newUser(email, req.FirstName, req.LastName, role, req.Password)
	if err != nil {
		return nil, err
	}
	u.PhoneNumber = req.PhoneNumber
	if err := s.users.Create(ctx, u); err != nil {
		return nil, err
	}

	res := &RegisterResult{User: u, OTPSent: true}
	if err := s.record.Send(ctx, u); err != nil {
		slog.WarnContext(ctx, "signup otp not sent", "user_id", u.UserID, "err", err)
		res.OTPSent = false
	}
	return res, nil
}

func (s *service) VerifyEmail(ctx context.Context, email, otp string) error {
	_, err := s.record.Verify(ctx, email, otp, domain.PurposeRegister)
	return err
}

func (s *service) ResendOTP(ctx context.Context, email string) error {
	return s.record.Request(ctx, email, domain.PurposeRegister)
}

func (s *service) ensureEmailFree(ctx context.Context, email string) error {
	_, err := s.users.GetByEmail(ctx, email)
	if err == nil {
		return fmt.Errorf("email already registered: %w", domain.ErrConflict)
	}
	if errors.Is(err, domain.ErrNotFound) {
		return nil
	}
	return err
}

func (s *service) newUser(email, first, last, role, plain string) (*domain.User, error) {
	hash, err := password.Hash(plain)
	if err != nil {
		return nil, err
	}
	now := s.now().UTC()
	return &domain.User{
		UserID:       id.NewUserID(),
		Email:        email,
		PasswordHash: hash,
		FirstName:    first,
		LastName:     last,
		Role:         role,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}, nil
}

func (s *service) dummy() string {
	s.dummyOnce.Do(func() {
		s.dummyHash, _ = password.Hash("not-a-real-password")
	})
	return s.dummyHash
}

func checkPassword(field, pw string, attrs ...string) error {
	problems := password.Validate(pw, attrs...)
	if len(problems) == 0 {
		return nil
	}
	verr := &domain.ValidationError{}
	for _, p := range problems {
		verr.Add(field, p)
	}
	return verr
}
