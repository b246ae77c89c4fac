package handler

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/jobportal-auth/internal/application/account"
	"github.com/jobportal-auth/internal/application/profile"
	"github.com/jobportal-auth/internal/domain"
)

type mockProtocol struct{ mock.Mock }

func (m *mockProtocol) Request(ctx context.Context, email string, purpose domain.Purpose) error {
	return m.Called(ctx, email, purpose).Error(0)
}
func (m *mockProtocol) Verify(ctx context.Context, email, code string, purpose domain.Purpose) (*domain.VerificationResult, error) {
	args := m.Called(ctx, email, code, purpose)
	r, _ := args.Get(0).(*domain.VerificationResult)
	return r, args.Error(1)
}

type mockAccountSvc struct{ mock.Mock }

func (m *mockAccountSvc) CompleteRegistration(ctx context.Context, req account.CompleteRegistrationRequest) (*domain.AuthResult, error) {
	args := m.Called(ctx, req)
	r, _ := args.Get(0).(*domain.AuthResult)
	return r, args.Error(1)
}
func (m *mockAccountSvc) Login(ctx context.Context, req account.LoginRequest) (*domain.AuthResult, error) {
	args := m.Called(ctx, req)
	r, _ := args.Get(0).(*domain.AuthResult)
	return r, args.Error(1)
}
func (m *mockAccountSvc) ResetPassword(ctx context.Context, req account.ResetPasswordRequest) error {
	return m.Called(ctx, req).Error(0)
}
func (m *mockAccountSvc) Refresh(ctx context.Context, refreshToken string) (string, error) {
	args := m.Called(ctx, refreshToken)
	return args.String(0), args.Error(1)
}
func (m *mockAccountSvc) Register(ctx context.Context, req account.RegisterRequest) (*account.RegisterResult, error) {
	args := m.Called(ctx, req)
	r, _ := args.Get(0).(*account.RegisterResult)
	return r, args.Error(1)
}
func (m *mockAccountSvc) VerifyEmail(ctx context.Context, email, otp string) error {
	return m.Called(ctx, email, otp).Error(0)
}
func (m *mockAccountSvc) ResendOTP(ctx context.Context, email string) error {
	return m.Called(ctx, email).Error(0)
}

type mockProfileSvc struct{ mock.Mock }

func (m *mockProfileSvc) Get(ctx context.Context, userID string) (*profile.View, error) {
	args := m.Called(ctx, userID)
	v, _ := args.Get(0).(*profile.View)
	return v, args.Error(1)
}
func (m *mockProfileSvc) Update(ctx context.Context, userID string, req domain.UpdateProfileRequest) (*profile.View, error) {
	args := m.Called(ctx, userID, req)
	v, _ := args.Get(0).(*profile.View)
	return v, args.Error(1)
}
