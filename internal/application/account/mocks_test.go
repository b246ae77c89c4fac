package account

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/jobportal-auth/internal/domain"
	jwtinfra "github.com/jobportal-auth/internal/infrastructure/jwt"
)

type mockUserStore struct{ mock.Mock }

func (m *mockUserStore) Get(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if u, _ := args.Get(0).(*domain.User); u != nil {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockUserStore) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if u, _ := args.Get(0).(*domain.User); u != nil {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockUserStore) Create(ctx context.Context, u *domain.User) error {
	return m.Called(ctx, u).Error(0)
}
func (m *mockUserStore) SetPassword(ctx context.Context, userID, hash string) error {
	return m.Called(ctx, userID, hash).Error(0)
}

type mockTokens struct{ mock.Mock }

func (m *mockTokens) IssuePair(u *domain.User) (*domain.TokenPair, error) {
	args := m.Called(u)
	p, _ := args.Get(0).(*domain.TokenPair)
	return p, args.Error(1)
}
func (m *mockTokens) VerifyRefresh(token string) (*jwtinfra.Claims, error) {
	args := m.Called(token)
	c, _ := args.Get(0).(*jwtinfra.Claims)
	return c, args.Error(1)
}
func (m *mockTokens) AccessFromRefresh(c *jwtinfra.Claims) (string, error) {
	args := m.Called(c)
	return args.String(0), args.Error(1)
}

type mockRecord struct{ mock.Mock }

func (m *mockRecord) Request(ctx context.Context, email string, purpose domain.Purpose) error {
	return m.Called(ctx, email, purpose).Error(0)
}
func (m *mockRecord) Verify(ctx context.Context, email, code string, purpose domain.Purpose) (*domain.VerificationResult, error) {
	args := m.Called(ctx, email, code, purpose)
	r, _ := args.Get(0).(*domain.VerificationResult)
	return r, args.Error(1)
}
func (m *mockRecord) Send(ctx context.Context, u *domain.User) error {
	return m.Called(ctx, u).Error(0)
}
