package verification

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/jobportal-auth/internal/domain"
)

type mockCodes struct{ mock.Mock }

func (m *mockCodes) Request(ctx context.Context, email string, purpose domain.Purpose) error {
	return m.Called(ctx, email, purpose).Error(0)
}
func (m *mockCodes) Verify(ctx context.Context, email, code string, purpose domain.Purpose) error {
	return m.Called(ctx, email, code, purpose).Error(0)
}

type mockUserStore struct{ mock.Mock }

func (m *mockUserStore) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if u, _ := args.Get(0).(*domain.User); u != nil {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockUserStore) SetOTP(ctx context.Context, userID, otp string, createdAt time.Time) error {
	return m.Called(ctx, userID, otp, createdAt).Error(0)
}
func (m *mockUserStore) SetVerified(ctx context.Context, userID, otp string) error {
	return m.Called(ctx, userID, otp).Error(0)
}

type mockMailer struct{ mock.Mock }

func (m *mockMailer) SendEmail(ctx context.Context, to, subject, body string) error {
	return m.Called(ctx, to, subject, body).Error(0)
}
