package verification

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/jobportal-auth/internal/domain"
	"github.com/jobportal-auth/internal/infrastructure/memstore"
)

func newExchange(t *testing.T) (*TokenExchange, *mockCodes, *memstore.Store) {
	t.Helper()
	codes := new(mockCodes)
	store := memstore.New()
	return NewTokenExchange(codes, store, 10*time.Minute), codes, store
}

func TestExchangeVerify_MintsBoundToken(t *testing.T) {
	ctx := context.Background()
	x, codes, store := newExchange(t)
	codes.On("Verify", mock.Anything, "A@x.com", "123456", domain.PurposeRegister).Return(nil)

	res, err := x.Verify(ctx, "A@x.com", "123456", domain.PurposeRegister)
	require.NoError(t, err)
	_, err = uuid.Parse(res.VerificationToken)
	require.NoError(t, err)
	assert.False(t, res.EmailVerified)

	bound, found, err := store.Get(ctx, domain.VerifiedKey(domain.PurposeRegister, res.VerificationToken))
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "a@x.com", bound)
}

func TestExchangeVerify_BadCodeMintsNothing(t *testing.T) {
	x, codes, store := newExchange(t)
	codes.On("Verify", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(domain.ErrInvalidOTP)

	_, err := x.Verify(context.Background(), "a@x.com", "000000", domain.PurposeReset)
	assert.ErrorIs(t, err, domain.ErrInvalidOTP)
	assert.Equal(t, 0, store.Len())
}

func TestExchangePeekConsume(t *testing.T) {
	ctx := context.Background()
	x, codes, _ := newExchange(t)
	codes.On("Verify", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)

	res, err := x.Verify(ctx, "a@x.com", "123456", domain.PurposeReset)
	require.NoError(t, err)
	tok := res.VerificationToken

	assert.ErrorIs(t, x.Peek(ctx, domain.PurposeReset, tok, "b@x.com"), domain.ErrInvalidToken)
	assert.ErrorIs(t, x.Peek(ctx, domain.PurposeRegister, tok, "a@x.com"), domain.ErrInvalidToken)
	require.NoError(t, x.Peek(ctx, domain.PurposeReset, tok, "A@X.com"))

	require.NoError(t, x.Consume(ctx, domain.PurposeReset, tok, "a@x.com"))
	assert.ErrorIs(t, x.Consume(ctx, domain.PurposeReset, tok, "a@x.com"), domain.ErrInvalidToken)
	assert.ErrorIs(t, x.Peek(ctx, domain.PurposeReset, tok, "a@x.com"), domain.ErrInvalidToken)
}

func TestExchangeRequest_Delegates(t *testing.T) {
	x, codes, _ := newExchange(t)
	codes.On("Request", mock.Anything, "a@x.com", domain.PurposeRegister).Return(nil)

	require.NoError(t, x.Request(context.Background(), "a@x.com", domain.PurposeRegister))
	codes.AssertExpectations(t)
}
