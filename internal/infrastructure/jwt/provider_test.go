package jwtinfra

import (
	"crypto/rand"
	"crypto/rsa"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jobportal-auth/internal/domain"
)

func newTestProvider(t *testing.T) *Provider {
	t.Helper()
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	return NewProviderFromKeys(key, &key.PublicKey, "jobportal", 30*time.Minute, 24*time.Hour)
}

var testUser = &domain.User{
	UserID:    "01HZY0000000000000000000AA",
	Email:     "ada@x.com",
	FirstName: "Ada",
	LastName:  "Lovelace",
	Role:      domain.RoleJobSeeker,
}

func TestIssuePair_ClaimsAndTypes(t *testing.T) {
	p := newTestProvider(t)
	pair, err := p.IssuePair(testUser)
	require.NoError(t, err)

	ac, err := p.VerifyAccess(pair.Access)
	require.NoError(t, err)
	assert.Equal(t, testUser.UserID, ac.UserID)
	assert.Equal(t, "ada@x.com", ac.Email)
	assert.Equal(t, "Ada", ac.FirstName)
	assert.Equal(t, "Lovelace", ac.LastName)
	assert.Equal(t, domain.RoleJobSeeker, ac.Role)
	assert.Equal(t, TypeAccess, ac.TokenType)
	assert.NotEmpty(t, ac.ID)
	assert.Equal(t, 30*time.Minute, ac.ExpiresAt.Sub(ac.IssuedAt.Time))

	rc, err := p.VerifyRefresh(pair.Refresh)
	require.NoError(t, err)
	assert.Equal(t, 24*time.Hour, rc.ExpiresAt.Sub(rc.IssuedAt.Time))
	assert.NotEqual(t, ac.ID, rc.ID)
}

func TestVerify_WrongType(t *testing.T) {
	p := newTestProvider(t)
	pair, err := p.IssuePair(testUser)
	require.NoError(t, err)

	_, err = p.VerifyAccess(pair.Refresh)
	assert.True(t, errors.Is(err, ErrWrongTokenType))
	_, err = p.VerifyRefresh(pair.Access)
	assert.True(t, errors.Is(err, ErrWrongTokenType))
}

func TestVerify_Expired(t *testing.T) {
	p := newTestProvider(t)
	p.now = func() time.Time { return time.Now().Add(-time.Hour) }
	pair, err := p.IssuePair(testUser)
	require.NoError(t, err)

	p.now = time.Now
	_, err = p.VerifyAccess(pair.Access)
	assert.True(t, errors.Is(err, jwt.ErrTokenExpired))
}

func TestVerify_ForeignKey(t *testing.T) {
	p1, p2 := newTestProvider(t), newTestProvider(t)
	pair, err := p1.IssuePair(testUser)
	require.NoError(t, err)

	_, err = p2.VerifyAccess(pair.Access)
	assert.Error(t, err)
}

func TestVerify_RejectsHMAC(t *testing.T) {
	p := newTestProvider(t)
	forged := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{TokenType: TypeAccess})
	s, err := forged.SignedString([]byte("secret"))
	require.NoError(t, err)

	_, err = p.VerifyAccess(s)
	assert.Error(t, err)
}

func TestAccessFromRefresh(t *testing.T) {
	p := newTestProvider(t)
	pair, err := p.IssuePair(testUser)
	require.NoError(t, err)
	rc, err := p.VerifyRefresh(pair.Refresh)
	require.NoError(t, err)

	access, err := p.AccessFromRefresh(rc)
	require.NoError(t, err)
	ac, err := p.VerifyAccess(access)
	require.NoError(t, err)
	assert.Equal(t, testUser.UserID, ac.UserID)
}
