package token

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewVerificationToken_IsRandomUUID(t *testing.T) {
	tok, err := NewVerificationToken()
	require.NoError(t, err)

	u, err := uuid.Parse(tok)
	require.NoError(t, err)
	assert.Equal(t, uuid.Version(4), u.Version())
}

func TestNewVerificationToken_Unique(t *testing.T) {
	seen := make(map[string]struct{})
	for i := 0; i < 1000; i++ {
		tok, err := NewVerificationToken()
		require.NoError(t, err)
		_, dup := seen[tok]
		require.False(t, dup)
		seen[tok] = struct{}{}
	}
}
