package id

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewUserID_IsValidAndUnique(t *testing.T) {
	a, b := NewUserID(), NewUserID()
	assert.True(t, IsUserID(a))
	assert.Len(t, a, 26)
	assert.NotEqual(t, a, b)
}

func TestIsUserID_Rejects(t *testing.T) {
	assert.False(t, IsUserID(""))
	assert.False(t, IsUserID("not-a-ulid"))
}
