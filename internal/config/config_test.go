package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	cfg := Load()

	assert.Equal(t, "3000", cfg.AppPort)
	assert.Equal(t, "memory", cfg.EphemeralBackend)
	assert.Equal(t, "console", cfg.EmailBackend)
	assert.Equal(t, 30*time.Minute, cfg.AccessTokenTTL)
	assert.Equal(t, 24*time.Hour, cfg.RefreshTokenTTL)
	assert.Equal(t, 5*time.Minute, cfg.OTPTTL)
	assert.Equal(t, 10*time.Minute, cfg.VerificationTokenTTL)
	assert.Equal(t, 6, cfg.OTPLength)
	assert.True(t, cfg.LoginRequireVerified)
	assert.False(t, cfg.TrustProxyHeaders)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("EPHEMERAL_BACKEND", "Redis")
	t.Setenv("OTP_TTL", "90s")
	t.Setenv("OTP_LENGTH", "8")
	t.Setenv("LOGIN_REQUIRE_VERIFIED", "false")
	t.Setenv("ALLOWED_ORIGINS", "https://a.example,https://b.example")
	t.Setenv("TRUST_PROXY_HEADERS", "true")

	cfg := Load()

	assert.Equal(t, "redis", cfg.EphemeralBackend)
	assert.Equal(t, 90*time.Second, cfg.OTPTTL)
	assert.Equal(t, 8, cfg.OTPLength)
	assert.False(t, cfg.LoginRequireVerified)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.AllowedOrigins)
	assert.True(t, cfg.TrustProxyHeaders)
}

func TestLoad_MalformedValuesFallBack(t *testing.T) {
	t.Setenv("OTP_TTL", "five minutes")
	t.Setenv("REDIS_DB", "x")
	t.Setenv("LOGIN_REQUIRE_VERIFIED", "maybe")

	cfg := Load()

	assert.Equal(t, 5*time.Minute, cfg.OTPTTL)
	assert.Equal(t, 0, cfg.RedisDB)
	assert.True(t, cfg.LoginRequireVerified)
}
