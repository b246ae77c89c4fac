package middleware

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/jobportal-auth/internal/pkg/ratelimit"
)

func TestClientIP(t *testing.T) {
	tests := []struct {
		name    string
		headers map[string]string
		remote  string
		want    string
	}{
		{"remote addr", nil, "192.168.1.1:54321", "192.168.1.1"},
		{"remote addr without port", nil, "10.0.0.9", "10.0.0.9"},
		{"forwarded-for ignored", map[string]string{"X-Forwarded-For": "1.2.3.4"}, "192.168.1.1:54321", "192.168.1.1"},
		{"real-ip ignored", map[string]string{"X-Real-Ip": "9.10.11.12"}, "192.168.1.1:54321", "192.168.1.1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.RemoteAddr = tt.remote
			for k, v := range tt.headers {
				req.Header.Set(k, v)
			}
			assert.Equal(t, tt.want, clientIP(req))
		})
	}
}

func hitFrom(h http.Handler, addr, forwarded string) int {
	req := httptest.NewRequest(http.MethodPost, "/v1/accounts/verify-email", nil)
	req.RemoteAddr = addr
	if forwarded != "" {
		req.Header.Set("X-Forwarded-For", forwarded)
	}
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr.Code
}

func TestRateLimit_BlocksAfterBurst(t *testing.T) {
	mw := RateLimit(ratelimit.Every(time.Hour, 2))(http.HandlerFunc(okHandler))

	codes := []int{hitFrom(mw, "10.0.0.1:1234", ""), hitFrom(mw, "10.0.0.1:1234", ""), hitFrom(mw, "10.0.0.1:1234", "")}
	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)
	assert.Equal(t, http.StatusOK, hitFrom(mw, "10.0.0.2:1234", ""), "buckets are per client")
}

func TestRateLimit_RotatingForwardedForSharesBucket(t *testing.T) {
	mw := RateLimit(ratelimit.Every(time.Hour, 2))(http.HandlerFunc(okHandler))

	throttled := 0
	for i := 0; i < 20; i++ {
		if hitFrom(mw, "10.0.0.1:1234", fmt.Sprintf("203.0.113.%d", i)) == http.StatusTooManyRequests {
			throttled++
		}
	}
	assert.Equal(t, 18, throttled)
}
