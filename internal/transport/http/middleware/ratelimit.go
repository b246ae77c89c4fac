package middleware

import (
	"net"
	"net/http"

	"github.com/jobportal-auth/internal/pkg/ratelimit"
)

// RateLimit enforces limiter per client address. Forwarding headers are not
// consulted here; behind a trusted proxy the router installs chi's RealIP
// first, which rewrites RemoteAddr.
func RateLimit(limiter *ratelimit.Keyed) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !limiter.Allow(clientIP(r)) {
				writeJSONError(w, http.StatusTooManyRequests, "too_many_requests", "Request was throttled.")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// clientIP is the host part of RemoteAddr.
func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
