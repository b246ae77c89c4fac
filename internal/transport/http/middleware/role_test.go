package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jobportal-auth/internal/domain"
	jwtinfra "github.com/jobportal-auth/internal/infrastructure/jwt"
)

func TestRequireRole(t *testing.T) {
	tests := []struct {
		name    string
		claims  *jwtinfra.Claims
		allowed []string
		want    int
	}{
		{"no claims", nil, []string{domain.RoleAdmin}, http.StatusUnauthorized},
		{"seeker on admin route", &jwtinfra.Claims{Role: domain.RoleJobSeeker}, []string{domain.RoleAdmin}, http.StatusForbidden},
		{"admin on admin route", &jwtinfra.Claims{Role: domain.RoleAdmin}, []string{domain.RoleAdmin}, http.StatusOK},
		{"recruiter among several", &jwtinfra.Claims{Role: domain.RoleRecruiter}, []string{domain.RoleEmployer, domain.RoleRecruiter}, http.StatusOK},
		{"unknown role", &jwtinfra.Claims{Role: "guest"}, []string{domain.RoleJobSeeker, domain.RoleEmployer}, http.StatusForbidden},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.claims != nil {
				req = req.WithContext(context.WithValue(req.Context(), ClaimsKey, tt.claims))
			}
			rr := httptest.NewRecorder()
			RequireRole(tt.allowed...)(http.HandlerFunc(okHandler)).ServeHTTP(rr, req)
			assert.Equal(t, tt.want, rr.Code)
		})
	}
}
