package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/jobportal-auth/internal/domain"
)

type errorMapping struct {
	err    error
	status int
	code   string
	detail string
}

var errorTable = []errorMapping{
	{domain.ErrBadRequest, http.StatusBadRequest, "bad_request", "Malformed request body."},
	{domain.ErrInvalidOTP, http.StatusBadRequest, "invalid_otp", "Invalid or expired OTP."},
	{domain.ErrInvalidToken, http.StatusBadRequest, "invalid_token", "Invalid or expired verification token."},
	{domain.ErrUserNotFound, http.StatusBadRequest, "user_not_found", "No user found with this email."},
	{domain.ErrInvalidCredentials, http.StatusUnauthorized, "invalid_credentials", "Invalid email or password."},
	{domain.ErrAccountDisabled, http.StatusUnauthorized, "account_disabled", "User account is disabled."},
	{domain.ErrAccountNotVerified, http.StatusUnauthorized, "account_not_verified", "Email address has not been verified."},
	{domain.ErrUnauthorized, http.StatusUnauthorized, "unauthorized", "Token is invalid or expired."},
	{domain.ErrForbidden, http.StatusForbidden, "permission_denied", "You do not have permission to perform this action."},
	{domain.ErrConflict, http.StatusConflict, "conflict", "A user with this email already exists."},
	{domain.ErrTooManyRequests, http.StatusTooManyRequests, "too_many_requests", "Too many requests. Please try again later."},
	{domain.ErrDelivery, http.StatusServiceUnavailable, "delivery_failed", "Could not send the email. Please try again later."},
}

// httpError maps a service error to a status and a safe error body. Anything
// unrecognized is logged and reported as a bare 500.
func httpError(w http.ResponseWriter, r *http.Request, err error) {
	var verr *domain.ValidationError
	if errors.As(err, &verr) {
		writeJSON(w, http.StatusBadRequest, ErrorEnvelope{
			Detail: "Invalid input.",
			Code:   "validation_error",
			Errors: verr.Fields,
		})
		return
	}
	for _, m := range errorTable {
		if errors.Is(err, m.err) {
			writeJSON(w, m.status, ErrorEnvelope{Detail: m.detail, Code: m.code})
			return
		}
	}
	slog.ErrorContext(r.Context(), "unhandled error", "method", r.Method, "path", r.URL.Path, "err", err)
	writeJSON(w, http.StatusInternalServerError, ErrorEnvelope{Detail: "internal server error", Code: "internal_error"})
}
