package handler

import (
	"encoding/json"
	"net/http"

	"github.com/jobportal-auth/internal/application/profile"
	"github.com/jobportal-auth/internal/domain"
)

// DetailEnvelope is the generic success body.
type DetailEnvelope struct {
	Detail string `json:"detail"`
}

// ErrorEnvelope is the body of every error response.
type ErrorEnvelope struct {
	Detail string              `json:"detail"`
	Code   string              `json:"code"`
	Errors []domain.FieldError `json:"errors,omitempty"`
}

type VerifyOTPEnvelope struct {
	Detail            string `json:"detail"`
	VerificationToken string `json:"verification_token"`
}

// AuthEnvelope wraps login and registration responses.
type AuthEnvelope struct {
	User    *domain.User `json:"user"`
	Access  string       `json:"access"`
	Refresh string       `json:"refresh"`
}

type AccessEnvelope struct {
	Access string `json:"access"`
}

// SignupEnvelope is returned by the record-OTP signup.
type SignupEnvelope struct {
	Detail  string `json:"detail"`
	Email   string `json:"email"`
	OTPSent bool   `json:"otp_sent"`
}

// ProfileEnvelope is a user's profile plus its completion percentage.
type ProfileEnvelope struct {
	*domain.User
	ProfileCompletion int `json:"profile_completion"`
}

func toProfile(v *profile.View) ProfileEnvelope {
	return ProfileEnvelope{User: v.User, ProfileCompletion: v.Completion}
}

func toAuth(res *domain.AuthResult) AuthEnvelope {
	return AuthEnvelope{User: res.User, Access: res.Tokens.Access, Refresh: res.Tokens.Refresh}
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// decode reads a JSON body into dst. Unknown fields are ignored.
func decode(r *http.Request, dst interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return domain.ErrBadRequest
	}
	return nil
}
