package handler

import (
	"net/http"

	"github.com/jobportal-auth/internal/application/account"
	"github.com/jobportal-auth/internal/application/verification"
	"github.com/jobportal-auth/internal/domain"
	"github.com/jobportal-auth/internal/pkg/validate"
)

type OTPRequest struct {
	Email   string `json:"email" validate:"required,email,max=254"`
	Purpose string `json:"purpose" validate:"required,oneof=register reset"`
}

type OTPVerifyRequest struct {
	Email   string `json:"email" validate:"required,email,max=254"`
	Purpose string `json:"purpose" validate:"required,oneof=register reset"`
	OTP     string `json:"otp" validate:"required,numeric,min=4,max=10"`
}

type RefreshRequest struct {
	Refresh string `json:"refresh" validate:"required"`
}

// AuthHandler serves the OTP + verification-token flow and session endpoints.
type AuthHandler struct {
	verifier verification.Protocol
	accounts account.Service
}

func NewAuthHandler(verifier verification.Protocol, accounts account.Service) *AuthHandler {
	return &AuthHandler{verifier: verifier, accounts: accounts}
}

func (h *AuthHandler) RequestOTP(w http.ResponseWriter, r *http.Request) {
	var req OTPRequest
	if !decodeValid(w, r, &req) {
		return
	}
	if err := h.verifier.Request(r.Context(), req.Email, domain.Purpose(req.Purpose)); err != nil {
		httpError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, DetailEnvelope{Detail: "OTP sent to your email."})
}

func (h *AuthHandler) VerifyOTP(w http.ResponseWriter, r *http.Request) {
	var req OTPVerifyRequest
	if !decodeValid(w, r, &req) {
		return
	}
	res, err := h.verifier.Verify(r.Context(), req.Email, req.OTP, domain.Purpose(req.Purpose))
	if err != nil {
		httpError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, VerifyOTPEnvelope{
		Detail:            "OTP verified successfully.",
		VerificationToken: res.VerificationToken,
	})
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req account.CompleteRegistrationRequest
	if !decodeOnly(w, r, &req) {
		return
	}
	res, err := h.accounts.CompleteRegistration(r.Context(), req)
	if err != nil {
		httpError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, toAuth(res))
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req account.LoginRequest
	if !decodeOnly(w, r, &req) {
		return
	}
	res, err := h.accounts.Login(r.Context(), req)
	if err != nil {
		httpError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toAuth(res))
}

func (h *AuthHandler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	var req account.ResetPasswordRequest
	if !decodeOnly(w, r, &req) {
		return
	}
	if err := h.accounts.ResetPassword(r.Context(), req); err != nil {
		httpError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, DetailEnvelope{Detail: "Password has been reset successfully."})
}

func (h *AuthHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	var req RefreshRequest
	if !decodeValid(w, r, &req) {
		return
	}
	access, err := h.accounts.Refresh(r.Context(), req.Refresh)
	if err != nil {
		httpError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, AccessEnvelope{Access: access})
}

// decodeOnly decodes the body; the service validates it.
func decodeOnly(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	if err := decode(r, dst); err != nil {
		httpError(w, r, err)
		return false
	}
	return true
}

// decodeValid decodes and validates the body.
func decodeValid(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	if !decodeOnly(w, r, dst) {
		return false
	}
	if err := validate.Struct(dst); err != nil {
		httpError(w, r, err)
		return false
	}
	return true
}

