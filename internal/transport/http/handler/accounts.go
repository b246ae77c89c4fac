package handler

import (
	"net/http"

	"github.com/jobportal-auth/internal/application/account"
	"github.com/jobportal-auth/internal/domain"
)

type VerifyEmailRequest struct {
	Email string `json:"email" validate:"required,email"`
	OTP   string `json:"otp" validate:"required,numeric,min=4,max=10"`
}

type ResendOTPRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// AccountHandler serves signup with a code stored on the user record.
type AccountHandler struct {
	accounts account.Service
}

func NewAccountHandler(accounts account.Service) *AccountHandler {
	return &AccountHandler{accounts: accounts}
}

func (h *AccountHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req account.RegisterRequest
	if !decodeOnly(w, r, &req) {
		return
	}
	res, err := h.accounts.Register(r.Context(), req)
	if err != nil {
		httpError(w, r, err)
		return
	}
	detail := "Registration successful. Please check your email for the OTP."
	if !res.OTPSent {
		detail = "Registration successful, but the OTP email could not be sent. Request a new one."
	}
	writeJSON(w, http.StatusCreated, SignupEnvelope{
		Detail:  detail,
		Email:   res.User.Email,
		OTPSent: res.OTPSent,
	})
}

func (h *AccountHandler) VerifyEmail(w http.ResponseWriter, r *http.Request) {
	var req VerifyEmailRequest
	if !decodeValid(w, r, &req) {
		return
	}
	if err := h.accounts.VerifyEmail(r.Context(), domain.NormalizeEmail(req.Email), req.OTP); err != nil {
		httpError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, DetailEnvelope{Detail: "Email verified successfully."})
}

func (h *AccountHandler) ResendOTP(w http.ResponseWriter, r *http.Request) {
	var req ResendOTPRequest
	if !decodeValid(w, r, &req) {
		return
	}
	if err := h.accounts.ResendOTP(r.Context(), domain.NormalizeEmail(req.Email)); err != nil {
		httpError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, DetailEnvelope{Detail: "If the account exists and is unverified, a new OTP has been sent."})
}
