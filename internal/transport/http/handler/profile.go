package handler

import (
	"net/http"

	"github.com/jobportal-auth/internal/application/profile"
	"github.com/jobportal-auth/internal/domain"
	"github.com/jobportal-auth/internal/transport/http/middleware"
)

// ProfileHandler serves the authenticated user's own profile.
type ProfileHandler struct {
	svc profile.Service
}

func NewProfileHandler(svc profile.Service) *ProfileHandler { return &ProfileHandler{svc: svc} }

func (h *ProfileHandler) Get(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		httpError(w, r, domain.ErrUnauthorized)
		return
	}
	v, err := h.svc.Get(r.Context(), claims.UserID)
	if err != nil {
		httpError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toProfile(v))
}

// Update serves both PUT and PATCH; absent fields are left unchanged either way.
func (h *ProfileHandler) Update(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		httpError(w, r, domain.ErrUnauthorized)
		return
	}
	var req domain.UpdateProfileRequest
	if !decodeOnly(w, r, &req) {
		return
	}
	v, err := h.svc.Update(r.Context(), claims.UserID, req)
	if err != nil {
		httpError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toProfile(v))
}
