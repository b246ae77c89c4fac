package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// HealthHandler handles the liveness endpoint.
type HealthHandler struct{}

func NewHealthHandler() *HealthHandler { return &HealthHandler{} }

func (h *HealthHandler) Ping(w http.ResponseWriter, r *http.Request) {
	if chi.URLParam(r, "action") == "ping" {
		writeJSON(w, http.StatusOK, DetailEnvelope{Detail: "pong"})
		return
	}
	writeJSON(w, http.StatusNotFound, ErrorEnvelope{Detail: "Unknown action.", Code: "not_found"})
}
