package middleware

import (
	"encoding/json"
	"net/http"
)

// writeJSONError writes {"detail", "code"}, the same shape the handlers use.
func writeJSONError(w http.ResponseWriter, status int, code, detail string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(struct {
		Detail string `json:"detail"`
		Code   string `json:"code"`
	}{detail, code})
}
