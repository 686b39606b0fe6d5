// Package handlers provides stateless HTTP response helpers.
package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/JaimeStill/translation-console/pkg/middleware"
)

// RespondJSON writes data as JSON with status.
func RespondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// RespondError logs err with the request's method, path, and id, then
// writes {"error": "<message>"} with status. The envelope matches the one
// the translation backend uses.
func RespondError(w http.ResponseWriter, r *http.Request, logger *slog.Logger, status int, err error) {
	logger.Error("request failed",
		"method", r.Method,
		"path", r.URL.Path,
		"status", status,
		"error", err,
		"request_id", middleware.RequestIDFromContext(r.Context()),
	)
	RespondJSON(w, status, map[string]string{"error": err.Error()})
}

// RespondText writes a plain-text body with status.
func RespondText(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(status)
	w.Write([]byte(body))
}
