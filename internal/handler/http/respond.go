package http

import (
	"encoding/json"
	"net/http"

	"github.com/midenpay/notewarden/internal/logger"
)

// writeJSON serializes payload with the given status. Encoding failures
// are logged; by then the header is already written, so the client sees
// a truncated body rather than a second status.
func writeJSON(w http.ResponseWriter, r *http.Request, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(payload); err != nil {
		logger.FromRequest(r).Err(err).Msg("failed to encode response body")
	}
}

// writeError maps a service-layer error to its HTTP status and writes a
// JSON error body. Internal failures are masked behind a generic
// message so store detail never leaks to callers.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFromError(err)

	message := err.Error()
	if status == http.StatusInternalServerError {
		logger.FromRequest(r).Err(err).Msg("internal failure")
		message = http.StatusText(http.StatusInternalServerError)
	}

	writeJSON(w, r, status, map[string]string{"error": message})
}
