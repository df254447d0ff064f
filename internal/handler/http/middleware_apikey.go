package http

import (
	"net/http"

	"github.com/midenpay/notewarden/internal/logger"
	"golang.org/x/crypto/bcrypt"
)

const apiKeyHeader = "X-Api-Key"

// apiKey guards the gift surface with a shared service key. Only the
// bcrypt hash of the key is configured server-side; the cleartext key
// lives with the calling services.
//
// An unset hash fails closed: every request is rejected until the
// deployment configures one.
func (h *Handler) apiKey(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromRequest(r)

		key := r.Header.Get(apiKeyHeader)
		if key == "" {
			log.Err(ErrMissingAPIKey).Send()
			http.Error(w, ErrMissingAPIKey.Error(), http.StatusUnauthorized)
			return
		}

		if h.apiKeyHash == "" {
			log.Error().Msg("gift surface called but no API key hash is configured")
			http.Error(w, ErrInvalidAPIKey.Error(), http.StatusUnauthorized)
			return
		}

		if err := bcrypt.CompareHashAndPassword([]byte(h.apiKeyHash), []byte(key)); err != nil {
			log.Err(ErrInvalidAPIKey).Send()
			http.Error(w, ErrInvalidAPIKey.Error(), http.StatusUnauthorized)
			return
		}

		next.ServeHTTP(w, r)
	})
}
