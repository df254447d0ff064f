package http

import (
	"encoding/json"
	"net/http"

	"github.com/midenpay/notewarden/internal/logger"
	"github.com/midenpay/notewarden/models"
)

// initiateAuth issues a one-time challenge for the wallet to sign.
func (h *Handler) initiateAuth(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	var req models.InitiateAuthRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Str("func", "*Handler.initiateAuth").Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	resp, err := h.services.AuthService.InitiateChallenge(r.Context(), req.WalletAddress)
	if err != nil {
		log.Err(err).Str("func", "*Handler.initiateAuth").Msg("error initiating auth challenge")
		writeError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, resp)
}

// authenticate exchanges a signed challenge for a session token.
func (h *Handler) authenticate(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	var req models.AuthenticateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Str("func", "*Handler.authenticate").Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	resp, err := h.services.AuthService.Authenticate(r.Context(), req)
	if err != nil {
		log.Err(err).Str("func", "*Handler.authenticate").Msg("authentication failed")
		writeError(w, r, err)
		return
	}

	w.Header().Set("Authorization", "Bearer "+resp.SessionToken)
	writeJSON(w, r, http.StatusOK, resp)
}

// appVersion reports the running application version.
func (h *Handler) appVersion(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, map[string]string{"version": h.version})
}
