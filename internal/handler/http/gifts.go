package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/midenpay/notewarden/internal/logger"
	"github.com/midenpay/notewarden/models"
)

// sendGift mints a gift note and returns it together with the claim
// link. The link embeds the cleartext secret and is shown exactly once.
func (h *Handler) sendGift(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	var req models.CreateGiftRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Str("func", "*Handler.sendGift").Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	gift, err := h.services.GiftService.Send(r.Context(), req)
	if err != nil {
		log.Err(err).Str("func", "*Handler.sendGift").Msg("error sending gift")
		writeError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusCreated, gift)
}

// getGift looks a gift up by its claim secret. An unknown secret yields
// a JSON null body, not an error: lookup is a probe.
func (h *Handler) getGift(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	secret := chi.URLParam(r, "secret")

	gift, err := h.services.GiftService.GetBySecret(r.Context(), secret)
	if err != nil {
		log.Err(err).Str("func", "*Handler.getGift").Msg("error fetching gift by secret")
		writeError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, gift)
}

// openGift claims the gift matching the presented secret. A second open
// fails: the first settlement wins.
func (h *Handler) openGift(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	secret := chi.URLParam(r, "secret")

	gift, err := h.services.GiftService.Open(r.Context(), secret)
	if err != nil {
		log.Err(err).Str("func", "*Handler.openGift").Msg("error opening gift")
		writeError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, gift)
}

// recallGift reclaims a pending gift for its sender. The sender address
// comes from the request body; whether it is enforced against the
// gift's owner is a configuration policy.
func (h *Handler) recallGift(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		log.Err(err).Str("func", "*Handler.recallGift").Msg("invalid gift id")
		http.Error(w, "invalid gift id", http.StatusBadRequest)
		return
	}

	var req struct {
		Sender string `json:"senderAddress"`
	}
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Err(err).Str("func", "*Handler.recallGift").Msg("Invalid JSON was passed")
			http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
			return
		}
	}

	gift, err := h.services.GiftService.Recall(r.Context(), id, req.Sender)
	if err != nil {
		log.Err(err).Str("func", "*Handler.recallGift").Msg("error recalling gift")
		writeError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, gift)
}
