package http

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/midenpay/notewarden/internal/logger"
	"github.com/midenpay/notewarden/internal/utils"
	"github.com/midenpay/notewarden/models"
)

// sendSingle creates one transaction note. A payload that is neither
// private nor recallable is accepted but not tracked; the response body
// is an explicit JSON null in that case, mirroring the engine contract.
func (h *Handler) sendSingle(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	var req models.SendTransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Str("func", "*Handler.sendSingle").Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	note, err := h.services.TransactionService.Send(r.Context(), req)
	if err != nil {
		log.Err(err).Str("func", "*Handler.sendSingle").Msg("error sending transaction note")
		writeError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusCreated, note)
}

// sendBatch creates up to 100 transaction notes as one all-or-nothing
// unit.
func (h *Handler) sendBatch(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	var reqs []models.SendTransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&reqs); err != nil {
		log.Err(err).Str("func", "*Handler.sendBatch").Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	notes, err := h.services.TransactionService.SendBatch(r.Context(), reqs)
	if err != nil {
		log.Err(err).Str("func", "*Handler.sendBatch").Msg("error sending transaction batch")
		writeError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusCreated, notes)
}

// recallBatch recalls a mixed sequence of transaction and gift notes
// with per-item failure isolation.
func (h *Handler) recallBatch(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	wallet, err := utils.WalletFromContext(r.Context())
	if err != nil {
		log.Err(err).Str("func", "*Handler.recallBatch").Msg("no wallet in context")
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	var req models.RecallBatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Str("func", "*Handler.recallBatch").Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	resp, err := h.services.RecallService.RecallBatch(r.Context(), wallet, req)
	if err != nil {
		log.Err(err).Str("func", "*Handler.recallBatch").Msg("error recalling batch")
		writeError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, resp)
}

// consume settles the listed pending notes as claimed by the recipient.
func (h *Handler) consume(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	var ids []int64
	if err := json.NewDecoder(r.Body).Decode(&ids); err != nil {
		log.Err(err).Str("func", "*Handler.consume").Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	affected, err := h.services.TransactionService.Consume(r.Context(), ids)
	if err != nil {
		log.Err(err).Str("func", "*Handler.consume").Msg("error consuming transaction notes")
		writeError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, models.AffectedResponse{Affected: affected})
}

// consumable returns the authenticated wallet's claimable inbox.
func (h *Handler) consumable(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	wallet, err := utils.WalletFromContext(r.Context())
	if err != nil {
		log.Err(err).Str("func", "*Handler.consumable").Msg("no wallet in context")
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	notes, err := h.services.TransactionService.GetConsumable(r.Context(), wallet)
	if err != nil {
		log.Err(err).Str("func", "*Handler.consumable").Msg("error fetching consumable notes")
		writeError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, notes)
}

// recallDashboard returns the authenticated wallet's recall snapshot at
// the current time.
func (h *Handler) recallDashboard(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	wallet, err := utils.WalletFromContext(r.Context())
	if err != nil {
		log.Err(err).Str("func", "*Handler.recallDashboard").Msg("no wallet in context")
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	dashboard, err := h.services.RecallService.Dashboard(r.Context(), wallet, time.Now())
	if err != nil {
		log.Err(err).Str("func", "*Handler.recallDashboard").Msg("error building recall dashboard")
		writeError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, dashboard)
}
