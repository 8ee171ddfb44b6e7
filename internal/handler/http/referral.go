package http

import (
	"net/http"

	"github.com/akarimullin/tasktrack/internal/logger"
	"github.com/akarimullin/tasktrack/internal/utils"
)

func (h *Handler) referralSummary(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, ok := authedUserID(w, r)
	if !ok {
		return
	}

	resp, err := h.services.ReferralService.Summary(ctx, userID)
	if err != nil {
		log.Err(err).Msg("referral summary failed")
		respondError(w, err)
		return
	}

	utils.WriteJSON(w, resp, http.StatusOK)
}

// generateRecoveryCodes mints a fresh batch, invalidating every previously
// issued code. The plaintext appears in this response and nowhere else.
func (h *Handler) generateRecoveryCodes(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, ok := authedUserID(w, r)
	if !ok {
		return
	}

	resp, err := h.services.RecoveryService.Generate(ctx, userID)
	if err != nil {
		log.Err(err).Msg("recovery code generation failed")
		respondError(w, err)
		return
	}

	utils.WriteJSON(w, resp, http.StatusCreated)
}

// recoveryCodesStatus reports how many codes remain in the current batch.
// The codes themselves are never returned here.
func (h *Handler) recoveryCodesStatus(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, ok := authedUserID(w, r)
	if !ok {
		return
	}

	resp, err := h.services.RecoveryService.Status(ctx, userID)
	if err != nil {
		log.Err(err).Msg("recovery code status failed")
		respondError(w, err)
		return
	}

	utils.WriteJSON(w, resp, http.StatusOK)
}
