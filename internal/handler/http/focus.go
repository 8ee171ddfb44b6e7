package http

import (
	"net/http"

	"github.com/akarimullin/tasktrack/internal/logger"
	"github.com/akarimullin/tasktrack/internal/utils"
	"github.com/akarimullin/tasktrack/models"
)

func (h *Handler) startFocusSession(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, ok := authedUserID(w, r)
	if !ok {
		return
	}

	var req models.FocusStartRequest
	if err := decodeJSON(r, &req); err != nil {
		log.Err(err).Msg("invalid JSON was passed")
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	session, err := h.services.FocusService.Start(ctx, userID, req.DurationMinutes)
	if err != nil {
		log.Err(err).Msg("focus session start rejected")
		respondError(w, err)
		return
	}

	utils.WriteJSON(w, session, http.StatusCreated)
}

func (h *Handler) stopFocusSession(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, ok := authedUserID(w, r)
	if !ok {
		return
	}

	var req models.FocusStopRequest
	if err := decodeJSON(r, &req); err != nil {
		log.Err(err).Msg("invalid JSON was passed")
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	session, err := h.services.FocusService.Stop(ctx, userID, req.SessionID, req.TasksCompleted)
	if err != nil {
		log.Err(err).Int64("session_id", req.SessionID).Msg("focus session stop rejected")
		respondError(w, err)
		return
	}

	utils.WriteJSON(w, session, http.StatusOK)
}

func (h *Handler) focusSummary(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, ok := authedUserID(w, r)
	if !ok {
		return
	}

	summary, err := h.services.FocusService.Summary(ctx, userID)
	if err != nil {
		log.Err(err).Msg("focus summary failed")
		respondError(w, err)
		return
	}

	utils.WriteJSON(w, summary, http.StatusOK)
}
