package http

import (
	"net/http"

	"github.com/akarimullin/tasktrack/internal/logger"
	"github.com/akarimullin/tasktrack/internal/utils"
)

func (h *Handler) listNotifications(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, ok := authedUserID(w, r)
	if !ok {
		return
	}

	resp, err := h.services.NotificationService.List(ctx, userID, queryInt(r, "limit"))
	if err != nil {
		log.Err(err).Msg("notification listing failed")
		respondError(w, err)
		return
	}

	utils.WriteJSON(w, resp, http.StatusOK)
}

func (h *Handler) markNotificationRead(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, ok := authedUserID(w, r)
	if !ok {
		return
	}

	notificationID, err := pathID(r, "id")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	notification, err := h.services.NotificationService.MarkRead(ctx, userID, notificationID)
	if err != nil {
		log.Err(err).Int64("notification_id", notificationID).Msg("notification mark-read failed")
		respondError(w, err)
		return
	}

	utils.WriteJSON(w, notification, http.StatusOK)
}

func (h *Handler) markAllNotificationsRead(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, ok := authedUserID(w, r)
	if !ok {
		return
	}

	if err := h.services.NotificationService.MarkAllRead(ctx, userID); err != nil {
		log.Err(err).Msg("notification mark-all-read failed")
		respondError(w, err)
		return
	}

	utils.WriteMessage(w, "all notifications marked as read", http.StatusOK)
}

func (h *Handler) listAccountEvents(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, ok := authedUserID(w, r)
	if !ok {
		return
	}

	resp, err := h.services.NotificationService.ListAccountEvents(ctx, userID, queryInt(r, "limit"))
	if err != nil {
		log.Err(err).Msg("account event listing failed")
		respondError(w, err)
		return
	}

	utils.WriteJSON(w, resp, http.StatusOK)
}

func (h *Handler) markAccountEventRead(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, ok := authedUserID(w, r)
	if !ok {
		return
	}

	eventID, err := pathID(r, "id")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	event, err := h.services.NotificationService.MarkAccountEventRead(ctx, userID, eventID)
	if err != nil {
		log.Err(err).Int64("event_id", eventID).Msg("account event mark-read failed")
		respondError(w, err)
		return
	}

	utils.WriteJSON(w, event, http.StatusOK)
}
