package http

import (
	"net/http"

	"github.com/akarimullin/tasktrack/internal/logger"
	"github.com/akarimullin/tasktrack/internal/utils"
	"github.com/akarimullin/tasktrack/models"
)

func (h *Handler) profile(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, ok := authedUserID(w, r)
	if !ok {
		return
	}

	user, err := h.services.AuthService.GetProfile(ctx, userID)
	if err != nil {
		log.Err(err).Msg("profile lookup failed")
		respondError(w, err)
		return
	}

	utils.WriteJSON(w, user.Profile(), http.StatusOK)
}

func (h *Handler) updateProfile(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, ok := authedUserID(w, r)
	if !ok {
		return
	}

	var req models.UpdateProfileRequest
	if err := decodeJSON(r, &req); err != nil {
		log.Err(err).Msg("invalid JSON was passed")
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	user, err := h.services.AuthService.UpdateProfile(ctx, userID, req)
	if err != nil {
		log.Err(err).Msg("profile update rejected")
		respondError(w, err)
		return
	}

	utils.WriteJSON(w, user.Profile(), http.StatusOK)
}

func (h *Handler) changePassword(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, ok := authedUserID(w, r)
	if !ok {
		return
	}

	var req models.ChangePasswordRequest
	if err := decodeJSON(r, &req); err != nil {
		log.Err(err).Msg("invalid JSON was passed")
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	user, token, err := h.services.AuthService.ChangePassword(ctx, userID, req)
	if err != nil {
		log.Err(err).Msg("password change rejected")
		respondError(w, err)
		return
	}

	utils.WriteJSON(w, models.AuthResponse{
		Token: token.SignedString,
		User:  user.Summary(),
	}, http.StatusOK)
}
