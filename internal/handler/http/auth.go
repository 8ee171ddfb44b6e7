package http

import (
	"net/http"

	"github.com/akarimullin/tasktrack/internal/logger"
	"github.com/akarimullin/tasktrack/internal/utils"
	"github.com/akarimullin/tasktrack/models"
)

func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var req models.RegisterRequest
	if err := decodeJSON(r, &req); err != nil {
		log.Err(err).Msg("invalid JSON was passed")
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	user, token, err := h.services.AuthService.Register(ctx, req, requestMeta(r))
	if err != nil {
		log.Err(err).Msg("user registration rejected")
		respondError(w, err)
		return
	}

	log.Debug().Int64("id", user.UserID).Msg("user registered")

	utils.WriteJSON(w, models.AuthResponse{
		Token: token.SignedString,
		User:  user.Summary(),
	}, http.StatusCreated)
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var req models.LoginRequest
	if err := decodeJSON(r, &req); err != nil {
		log.Err(err).Msg("invalid JSON was passed")
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	user, token, err := h.services.AuthService.Login(ctx, req, requestMeta(r))
	if err != nil {
		log.Err(err).Msg("login rejected")
		respondError(w, err)
		return
	}

	log.Debug().Int64("id", user.UserID).Msg("user logged in")

	utils.WriteJSON(w, models.AuthResponse{
		Token: token.SignedString,
		User:  user.Summary(),
	}, http.StatusOK)
}

func (h *Handler) resetPasswordWithRecoveryCode(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var req models.RecoveryResetRequest
	if err := decodeJSON(r, &req); err != nil {
		log.Err(err).Msg("invalid JSON was passed")
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := h.services.AuthService.ResetPasswordWithRecoveryCode(ctx, req); err != nil {
		log.Err(err).Msg("recovery-code password reset rejected")
		respondError(w, err)
		return
	}

	utils.WriteMessage(w, "password has been reset", http.StatusOK)
}

func (h *Handler) changeTempPassword(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, ok := authedUserID(w, r)
	if !ok {
		return
	}

	var req models.ChangeTempPasswordRequest
	if err := decodeJSON(r, &req); err != nil {
		log.Err(err).Msg("invalid JSON was passed")
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	user, token, err := h.services.AuthService.ChangeTempPassword(ctx, userID, req.NewPassword)
	if err != nil {
		log.Err(err).Msg("temp password change rejected")
		respondError(w, err)
		return
	}

	utils.WriteJSON(w, models.AuthResponse{
		Token: token.SignedString,
		User:  user.Summary(),
	}, http.StatusOK)
}
