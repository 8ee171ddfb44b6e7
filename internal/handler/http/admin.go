package http

import (
	"net/http"

	"github.com/akarimullin/tasktrack/internal/logger"
	"github.com/akarimullin/tasktrack/internal/store"
	"github.com/akarimullin/tasktrack/internal/utils"
	"github.com/akarimullin/tasktrack/models"
)

func (h *Handler) adminOverview(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	overview, err := h.services.AdminService.Overview(ctx)
	if err != nil {
		log.Err(err).Msg("admin overview failed")
		respondError(w, err)
		return
	}

	utils.WriteJSON(w, overview, http.StatusOK)
}

func (h *Handler) adminListUsers(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	query := r.URL.Query()
	filter := store.UserListFilter{
		Query:  query.Get("q"),
		Role:   query.Get("role"),
		Status: query.Get("status"),
		Page:   queryInt(r, "page"),
		Limit:  queryInt(r, "limit"),
	}

	resp, err := h.services.AdminService.ListUsers(ctx, filter)
	if err != nil {
		log.Err(err).Msg("admin user listing failed")
		respondError(w, err)
		return
	}

	utils.WriteJSON(w, resp, http.StatusOK)
}

func (h *Handler) adminUserDetail(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, err := pathID(r, "id")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	detail, err := h.services.AdminService.UserDetail(ctx, userID)
	if err != nil {
		log.Err(err).Int64("user_id", userID).Msg("admin user detail failed")
		respondError(w, err)
		return
	}

	utils.WriteJSON(w, detail, http.StatusOK)
}

func (h *Handler) adminUserActivities(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, err := pathID(r, "id")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	resp, err := h.services.AdminService.UserActivities(ctx, userID, queryInt(r, "page"), queryInt(r, "limit"))
	if err != nil {
		log.Err(err).Int64("user_id", userID).Msg("admin user activity listing failed")
		respondError(w, err)
		return
	}

	utils.WriteJSON(w, resp, http.StatusOK)
}

// adminMutation resolves the acting admin and the target user ID shared by
// every mutating admin route.
func adminMutation(w http.ResponseWriter, r *http.Request) (adminID, userID int64, ok bool) {
	adminID, ok = authedUserID(w, r)
	if !ok {
		return 0, 0, false
	}

	userID, err := pathID(r, "id")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return 0, 0, false
	}

	return adminID, userID, true
}

func (h *Handler) adminLockUser(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	adminID, userID, ok := adminMutation(w, r)
	if !ok {
		return
	}

	var req models.AdminLockRequest
	if err := decodeJSON(r, &req); err != nil {
		log.Err(err).Msg("invalid JSON was passed")
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := h.services.AdminService.LockUser(ctx, adminID, userID, req.Minutes); err != nil {
		log.Err(err).Int64("user_id", userID).Msg("admin lock rejected")
		respondError(w, err)
		return
	}

	utils.WriteMessage(w, "user locked", http.StatusOK)
}

func (h *Handler) adminUnlockUser(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	adminID, userID, ok := adminMutation(w, r)
	if !ok {
		return
	}

	if err := h.services.AdminService.UnlockUser(ctx, adminID, userID); err != nil {
		log.Err(err).Int64("user_id", userID).Msg("admin unlock rejected")
		respondError(w, err)
		return
	}

	utils.WriteMessage(w, "user unlocked", http.StatusOK)
}

func (h *Handler) adminSetUserStatus(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	adminID, userID, ok := adminMutation(w, r)
	if !ok {
		return
	}

	var req models.AdminStatusRequest
	if err := decodeJSON(r, &req); err != nil {
		log.Err(err).Msg("invalid JSON was passed")
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if req.IsActive == nil {
		http.Error(w, "isActive is required", http.StatusBadRequest)
		return
	}

	if err := h.services.AdminService.SetUserStatus(ctx, adminID, userID, *req.IsActive); err != nil {
		log.Err(err).Int64("user_id", userID).Msg("admin status change rejected")
		respondError(w, err)
		return
	}

	utils.WriteMessage(w, "user status updated", http.StatusOK)
}

func (h *Handler) adminChangeUserRole(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	adminID, userID, ok := adminMutation(w, r)
	if !ok {
		return
	}

	var req models.AdminRoleRequest
	if err := decodeJSON(r, &req); err != nil {
		log.Err(err).Msg("invalid JSON was passed")
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := h.services.AdminService.ChangeUserRole(ctx, adminID, userID, req.Role); err != nil {
		log.Err(err).Int64("user_id", userID).Msg("admin role change rejected")
		respondError(w, err)
		return
	}

	utils.WriteMessage(w, "user role updated", http.StatusOK)
}

func (h *Handler) adminResetUserPassword(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	adminID, userID, ok := adminMutation(w, r)
	if !ok {
		return
	}

	var req models.AdminResetPasswordRequest
	if err := decodeJSON(r, &req); err != nil {
		log.Err(err).Msg("invalid JSON was passed")
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	temporaryPassword, err := h.services.AdminService.ResetUserPassword(ctx, adminID, userID, req.TemporaryPassword)
	if err != nil {
		log.Err(err).Int64("user_id", userID).Msg("admin password reset rejected")
		respondError(w, err)
		return
	}

	utils.WriteJSON(w, map[string]string{"temporaryPassword": temporaryPassword}, http.StatusOK)
}

func (h *Handler) adminForceLogout(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	adminID, userID, ok := adminMutation(w, r)
	if !ok {
		return
	}

	if err := h.services.AdminService.ForceLogout(ctx, adminID, userID); err != nil {
		log.Err(err).Int64("user_id", userID).Msg("admin force logout rejected")
		respondError(w, err)
		return
	}

	utils.WriteMessage(w, "logout notice sent", http.StatusOK)
}

func (h *Handler) adminListLoginEvents(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	query := r.URL.Query()
	filter := store.LoginEventFilter{
		Query: query.Get("q"),
		Page:  queryInt(r, "page"),
		Limit: queryInt(r, "limit"),
	}
	switch query.Get("success") {
	case "true":
		success := true
		filter.Success = &success
	case "false":
		success := false
		filter.Success = &success
	}

	resp, err := h.services.AdminService.ListLoginEvents(ctx, filter)
	if err != nil {
		log.Err(err).Msg("login event listing failed")
		respondError(w, err)
		return
	}

	utils.WriteJSON(w, resp, http.StatusOK)
}

func (h *Handler) adminListAuditLogs(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	resp, err := h.services.AdminService.ListAuditLogs(ctx, queryInt(r, "page"), queryInt(r, "limit"))
	if err != nil {
		log.Err(err).Msg("audit log listing failed")
		respondError(w, err)
		return
	}

	utils.WriteJSON(w, resp, http.StatusOK)
}
