package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.withTraceID)
	router.Use(h.withLogging)
	router.Use(withGZip)

	// routes without authorization
	router.Group(func(r chi.Router) {
		r.Post("/api/auth/register", h.register)
		r.Post("/api/auth/login", h.login)
		r.Post("/api/auth/reset-password/recovery-code", h.resetPasswordWithRecoveryCode)
	})

	// routes requiring a valid session token
	router.Group(func(r chi.Router) {
		r.Use(h.auth)

		r.Post("/api/auth/change-temp-password", h.changeTempPassword)

		r.Get("/api/users/me", h.profile)
		r.Patch("/api/users/me", h.updateProfile)
		r.Post("/api/users/me/password", h.changePassword)

		r.Get("/api/tasks", h.listTasks)
		r.Post("/api/tasks", h.createTask)
		r.Get("/api/tasks/{id}", h.getTask)
		r.Put("/api/tasks/{id}", h.updateTask)
		r.Delete("/api/tasks/{id}", h.deleteTask)

		r.Get("/api/activity", h.recentActivity)

		r.Post("/api/focus/start", h.startFocusSession)
		r.Post("/api/focus/stop", h.stopFocusSession)
		r.Get("/api/focus/summary", h.focusSummary)

		r.Get("/api/notifications", h.listNotifications)
		r.Patch("/api/notifications/{id}/read", h.markNotificationRead)
		r.Post("/api/notifications/read-all", h.markAllNotificationsRead)

		r.Get("/api/events", h.listAccountEvents)
		r.Patch("/api/events/{id}/read", h.markAccountEventRead)

		r.Get("/api/referral", h.referralSummary)
		r.Post("/api/recovery-codes", h.generateRecoveryCodes)
		r.Get("/api/recovery-codes/status", h.recoveryCodesStatus)

		// admin surface
		r.Route("/api/admin", func(r chi.Router) {
			r.Use(h.adminOnly)

			r.Get("/overview", h.adminOverview)
			r.Get("/users", h.adminListUsers)
			r.Get("/users/{id}", h.adminUserDetail)
			r.Get("/users/{id}/activity", h.adminUserActivities)
			r.Patch("/users/{id}/lock", h.adminLockUser)
			r.Patch("/users/{id}/unlock", h.adminUnlockUser)
			r.Patch("/users/{id}/status", h.adminSetUserStatus)
			r.Patch("/users/{id}/role", h.adminChangeUserRole)
			r.Post("/users/{id}/reset-password", h.adminResetUserPassword)
			r.Post("/users/{id}/force-logout", h.adminForceLogout)
			r.Get("/login-events", h.adminListLoginEvents)
			r.Get("/audit-logs", h.adminListAuditLogs)
		})
	})

	return router
}
