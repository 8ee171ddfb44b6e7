package service

import (
	"github.com/akarimullin/tasktrack/internal/config"
	"github.com/akarimullin/tasktrack/internal/logger"
	"github.com/akarimullin/tasktrack/internal/store"
)

// Services aggregates every business-logic service of the server.
type Services struct {
	AuthService         AuthService
	RecoveryService     RecoveryService
	ReferralService     ReferralService
	TaskService         TaskService
	ActivityService     ActivityService
	FocusService        FocusService
	NotificationService NotificationService
	AdminService        AdminService
}

// NewServices wires the services against the repositories and the outbound
// e-mail queue.
func NewServices(storages *store.Storages, cfg *config.StructuredConfig, emailQueue EmailQueue, logger *logger.Logger) *Services {
	recoveryService := NewRecoveryService(storages.RecoveryCodeRepository, logger)
	referralService := NewReferralService(storages.UserRepository, logger)

	return &Services{
		AuthService:         NewAuthService(storages.UserRepository, storages.EventRepository, recoveryService, referralService, cfg.Auth, logger),
		RecoveryService:     recoveryService,
		ReferralService:     referralService,
		TaskService:         NewTaskService(storages.TaskRepository, storages.ActivityRepository, storages.NotificationRepository, storages.UserRepository, emailQueue, logger),
		ActivityService:     NewActivityService(storages.ActivityRepository, logger),
		FocusService:        NewFocusService(storages.FocusRepository, logger),
		NotificationService: NewNotificationService(storages.NotificationRepository, storages.EventRepository, logger),
		AdminService:        NewAdminService(storages.UserRepository, storages.EventRepository, storages.ActivityRepository, storages.StatsRepository, logger),
	}
}
