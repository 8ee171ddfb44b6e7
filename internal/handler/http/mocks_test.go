package http

import (
	"context"

	"github.com/akarimullin/tasktrack/internal/service"
	"github.com/akarimullin/tasktrack/internal/store"
	"github.com/akarimullin/tasktrack/models"
)

// Func-field mocks of the service interfaces consumed by the handlers.
// A nil field means "succeed with the zero value".

// ─────────────────────────────────────────────
// Mock: service.AuthService
// ─────────────────────────────────────────────

type mockAuthService struct {
	registerFn           func(ctx context.Context, req models.RegisterRequest, meta service.RequestMeta) (models.User, models.Token, error)
	loginFn              func(ctx context.Context, req models.LoginRequest, meta service.RequestMeta) (models.User, models.Token, error)
	validateTokenFn      func(ctx context.Context, tokenString string) (models.Token, error)
	getProfileFn         func(ctx context.Context, userID int64) (models.User, error)
	updateProfileFn      func(ctx context.Context, userID int64, upd models.UpdateProfileRequest) (models.User, error)
	changePasswordFn     func(ctx context.Context, userID int64, req models.ChangePasswordRequest) (models.User, models.Token, error)
	changeTempPasswordFn func(ctx context.Context, userID int64, newPassword string) (models.User, models.Token, error)
	resetPasswordFn      func(ctx context.Context, req models.RecoveryResetRequest) error
}

func (m *mockAuthService) Register(ctx context.Context, req models.RegisterRequest, meta service.RequestMeta) (models.User, models.Token, error) {
	if m.registerFn != nil {
		return m.registerFn(ctx, req, meta)
	}
	return models.User{}, models.Token{}, nil
}

func (m *mockAuthService) Login(ctx context.Context, req models.LoginRequest, meta service.RequestMeta) (models.User, models.Token, error) {
	if m.loginFn != nil {
		return m.loginFn(ctx, req, meta)
	}
	return models.User{}, models.Token{}, nil
}

func (m *mockAuthService) ValidateToken(ctx context.Context, tokenString string) (models.Token, error) {
	if m.validateTokenFn != nil {
		return m.validateTokenFn(ctx, tokenString)
	}
	return models.Token{}, service.ErrTokenIsExpiredOrInvalid
}

func (m *mockAuthService) GetProfile(ctx context.Context, userID int64) (models.User, error) {
	if m.getProfileFn != nil {
		return m.getProfileFn(ctx, userID)
	}
	return models.User{UserID: userID}, nil
}

func (m *mockAuthService) UpdateProfile(ctx context.Context, userID int64, upd models.UpdateProfileRequest) (models.User, error) {
	if m.updateProfileFn != nil {
		return m.updateProfileFn(ctx, userID, upd)
	}
	return models.User{UserID: userID}, nil
}

func (m *mockAuthService) ChangePassword(ctx context.Context, userID int64, req models.ChangePasswordRequest) (models.User, models.Token, error) {
	if m.changePasswordFn != nil {
		return m.changePasswordFn(ctx, userID, req)
	}
	return models.User{UserID: userID}, models.Token{}, nil
}

func (m *mockAuthService) ChangeTempPassword(ctx context.Context, userID int64, newPassword string) (models.User, models.Token, error) {
	if m.changeTempPasswordFn != nil {
		return m.changeTempPasswordFn(ctx, userID, newPassword)
	}
	return models.User{UserID: userID}, models.Token{}, nil
}

func (m *mockAuthService) ResetPasswordWithRecoveryCode(ctx context.Context, req models.RecoveryResetRequest) error {
	if m.resetPasswordFn != nil {
		return m.resetPasswordFn(ctx, req)
	}
	return nil
}

// ─────────────────────────────────────────────
// Mock: service.RecoveryService
// ─────────────────────────────────────────────

type mockRecoveryService struct {
	generateFn func(ctx context.Context, userID int64) (models.RecoveryCodesResponse, error)
	consumeFn  func(ctx context.Context, userID int64, code string) (bool, error)
	statusFn   func(ctx context.Context, userID int64) (models.RecoveryCodesStatusResponse, error)
}

func (m *mockRecoveryService) Generate(ctx context.Context, userID int64) (models.RecoveryCodesResponse, error) {
	if m.generateFn != nil {
		return m.generateFn(ctx, userID)
	}
	return models.RecoveryCodesResponse{}, nil
}

func (m *mockRecoveryService) Consume(ctx context.Context, userID int64, code string) (bool, error) {
	if m.consumeFn != nil {
		return m.consumeFn(ctx, userID, code)
	}
	return false, nil
}

func (m *mockRecoveryService) Status(ctx context.Context, userID int64) (models.RecoveryCodesStatusResponse, error) {
	if m.statusFn != nil {
		return m.statusFn(ctx, userID)
	}
	return models.RecoveryCodesStatusResponse{}, nil
}

// ─────────────────────────────────────────────
// Mock: service.ReferralService
// ─────────────────────────────────────────────

type mockReferralService struct {
	summaryFn func(ctx context.Context, userID int64) (models.ReferralResponse, error)
}

func (m *mockReferralService) AwardChain(_ context.Context, _ int64) error { return nil }

func (m *mockReferralService) EnsureReferralCode(_ context.Context, _ int64) (string, error) {
	return "", nil
}

func (m *mockReferralService) Summary(ctx context.Context, userID int64) (models.ReferralResponse, error) {
	if m.summaryFn != nil {
		return m.summaryFn(ctx, userID)
	}
	return models.ReferralResponse{}, nil
}

// ─────────────────────────────────────────────
// Mock: service.TaskService
// ─────────────────────────────────────────────

type mockTaskService struct {
	createFn func(ctx context.Context, userID int64, req models.TaskRequest) (models.Task, error)
	listFn   func(ctx context.Context, userID int64) ([]models.Task, error)
	getFn    func(ctx context.Context, userID, taskID int64) (models.Task, error)
	updateFn func(ctx context.Context, userID, taskID int64, req models.TaskRequest) (models.Task, error)
	deleteFn func(ctx context.Context, userID, taskID int64) error
}

func (m *mockTaskService) Create(ctx context.Context, userID int64, req models.TaskRequest) (models.Task, error) {
	if m.createFn != nil {
		return m.createFn(ctx, userID, req)
	}
	return models.Task{UserID: userID}, nil
}

func (m *mockTaskService) List(ctx context.Context, userID int64) ([]models.Task, error) {
	if m.listFn != nil {
		return m.listFn(ctx, userID)
	}
	return nil, nil
}

func (m *mockTaskService) Get(ctx context.Context, userID, taskID int64) (models.Task, error) {
	if m.getFn != nil {
		return m.getFn(ctx, userID, taskID)
	}
	return models.Task{TaskID: taskID, UserID: userID}, nil
}

func (m *mockTaskService) Update(ctx context.Context, userID, taskID int64, req models.TaskRequest) (models.Task, error) {
	if m.updateFn != nil {
		return m.updateFn(ctx, userID, taskID, req)
	}
	return models.Task{TaskID: taskID, UserID: userID}, nil
}

func (m *mockTaskService) Delete(ctx context.Context, userID, taskID int64) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, userID, taskID)
	}
	return nil
}

// ─────────────────────────────────────────────
// Mock: service.ActivityService
// ─────────────────────────────────────────────

type mockActivityService struct {
	recentFn func(ctx context.Context, userID int64) ([]models.Activity, error)
}

func (m *mockActivityService) Recent(ctx context.Context, userID int64) ([]models.Activity, error) {
	if m.recentFn != nil {
		return m.recentFn(ctx, userID)
	}
	return nil, nil
}

// ─────────────────────────────────────────────
// Mock: service.FocusService
// ─────────────────────────────────────────────

type mockFocusService struct {
	startFn   func(ctx context.Context, userID int64, durationMinutes int) (models.FocusSession, error)
	stopFn    func(ctx context.Context, userID, sessionID int64, tasksCompleted int) (models.FocusSession, error)
	summaryFn func(ctx context.Context, userID int64) (models.FocusSummary, error)
}

func (m *mockFocusService) Start(ctx context.Context, userID int64, durationMinutes int) (models.FocusSession, error) {
	if m.startFn != nil {
		return m.startFn(ctx, userID, durationMinutes)
	}
	return models.FocusSession{UserID: userID, DurationMinutes: durationMinutes}, nil
}

func (m *mockFocusService) Stop(ctx context.Context, userID, sessionID int64, tasksCompleted int) (models.FocusSession, error) {
	if m.stopFn != nil {
		return m.stopFn(ctx, userID, sessionID, tasksCompleted)
	}
	return models.FocusSession{SessionID: sessionID, UserID: userID}, nil
}

func (m *mockFocusService) Summary(ctx context.Context, userID int64) (models.FocusSummary, error) {
	if m.summaryFn != nil {
		return m.summaryFn(ctx, userID)
	}
	return models.FocusSummary{}, nil
}

// ─────────────────────────────────────────────
// Mock: service.NotificationService
// ─────────────────────────────────────────────

type mockNotificationService struct {
	listFn                 func(ctx context.Context, userID int64, limit int) (models.NotificationsResponse, error)
	markReadFn             func(ctx context.Context, userID, notificationID int64) (models.Notification, error)
	markAllReadFn          func(ctx context.Context, userID int64) error
	listAccountEventsFn    func(ctx context.Context, userID int64, limit int) (models.AccountEventsResponse, error)
	markAccountEventReadFn func(ctx context.Context, userID, eventID int64) (models.AccountEvent, error)
}

func (m *mockNotificationService) List(ctx context.Context, userID int64, limit int) (models.NotificationsResponse, error) {
	if m.listFn != nil {
		return m.listFn(ctx, userID, limit)
	}
	return models.NotificationsResponse{}, nil
}

func (m *mockNotificationService) MarkRead(ctx context.Context, userID, notificationID int64) (models.Notification, error) {
	if m.markReadFn != nil {
		return m.markReadFn(ctx, userID, notificationID)
	}
	return models.Notification{NotificationID: notificationID}, nil
}

func (m *mockNotificationService) MarkAllRead(ctx context.Context, userID int64) error {
	if m.markAllReadFn != nil {
		return m.markAllReadFn(ctx, userID)
	}
	return nil
}

func (m *mockNotificationService) ListAccountEvents(ctx context.Context, userID int64, limit int) (models.AccountEventsResponse, error) {
	if m.listAccountEventsFn != nil {
		return m.listAccountEventsFn(ctx, userID, limit)
	}
	return models.AccountEventsResponse{}, nil
}

func (m *mockNotificationService) MarkAccountEventRead(ctx context.Context, userID, eventID int64) (models.AccountEvent, error) {
	if m.markAccountEventReadFn != nil {
		return m.markAccountEventReadFn(ctx, userID, eventID)
	}
	return models.AccountEvent{EventID: eventID}, nil
}

// ─────────────────────────────────────────────
// Mock: service.AdminService
// ─────────────────────────────────────────────

type mockAdminService struct {
	overviewFn          func(ctx context.Context) (models.AdminOverview, error)
	listUsersFn         func(ctx context.Context, filter store.UserListFilter) (models.AdminUserListResponse, error)
	userDetailFn        func(ctx context.Context, userID int64) (models.AdminUserDetail, error)
	userActivitiesFn    func(ctx context.Context, userID int64, page, limit int) (models.ActivityListResponse, error)
	lockUserFn          func(ctx context.Context, adminID, userID int64, minutes int) error
	unlockUserFn        func(ctx context.Context, adminID, userID int64) error
	setUserStatusFn     func(ctx context.Context, adminID, userID int64, active bool) error
	changeUserRoleFn    func(ctx context.Context, adminID, userID int64, role string) error
	resetUserPasswordFn func(ctx context.Context, adminID, userID int64, temporaryPassword string) (string, error)
	forceLogoutFn       func(ctx context.Context, adminID, userID int64) error
	listLoginEventsFn   func(ctx context.Context, filter store.LoginEventFilter) (models.LoginEventListResponse, error)
	listAuditLogsFn     func(ctx context.Context, page, limit int) (models.AuditLogListResponse, error)
}

func (m *mockAdminService) Overview(ctx context.Context) (models.AdminOverview, error) {
	if m.overviewFn != nil {
		return m.overviewFn(ctx)
	}
	return models.AdminOverview{}, nil
}

func (m *mockAdminService) ListUsers(ctx context.Context, filter store.UserListFilter) (models.AdminUserListResponse, error) {
	if m.listUsersFn != nil {
		return m.listUsersFn(ctx, filter)
	}
	return models.AdminUserListResponse{}, nil
}

func (m *mockAdminService) UserDetail(ctx context.Context, userID int64) (models.AdminUserDetail, error) {
	if m.userDetailFn != nil {
		return m.userDetailFn(ctx, userID)
	}
	return models.AdminUserDetail{}, nil
}

func (m *mockAdminService) UserActivities(ctx context.Context, userID int64, page, limit int) (models.ActivityListResponse, error) {
	if m.userActivitiesFn != nil {
		return m.userActivitiesFn(ctx, userID, page, limit)
	}
	return models.ActivityListResponse{}, nil
}

func (m *mockAdminService) LockUser(ctx context.Context, adminID, userID int64, minutes int) error {
	if m.lockUserFn != nil {
		return m.lockUserFn(ctx, adminID, userID, minutes)
	}
	return nil
}

func (m *mockAdminService) UnlockUser(ctx context.Context, adminID, userID int64) error {
	if m.unlockUserFn != nil {
		return m.unlockUserFn(ctx, adminID, userID)
	}
	return nil
}

func (m *mockAdminService) SetUserStatus(ctx context.Context, adminID, userID int64, active bool) error {
	if m.setUserStatusFn != nil {
		return m.setUserStatusFn(ctx, adminID, userID, active)
	}
	return nil
}

func (m *mockAdminService) ChangeUserRole(ctx context.Context, adminID, userID int64, role string) error {
	if m.changeUserRoleFn != nil {
		return m.changeUserRoleFn(ctx, adminID, userID, role)
	}
	return nil
}

func (m *mockAdminService) ResetUserPassword(ctx context.Context, adminID, userID int64, temporaryPassword string) (string, error) {
	if m.resetUserPasswordFn != nil {
		return m.resetUserPasswordFn(ctx, adminID, userID, temporaryPassword)
	}
	return temporaryPassword, nil
}

func (m *mockAdminService) ForceLogout(ctx context.Context, adminID, userID int64) error {
	if m.forceLogoutFn != nil {
		return m.forceLogoutFn(ctx, adminID, userID)
	}
	return nil
}

func (m *mockAdminService) ListLoginEvents(ctx context.Context, filter store.LoginEventFilter) (models.LoginEventListResponse, error) {
	if m.listLoginEventsFn != nil {
		return m.listLoginEventsFn(ctx, filter)
	}
	return models.LoginEventListResponse{}, nil
}

func (m *mockAdminService) ListAuditLogs(ctx context.Context, page, limit int) (models.AuditLogListResponse, error) {
	if m.listAuditLogsFn != nil {
		return m.listAuditLogsFn(ctx, page, limit)
	}
	return models.AuditLogListResponse{}, nil
}
