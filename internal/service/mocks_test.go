package service

import (
	"context"
	"errors"
	"time"

	"github.com/akarimullin/tasktrack/internal/store"
	"github.com/akarimullin/tasktrack/models"
)

// Func-field mocks of the store interfaces shared by the service tests.
// A nil field means "succeed with the zero value".

var errStorage = errors.New("storage error")

// ─────────────────────────────────────────────
// Mock: store.UserRepository
// ─────────────────────────────────────────────

type mockUserRepository struct {
	createUserFn            func(ctx context.Context, user models.User) (models.User, error)
	findUserByIDFn          func(ctx context.Context, userID int64) (models.User, error)
	findUserByEmailFn       func(ctx context.Context, email string) (models.User, error)
	findByReferralCodeFn    func(ctx context.Context, code string) (models.User, error)
	updateProfileFn         func(ctx context.Context, userID int64, upd models.UpdateProfileRequest) (models.User, error)
	setPasswordFn           func(ctx context.Context, userID int64, passwordHash string, mustChange bool) error
	setLockFn               func(ctx context.Context, userID int64, until *time.Time) error
	setActiveFn             func(ctx context.Context, userID int64, active bool) error
	setRoleFn               func(ctx context.Context, userID int64, role string) error
	registerFailedLoginFn   func(ctx context.Context, userID int64) (int, error)
	recordSuccessfulLoginFn func(ctx context.Context, userID int64, ip, userAgent string) error
	setReferralCodeFn       func(ctx context.Context, userID int64, code string) error
	awardReferralFn         func(ctx context.Context, userID int64, points int64, incrementCount bool) error
	referrerOfFn            func(ctx context.Context, userID int64) (*int64, error)
	listUsersFn             func(ctx context.Context, filter store.UserListFilter) ([]models.AdminUserRow, int64, error)
}

func (m *mockUserRepository) CreateUser(ctx context.Context, user models.User) (models.User, error) {
	if m.createUserFn != nil {
		return m.createUserFn(ctx, user)
	}
	return user, nil
}

func (m *mockUserRepository) FindUserByID(ctx context.Context, userID int64) (models.User, error) {
	if m.findUserByIDFn != nil {
		return m.findUserByIDFn(ctx, userID)
	}
	return models.User{UserID: userID}, nil
}

func (m *mockUserRepository) FindUserByEmail(ctx context.Context, email string) (models.User, error) {
	if m.findUserByEmailFn != nil {
		return m.findUserByEmailFn(ctx, email)
	}
	return models.User{Email: email}, nil
}

func (m *mockUserRepository) FindUserByReferralCode(ctx context.Context, code string) (models.User, error) {
	if m.findByReferralCodeFn != nil {
		return m.findByReferralCodeFn(ctx, code)
	}
	return models.User{}, store.ErrNoUserWasFound
}

func (m *mockUserRepository) UpdateProfile(ctx context.Context, userID int64, upd models.UpdateProfileRequest) (models.User, error) {
	if m.updateProfileFn != nil {
		return m.updateProfileFn(ctx, userID, upd)
	}
	return models.User{UserID: userID}, nil
}

func (m *mockUserRepository) SetPassword(ctx context.Context, userID int64, passwordHash string, mustChange bool) error {
	if m.setPasswordFn != nil {
		return m.setPasswordFn(ctx, userID, passwordHash, mustChange)
	}
	return nil
}

func (m *mockUserRepository) SetLock(ctx context.Context, userID int64, until *time.Time) error {
	if m.setLockFn != nil {
		return m.setLockFn(ctx, userID, until)
	}
	return nil
}

func (m *mockUserRepository) SetActive(ctx context.Context, userID int64, active bool) error {
	if m.setActiveFn != nil {
		return m.setActiveFn(ctx, userID, active)
	}
	return nil
}

func (m *mockUserRepository) SetRole(ctx context.Context, userID int64, role string) error {
	if m.setRoleFn != nil {
		return m.setRoleFn(ctx, userID, role)
	}
	return nil
}

func (m *mockUserRepository) RegisterFailedLogin(ctx context.Context, userID int64) (int, error) {
	if m.registerFailedLoginFn != nil {
		return m.registerFailedLoginFn(ctx, userID)
	}
	return 1, nil
}

func (m *mockUserRepository) RecordSuccessfulLogin(ctx context.Context, userID int64, ip, userAgent string) error {
	if m.recordSuccessfulLoginFn != nil {
		return m.recordSuccessfulLoginFn(ctx, userID, ip, userAgent)
	}
	return nil
}

func (m *mockUserRepository) SetReferralCode(ctx context.Context, userID int64, code string) error {
	if m.setReferralCodeFn != nil {
		return m.setReferralCodeFn(ctx, userID, code)
	}
	return nil
}

func (m *mockUserRepository) AwardReferral(ctx context.Context, userID int64, points int64, incrementCount bool) error {
	if m.awardReferralFn != nil {
		return m.awardReferralFn(ctx, userID, points, incrementCount)
	}
	return nil
}

func (m *mockUserRepository) ReferrerOf(ctx context.Context, userID int64) (*int64, error) {
	if m.referrerOfFn != nil {
		return m.referrerOfFn(ctx, userID)
	}
	return nil, nil
}

func (m *mockUserRepository) ListUsers(ctx context.Context, filter store.UserListFilter) ([]models.AdminUserRow, int64, error) {
	if m.listUsersFn != nil {
		return m.listUsersFn(ctx, filter)
	}
	return nil, 0, nil
}

// ─────────────────────────────────────────────
// Mock: store.EventRepository
// ─────────────────────────────────────────────

type mockEventRepository struct {
	createAccountEventFn   func(ctx context.Context, event models.AccountEvent) error
	listAccountEventsFn    func(ctx context.Context, userID int64, limit int) ([]models.AccountEvent, error)
	countUnreadEventsFn    func(ctx context.Context, userID int64) (int64, error)
	markAccountEventReadFn func(ctx context.Context, eventID, userID int64, readAt time.Time) (models.AccountEvent, error)
	appendAuditLogFn       func(ctx context.Context, entry models.AdminAuditLog) error
	listAuditLogsFn        func(ctx context.Context, page, limit int) ([]models.AdminAuditLog, int64, error)
	recordLoginEventFn     func(ctx context.Context, event models.LoginEvent) error
	listLoginEventsFn      func(ctx context.Context, filter store.LoginEventFilter) ([]models.LoginEvent, int64, error)
}

func (m *mockEventRepository) CreateAccountEvent(ctx context.Context, event models.AccountEvent) error {
	if m.createAccountEventFn != nil {
		return m.createAccountEventFn(ctx, event)
	}
	return nil
}

func (m *mockEventRepository) ListAccountEvents(ctx context.Context, userID int64, limit int) ([]models.AccountEvent, error) {
	if m.listAccountEventsFn != nil {
		return m.listAccountEventsFn(ctx, userID, limit)
	}
	return nil, nil
}

func (m *mockEventRepository) CountUnreadAccountEvents(ctx context.Context, userID int64) (int64, error) {
	if m.countUnreadEventsFn != nil {
		return m.countUnreadEventsFn(ctx, userID)
	}
	return 0, nil
}

func (m *mockEventRepository) MarkAccountEventRead(ctx context.Context, eventID, userID int64, readAt time.Time) (models.AccountEvent, error) {
	if m.markAccountEventReadFn != nil {
		return m.markAccountEventReadFn(ctx, eventID, userID, readAt)
	}
	return models.AccountEvent{}, nil
}

func (m *mockEventRepository) AppendAuditLog(ctx context.Context, entry models.AdminAuditLog) error {
	if m.appendAuditLogFn != nil {
		return m.appendAuditLogFn(ctx, entry)
	}
	return nil
}

func (m *mockEventRepository) ListAuditLogs(ctx context.Context, page, limit int) ([]models.AdminAuditLog, int64, error) {
	if m.listAuditLogsFn != nil {
		return m.listAuditLogsFn(ctx, page, limit)
	}
	return nil, 0, nil
}

func (m *mockEventRepository) RecordLoginEvent(ctx context.Context, event models.LoginEvent) error {
	if m.recordLoginEventFn != nil {
		return m.recordLoginEventFn(ctx, event)
	}
	return nil
}

func (m *mockEventRepository) ListLoginEvents(ctx context.Context, filter store.LoginEventFilter) ([]models.LoginEvent, int64, error) {
	if m.listLoginEventsFn != nil {
		return m.listLoginEventsFn(ctx, filter)
	}
	return nil, 0, nil
}

// ─────────────────────────────────────────────
// Mock: store.RecoveryCodeRepository
// ─────────────────────────────────────────────

type mockRecoveryCodeRepository struct {
	replaceFn func(ctx context.Context, userID int64, codeHashes []string, generatedAt time.Time) error
	consumeFn func(ctx context.Context, userID int64, codeHash string, usedAt time.Time) (bool, error)
	listFn    func(ctx context.Context, userID int64) ([]models.RecoveryCode, error)
}

func (m *mockRecoveryCodeRepository) Replace(ctx context.Context, userID int64, codeHashes []string, generatedAt time.Time) error {
	if m.replaceFn != nil {
		return m.replaceFn(ctx, userID, codeHashes, generatedAt)
	}
	return nil
}

func (m *mockRecoveryCodeRepository) Consume(ctx context.Context, userID int64, codeHash string, usedAt time.Time) (bool, error) {
	if m.consumeFn != nil {
		return m.consumeFn(ctx, userID, codeHash, usedAt)
	}
	return false, nil
}

func (m *mockRecoveryCodeRepository) List(ctx context.Context, userID int64) ([]models.RecoveryCode, error) {
	if m.listFn != nil {
		return m.listFn(ctx, userID)
	}
	return nil, nil
}

// ─────────────────────────────────────────────
// Mock: store.TaskRepository
// ─────────────────────────────────────────────

type mockTaskRepository struct {
	createTaskFn func(ctx context.Context, task models.Task) (models.Task, error)
	listTasksFn  func(ctx context.Context, userID int64) ([]models.Task, error)
	findTaskFn   func(ctx context.Context, taskID, userID int64) (models.Task, error)
	updateTaskFn func(ctx context.Context, task models.Task) (models.Task, error)
	deleteTaskFn func(ctx context.Context, taskID, userID int64) (models.Task, error)
}

func (m *mockTaskRepository) CreateTask(ctx context.Context, task models.Task) (models.Task, error) {
	if m.createTaskFn != nil {
		return m.createTaskFn(ctx, task)
	}
	return task, nil
}

func (m *mockTaskRepository) ListTasks(ctx context.Context, userID int64) ([]models.Task, error) {
	if m.listTasksFn != nil {
		return m.listTasksFn(ctx, userID)
	}
	return nil, nil
}

func (m *mockTaskRepository) FindTask(ctx context.Context, taskID, userID int64) (models.Task, error) {
	if m.findTaskFn != nil {
		return m.findTaskFn(ctx, taskID, userID)
	}
	return models.Task{TaskID: taskID, UserID: userID}, nil
}

func (m *mockTaskRepository) UpdateTask(ctx context.Context, task models.Task) (models.Task, error) {
	if m.updateTaskFn != nil {
		return m.updateTaskFn(ctx, task)
	}
	return task, nil
}

func (m *mockTaskRepository) DeleteTask(ctx context.Context, taskID, userID int64) (models.Task, error) {
	if m.deleteTaskFn != nil {
		return m.deleteTaskFn(ctx, taskID, userID)
	}
	return models.Task{TaskID: taskID, UserID: userID}, nil
}

// ─────────────────────────────────────────────
// Mock: store.ActivityRepository
// ─────────────────────────────────────────────

type mockActivityRepository struct {
	createActivityFn     func(ctx context.Context, activity models.Activity) error
	listRecentFn         func(ctx context.Context, userID int64, limit int) ([]models.Activity, error)
	listActivitiesPageFn func(ctx context.Context, userID int64, page, limit int) ([]models.Activity, int64, error)
}

func (m *mockActivityRepository) CreateActivity(ctx context.Context, activity models.Activity) error {
	if m.createActivityFn != nil {
		return m.createActivityFn(ctx, activity)
	}
	return nil
}

func (m *mockActivityRepository) ListRecentActivities(ctx context.Context, userID int64, limit int) ([]models.Activity, error) {
	if m.listRecentFn != nil {
		return m.listRecentFn(ctx, userID, limit)
	}
	return nil, nil
}

func (m *mockActivityRepository) ListActivitiesPage(ctx context.Context, userID int64, page, limit int) ([]models.Activity, int64, error) {
	if m.listActivitiesPageFn != nil {
		return m.listActivitiesPageFn(ctx, userID, page, limit)
	}
	return nil, 0, nil
}

// ─────────────────────────────────────────────
// Mock: store.NotificationRepository
// ─────────────────────────────────────────────

type mockNotificationRepository struct {
	createNotificationFn func(ctx context.Context, n models.Notification) error
	listNotificationsFn  func(ctx context.Context, userID int64, limit int) ([]models.Notification, error)
	countUnreadFn        func(ctx context.Context, userID int64) (int64, error)
	markReadFn           func(ctx context.Context, notificationID, userID int64) (models.Notification, error)
	markAllReadFn        func(ctx context.Context, userID int64) error
}

func (m *mockNotificationRepository) CreateNotification(ctx context.Context, n models.Notification) error {
	if m.createNotificationFn != nil {
		return m.createNotificationFn(ctx, n)
	}
	return nil
}

func (m *mockNotificationRepository) ListNotifications(ctx context.Context, userID int64, limit int) ([]models.Notification, error) {
	if m.listNotificationsFn != nil {
		return m.listNotificationsFn(ctx, userID, limit)
	}
	return nil, nil
}

func (m *mockNotificationRepository) CountUnreadNotifications(ctx context.Context, userID int64) (int64, error) {
	if m.countUnreadFn != nil {
		return m.countUnreadFn(ctx, userID)
	}
	return 0, nil
}

func (m *mockNotificationRepository) MarkNotificationRead(ctx context.Context, notificationID, userID int64) (models.Notification, error) {
	if m.markReadFn != nil {
		return m.markReadFn(ctx, notificationID, userID)
	}
	return models.Notification{}, nil
}

func (m *mockNotificationRepository) MarkAllNotificationsRead(ctx context.Context, userID int64) error {
	if m.markAllReadFn != nil {
		return m.markAllReadFn(ctx, userID)
	}
	return nil
}

// ─────────────────────────────────────────────
// Mock: store.FocusRepository
// ─────────────────────────────────────────────

type mockFocusRepository struct {
	createSessionFn     func(ctx context.Context, session models.FocusSession) (models.FocusSession, error)
	getSessionFn        func(ctx context.Context, sessionID, userID int64) (models.FocusSession, error)
	stopSessionFn       func(ctx context.Context, sessionID, userID int64, endedAt time.Time, tasksCompleted int) (models.FocusSession, error)
	listSessionsSinceFn func(ctx context.Context, userID int64, since time.Time) ([]models.FocusSession, error)
}

func (m *mockFocusRepository) CreateSession(ctx context.Context, session models.FocusSession) (models.FocusSession, error) {
	if m.createSessionFn != nil {
		return m.createSessionFn(ctx, session)
	}
	return session, nil
}

func (m *mockFocusRepository) GetSession(ctx context.Context, sessionID, userID int64) (models.FocusSession, error) {
	if m.getSessionFn != nil {
		return m.getSessionFn(ctx, sessionID, userID)
	}
	return models.FocusSession{SessionID: sessionID, UserID: userID}, nil
}

func (m *mockFocusRepository) StopSession(ctx context.Context, sessionID, userID int64, endedAt time.Time, tasksCompleted int) (models.FocusSession, error) {
	if m.stopSessionFn != nil {
		return m.stopSessionFn(ctx, sessionID, userID, endedAt, tasksCompleted)
	}
	return models.FocusSession{SessionID: sessionID, UserID: userID}, nil
}

func (m *mockFocusRepository) ListSessionsSince(ctx context.Context, userID int64, since time.Time) ([]models.FocusSession, error) {
	if m.listSessionsSinceFn != nil {
		return m.listSessionsSinceFn(ctx, userID, since)
	}
	return nil, nil
}

// ─────────────────────────────────────────────
// Mock: store.StatsRepository
// ─────────────────────────────────────────────

type mockStatsRepository struct {
	overviewFn       func(ctx context.Context, now time.Time) (models.AdminOverview, error)
	userMetricsFn    func(ctx context.Context, userID int64) (models.AdminUserMetrics, error)
	findUserDetailFn func(ctx context.Context, userID int64) (models.AdminUserDetail, error)
}

func (m *mockStatsRepository) Overview(ctx context.Context, now time.Time) (models.AdminOverview, error) {
	if m.overviewFn != nil {
		return m.overviewFn(ctx, now)
	}
	return models.AdminOverview{}, nil
}

func (m *mockStatsRepository) UserMetrics(ctx context.Context, userID int64) (models.AdminUserMetrics, error) {
	if m.userMetricsFn != nil {
		return m.userMetricsFn(ctx, userID)
	}
	return models.AdminUserMetrics{}, nil
}

func (m *mockStatsRepository) FindUserDetail(ctx context.Context, userID int64) (models.AdminUserDetail, error) {
	if m.findUserDetailFn != nil {
		return m.findUserDetailFn(ctx, userID)
	}
	return models.AdminUserDetail{}, nil
}

// ─────────────────────────────────────────────
// Mock: EmailQueue
// ─────────────────────────────────────────────

type mockEmailQueue struct {
	enqueued []models.EmailMessage
	full     bool
}

func (m *mockEmailQueue) Enqueue(msg models.EmailMessage) bool {
	if m.full {
		return false
	}
	m.enqueued = append(m.enqueued, msg)
	return true
}
