package store

import (
	"context"
	"time"

	"github.com/akarimullin/tasktrack/models"
)

// User listing status filter values accepted by [UserListFilter].
const (
	StatusFilterActive   = "active"
	StatusFilterInactive = "inactive"
	StatusFilterLocked   = "locked"
)

// UserListFilter narrows the admin user listing.
// Zero values mean "no filter".
type UserListFilter struct {
	// Query matches name or email, case-insensitively, as a substring.
	Query string
	// Role filters on the exact role value.
	Role string
	// Status is one of the StatusFilter* values.
	Status string

	Page  int
	Limit int
}

// LoginEventFilter narrows the admin login event listing.
type LoginEventFilter struct {
	// Query matches email or IP, case-insensitively, as a substring.
	Query string
	// Success filters on the outcome when non-nil.
	Success *bool

	Page  int
	Limit int
}

// UserRepository is the data-access layer for user accounts, credentials and
// referral state.
//
// All mutations of shared counters (token_version, referral_points,
// failed_login_attempts) are single-statement atomic UPDATEs so that
// concurrent requests cannot interleave a read-then-write.
type UserRepository interface {
	CreateUser(ctx context.Context, user models.User) (models.User, error)
	FindUserByID(ctx context.Context, userID int64) (models.User, error)
	FindUserByEmail(ctx context.Context, email string) (models.User, error)
	FindUserByReferralCode(ctx context.Context, code string) (models.User, error)

	UpdateProfile(ctx context.Context, userID int64, upd models.UpdateProfileRequest) (models.User, error)

	// SetPassword stores a new password hash. mustChange toggles the
	// must-change-password flag; the token-version counter is always
	// incremented in the same statement, invalidating outstanding tokens.
	SetPassword(ctx context.Context, userID int64, passwordHash string, mustChange bool) error

	// SetLock sets or clears locked_until and resets the failed-login
	// counter in the same statement. A nil until unlocks the account.
	SetLock(ctx context.Context, userID int64, until *time.Time) error

	SetActive(ctx context.Context, userID int64, active bool) error

	// SetRole changes the role and increments the token-version counter in
	// the same statement.
	SetRole(ctx context.Context, userID int64, role string) error

	// RegisterFailedLogin atomically increments the failed-login counter and
	// returns the new value.
	RegisterFailedLogin(ctx context.Context, userID int64) (int, error)

	// RecordSuccessfulLogin resets the failed-login counter and stamps the
	// last-login fields.
	RecordSuccessfulLogin(ctx context.Context, userID int64, ip, userAgent string) error

	// SetReferralCode assigns a referral code to a user that has none.
	SetReferralCode(ctx context.Context, userID int64, code string) error

	// AwardReferral atomically adds points (and optionally one to the
	// referral count) to the given user.
	AwardReferral(ctx context.Context, userID int64, points int64, incrementCount bool) error

	// ReferrerOf returns the referred_by pointer of the given user, nil if
	// the user has no referrer.
	ReferrerOf(ctx context.Context, userID int64) (*int64, error)

	ListUsers(ctx context.Context, filter UserListFilter) ([]models.AdminUserRow, int64, error)
}

// RecoveryCodeRepository persists hashed one-time recovery codes.
type RecoveryCodeRepository interface {
	// Replace atomically swaps the user's whole recovery code set for the
	// given hashes. Old codes become invalid the instant the transaction
	// commits; there is no overlap window.
	Replace(ctx context.Context, userID int64, codeHashes []string, generatedAt time.Time) error

	// Consume marks the matching unused code as used in one conditional
	// UPDATE and reports whether a code was in fact consumed. A code that
	// does not exist and a code that was already used are indistinguishable
	// to the caller.
	Consume(ctx context.Context, userID int64, codeHash string, usedAt time.Time) (bool, error)

	// List returns the user's current code batch, spent codes included,
	// oldest first.
	List(ctx context.Context, userID int64) ([]models.RecoveryCode, error)
}

// TaskRepository is the data-access layer for tasks.
type TaskRepository interface {
	CreateTask(ctx context.Context, task models.Task) (models.Task, error)
	ListTasks(ctx context.Context, userID int64) ([]models.Task, error)
	FindTask(ctx context.Context, taskID, userID int64) (models.Task, error)
	UpdateTask(ctx context.Context, task models.Task) (models.Task, error)
	DeleteTask(ctx context.Context, taskID, userID int64) (models.Task, error)
}

// ActivityRepository is the data-access layer for the task history feed.
type ActivityRepository interface {
	CreateActivity(ctx context.Context, activity models.Activity) error
	ListRecentActivities(ctx context.Context, userID int64, limit int) ([]models.Activity, error)
	ListActivitiesPage(ctx context.Context, userID int64, page, limit int) ([]models.Activity, int64, error)
}

// FocusRepository is the data-access layer for focus sessions.
type FocusRepository interface {
	CreateSession(ctx context.Context, session models.FocusSession) (models.FocusSession, error)
	GetSession(ctx context.Context, sessionID, userID int64) (models.FocusSession, error)
	StopSession(ctx context.Context, sessionID, userID int64, endedAt time.Time, tasksCompleted int) (models.FocusSession, error)
	ListSessionsSince(ctx context.Context, userID int64, since time.Time) ([]models.FocusSession, error)
}

// NotificationRepository is the data-access layer for in-app notifications.
type NotificationRepository interface {
	CreateNotification(ctx context.Context, n models.Notification) error
	ListNotifications(ctx context.Context, userID int64, limit int) ([]models.Notification, error)
	CountUnreadNotifications(ctx context.Context, userID int64) (int64, error)
	MarkNotificationRead(ctx context.Context, notificationID, userID int64) (models.Notification, error)
	MarkAllNotificationsRead(ctx context.Context, userID int64) error
}

// EventRepository is the data-access layer for account events, the admin
// audit log and login events.
type EventRepository interface {
	CreateAccountEvent(ctx context.Context, event models.AccountEvent) error
	ListAccountEvents(ctx context.Context, userID int64, limit int) ([]models.AccountEvent, error)
	CountUnreadAccountEvents(ctx context.Context, userID int64) (int64, error)
	MarkAccountEventRead(ctx context.Context, eventID, userID int64, readAt time.Time) (models.AccountEvent, error)

	AppendAuditLog(ctx context.Context, entry models.AdminAuditLog) error
	ListAuditLogs(ctx context.Context, page, limit int) ([]models.AdminAuditLog, int64, error)

	RecordLoginEvent(ctx context.Context, event models.LoginEvent) error
	ListLoginEvents(ctx context.Context, filter LoginEventFilter) ([]models.LoginEvent, int64, error)
}

// StatsRepository aggregates counters for the admin dashboard.
type StatsRepository interface {
	Overview(ctx context.Context, now time.Time) (models.AdminOverview, error)
	UserMetrics(ctx context.Context, userID int64) (models.AdminUserMetrics, error)
	FindUserDetail(ctx context.Context, userID int64) (models.AdminUserDetail, error)
}
