package service

import (
	"context"

	"github.com/akarimullin/tasktrack/internal/store"
	"github.com/akarimullin/tasktrack/models"
)

// RequestMeta carries the client-side facts of one inbound request that the
// business layer records (login forensics, lockout bookkeeping).
type RequestMeta struct {
	IP        string
	UserAgent string
}

// AuthService covers account lifecycle from the account owner's point of
// view: registration, login, token validation, password changes and profile.
type AuthService interface {
	Register(ctx context.Context, req models.RegisterRequest, meta RequestMeta) (models.User, models.Token, error)
	Login(ctx context.Context, req models.LoginRequest, meta RequestMeta) (models.User, models.Token, error)

	// ValidateToken checks the signature, issuer and expiry of the raw token
	// and then verifies the account behind it still exists, is active, is
	// not locked and carries the same token-version. Any failure is reported
	// as one of ErrTokenIsExpiredOrInvalid, ErrAccountLocked or
	// ErrAccountDeactivated.
	ValidateToken(ctx context.Context, tokenString string) (models.Token, error)

	GetProfile(ctx context.Context, userID int64) (models.User, error)
	UpdateProfile(ctx context.Context, userID int64, upd models.UpdateProfileRequest) (models.User, error)

	// ChangePassword verifies the current password, stores the new hash and
	// bumps the token-version. The returned token is issued against the new
	// version so the caller's own session survives.
	ChangePassword(ctx context.Context, userID int64, req models.ChangePasswordRequest) (models.User, models.Token, error)

	// ChangeTempPassword replaces an admin-assigned temporary password.
	// Only valid while must_change_password is set.
	ChangeTempPassword(ctx context.Context, userID int64, newPassword string) (models.User, models.Token, error)

	// ResetPasswordWithRecoveryCode consumes a one-time recovery code and
	// sets the new password. The spent code and the token-version bump make
	// every outstanding session invalid.
	ResetPasswordWithRecoveryCode(ctx context.Context, req models.RecoveryResetRequest) error
}

// RecoveryService manages the one-time recovery code batches.
type RecoveryService interface {
	// Generate replaces the user's whole code set with a fresh batch and
	// returns the plaintext codes. This is the only moment the plaintext
	// exists outside the client.
	Generate(ctx context.Context, userID int64) (models.RecoveryCodesResponse, error)

	// Consume normalizes, hashes and atomically spends one code. Reports
	// false for unknown and already-used codes alike.
	Consume(ctx context.Context, userID int64, code string) (bool, error)

	// Status reports how many codes remain usable in the current batch.
	Status(ctx context.Context, userID int64) (models.RecoveryCodesStatusResponse, error)
}

// ReferralService owns the referral point ledger.
type ReferralService interface {
	// AwardChain credits the direct referrer and every ancestor above them.
	AwardChain(ctx context.Context, directReferrerID int64) error

	// EnsureReferralCode lazily assigns the user a unique code and returns
	// it, or returns the already-assigned one.
	EnsureReferralCode(ctx context.Context, userID int64) (string, error)

	Summary(ctx context.Context, userID int64) (models.ReferralResponse, error)
}

// TaskService is the task CRUD surface. Every mutation writes an activity
// row, a notification row and, when the owner opted in, enqueues an e-mail.
type TaskService interface {
	Create(ctx context.Context, userID int64, req models.TaskRequest) (models.Task, error)
	List(ctx context.Context, userID int64) ([]models.Task, error)
	Get(ctx context.Context, userID, taskID int64) (models.Task, error)
	Update(ctx context.Context, userID, taskID int64, req models.TaskRequest) (models.Task, error)
	Delete(ctx context.Context, userID, taskID int64) error
}

// ActivityService exposes the user's task history feed.
type ActivityService interface {
	Recent(ctx context.Context, userID int64) ([]models.Activity, error)
}

// FocusService manages timed focus sessions and their weekly summary.
type FocusService interface {
	Start(ctx context.Context, userID int64, durationMinutes int) (models.FocusSession, error)
	Stop(ctx context.Context, userID, sessionID int64, tasksCompleted int) (models.FocusSession, error)
	Summary(ctx context.Context, userID int64) (models.FocusSummary, error)
}

// NotificationService exposes in-app notifications and the account event
// feed toward their owner.
type NotificationService interface {
	List(ctx context.Context, userID int64, limit int) (models.NotificationsResponse, error)
	MarkRead(ctx context.Context, userID, notificationID int64) (models.Notification, error)
	MarkAllRead(ctx context.Context, userID int64) error

	ListAccountEvents(ctx context.Context, userID int64, limit int) (models.AccountEventsResponse, error)
	MarkAccountEventRead(ctx context.Context, userID, eventID int64) (models.AccountEvent, error)
}

// AdminService is the administrative surface. Every mutation appends an
// audit log entry and emits an account event toward the affected user.
type AdminService interface {
	Overview(ctx context.Context) (models.AdminOverview, error)
	ListUsers(ctx context.Context, filter store.UserListFilter) (models.AdminUserListResponse, error)
	UserDetail(ctx context.Context, userID int64) (models.AdminUserDetail, error)
	UserActivities(ctx context.Context, userID int64, page, limit int) (models.ActivityListResponse, error)

	LockUser(ctx context.Context, adminID, userID int64, minutes int) error
	UnlockUser(ctx context.Context, adminID, userID int64) error
	SetUserStatus(ctx context.Context, adminID, userID int64, active bool) error
	ChangeUserRole(ctx context.Context, adminID, userID int64, role string) error

	// ResetUserPassword assigns a temporary password (supplied or generated)
	// and returns its plaintext for the admin to hand over out of band.
	ResetUserPassword(ctx context.Context, adminID, userID int64, temporaryPassword string) (string, error)

	ForceLogout(ctx context.Context, adminID, userID int64) error

	ListLoginEvents(ctx context.Context, filter store.LoginEventFilter) (models.LoginEventListResponse, error)
	ListAuditLogs(ctx context.Context, page, limit int) (models.AuditLogListResponse, error)
}

// EmailQueue accepts outbound e-mail without blocking the caller.
// Implemented by the background e-mail worker.
type EmailQueue interface {
	Enqueue(msg models.EmailMessage) bool
}
