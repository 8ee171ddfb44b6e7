package service

import (
	"context"
	"fmt"
	"time"

	"github.com/akarimullin/tasktrack/internal/logger"
	"github.com/akarimullin/tasktrack/internal/store"
	"github.com/akarimullin/tasktrack/internal/utils"
	"github.com/akarimullin/tasktrack/models"
)

// Admin surface parameters.
const (
	defaultLockMinutes = 60
	maxLockMinutes     = 10080 // one week

	minTempPasswordLen       = 8
	generatedTempPasswordLen = 12
	tempPasswordAlphabet     = "ABCDEFGHJKLMNPQRSTUVWXYZabcdefghjkmnpqrstuvwxyz23456789"

	defaultAdminPageLimit = 20
	maxAdminPageLimit     = 100
)

// adminService is the concrete implementation of AdminService.
//
// Every mutation writes, in order: the mutation itself, an audit log entry,
// an account event toward the affected user. The three writes are
// best-effort, not one transaction; the mutation alone decides the request
// outcome and the trailing writes are logged on failure.
type adminService struct {
	userRepository     store.UserRepository
	eventRepository    store.EventRepository
	activityRepository store.ActivityRepository
	statsRepository    store.StatsRepository
	logger             *logger.Logger
}

// NewAdminService constructs an AdminService backed by the given
// repositories.
func NewAdminService(
	userRepository store.UserRepository,
	eventRepository store.EventRepository,
	activityRepository store.ActivityRepository,
	statsRepository store.StatsRepository,
	logger *logger.Logger,
) AdminService {
	return &adminService{
		userRepository:     userRepository,
		eventRepository:    eventRepository,
		activityRepository: activityRepository,
		statsRepository:    statsRepository,
		logger:             logger,
	}
}

// Overview returns the dashboard counter block.
func (a *adminService) Overview(ctx context.Context) (models.AdminOverview, error) {
	overview, err := a.statsRepository.Overview(ctx, time.Now())
	if err != nil {
		return models.AdminOverview{}, fmt.Errorf("overview aggregation failed: %w", err)
	}
	return overview, nil
}

// ListUsers returns one filtered page of the user listing.
func (a *adminService) ListUsers(ctx context.Context, filter store.UserListFilter) (models.AdminUserListResponse, error) {
	filter.Page, filter.Limit = clampAdminPage(filter.Page, filter.Limit)

	items, total, err := a.userRepository.ListUsers(ctx, filter)
	if err != nil {
		return models.AdminUserListResponse{}, fmt.Errorf("user listing failed: %w", err)
	}

	return models.AdminUserListResponse{
		Items:      items,
		Pagination: models.NewPagination(filter.Page, filter.Limit, total),
	}, nil
}

// UserDetail returns the admin view of one user, usage metrics included.
func (a *adminService) UserDetail(ctx context.Context, userID int64) (models.AdminUserDetail, error) {
	detail, err := a.statsRepository.FindUserDetail(ctx, userID)
	if err != nil {
		return models.AdminUserDetail{}, fmt.Errorf("user detail lookup failed: %w", err)
	}
	return detail, nil
}

// UserActivities returns one page of the target user's activity feed.
func (a *adminService) UserActivities(ctx context.Context, userID int64, page, limit int) (models.ActivityListResponse, error) {
	page, limit = clampAdminPage(page, limit)

	items, total, err := a.activityRepository.ListActivitiesPage(ctx, userID, page, limit)
	if err != nil {
		return models.ActivityListResponse{}, fmt.Errorf("activity listing failed: %w", err)
	}

	return models.ActivityListResponse{
		Items:      items,
		Pagination: models.NewPagination(page, limit, total),
	}, nil
}

// LockUser locks the target account for the given number of minutes
// (defaulting to one hour) and resets its failed-login counter.
// Admins cannot lock themselves.
func (a *adminService) LockUser(ctx context.Context, adminID, userID int64, minutes int) error {
	if adminID == userID {
		return ErrInvalidDataProvided
	}
	if minutes == 0 {
		minutes = defaultLockMinutes
	}
	if minutes < 1 || minutes > maxLockMinutes {
		return ErrInvalidDataProvided
	}

	until := time.Now().Add(time.Duration(minutes) * time.Minute)
	if err := a.userRepository.SetLock(ctx, userID, &until); err != nil {
		return fmt.Errorf("account lock failed: %w", err)
	}

	a.record(ctx, adminID, userID, models.AdminActionLockUser,
		fmt.Sprintf("Your account was locked by an administrator for %d minutes", minutes),
		map[string]any{"minutes": minutes}, true)

	return nil
}

// UnlockUser clears the lock on the target account.
func (a *adminService) UnlockUser(ctx context.Context, adminID, userID int64) error {
	if err := a.userRepository.SetLock(ctx, userID, nil); err != nil {
		return fmt.Errorf("account unlock failed: %w", err)
	}

	a.record(ctx, adminID, userID, models.AdminActionUnlockUser,
		"Your account was unlocked by an administrator", nil, false)

	return nil
}

// SetUserStatus activates or soft-deactivates the target account.
// Admins cannot deactivate themselves.
func (a *adminService) SetUserStatus(ctx context.Context, adminID, userID int64, active bool) error {
	if adminID == userID && !active {
		return ErrInvalidDataProvided
	}

	if err := a.userRepository.SetActive(ctx, userID, active); err != nil {
		return fmt.Errorf("account status change failed: %w", err)
	}

	if active {
		a.record(ctx, adminID, userID, models.AdminActionActivateUser,
			"Your account was activated by an administrator", nil, false)
	} else {
		a.record(ctx, adminID, userID, models.AdminActionDeactivateUser,
			"Your account was deactivated by an administrator", nil, true)
	}

	return nil
}

// ChangeUserRole assigns the target a new role. The token-version bump in
// the same statement logs the user out of every session holding the old
// role. Admins cannot change their own role.
func (a *adminService) ChangeUserRole(ctx context.Context, adminID, userID int64, role string) error {
	if adminID == userID {
		return ErrInvalidDataProvided
	}
	if role != models.RoleMember && role != models.RoleAdmin {
		return ErrInvalidDataProvided
	}

	if err := a.userRepository.SetRole(ctx, userID, role); err != nil {
		return fmt.Errorf("role change failed: %w", err)
	}

	a.record(ctx, adminID, userID, models.AdminActionChangeRole,
		fmt.Sprintf("Your role was changed to %s by an administrator", role),
		map[string]any{"role": role}, true)

	return nil
}

// ResetUserPassword assigns the target a temporary password and flags the
// account for a forced change on next login. A supplied password must be at
// least 8 characters; an empty one is generated. Returns the plaintext for
// the admin to hand over out of band.
func (a *adminService) ResetUserPassword(ctx context.Context, adminID, userID int64, temporaryPassword string) (string, error) {
	if temporaryPassword == "" {
		generated, err := utils.RandomFromAlphabet(tempPasswordAlphabet, generatedTempPasswordLen)
		if err != nil {
			return "", fmt.Errorf("error generating temporary password: %w", err)
		}
		temporaryPassword = generated
	} else if len(temporaryPassword) < minTempPasswordLen {
		return "", ErrInvalidDataProvided
	}

	passwordHash, err := utils.HashPassword(temporaryPassword)
	if err != nil {
		return "", fmt.Errorf("error hashing temporary password: %w", err)
	}

	if err := a.userRepository.SetPassword(ctx, userID, passwordHash, true); err != nil {
		return "", fmt.Errorf("password reset failed: %w", err)
	}

	a.record(ctx, adminID, userID, models.AdminActionResetPassword,
		"Your password was reset by an administrator", nil, true)

	return temporaryPassword, nil
}

// ForceLogout emits the logout notice toward the target. No account state
// changes; the client drops its session when it acknowledges the event.
func (a *adminService) ForceLogout(ctx context.Context, adminID, userID int64) error {
	if _, err := a.userRepository.FindUserByID(ctx, userID); err != nil {
		return fmt.Errorf("user lookup failed: %w", err)
	}

	a.record(ctx, adminID, userID, models.AdminActionForceLogout,
		"You were signed out by an administrator", nil, true)

	return nil
}

// ListLoginEvents returns one filtered page of login attempts.
func (a *adminService) ListLoginEvents(ctx context.Context, filter store.LoginEventFilter) (models.LoginEventListResponse, error) {
	filter.Page, filter.Limit = clampAdminPage(filter.Page, filter.Limit)

	items, total, err := a.eventRepository.ListLoginEvents(ctx, filter)
	if err != nil {
		return models.LoginEventListResponse{}, fmt.Errorf("login event listing failed: %w", err)
	}

	return models.LoginEventListResponse{
		Items:      items,
		Pagination: models.NewPagination(filter.Page, filter.Limit, total),
	}, nil
}

// ListAuditLogs returns one page of the audit log, newest first.
func (a *adminService) ListAuditLogs(ctx context.Context, page, limit int) (models.AuditLogListResponse, error) {
	page, limit = clampAdminPage(page, limit)

	items, total, err := a.eventRepository.ListAuditLogs(ctx, page, limit)
	if err != nil {
		return models.AuditLogListResponse{}, fmt.Errorf("audit log listing failed: %w", err)
	}

	return models.AuditLogListResponse{
		Items:      items,
		Pagination: models.NewPagination(page, limit, total),
	}, nil
}

// record appends the audit log entry and the account event for one admin
// mutation. Both writes are best-effort; failures are logged and swallowed
// because the mutation itself already happened.
func (a *adminService) record(ctx context.Context, adminID, userID int64, action, message string, metadata map[string]any, requiresLogout bool) {
	log := logger.FromContext(ctx)

	err := a.eventRepository.AppendAuditLog(ctx, models.AdminAuditLog{
		AdminID:      adminID,
		TargetUserID: &userID,
		Action:       action,
		Metadata:     metadata,
	})
	if err != nil {
		log.Err(err).Int64("admin_id", adminID).Str("action", action).Msg("error appending audit log")
	}

	eventMetadata := map[string]any{models.MetadataRequiresLogout: requiresLogout}
	for k, v := range metadata {
		eventMetadata[k] = v
	}

	err = a.eventRepository.CreateAccountEvent(ctx, models.AccountEvent{
		UserID:   userID,
		Action:   action,
		Message:  message,
		Metadata: eventMetadata,
	})
	if err != nil {
		log.Err(err).Int64("user_id", userID).Str("action", action).Msg("error creating account event")
	}
}

func clampAdminPage(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit <= 0 {
		limit = defaultAdminPageLimit
	}
	if limit > maxAdminPageLimit {
		limit = maxAdminPageLimit
	}
	return page, limit
}
