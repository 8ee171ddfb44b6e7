package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/akarimullin/tasktrack/internal/logger"
	"github.com/akarimullin/tasktrack/models"
)

const (
	overviewUsers = `SELECT
        COUNT(*),
        COUNT(*) FILTER (WHERE is_active),
        COUNT(*) FILTER (WHERE role = 'admin'),
        COUNT(*) FILTER (WHERE locked_until IS NOT NULL AND locked_until > $1),
        COUNT(*) FILTER (WHERE NOT is_active)
    FROM users;`

	overviewUsage = `SELECT
        (SELECT COUNT(*) FROM tasks),
        (SELECT COUNT(*) FROM activities),
        (SELECT COUNT(*) FROM focus_sessions);`

	overviewLogins = `SELECT
        COUNT(*) FILTER (WHERE success),
        COUNT(*) FILTER (WHERE NOT success)
    FROM login_events
    WHERE created_at >= $1;`

	userMetrics = `SELECT
        (SELECT COUNT(*) FROM tasks WHERE user_id = $1),
        (SELECT COUNT(*) FROM activities WHERE user_id = $1),
        (SELECT COUNT(*) FROM focus_sessions WHERE user_id = $1),
        (SELECT COUNT(*) FROM notifications WHERE user_id = $1 AND NOT is_read);`

	findUserDetail = `SELECT user_id, name, email, role, is_active, must_change_password,
        locked_until, last_login_at, failed_login_attempts, created_at,
        last_login_ip, last_login_user_agent
    FROM users
    WHERE user_id = $1;`
)

// statsRepository is the PostgreSQL-backed implementation of
// [StatsRepository]. Read-only; all methods are aggregate SELECTs.
type statsRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewStatsRepository constructs a [StatsRepository] backed by the provided
// database connection and logger.
func NewStatsRepository(db *DB, logger *logger.Logger) StatsRepository {
	logger.Debug().Msg("creating stats repository")
	return &statsRepository{
		db:     db,
		logger: logger,
	}
}

// Overview gathers the admin dashboard counters. now anchors the "locked"
// and "last 24 hours" windows so the query is deterministic under test.
func (r *statsRepository) Overview(ctx context.Context, now time.Time) (models.AdminOverview, error) {
	log := logger.FromContext(ctx)

	var out models.AdminOverview

	err := r.db.QueryRowContext(ctx, overviewUsers, now).Scan(
		&out.Users.Total, &out.Users.Active, &out.Users.Admins,
		&out.Users.Locked, &out.Users.Inactive)
	if err != nil {
		log.Err(err).Str("func", "*statsRepository.Overview").Msg("error counting users")
		return models.AdminOverview{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	err = r.db.QueryRowContext(ctx, overviewUsage).Scan(
		&out.Usage.Tasks, &out.Usage.Activities, &out.Usage.FocusSessions)
	if err != nil {
		log.Err(err).Str("func", "*statsRepository.Overview").Msg("error counting usage")
		return models.AdminOverview{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	err = r.db.QueryRowContext(ctx, overviewLogins, now.Add(-24*time.Hour)).Scan(
		&out.Logins.Success24h, &out.Logins.Failed24h)
	if err != nil {
		log.Err(err).Str("func", "*statsRepository.Overview").Msg("error counting logins")
		return models.AdminOverview{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	return out, nil
}

// UserMetrics counts one user's stored artefacts.
func (r *statsRepository) UserMetrics(ctx context.Context, userID int64) (models.AdminUserMetrics, error) {
	var m models.AdminUserMetrics
	err := r.db.QueryRowContext(ctx, userMetrics, userID).Scan(
		&m.Tasks, &m.Activities, &m.FocusSessions, &m.UnreadNotifications)
	if err != nil {
		return models.AdminUserMetrics{}, fmt.Errorf("unexpected DB error: %w", err)
	}
	return m, nil
}

// FindUserDetail loads the admin detail view of one user, metrics included.
// Returns [ErrNoUserWasFound] if the user does not exist.
func (r *statsRepository) FindUserDetail(ctx context.Context, userID int64) (models.AdminUserDetail, error) {
	log := logger.FromContext(ctx)

	var (
		d           models.AdminUserDetail
		lockedUntil sql.NullTime
		lastLoginAt sql.NullTime
	)

	err := r.db.QueryRowContext(ctx, findUserDetail, userID).Scan(
		&d.UserID, &d.Name, &d.Email, &d.Role, &d.IsActive, &d.MustChangePassword,
		&lockedUntil, &lastLoginAt, &d.FailedLoginAttempts, &d.CreatedAt,
		&d.LastLoginIP, &d.LastLoginUserAgent)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.AdminUserDetail{}, ErrNoUserWasFound
		}
		log.Err(err).Str("func", "*statsRepository.FindUserDetail").Msg("error finding user detail")
		return models.AdminUserDetail{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	if lockedUntil.Valid {
		t := lockedUntil.Time
		d.LockedUntil = &t
	}
	if lastLoginAt.Valid {
		t := lastLoginAt.Time
		d.LastLoginAt = &t
	}

	d.Metrics, err = r.UserMetrics(ctx, userID)
	if err != nil {
		return models.AdminUserDetail{}, err
	}

	return d, nil
}
