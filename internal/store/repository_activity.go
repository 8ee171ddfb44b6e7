package store

import (
	"context"
	"fmt"

	"github.com/akarimullin/tasktrack/internal/logger"
	"github.com/akarimullin/tasktrack/models"
)

const (
	createActivity = `INSERT INTO activities (user_id, action, entity_type, entity_id, message)
    VALUES ($1, $2, $3, $4, $5);`

	listRecentActivities = `SELECT activity_id, user_id, action, entity_type, entity_id, message, created_at
    FROM activities
    WHERE user_id = $1
    ORDER BY created_at DESC
    LIMIT $2;`

	listActivitiesPage = `SELECT activity_id, user_id, action, entity_type, entity_id, message, created_at
    FROM activities
    WHERE user_id = $1
    ORDER BY created_at DESC
    OFFSET $2 LIMIT $3;`

	countActivities = `SELECT COUNT(*) FROM activities WHERE user_id = $1;`
)

// activityRepository is the PostgreSQL-backed implementation of
// [ActivityRepository]. Activity rows are append-only.
type activityRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewActivityRepository constructs an [ActivityRepository] backed by the
// provided database connection and logger.
func NewActivityRepository(db *DB, logger *logger.Logger) ActivityRepository {
	logger.Debug().Msg("creating activity repository")
	return &activityRepository{
		db:     db,
		logger: logger,
	}
}

// CreateActivity appends one activity row.
func (r *activityRepository) CreateActivity(ctx context.Context, activity models.Activity) error {
	log := logger.FromContext(ctx)

	_, err := r.db.ExecContext(ctx, createActivity,
		activity.UserID, activity.Action, activity.EntityType, activity.EntityID, activity.Message)
	if err != nil {
		log.Err(err).Str("func", "*activityRepository.CreateActivity").Msg("error creating activity")
		return fmt.Errorf("unexpected DB error: %w", err)
	}

	return nil
}

// ListRecentActivities returns the newest limit activities of the user.
func (r *activityRepository) ListRecentActivities(ctx context.Context, userID int64, limit int) ([]models.Activity, error) {
	return r.list(ctx, listRecentActivities, userID, limit)
}

// ListActivitiesPage returns one page of the user's activity feed together
// with the total number of rows.
func (r *activityRepository) ListActivitiesPage(ctx context.Context, userID int64, page, limit int) ([]models.Activity, int64, error) {
	log := logger.FromContext(ctx)

	offset := (page - 1) * limit
	items, err := r.list(ctx, listActivitiesPage, userID, offset, limit)
	if err != nil {
		return nil, 0, err
	}

	var total int64
	if err := r.db.QueryRowContext(ctx, countActivities, userID).Scan(&total); err != nil {
		log.Err(err).Str("func", "*activityRepository.ListActivitiesPage").Msg("error counting activities")
		return nil, 0, fmt.Errorf("unexpected DB error: %w", err)
	}

	return items, total, nil
}

func (r *activityRepository) list(ctx context.Context, query string, args ...any) ([]models.Activity, error) {
	log := logger.FromContext(ctx)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*activityRepository.list").Msg("error listing activities")
		return nil, fmt.Errorf("unexpected DB error: %w", err)
	}
	defer rows.Close()

	items := make([]models.Activity, 0)
	for rows.Next() {
		var a models.Activity
		if err := rows.Scan(&a.ActivityID, &a.UserID, &a.Action, &a.EntityType, &a.EntityID, &a.Message, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("error scanning activity: %w", err)
		}
		items = append(items, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("unexpected DB error: %w", err)
	}

	return items, nil
}
