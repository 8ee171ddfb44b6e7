package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/akarimullin/tasktrack/internal/logger"
	"github.com/akarimullin/tasktrack/models"
)

const (
	createNotification = `INSERT INTO notifications (user_id, type, title, message, entity_type, entity_id)
    VALUES ($1, $2, $3, $4, $5, $6);`

	listNotifications = `SELECT notification_id, user_id, type, title, message, entity_type, entity_id, is_read, created_at
    FROM notifications
    WHERE user_id = $1
    ORDER BY created_at DESC
    LIMIT $2;`

	countUnreadNotifications = `SELECT COUNT(*) FROM notifications WHERE user_id = $1 AND NOT is_read;`

	markNotificationRead = `UPDATE notifications
    SET is_read = TRUE
    WHERE notification_id = $1 AND user_id = $2
    RETURNING notification_id, user_id, type, title, message, entity_type, entity_id, is_read, created_at;`

	markAllNotificationsRead = `UPDATE notifications
    SET is_read = TRUE
    WHERE user_id = $1 AND NOT is_read;`
)

// notificationRepository is the PostgreSQL-backed implementation of
// [NotificationRepository].
type notificationRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewNotificationRepository constructs a [NotificationRepository] backed by
// the provided database connection and logger.
func NewNotificationRepository(db *DB, logger *logger.Logger) NotificationRepository {
	logger.Debug().Msg("creating notification repository")
	return &notificationRepository{
		db:     db,
		logger: logger,
	}
}

func scanNotification(row rowScanner) (models.Notification, error) {
	var n models.Notification
	err := row.Scan(&n.NotificationID, &n.UserID, &n.Type, &n.Title, &n.Message,
		&n.EntityType, &n.EntityID, &n.IsRead, &n.CreatedAt)
	return n, err
}

// CreateNotification inserts one in-app notification.
func (r *notificationRepository) CreateNotification(ctx context.Context, n models.Notification) error {
	log := logger.FromContext(ctx)

	_, err := r.db.ExecContext(ctx, createNotification,
		n.UserID, n.Type, n.Title, n.Message, n.EntityType, n.EntityID)
	if err != nil {
		log.Err(err).Str("func", "*notificationRepository.CreateNotification").Msg("error creating notification")
		return fmt.Errorf("unexpected DB error: %w", err)
	}

	return nil
}

// ListNotifications returns the newest limit notifications of the user.
func (r *notificationRepository) ListNotifications(ctx context.Context, userID int64, limit int) ([]models.Notification, error) {
	log := logger.FromContext(ctx)

	rows, err := r.db.QueryContext(ctx, listNotifications, userID, limit)
	if err != nil {
		log.Err(err).Str("func", "*notificationRepository.ListNotifications").Msg("error listing notifications")
		return nil, fmt.Errorf("unexpected DB error: %w", err)
	}
	defer rows.Close()

	items := make([]models.Notification, 0, limit)
	for rows.Next() {
		n, err := scanNotification(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning notification: %w", err)
		}
		items = append(items, n)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("unexpected DB error: %w", err)
	}

	return items, nil
}

// CountUnreadNotifications counts the user's unread notifications.
func (r *notificationRepository) CountUnreadNotifications(ctx context.Context, userID int64) (int64, error) {
	var count int64
	if err := r.db.QueryRowContext(ctx, countUnreadNotifications, userID).Scan(&count); err != nil {
		return 0, fmt.Errorf("unexpected DB error: %w", err)
	}
	return count, nil
}

// MarkNotificationRead flips is_read on one notification of the user.
// Returns [ErrNotFound] if the notification does not exist or belongs to
// another user.
func (r *notificationRepository) MarkNotificationRead(ctx context.Context, notificationID, userID int64) (models.Notification, error) {
	log := logger.FromContext(ctx)

	row := r.db.QueryRowContext(ctx, markNotificationRead, notificationID, userID)
	n, err := scanNotification(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Notification{}, ErrNotFound
		}
		log.Err(err).Str("func", "*notificationRepository.MarkNotificationRead").Msg("error marking notification read")
		return models.Notification{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	return n, nil
}

// MarkAllNotificationsRead flips is_read on every unread notification of the
// user.
func (r *notificationRepository) MarkAllNotificationsRead(ctx context.Context, userID int64) error {
	log := logger.FromContext(ctx)

	if _, err := r.db.ExecContext(ctx, markAllNotificationsRead, userID); err != nil {
		log.Err(err).Str("func", "*notificationRepository.MarkAllNotificationsRead").Msg("error marking notifications read")
		return fmt.Errorf("unexpected DB error: %w", err)
	}

	return nil
}
