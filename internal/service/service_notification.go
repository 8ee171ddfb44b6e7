package service

import (
	"context"
	"fmt"
	"time"

	"github.com/akarimullin/tasktrack/internal/logger"
	"github.com/akarimullin/tasktrack/internal/store"
	"github.com/akarimullin/tasktrack/models"
)

// Listing window bounds shared by notifications and account events.
const (
	defaultListLimit = 20
	maxListLimit     = 50
)

// notificationService serves the in-app notification bell and the account
// event feed.
type notificationService struct {
	notificationRepository store.NotificationRepository
	eventRepository        store.EventRepository
	logger                 *logger.Logger
}

// NewNotificationService constructs a NotificationService backed by the
// given repositories.
func NewNotificationService(
	notificationRepository store.NotificationRepository,
	eventRepository store.EventRepository,
	logger *logger.Logger,
) NotificationService {
	return &notificationService{
		notificationRepository: notificationRepository,
		eventRepository:        eventRepository,
		logger:                 logger,
	}
}

// List returns the newest notifications plus the unread count. The limit is
// clamped to 1..50, defaulting to 20.
func (n *notificationService) List(ctx context.Context, userID int64, limit int) (models.NotificationsResponse, error) {
	limit = clampListLimit(limit)

	items, err := n.notificationRepository.ListNotifications(ctx, userID, limit)
	if err != nil {
		return models.NotificationsResponse{}, fmt.Errorf("notification listing failed: %w", err)
	}

	unread, err := n.notificationRepository.CountUnreadNotifications(ctx, userID)
	if err != nil {
		return models.NotificationsResponse{}, fmt.Errorf("notification count failed: %w", err)
	}

	return models.NotificationsResponse{
		Items:       items,
		UnreadCount: unread,
	}, nil
}

// MarkRead marks one of the user's notifications as read.
func (n *notificationService) MarkRead(ctx context.Context, userID, notificationID int64) (models.Notification, error) {
	notification, err := n.notificationRepository.MarkNotificationRead(ctx, notificationID, userID)
	if err != nil {
		return models.Notification{}, fmt.Errorf("notification mark-read failed: %w", err)
	}
	return notification, nil
}

// MarkAllRead marks every unread notification of the user as read.
func (n *notificationService) MarkAllRead(ctx context.Context, userID int64) error {
	if err := n.notificationRepository.MarkAllNotificationsRead(ctx, userID); err != nil {
		return fmt.Errorf("notification mark-all-read failed: %w", err)
	}
	return nil
}

// ListAccountEvents returns the newest account events plus the unread count.
func (n *notificationService) ListAccountEvents(ctx context.Context, userID int64, limit int) (models.AccountEventsResponse, error) {
	limit = clampListLimit(limit)

	items, err := n.eventRepository.ListAccountEvents(ctx, userID, limit)
	if err != nil {
		return models.AccountEventsResponse{}, fmt.Errorf("account event listing failed: %w", err)
	}

	unread, err := n.eventRepository.CountUnreadAccountEvents(ctx, userID)
	if err != nil {
		return models.AccountEventsResponse{}, fmt.Errorf("account event count failed: %w", err)
	}

	return models.AccountEventsResponse{
		Items:       items,
		UnreadCount: unread,
	}, nil
}

// MarkAccountEventRead marks one of the user's account events as read,
// stamping read_at.
func (n *notificationService) MarkAccountEventRead(ctx context.Context, userID, eventID int64) (models.AccountEvent, error) {
	event, err := n.eventRepository.MarkAccountEventRead(ctx, eventID, userID, time.Now())
	if err != nil {
		return models.AccountEvent{}, fmt.Errorf("account event mark-read failed: %w", err)
	}
	return event, nil
}

func clampListLimit(limit int) int {
	if limit <= 0 {
		return defaultListLimit
	}
	if limit > maxListLimit {
		return maxListLimit
	}
	return limit
}
