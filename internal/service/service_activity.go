package service

import (
	"context"
	"fmt"

	"github.com/akarimullin/tasktrack/internal/logger"
	"github.com/akarimullin/tasktrack/internal/store"
	"github.com/akarimullin/tasktrack/models"
)

// recentActivityLimit caps the user-facing history feed.
const recentActivityLimit = 10

// activityService exposes the task history feed.
type activityService struct {
	activityRepository store.ActivityRepository
	logger             *logger.Logger
}

// NewActivityService constructs an ActivityService backed by the given
// repository.
func NewActivityService(activityRepository store.ActivityRepository, logger *logger.Logger) ActivityService {
	return &activityService{
		activityRepository: activityRepository,
		logger:             logger,
	}
}

// Recent returns the user's latest activity rows, newest first.
func (a *activityService) Recent(ctx context.Context, userID int64) ([]models.Activity, error) {
	items, err := a.activityRepository.ListRecentActivities(ctx, userID, recentActivityLimit)
	if err != nil {
		return nil, fmt.Errorf("activity listing failed: %w", err)
	}
	return items, nil
}
