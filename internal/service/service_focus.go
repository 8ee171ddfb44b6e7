package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/akarimullin/tasktrack/internal/logger"
	"github.com/akarimullin/tasktrack/internal/store"
	"github.com/akarimullin/tasktrack/models"
)

// Focus summary parameters.
const (
	focusSummaryDays    = 7
	focusRecentSessions = 5
	focusScorePerTask   = 10
)

// focusService is the concrete implementation of FocusService.
type focusService struct {
	focusRepository store.FocusRepository
	logger          *logger.Logger
}

// NewFocusService constructs a FocusService backed by the given repository.
func NewFocusService(focusRepository store.FocusRepository, logger *logger.Logger) FocusService {
	return &focusService{
		focusRepository: focusRepository,
		logger:          logger,
	}
}

// Start begins a focus session of the given planned duration.
func (f *focusService) Start(ctx context.Context, userID int64, durationMinutes int) (models.FocusSession, error) {
	if durationMinutes < models.FocusMinMinutes || durationMinutes > models.FocusMaxMinutes {
		return models.FocusSession{}, ErrInvalidDataProvided
	}

	session, err := f.focusRepository.CreateSession(ctx, models.FocusSession{
		UserID:          userID,
		StartedAt:       time.Now(),
		DurationMinutes: durationMinutes,
	})
	if err != nil {
		return models.FocusSession{}, fmt.Errorf("focus session creation failed: %w", err)
	}

	return session, nil
}

// Stop ends the user's session, recording how many tasks were completed
// during it. Stopping an already-stopped session is rejected.
func (f *focusService) Stop(ctx context.Context, userID, sessionID int64, tasksCompleted int) (models.FocusSession, error) {
	if tasksCompleted < 0 {
		return models.FocusSession{}, ErrInvalidDataProvided
	}

	current, err := f.focusRepository.StopSession(ctx, sessionID, userID, time.Now(), tasksCompleted)
	if err != nil {
		// The stop UPDATE only matches open sessions, so a miss is either
		// an unknown session or one that was already stopped. Re-fetch to
		// tell the two apart.
		if errors.Is(err, store.ErrNotFound) {
			existing, getErr := f.focusRepository.GetSession(ctx, sessionID, userID)
			if getErr == nil && existing.EndedAt != nil {
				return models.FocusSession{}, ErrSessionAlreadyStopped
			}
		}
		return models.FocusSession{}, fmt.Errorf("focus session stop failed: %w", err)
	}

	return current, nil
}

// Summary aggregates the last seven days of focus activity: totals, the
// focus score and the consecutive-day streak counted backwards from today.
func (f *focusService) Summary(ctx context.Context, userID int64) (models.FocusSummary, error) {
	now := time.Now()
	since := now.AddDate(0, 0, -focusSummaryDays)

	sessions, err := f.focusRepository.ListSessionsSince(ctx, userID, since)
	if err != nil {
		return models.FocusSummary{}, fmt.Errorf("focus session listing failed: %w", err)
	}

	summary := models.FocusSummary{
		RecentSessions: make([]models.FocusSession, 0, focusRecentSessions),
	}

	daysWithSessions := make(map[string]bool, focusSummaryDays)
	for _, s := range sessions {
		summary.TotalMinutes += s.DurationMinutes
		summary.TotalTasks += s.TasksCompleted
		daysWithSessions[s.StartedAt.Format(time.DateOnly)] = true

		if len(summary.RecentSessions) < focusRecentSessions {
			summary.RecentSessions = append(summary.RecentSessions, s)
		}
	}

	summary.FocusScore = summary.TotalTasks*focusScorePerTask + summary.TotalMinutes

	// streak: consecutive days with at least one session, today backwards
	for day := 0; day < focusSummaryDays; day++ {
		key := now.AddDate(0, 0, -day).Format(time.DateOnly)
		if !daysWithSessions[key] {
			break
		}
		summary.Streak++
	}

	return summary, nil
}
