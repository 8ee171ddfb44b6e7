package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/akarimullin/tasktrack/internal/logger"
	"github.com/akarimullin/tasktrack/internal/store"
	"github.com/akarimullin/tasktrack/models"
)

// taskService is the concrete implementation of TaskService.
//
// Task mutations fan out: the task row itself, an activity row and a
// notification row, plus an optional e-mail handed to the dispatch queue.
// Only the task write is allowed to fail the request; the side writes are
// best-effort and logged.
type taskService struct {
	taskRepository         store.TaskRepository
	activityRepository     store.ActivityRepository
	notificationRepository store.NotificationRepository
	userRepository         store.UserRepository

	emailQueue EmailQueue
	logger     *logger.Logger
}

// NewTaskService constructs a TaskService with its fan-out dependencies.
func NewTaskService(
	taskRepository store.TaskRepository,
	activityRepository store.ActivityRepository,
	notificationRepository store.NotificationRepository,
	userRepository store.UserRepository,
	emailQueue EmailQueue,
	logger *logger.Logger,
) TaskService {
	return &taskService{
		taskRepository:         taskRepository,
		activityRepository:     activityRepository,
		notificationRepository: notificationRepository,
		userRepository:         userRepository,
		emailQueue:             emailQueue,
		logger:                 logger,
	}
}

// Create validates and persists a new task, then records the side effects.
func (t *taskService) Create(ctx context.Context, userID int64, req models.TaskRequest) (models.Task, error) {
	task := models.Task{
		UserID: userID,
		Status: models.TaskStatusPending,
	}
	if req.Title != nil {
		task.Title = strings.TrimSpace(*req.Title)
	}
	if req.Description != nil {
		task.Description = strings.TrimSpace(*req.Description)
	}
	if req.Status != nil {
		task.Status = *req.Status
	}
	if err := validateTask(task); err != nil {
		return models.Task{}, err
	}

	created, err := t.taskRepository.CreateTask(ctx, task)
	if err != nil {
		return models.Task{}, fmt.Errorf("task creation failed: %w", err)
	}

	t.recordMutation(ctx, created, models.ActivityCreated, models.NotificationTaskCreated,
		fmt.Sprintf("Created task %q", created.Title))

	return created, nil
}

// List returns all tasks of the user, newest first.
func (t *taskService) List(ctx context.Context, userID int64) ([]models.Task, error) {
	tasks, err := t.taskRepository.ListTasks(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("task listing failed: %w", err)
	}
	return tasks, nil
}

// Get returns one task of the user.
func (t *taskService) Get(ctx context.Context, userID, taskID int64) (models.Task, error) {
	task, err := t.taskRepository.FindTask(ctx, taskID, userID)
	if err != nil {
		return models.Task{}, fmt.Errorf("task lookup failed: %w", err)
	}
	return task, nil
}

// Update applies the non-nil fields of req to the task. A transition into
// the completed status is recorded as a completion, any other change as an
// update.
func (t *taskService) Update(ctx context.Context, userID, taskID int64, req models.TaskRequest) (models.Task, error) {
	current, err := t.taskRepository.FindTask(ctx, taskID, userID)
	if err != nil {
		return models.Task{}, fmt.Errorf("task lookup failed: %w", err)
	}

	next := current
	if req.Title != nil {
		next.Title = strings.TrimSpace(*req.Title)
	}
	if req.Description != nil {
		next.Description = strings.TrimSpace(*req.Description)
	}
	if req.Status != nil {
		next.Status = *req.Status
	}
	if err := validateTask(next); err != nil {
		return models.Task{}, err
	}

	updated, err := t.taskRepository.UpdateTask(ctx, next)
	if err != nil {
		return models.Task{}, fmt.Errorf("task update failed: %w", err)
	}

	if current.Status != models.TaskStatusCompleted && updated.Status == models.TaskStatusCompleted {
		t.recordMutation(ctx, updated, models.ActivityCompleted, models.NotificationTaskCompleted,
			fmt.Sprintf("Completed task %q", updated.Title))
	} else {
		t.recordMutation(ctx, updated, models.ActivityUpdated, models.NotificationTaskUpdated,
			fmt.Sprintf("Updated task %q", updated.Title))
	}

	return updated, nil
}

// Delete removes one task of the user and records the deletion.
func (t *taskService) Delete(ctx context.Context, userID, taskID int64) error {
	deleted, err := t.taskRepository.DeleteTask(ctx, taskID, userID)
	if err != nil {
		return fmt.Errorf("task deletion failed: %w", err)
	}

	t.recordMutation(ctx, deleted, models.ActivityDeleted, models.NotificationTaskDeleted,
		fmt.Sprintf("Deleted task %q", deleted.Title))

	return nil
}

// recordMutation writes the activity and notification rows for one task
// mutation and enqueues an e-mail when the owner opted into that type.
// Failures here never fail the request.
func (t *taskService) recordMutation(ctx context.Context, task models.Task, action, notificationType, message string) {
	log := logger.FromContext(ctx)

	err := t.activityRepository.CreateActivity(ctx, models.Activity{
		UserID:     task.UserID,
		Action:     action,
		EntityType: task.TableName(),
		EntityID:   task.TaskID,
		Message:    message,
	})
	if err != nil {
		log.Err(err).Int64("task_id", task.TaskID).Msg("error recording activity")
	}

	title := notificationTitle(notificationType)
	err = t.notificationRepository.CreateNotification(ctx, models.Notification{
		UserID:     task.UserID,
		Type:       notificationType,
		Title:      title,
		Message:    message,
		EntityType: task.TableName(),
		EntityID:   task.TaskID,
	})
	if err != nil {
		log.Err(err).Int64("task_id", task.TaskID).Msg("error recording notification")
	}

	t.maybeEnqueueEmail(ctx, task.UserID, notificationType, title, message)
}

func (t *taskService) maybeEnqueueEmail(ctx context.Context, userID int64, notificationType, title, message string) {
	log := logger.FromContext(ctx)

	user, err := t.userRepository.FindUserByID(ctx, userID)
	if err != nil {
		log.Err(err).Int64("user_id", userID).Msg("error loading email preferences")
		return
	}
	if !user.EmailNotificationsEnabled {
		return
	}
	wanted := false
	for _, w := range user.EmailNotificationTypes {
		if w == notificationType {
			wanted = true
			break
		}
	}
	if !wanted {
		return
	}

	t.emailQueue.Enqueue(models.EmailMessage{
		To:      user.Email,
		Subject: title,
		HTML:    fmt.Sprintf("<p>%s</p>", message),
	})
}

func notificationTitle(notificationType string) string {
	switch notificationType {
	case models.NotificationTaskCreated:
		return "Task created"
	case models.NotificationTaskUpdated:
		return "Task updated"
	case models.NotificationTaskCompleted:
		return "Task completed"
	case models.NotificationTaskDeleted:
		return "Task deleted"
	}
	return "Task notification"
}

func validateTask(task models.Task) error {
	if task.Title == "" || len(task.Title) > models.TaskTitleMaxLen {
		return ErrInvalidDataProvided
	}
	if len(task.Description) > models.TaskDescriptionMaxLen {
		return ErrInvalidDataProvided
	}
	if task.Status != models.TaskStatusPending && task.Status != models.TaskStatusCompleted {
		return ErrInvalidDataProvided
	}
	return nil
}
