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
	createTask = `INSERT INTO tasks (user_id, title, description, status)
    VALUES ($1, $2, $3, $4)
    RETURNING task_id, user_id, title, description, status, created_at, updated_at;`

	listTasks = `SELECT task_id, user_id, title, description, status, created_at, updated_at
    FROM tasks
    WHERE user_id = $1
    ORDER BY created_at DESC;`

	findTask = `SELECT task_id, user_id, title, description, status, created_at, updated_at
    FROM tasks
    WHERE task_id = $1 AND user_id = $2;`

	updateTask = `UPDATE tasks
    SET title = $3,
        description = $4,
        status = $5,
        updated_at = now()
    WHERE task_id = $1 AND user_id = $2
    RETURNING task_id, user_id, title, description, status, created_at, updated_at;`

	deleteTask = `DELETE FROM tasks
    WHERE task_id = $1 AND user_id = $2
    RETURNING task_id, user_id, title, description, status, created_at, updated_at;`
)

// taskRepository is the PostgreSQL-backed implementation of [TaskRepository].
// Every query is scoped by user_id so one user can never touch another
// user's tasks.
type taskRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewTaskRepository constructs a [TaskRepository] backed by the provided
// database connection and logger.
func NewTaskRepository(db *DB, logger *logger.Logger) TaskRepository {
	logger.Debug().Msg("creating task repository")
	return &taskRepository{
		db:     db,
		logger: logger,
	}
}

func scanTask(row rowScanner) (models.Task, error) {
	var t models.Task
	err := row.Scan(&t.TaskID, &t.UserID, &t.Title, &t.Description, &t.Status, &t.CreatedAt, &t.UpdatedAt)
	return t, err
}

// CreateTask persists a new task and returns it with server-assigned fields.
func (r *taskRepository) CreateTask(ctx context.Context, task models.Task) (models.Task, error) {
	log := logger.FromContext(ctx)

	row := r.db.QueryRowContext(ctx, createTask, task.UserID, task.Title, task.Description, task.Status)
	created, err := scanTask(row)
	if err != nil {
		log.Err(err).Str("func", "*taskRepository.CreateTask").Msg("error creating task")
		return models.Task{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	return created, nil
}

// ListTasks returns all tasks of the user, newest first.
func (r *taskRepository) ListTasks(ctx context.Context, userID int64) ([]models.Task, error) {
	log := logger.FromContext(ctx)

	rows, err := r.db.QueryContext(ctx, listTasks, userID)
	if err != nil {
		log.Err(err).Str("func", "*taskRepository.ListTasks").Msg("error listing tasks")
		return nil, fmt.Errorf("unexpected DB error: %w", err)
	}
	defer rows.Close()

	tasks := make([]models.Task, 0)
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning task: %w", err)
		}
		tasks = append(tasks, task)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("unexpected DB error: %w", err)
	}

	return tasks, nil
}

// FindTask returns the task with the given ID if it belongs to the user.
// Returns [ErrNotFound] otherwise.
func (r *taskRepository) FindTask(ctx context.Context, taskID, userID int64) (models.Task, error) {
	row := r.db.QueryRowContext(ctx, findTask, taskID, userID)
	task, err := scanTask(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Task{}, ErrNotFound
		}
		return models.Task{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	return task, nil
}

// UpdateTask overwrites title, description and status of the task and
// returns the updated row. Returns [ErrNotFound] if the task does not exist
// or belongs to another user.
func (r *taskRepository) UpdateTask(ctx context.Context, task models.Task) (models.Task, error) {
	log := logger.FromContext(ctx)

	row := r.db.QueryRowContext(ctx, updateTask, task.TaskID, task.UserID, task.Title, task.Description, task.Status)
	updated, err := scanTask(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Task{}, ErrNotFound
		}
		log.Err(err).Str("func", "*taskRepository.UpdateTask").Msg("error updating task")
		return models.Task{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	return updated, nil
}

// DeleteTask removes the task and returns the deleted row so that callers
// can reference its title in activity messages. Returns [ErrNotFound] if the
// task does not exist or belongs to another user.
func (r *taskRepository) DeleteTask(ctx context.Context, taskID, userID int64) (models.Task, error) {
	log := logger.FromContext(ctx)

	row := r.db.QueryRowContext(ctx, deleteTask, taskID, userID)
	deleted, err := scanTask(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Task{}, ErrNotFound
		}
		log.Err(err).Str("func", "*taskRepository.DeleteTask").Msg("error deleting task")
		return models.Task{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	return deleted, nil
}
