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
	createFocusSession = `INSERT INTO focus_sessions (user_id, started_at, duration_minutes, tasks_completed)
    VALUES ($1, $2, $3, $4)
    RETURNING session_id, user_id, started_at, ended_at, duration_minutes, tasks_completed, created_at;`

	stopFocusSession = `UPDATE focus_sessions
    SET ended_at = $3,
        tasks_completed = $4
    WHERE session_id = $1 AND user_id = $2 AND ended_at IS NULL
    RETURNING session_id, user_id, started_at, ended_at, duration_minutes, tasks_completed, created_at;`

	getFocusSession = `SELECT session_id, user_id, started_at, ended_at, duration_minutes, tasks_completed, created_at
    FROM focus_sessions
    WHERE session_id = $1 AND user_id = $2;`

	listFocusSessionsSince = `SELECT session_id, user_id, started_at, ended_at, duration_minutes, tasks_completed, created_at
    FROM focus_sessions
    WHERE user_id = $1 AND started_at >= $2
    ORDER BY started_at DESC;`
)

// focusRepository is the PostgreSQL-backed implementation of
// [FocusRepository].
type focusRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewFocusRepository constructs a [FocusRepository] backed by the provided
// database connection and logger.
func NewFocusRepository(db *DB, logger *logger.Logger) FocusRepository {
	logger.Debug().Msg("creating focus repository")
	return &focusRepository{
		db:     db,
		logger: logger,
	}
}

func scanFocusSession(row rowScanner) (models.FocusSession, error) {
	var (
		s       models.FocusSession
		endedAt sql.NullTime
	)
	err := row.Scan(&s.SessionID, &s.UserID, &s.StartedAt, &endedAt, &s.DurationMinutes, &s.TasksCompleted, &s.CreatedAt)
	if err != nil {
		return models.FocusSession{}, err
	}
	if endedAt.Valid {
		t := endedAt.Time
		s.EndedAt = &t
	}
	return s, nil
}

// CreateSession persists a newly started focus session.
func (r *focusRepository) CreateSession(ctx context.Context, session models.FocusSession) (models.FocusSession, error) {
	log := logger.FromContext(ctx)

	row := r.db.QueryRowContext(ctx, createFocusSession,
		session.UserID, session.StartedAt, session.DurationMinutes, session.TasksCompleted)
	created, err := scanFocusSession(row)
	if err != nil {
		log.Err(err).Str("func", "*focusRepository.CreateSession").Msg("error creating focus session")
		return models.FocusSession{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	return created, nil
}

// GetSession fetches one of the user's sessions by ID. Returns [ErrNotFound]
// if the session does not exist or belongs to another user.
func (r *focusRepository) GetSession(ctx context.Context, sessionID, userID int64) (models.FocusSession, error) {
	log := logger.FromContext(ctx)

	row := r.db.QueryRowContext(ctx, getFocusSession, sessionID, userID)
	session, err := scanFocusSession(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.FocusSession{}, ErrNotFound
		}
		log.Err(err).Str("func", "*focusRepository.GetSession").Msg("error fetching focus session")
		return models.FocusSession{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	return session, nil
}

// StopSession stamps ended_at and the completed-task count on the user's
// session. The UPDATE matches on ended_at IS NULL, so a session that was
// already stopped is left untouched and reported as [ErrNotFound]; callers
// that care about the distinction re-fetch via [GetSession].
func (r *focusRepository) StopSession(ctx context.Context, sessionID, userID int64, endedAt time.Time, tasksCompleted int) (models.FocusSession, error) {
	log := logger.FromContext(ctx)

	row := r.db.QueryRowContext(ctx, stopFocusSession, sessionID, userID, endedAt, tasksCompleted)
	stopped, err := scanFocusSession(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.FocusSession{}, ErrNotFound
		}
		log.Err(err).Str("func", "*focusRepository.StopSession").Msg("error stopping focus session")
		return models.FocusSession{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	return stopped, nil
}

// ListSessionsSince returns all of the user's sessions started at or after
// the given instant, newest first.
func (r *focusRepository) ListSessionsSince(ctx context.Context, userID int64, since time.Time) ([]models.FocusSession, error) {
	log := logger.FromContext(ctx)

	rows, err := r.db.QueryContext(ctx, listFocusSessionsSince, userID, since)
	if err != nil {
		log.Err(err).Str("func", "*focusRepository.ListSessionsSince").Msg("error listing focus sessions")
		return nil, fmt.Errorf("unexpected DB error: %w", err)
	}
	defer rows.Close()

	sessions := make([]models.FocusSession, 0)
	for rows.Next() {
		session, err := scanFocusSession(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning focus session: %w", err)
		}
		sessions = append(sessions, session)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("unexpected DB error: %w", err)
	}

	return sessions, nil
}
