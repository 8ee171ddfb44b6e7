package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/akarimullin/tasktrack/internal/logger"
	"github.com/akarimullin/tasktrack/models"
)

const (
	createAccountEvent = `INSERT INTO account_events (user_id, action, message, metadata)
    VALUES ($1, $2, $3, $4);`

	listAccountEvents = `SELECT event_id, user_id, action, message, metadata, is_read, read_at, created_at
    FROM account_events
    WHERE user_id = $1
    ORDER BY created_at DESC
    LIMIT $2;`

	countUnreadAccountEvents = `SELECT COUNT(*) FROM account_events WHERE user_id = $1 AND NOT is_read;`

	markAccountEventRead = `UPDATE account_events
    SET is_read = TRUE, read_at = $3
    WHERE event_id = $1 AND user_id = $2
    RETURNING event_id, user_id, action, message, metadata, is_read, read_at, created_at;`

	appendAuditLog = `INSERT INTO admin_audit_logs (admin_id, target_user_id, action, metadata)
    VALUES ($1, $2, $3, $4);`

	listAuditLogs = `SELECT l.log_id, l.admin_id, l.target_user_id, l.action, l.metadata, l.created_at,
        a.name, a.email,
        COALESCE(t.name, ''), COALESCE(t.email, '')
    FROM admin_audit_logs l
    JOIN users a ON a.user_id = l.admin_id
    LEFT JOIN users t ON t.user_id = l.target_user_id
    ORDER BY l.created_at DESC
    OFFSET $1 LIMIT $2;`

	countAuditLogs = `SELECT COUNT(*) FROM admin_audit_logs;`

	recordLoginEvent = `INSERT INTO login_events (user_id, email, success, reason, ip, user_agent)
    VALUES ($1, $2, $3, $4, $5, $6);`
)

// eventRepository is the PostgreSQL-backed implementation of
// [EventRepository]: account events, the admin audit log and login events
// share one repository because they form the system's audit surface.
type eventRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewEventRepository constructs an [EventRepository] backed by the provided
// database connection and logger.
func NewEventRepository(db *DB, logger *logger.Logger) EventRepository {
	logger.Debug().Msg("creating event repository")
	return &eventRepository{
		db:     db,
		logger: logger,
	}
}

func scanAccountEvent(row rowScanner) (models.AccountEvent, error) {
	var (
		e        models.AccountEvent
		metadata []byte
		readAt   sql.NullTime
	)

	err := row.Scan(&e.EventID, &e.UserID, &e.Action, &e.Message, &metadata,
		&e.IsRead, &readAt, &e.CreatedAt)
	if err != nil {
		return models.AccountEvent{}, err
	}

	if readAt.Valid {
		t := readAt.Time
		e.ReadAt = &t
	}
	if len(metadata) > 0 {
		if err := json.Unmarshal(metadata, &e.Metadata); err != nil {
			return models.AccountEvent{}, fmt.Errorf("error decoding event metadata: %w", err)
		}
	}

	return e, nil
}

// CreateAccountEvent inserts one user-facing account event.
func (r *eventRepository) CreateAccountEvent(ctx context.Context, event models.AccountEvent) error {
	log := logger.FromContext(ctx)

	metadata, err := json.Marshal(event.Metadata)
	if err != nil {
		return fmt.Errorf("error encoding event metadata: %w", err)
	}
	if event.Metadata == nil {
		metadata = []byte(`{}`)
	}

	_, err = r.db.ExecContext(ctx, createAccountEvent,
		event.UserID, event.Action, event.Message, metadata)
	if err != nil {
		log.Err(err).Str("func", "*eventRepository.CreateAccountEvent").Msg("error creating account event")
		return fmt.Errorf("unexpected DB error: %w", err)
	}

	return nil
}

// ListAccountEvents returns the newest limit account events of the user.
func (r *eventRepository) ListAccountEvents(ctx context.Context, userID int64, limit int) ([]models.AccountEvent, error) {
	log := logger.FromContext(ctx)

	rows, err := r.db.QueryContext(ctx, listAccountEvents, userID, limit)
	if err != nil {
		log.Err(err).Str("func", "*eventRepository.ListAccountEvents").Msg("error listing account events")
		return nil, fmt.Errorf("unexpected DB error: %w", err)
	}
	defer rows.Close()

	items := make([]models.AccountEvent, 0, limit)
	for rows.Next() {
		e, err := scanAccountEvent(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning account event: %w", err)
		}
		items = append(items, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("unexpected DB error: %w", err)
	}

	return items, nil
}

// CountUnreadAccountEvents counts the user's unread account events.
func (r *eventRepository) CountUnreadAccountEvents(ctx context.Context, userID int64) (int64, error) {
	var count int64
	if err := r.db.QueryRowContext(ctx, countUnreadAccountEvents, userID).Scan(&count); err != nil {
		return 0, fmt.Errorf("unexpected DB error: %w", err)
	}
	return count, nil
}

// MarkAccountEventRead marks one account event of the user as read, stamping
// read_at. Returns [ErrNotFound] if the event does not exist or belongs to
// another user.
func (r *eventRepository) MarkAccountEventRead(ctx context.Context, eventID, userID int64, readAt time.Time) (models.AccountEvent, error) {
	log := logger.FromContext(ctx)

	row := r.db.QueryRowContext(ctx, markAccountEventRead, eventID, userID, readAt)
	e, err := scanAccountEvent(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.AccountEvent{}, ErrNotFound
		}
		log.Err(err).Str("func", "*eventRepository.MarkAccountEventRead").Msg("error marking account event read")
		return models.AccountEvent{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	return e, nil
}

// AppendAuditLog inserts one immutable audit log entry.
func (r *eventRepository) AppendAuditLog(ctx context.Context, entry models.AdminAuditLog) error {
	log := logger.FromContext(ctx)

	metadata, err := json.Marshal(entry.Metadata)
	if err != nil {
		return fmt.Errorf("error encoding audit metadata: %w", err)
	}
	if entry.Metadata == nil {
		metadata = []byte(`{}`)
	}

	_, err = r.db.ExecContext(ctx, appendAuditLog,
		entry.AdminID, entry.TargetUserID, entry.Action, metadata)
	if err != nil {
		log.Err(err).Str("func", "*eventRepository.AppendAuditLog").Msg("error appending audit log")
		return fmt.Errorf("unexpected DB error: %w", err)
	}

	return nil
}

// ListAuditLogs returns one page of audit log entries, newest first, joined
// with the admin's and target's name and e-mail, plus the total count.
func (r *eventRepository) ListAuditLogs(ctx context.Context, page, limit int) ([]models.AdminAuditLog, int64, error) {
	log := logger.FromContext(ctx)

	offset := (page - 1) * limit
	rows, err := r.db.QueryContext(ctx, listAuditLogs, offset, limit)
	if err != nil {
		log.Err(err).Str("func", "*eventRepository.ListAuditLogs").Msg("error listing audit logs")
		return nil, 0, fmt.Errorf("unexpected DB error: %w", err)
	}
	defer rows.Close()

	items := make([]models.AdminAuditLog, 0, limit)
	for rows.Next() {
		var (
			entry    models.AdminAuditLog
			target   sql.NullInt64
			metadata []byte
		)
		err := rows.Scan(&entry.LogID, &entry.AdminID, &target, &entry.Action,
			&metadata, &entry.CreatedAt,
			&entry.AdminName, &entry.AdminEmail,
			&entry.TargetName, &entry.TargetEmail)
		if err != nil {
			return nil, 0, fmt.Errorf("error scanning audit log entry: %w", err)
		}
		if target.Valid {
			id := target.Int64
			entry.TargetUserID = &id
		}
		if len(metadata) > 0 {
			if err := json.Unmarshal(metadata, &entry.Metadata); err != nil {
				return nil, 0, fmt.Errorf("error decoding audit metadata: %w", err)
			}
		}
		items = append(items, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("unexpected DB error: %w", err)
	}

	var total int64
	if err := r.db.QueryRowContext(ctx, countAuditLogs).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("unexpected DB error: %w", err)
	}

	return items, total, nil
}

// RecordLoginEvent inserts one login attempt record.
func (r *eventRepository) RecordLoginEvent(ctx context.Context, event models.LoginEvent) error {
	log := logger.FromContext(ctx)

	_, err := r.db.ExecContext(ctx, recordLoginEvent,
		event.UserID, event.Email, event.Success, event.Reason, event.IP, event.UserAgent)
	if err != nil {
		log.Err(err).Str("func", "*eventRepository.RecordLoginEvent").Msg("error recording login event")
		return fmt.Errorf("unexpected DB error: %w", err)
	}

	return nil
}

// ListLoginEvents returns one filtered page of login events, newest first,
// plus the total count of matching events.
func (r *eventRepository) ListLoginEvents(ctx context.Context, filter LoginEventFilter) ([]models.LoginEvent, int64, error) {
	log := logger.FromContext(ctx)

	dataSQL, dataArgs, countSQL, countArgs, err := buildListLoginEventsQuery(filter)
	if err != nil {
		return nil, 0, fmt.Errorf("error building login event query: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, dataSQL, dataArgs...)
	if err != nil {
		log.Err(err).Str("func", "*eventRepository.ListLoginEvents").Msg("error listing login events")
		return nil, 0, fmt.Errorf("unexpected DB error: %w", err)
	}
	defer rows.Close()

	items := make([]models.LoginEvent, 0, filter.Limit)
	for rows.Next() {
		var (
			e      models.LoginEvent
			userID sql.NullInt64
		)
		err := rows.Scan(&e.EventID, &userID, &e.Email, &e.Success, &e.Reason,
			&e.IP, &e.UserAgent, &e.CreatedAt)
		if err != nil {
			return nil, 0, fmt.Errorf("error scanning login event: %w", err)
		}
		if userID.Valid {
			id := userID.Int64
			e.UserID = &id
		}
		items = append(items, e)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("unexpected DB error: %w", err)
	}

	var total int64
	if err := r.db.QueryRowContext(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("unexpected DB error: %w", err)
	}

	return items, total, nil
}
