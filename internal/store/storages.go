package store

import (
	"context"
	"fmt"

	"github.com/akarimullin/tasktrack/internal/config"
	"github.com/akarimullin/tasktrack/internal/logger"
)

// Storages aggregates every repository backed by the shared database
// connection. One Storages instance is built at startup and handed to the
// service layer.
type Storages struct {
	UserRepository         UserRepository
	RecoveryCodeRepository RecoveryCodeRepository
	TaskRepository         TaskRepository
	ActivityRepository     ActivityRepository
	FocusRepository        FocusRepository
	NotificationRepository NotificationRepository
	EventRepository        EventRepository
	StatsRepository        StatsRepository

	db *DB
}

// NewStorages connects to PostgreSQL, runs pending migrations, and wires all
// repositories onto the shared connection.
func NewStorages(ctx context.Context, cfg config.Storage, log *logger.Logger) (*Storages, error) {
	db, err := NewConnectPostgres(ctx, cfg.DB, log)
	if err != nil {
		return nil, fmt.Errorf("error creating database connection: %w", err)
	}

	if err := db.Migrate(); err != nil {
		return nil, fmt.Errorf("error migrating database: %w", err)
	}

	return &Storages{
		UserRepository:         NewUserRepository(db, log),
		RecoveryCodeRepository: NewRecoveryCodeRepository(db, log),
		TaskRepository:         NewTaskRepository(db, log),
		ActivityRepository:     NewActivityRepository(db, log),
		FocusRepository:        NewFocusRepository(db, log),
		NotificationRepository: NewNotificationRepository(db, log),
		EventRepository:        NewEventRepository(db, log),
		StatsRepository:        NewStatsRepository(db, log),
		db:                     db,
	}, nil
}

// Close releases the underlying database connection.
func (s *Storages) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}
