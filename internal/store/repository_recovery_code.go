package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/akarimullin/tasktrack/internal/logger"
	"github.com/akarimullin/tasktrack/models"
)

// recoveryCodeRepository is the PostgreSQL-backed implementation of
// [RecoveryCodeRepository].
type recoveryCodeRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewRecoveryCodeRepository constructs a [RecoveryCodeRepository] backed by
// the provided database connection and logger.
func NewRecoveryCodeRepository(db *DB, logger *logger.Logger) RecoveryCodeRepository {
	logger.Debug().Msg("creating recovery code repository")
	return &recoveryCodeRepository{
		db:     db,
		logger: logger,
	}
}

// Replace swaps the user's whole recovery code set for the given hashes
// inside one transaction: old codes are gone the instant it commits, with no
// overlap window during which both sets validate.
func (r *recoveryCodeRepository) Replace(ctx context.Context, userID int64, codeHashes []string, generatedAt time.Time) error {
	log := logger.FromContext(ctx)

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("error starting transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, replaceRecoveryCodesDelete, userID); err != nil {
		log.Err(err).Str("func", "*recoveryCodeRepository.Replace").Msg("error deleting old codes")
		return fmt.Errorf("unexpected DB error: %w", err)
	}

	for _, hash := range codeHashes {
		if _, err := tx.ExecContext(ctx, replaceRecoveryCodesInsert, userID, hash, generatedAt); err != nil {
			log.Err(err).Str("func", "*recoveryCodeRepository.Replace").Msg("error inserting code")
			return fmt.Errorf("unexpected DB error: %w", err)
		}
	}

	res, err := tx.ExecContext(ctx, replaceRecoveryCodesStamp, userID, generatedAt)
	if err != nil {
		log.Err(err).Str("func", "*recoveryCodeRepository.Replace").Msg("error stamping user")
		return fmt.Errorf("unexpected DB error: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("unexpected DB error: %w", err)
	}
	if affected == 0 {
		return ErrNoUserWasFound
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("error committing transaction: %w", err)
	}

	return nil
}

// Consume spends one recovery code with a single conditional UPDATE matching
// on the hash AND used_at IS NULL, so two concurrent attempts on the same
// code cannot both succeed. Returns true iff a row was updated; a code that
// never existed and a code already spent are indistinguishable.
func (r *recoveryCodeRepository) Consume(ctx context.Context, userID int64, codeHash string, usedAt time.Time) (bool, error) {
	log := logger.FromContext(ctx)

	res, err := r.db.ExecContext(ctx, consumeRecoveryCode, userID, codeHash, usedAt)
	if err != nil {
		log.Err(err).Str("func", "*recoveryCodeRepository.Consume").Msg("error consuming code")
		return false, fmt.Errorf("unexpected DB error: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("unexpected DB error: %w", err)
	}

	return affected == 1, nil
}

// List returns the user's current code batch, spent codes included, oldest
// first.
func (r *recoveryCodeRepository) List(ctx context.Context, userID int64) ([]models.RecoveryCode, error) {
	log := logger.FromContext(ctx)

	rows, err := r.db.QueryContext(ctx, listRecoveryCodes, userID)
	if err != nil {
		log.Err(err).Str("func", "*recoveryCodeRepository.List").Msg("error listing codes")
		return nil, fmt.Errorf("unexpected DB error: %w", err)
	}
	defer rows.Close()

	codes := make([]models.RecoveryCode, 0)
	for rows.Next() {
		var (
			c      models.RecoveryCode
			usedAt sql.NullTime
		)
		if err := rows.Scan(&c.CodeID, &c.UserID, &c.CodeHash, &usedAt, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("error scanning recovery code: %w", err)
		}
		if usedAt.Valid {
			t := usedAt.Time
			c.UsedAt = &t
		}
		codes = append(codes, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("unexpected DB error: %w", err)
	}

	return codes, nil
}
