package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/akarimullin/tasktrack/internal/logger"
	"github.com/akarimullin/tasktrack/internal/store"
	"github.com/akarimullin/tasktrack/internal/utils"
	"github.com/akarimullin/tasktrack/models"
)

// Recovery code shape. The alphabet drops 0/O and 1/I so codes survive
// being read aloud or retyped from paper.
const (
	recoveryCodeAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"
	recoveryCodeLen      = 8
	recoveryBatchSize    = 8
)

// recoveryService is the concrete implementation of RecoveryService.
type recoveryService struct {
	recoveryCodeRepository store.RecoveryCodeRepository
	logger                 *logger.Logger
}

// NewRecoveryService constructs a RecoveryService backed by the given
// repository.
func NewRecoveryService(recoveryCodeRepository store.RecoveryCodeRepository, logger *logger.Logger) RecoveryService {
	return &recoveryService{
		recoveryCodeRepository: recoveryCodeRepository,
		logger:                 logger,
	}
}

// Generate mints a fresh batch of recovery codes for the user, replacing the
// stored set atomically. The plaintext codes are returned exactly once;
// only SHA-256 hashes are persisted.
func (r *recoveryService) Generate(ctx context.Context, userID int64) (models.RecoveryCodesResponse, error) {
	log := logger.FromContext(ctx)

	codes := make([]string, 0, recoveryBatchSize)
	hashes := make([]string, 0, recoveryBatchSize)
	for range recoveryBatchSize {
		raw, err := utils.RandomFromAlphabet(recoveryCodeAlphabet, recoveryCodeLen)
		if err != nil {
			return models.RecoveryCodesResponse{}, fmt.Errorf("error generating recovery code: %w", err)
		}
		codes = append(codes, formatRecoveryCode(raw))
		hashes = append(hashes, utils.HashRecoveryCode(raw))
	}

	generatedAt := time.Now()
	if err := r.recoveryCodeRepository.Replace(ctx, userID, hashes, generatedAt); err != nil {
		log.Err(err).Int64("user_id", userID).Msg("error replacing recovery codes")
		return models.RecoveryCodesResponse{}, fmt.Errorf("error storing recovery codes: %w", err)
	}

	return models.RecoveryCodesResponse{
		Codes:       codes,
		GeneratedAt: generatedAt,
	}, nil
}

// Consume normalizes the user-supplied code, hashes it and spends it with a
// single conditional UPDATE. Reports false for unknown and already-used
// codes alike; only real storage failures surface as errors.
func (r *recoveryService) Consume(ctx context.Context, userID int64, code string) (bool, error) {
	normalized := normalizeRecoveryCode(code)
	if len(normalized) != recoveryCodeLen {
		return false, nil
	}

	consumed, err := r.recoveryCodeRepository.Consume(ctx, userID, utils.HashRecoveryCode(normalized), time.Now())
	if err != nil {
		return false, fmt.Errorf("error consuming recovery code: %w", err)
	}

	return consumed, nil
}

// Status counts the usable codes left in the user's current batch. The
// batch's generation time is taken from the newest stored code; a user who
// never generated codes gets zero totals and no timestamp.
func (r *recoveryService) Status(ctx context.Context, userID int64) (models.RecoveryCodesStatusResponse, error) {
	log := logger.FromContext(ctx)

	batch, err := r.recoveryCodeRepository.List(ctx, userID)
	if err != nil {
		log.Err(err).Int64("user_id", userID).Msg("error listing recovery codes")
		return models.RecoveryCodesStatusResponse{}, fmt.Errorf("error listing recovery codes: %w", err)
	}

	status := models.RecoveryCodesStatusResponse{Total: len(batch)}
	for _, code := range batch {
		if code.UsedAt == nil {
			status.Remaining++
		}
		if status.GeneratedAt == nil || code.CreatedAt.After(*status.GeneratedAt) {
			t := code.CreatedAt
			status.GeneratedAt = &t
		}
	}

	return status, nil
}

// formatRecoveryCode renders the raw 8-character code as XXXX-XXXX.
func formatRecoveryCode(raw string) string {
	return raw[:4] + "-" + raw[4:]
}

// normalizeRecoveryCode uppercases the input and strips everything outside
// the code alphabet, so "abcd-2345" and "ABCD 2345" both match ABCD2345.
func normalizeRecoveryCode(code string) string {
	var b strings.Builder
	for _, r := range strings.ToUpper(code) {
		if strings.ContainsRune(recoveryCodeAlphabet, r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}
