package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/akarimullin/tasktrack/internal/logger"
	"github.com/akarimullin/tasktrack/internal/store"
	"github.com/akarimullin/tasktrack/internal/utils"
	"github.com/akarimullin/tasktrack/models"
)

// Referral ledger parameters.
const (
	// directReferralPoints go to the account whose code was used, together
	// with a +1 on its direct-referral counter.
	directReferralPoints = 100

	// indirectReferralPoints go to every ancestor above the direct referrer.
	// Ancestors get points only, never a count increment.
	indirectReferralPoints = 25

	// maxChainDepth caps the upward walk even if the visited-set guard is
	// somehow defeated.
	maxChainDepth = 256

	// referralCodeHexBytes yields a 10-character hex code.
	referralCodeHexBytes = 5

	// referralCodeAttempts bounds retries against unique-constraint clashes.
	referralCodeAttempts = 8
)

// referralService is the concrete implementation of ReferralService.
type referralService struct {
	userRepository store.UserRepository
	logger         *logger.Logger
}

// NewReferralService constructs a ReferralService backed by the given user
// repository.
func NewReferralService(userRepository store.UserRepository, logger *logger.Logger) ReferralService {
	return &referralService{
		userRepository: userRepository,
		logger:         logger,
	}
}

// AwardChain credits the referral chain for one signup: the direct referrer
// receives directReferralPoints and a count increment, then every ancestor
// up the referred_by links receives indirectReferralPoints.
//
// The chain is NOT one transaction; each award is an independent atomic
// increment, so a mid-chain failure leaves lower links already credited.
// A visited set plus a hard depth cap guard against reference cycles.
func (r *referralService) AwardChain(ctx context.Context, directReferrerID int64) error {
	log := logger.FromContext(ctx)

	if err := r.userRepository.AwardReferral(ctx, directReferrerID, directReferralPoints, true); err != nil {
		return fmt.Errorf("direct referral award failed: %w", err)
	}

	visited := map[int64]bool{directReferrerID: true}
	current := directReferrerID

	for depth := 0; depth < maxChainDepth; depth++ {
		parent, err := r.userRepository.ReferrerOf(ctx, current)
		if err != nil {
			if errors.Is(err, store.ErrNoUserWasFound) {
				return nil
			}
			return fmt.Errorf("referral chain walk failed: %w", err)
		}
		if parent == nil {
			return nil
		}
		if visited[*parent] {
			log.Warn().Int64("user_id", *parent).Msg("referral cycle detected, stopping chain walk")
			return nil
		}
		visited[*parent] = true

		if err := r.userRepository.AwardReferral(ctx, *parent, indirectReferralPoints, false); err != nil {
			return fmt.Errorf("indirect referral award failed: %w", err)
		}

		current = *parent
	}

	log.Warn().Int64("direct_referrer_id", directReferrerID).Msg("referral chain depth cap reached")
	return nil
}

// EnsureReferralCode returns the user's referral code, lazily assigning a
// fresh unique one on first call. Collisions with existing codes retry with
// a new random value.
func (r *referralService) EnsureReferralCode(ctx context.Context, userID int64) (string, error) {
	user, err := r.userRepository.FindUserByID(ctx, userID)
	if err != nil {
		return "", fmt.Errorf("user lookup failed: %w", err)
	}
	if user.ReferralCode != "" {
		return user.ReferralCode, nil
	}

	for range referralCodeAttempts {
		code, err := utils.RandomHex(referralCodeHexBytes)
		if err != nil {
			return "", fmt.Errorf("error generating referral code: %w", err)
		}

		err = r.userRepository.SetReferralCode(ctx, userID, code)
		if err == nil {
			return code, nil
		}
		if errors.Is(err, store.ErrReferralCodeExists) {
			continue
		}
		if errors.Is(err, store.ErrNoUserWasFound) {
			// lost the race against a concurrent assignment; read it back
			assigned, lookupErr := r.userRepository.FindUserByID(ctx, userID)
			if lookupErr != nil {
				return "", fmt.Errorf("user lookup failed: %w", lookupErr)
			}
			if assigned.ReferralCode != "" {
				return assigned.ReferralCode, nil
			}
			return "", err
		}
		return "", fmt.Errorf("referral code assignment failed: %w", err)
	}

	return "", errors.New("could not assign a unique referral code")
}

// Summary returns the caller's referral state, assigning a code first if the
// account never had one.
func (r *referralService) Summary(ctx context.Context, userID int64) (models.ReferralResponse, error) {
	code, err := r.EnsureReferralCode(ctx, userID)
	if err != nil {
		return models.ReferralResponse{}, err
	}

	user, err := r.userRepository.FindUserByID(ctx, userID)
	if err != nil {
		return models.ReferralResponse{}, fmt.Errorf("user lookup failed: %w", err)
	}

	return models.ReferralResponse{
		ReferralCode:   code,
		ReferralPoints: user.ReferralPoints,
		ReferralsCount: user.ReferralsCount,
	}, nil
}
