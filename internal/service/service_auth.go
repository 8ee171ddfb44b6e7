package service

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/akarimullin/tasktrack/internal/config"
	"github.com/akarimullin/tasktrack/internal/logger"
	"github.com/akarimullin/tasktrack/internal/store"
	"github.com/akarimullin/tasktrack/internal/utils"
	"github.com/akarimullin/tasktrack/models"
)

// minPasswordLen is the minimum accepted password length for self-service
// flows (registration, password change, recovery reset).
const minPasswordLen = 6

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// authService is the concrete implementation of AuthService.
// It handles registration, credential verification, the session-token
// lifecycle and the password flows, using bcrypt for password hashing and
// HMAC-SHA256 signed tokens.
type authService struct {
	// userRepository is the data-access layer used to create and look up users.
	userRepository store.UserRepository

	// eventRepository records login attempts.
	eventRepository store.EventRepository

	// recoveryService spends one-time recovery codes during password reset.
	recoveryService RecoveryService

	// referralService assigns codes and credits the chain on referred signups.
	referralService ReferralService

	// tokenSignKey is the HMAC secret used to sign and verify session tokens.
	tokenSignKey string

	// tokenIssuer is the "iss" claim embedded in every issued token.
	// Tokens whose issuer does not match this value are rejected.
	tokenIssuer string

	// tokenDuration controls how long a newly issued token remains valid.
	tokenDuration time.Duration

	// lockThreshold is the consecutive-failure count that triggers an
	// automatic lockout.
	lockThreshold int

	// lockDuration is how long an automatic lockout lasts.
	lockDuration time.Duration

	// logger is the structured logger used for diagnostic and error output.
	logger *logger.Logger
}

// NewAuthService constructs an AuthService wired to the given repositories
// and populated with security parameters from cfg.
//
// The returned service is safe for concurrent use; all state is read-only
// after construction.
func NewAuthService(
	userRepository store.UserRepository,
	eventRepository store.EventRepository,
	recoveryService RecoveryService,
	referralService ReferralService,
	cfg config.Auth,
	logger *logger.Logger,
) AuthService {
	return &authService{
		userRepository:  userRepository,
		eventRepository: eventRepository,
		recoveryService: recoveryService,
		referralService: referralService,
		tokenSignKey:    cfg.TokenSignKey,
		tokenIssuer:     cfg.TokenIssuer,
		tokenDuration:   cfg.TokenDuration,
		lockThreshold:   cfg.LockThreshold,
		lockDuration:    cfg.LockDuration,
		logger:          logger,
	}
}

// Register creates a new account and returns it with a fresh session token.
//
// The e-mail is trimmed and lowercased before anything else looks at it.
// When a referral code is supplied, the referrer is resolved BEFORE the
// account is created: an unknown code rejects the whole registration and no
// account row ever exists. Once the account is in place, the referral chain
// is credited best-effort; a failure there is logged but does not undo the
// registration.
//
// Returns ErrInvalidDataProvided, ErrUnknownReferralCode, or a wrapped
// storage error (store.ErrEmailAlreadyExists for duplicates).
func (a *authService) Register(ctx context.Context, req models.RegisterRequest, meta RequestMeta) (models.User, models.Token, error) {
	log := logger.FromContext(ctx)

	name := strings.TrimSpace(req.Name)
	email := normalizeEmail(req.Email)
	if name == "" || !emailPattern.MatchString(email) || len(req.Password) < minPasswordLen {
		log.Error().Str("email", email).Msg("invalid registration data provided")
		return models.User{}, models.Token{}, ErrInvalidDataProvided
	}

	user := models.User{
		Name:  name,
		Email: email,
		Role:  models.RoleMember,
	}

	var referrerID *int64
	if code := strings.TrimSpace(req.ReferralCode); code != "" {
		referrer, err := a.userRepository.FindUserByReferralCode(ctx, code)
		if err != nil {
			if errors.Is(err, store.ErrNoUserWasFound) {
				return models.User{}, models.Token{}, ErrUnknownReferralCode
			}
			return models.User{}, models.Token{}, fmt.Errorf("referrer lookup failed: %w", err)
		}
		referrerID = &referrer.UserID
		user.ReferredBy = referrerID
	}

	passwordHash, err := utils.HashPassword(req.Password)
	if err != nil {
		return models.User{}, models.Token{}, fmt.Errorf("error hashing password: %w", err)
	}
	user.PasswordHash = passwordHash

	registered, err := a.userRepository.CreateUser(ctx, user)
	if err != nil {
		log.Err(err).Str("email", email).Msg("user creation ended with error")
		return models.User{}, models.Token{}, fmt.Errorf("user creation ended with error: %w", err)
	}

	if referrerID != nil {
		if err := a.referralService.AwardChain(ctx, *referrerID); err != nil {
			log.Err(err).Int64("referrer_id", *referrerID).Msg("referral chain award failed")
		}
	}

	if err := a.userRepository.RecordSuccessfulLogin(ctx, registered.UserID, meta.IP, meta.UserAgent); err != nil {
		log.Err(err).Int64("user_id", registered.UserID).Msg("error recording registration login")
	}

	token, err := a.issueToken(registered)
	if err != nil {
		return models.User{}, models.Token{}, err
	}

	return registered, token, nil
}

// Login authenticates an existing account.
//
// Every attempt, successful or not, lands in login_events with its outcome
// reason. A wrong password increments the consecutive-failure counter; the
// attempt that reaches the configured threshold locks the account for the
// configured duration. Unknown e-mails and wrong passwords are both reported
// as ErrWrongPassword so the caller cannot probe which accounts exist.
func (a *authService) Login(ctx context.Context, req models.LoginRequest, meta RequestMeta) (models.User, models.Token, error) {
	log := logger.FromContext(ctx)

	email := normalizeEmail(req.Email)
	if email == "" || req.Password == "" {
		return models.User{}, models.Token{}, ErrInvalidDataProvided
	}

	user, err := a.userRepository.FindUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNoUserWasFound) {
			a.recordLoginEvent(ctx, nil, email, false, models.LoginReasonUnknownEmail, meta)
			return models.User{}, models.Token{}, ErrWrongPassword
		}
		return models.User{}, models.Token{}, fmt.Errorf("user search by email failed: %w", err)
	}

	if !user.IsActive {
		a.recordLoginEvent(ctx, &user.UserID, email, false, models.LoginReasonDeactivated, meta)
		return models.User{}, models.Token{}, ErrAccountDeactivated
	}

	if user.IsLocked(time.Now()) {
		a.recordLoginEvent(ctx, &user.UserID, email, false, models.LoginReasonLocked, meta)
		return models.User{}, models.Token{}, ErrAccountLocked
	}

	if !utils.CheckPassword(user.PasswordHash, req.Password) {
		a.recordLoginEvent(ctx, &user.UserID, email, false, models.LoginReasonWrongPassword, meta)

		attempts, err := a.userRepository.RegisterFailedLogin(ctx, user.UserID)
		if err != nil {
			log.Err(err).Int64("user_id", user.UserID).Msg("error registering failed login")
			return models.User{}, models.Token{}, ErrWrongPassword
		}
		if attempts >= a.lockThreshold {
			until := time.Now().Add(a.lockDuration)
			if err := a.userRepository.SetLock(ctx, user.UserID, &until); err != nil {
				log.Err(err).Int64("user_id", user.UserID).Msg("error locking account")
			}
		}

		return models.User{}, models.Token{}, ErrWrongPassword
	}

	if err := a.userRepository.RecordSuccessfulLogin(ctx, user.UserID, meta.IP, meta.UserAgent); err != nil {
		log.Err(err).Int64("user_id", user.UserID).Msg("error recording successful login")
	}
	a.recordLoginEvent(ctx, &user.UserID, email, true, "", meta)

	token, err := a.issueToken(user)
	if err != nil {
		return models.User{}, models.Token{}, err
	}

	return user, token, nil
}

// ValidateToken validates a raw session token string and the account behind
// it.
//
// Signature, issuer and expiry failures, a vanished account and a stale
// token-version all normalise to ErrTokenIsExpiredOrInvalid; locked and
// deactivated accounts get their own sentinels so the transport layer can
// phrase the rejection.
func (a *authService) ValidateToken(ctx context.Context, tokenString string) (models.Token, error) {
	token, err := utils.ValidateAndParseSessionToken(tokenString, a.tokenSignKey, a.tokenIssuer)
	if err != nil {
		return models.Token{}, ErrTokenIsExpiredOrInvalid
	}

	user, err := a.userRepository.FindUserByID(ctx, token.UserID)
	if err != nil {
		return models.Token{}, ErrTokenIsExpiredOrInvalid
	}

	if !user.IsActive {
		return models.Token{}, ErrAccountDeactivated
	}
	if user.IsLocked(time.Now()) {
		return models.Token{}, ErrAccountLocked
	}
	if token.TokenVersion != user.TokenVersion {
		return models.Token{}, ErrTokenIsExpiredOrInvalid
	}

	// role changes bump the version, so reaching here means the claim is
	// current; still prefer the stored role as the source of truth
	token.Role = user.Role

	return token, nil
}

// GetProfile returns the account of the given user.
func (a *authService) GetProfile(ctx context.Context, userID int64) (models.User, error) {
	user, err := a.userRepository.FindUserByID(ctx, userID)
	if err != nil {
		return models.User{}, fmt.Errorf("user lookup failed: %w", err)
	}
	return user, nil
}

// UpdateProfile applies the non-nil fields of upd to the account.
func (a *authService) UpdateProfile(ctx context.Context, userID int64, upd models.UpdateProfileRequest) (models.User, error) {
	if upd.Name != nil && strings.TrimSpace(*upd.Name) == "" {
		return models.User{}, ErrInvalidDataProvided
	}
	for _, t := range upd.EmailNotificationTypes {
		if !validNotificationType(t) {
			return models.User{}, ErrInvalidDataProvided
		}
	}

	user, err := a.userRepository.UpdateProfile(ctx, userID, upd)
	if err != nil {
		return models.User{}, fmt.Errorf("profile update failed: %w", err)
	}
	return user, nil
}

// ChangePassword verifies the current password and stores the new one.
// The token-version bump invalidates every other session; the freshly issued
// token keeps the caller's own session alive.
func (a *authService) ChangePassword(ctx context.Context, userID int64, req models.ChangePasswordRequest) (models.User, models.Token, error) {
	if len(req.NewPassword) < minPasswordLen {
		return models.User{}, models.Token{}, ErrInvalidDataProvided
	}

	user, err := a.userRepository.FindUserByID(ctx, userID)
	if err != nil {
		return models.User{}, models.Token{}, fmt.Errorf("user lookup failed: %w", err)
	}

	if !utils.CheckPassword(user.PasswordHash, req.CurrentPassword) {
		return models.User{}, models.Token{}, ErrWrongPassword
	}

	return a.setPasswordAndReissue(ctx, userID, req.NewPassword)
}

// ChangeTempPassword replaces an admin-assigned temporary password.
// Rejected with ErrPasswordChangeNotRequired unless must_change_password is
// set; the temporary password itself was already checked at login.
func (a *authService) ChangeTempPassword(ctx context.Context, userID int64, newPassword string) (models.User, models.Token, error) {
	if len(newPassword) < minPasswordLen {
		return models.User{}, models.Token{}, ErrInvalidDataProvided
	}

	user, err := a.userRepository.FindUserByID(ctx, userID)
	if err != nil {
		return models.User{}, models.Token{}, fmt.Errorf("user lookup failed: %w", err)
	}

	if !user.MustChangePassword {
		return models.User{}, models.Token{}, ErrPasswordChangeNotRequired
	}

	return a.setPasswordAndReissue(ctx, userID, newPassword)
}

// ResetPasswordWithRecoveryCode spends a one-time recovery code and sets the
// new password. Unknown accounts and invalid codes are indistinguishable to
// the caller.
func (a *authService) ResetPasswordWithRecoveryCode(ctx context.Context, req models.RecoveryResetRequest) error {
	log := logger.FromContext(ctx)

	email := normalizeEmail(req.Email)
	if email == "" || strings.TrimSpace(req.RecoveryCode) == "" || len(req.NewPassword) < minPasswordLen {
		return ErrInvalidDataProvided
	}

	user, err := a.userRepository.FindUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNoUserWasFound) {
			return ErrRecoveryCodeInvalid
		}
		return fmt.Errorf("user search by email failed: %w", err)
	}

	consumed, err := a.recoveryService.Consume(ctx, user.UserID, req.RecoveryCode)
	if err != nil {
		return fmt.Errorf("recovery code consumption failed: %w", err)
	}
	if !consumed {
		log.Warn().Int64("user_id", user.UserID).Msg("rejected recovery code")
		return ErrRecoveryCodeInvalid
	}

	passwordHash, err := utils.HashPassword(req.NewPassword)
	if err != nil {
		return fmt.Errorf("error hashing password: %w", err)
	}

	if err := a.userRepository.SetPassword(ctx, user.UserID, passwordHash, false); err != nil {
		return fmt.Errorf("password reset failed: %w", err)
	}

	return nil
}

// setPasswordAndReissue stores the new hash (bumping the token-version) and
// issues a token against the refreshed account state.
func (a *authService) setPasswordAndReissue(ctx context.Context, userID int64, newPassword string) (models.User, models.Token, error) {
	passwordHash, err := utils.HashPassword(newPassword)
	if err != nil {
		return models.User{}, models.Token{}, fmt.Errorf("error hashing password: %w", err)
	}

	if err := a.userRepository.SetPassword(ctx, userID, passwordHash, false); err != nil {
		return models.User{}, models.Token{}, fmt.Errorf("password change failed: %w", err)
	}

	// re-read so the issued token carries the bumped token-version
	user, err := a.userRepository.FindUserByID(ctx, userID)
	if err != nil {
		return models.User{}, models.Token{}, fmt.Errorf("user lookup failed: %w", err)
	}

	token, err := a.issueToken(user)
	if err != nil {
		return models.User{}, models.Token{}, err
	}

	return user, token, nil
}

func (a *authService) issueToken(user models.User) (models.Token, error) {
	token, err := utils.GenerateSessionToken(a.tokenIssuer, user, a.tokenDuration, a.tokenSignKey)
	if err != nil {
		return models.Token{}, fmt.Errorf("error issuing session token: %w", err)
	}
	return token, nil
}

func (a *authService) recordLoginEvent(ctx context.Context, userID *int64, email string, success bool, reason string, meta RequestMeta) {
	log := logger.FromContext(ctx)

	err := a.eventRepository.RecordLoginEvent(ctx, models.LoginEvent{
		UserID:    userID,
		Email:     email,
		Success:   success,
		Reason:    reason,
		IP:        meta.IP,
		UserAgent: meta.UserAgent,
	})
	if err != nil {
		log.Err(err).Str("email", email).Msg("error recording login event")
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func validNotificationType(t string) bool {
	switch t {
	case models.NotificationTaskCreated, models.NotificationTaskUpdated,
		models.NotificationTaskCompleted, models.NotificationTaskDeleted:
		return true
	}
	return false
}
