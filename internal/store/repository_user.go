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
	"github.com/jackc/pgerrcode"
)

// userRepository is the PostgreSQL-backed implementation of [UserRepository].
//
// All methods obtain a context-scoped logger via [logger.FromContext] for
// structured, request-level tracing of database interactions.
type userRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewUserRepository constructs a [UserRepository] backed by the provided
// database connection and logger.
func NewUserRepository(db *DB, logger *logger.Logger) UserRepository {
	logger.Debug().Msg("creating user repository")
	return &userRepository{
		db:     db,
		logger: logger,
	}
}

// rowScanner is satisfied by both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

// scanUser reads one row of [userColumns] into a models.User.
func scanUser(row rowScanner) (models.User, error) {
	var (
		u                models.User
		lockedUntil      sql.NullTime
		referralCode     sql.NullString
		referredBy       sql.NullInt64
		notifTypes       []byte
		codesGeneratedAt sql.NullTime
		lastLoginAt      sql.NullTime
	)

	err := row.Scan(
		&u.UserID, &u.Name, &u.Email, &u.PasswordHash, &u.Role, &u.IsActive,
		&u.MustChangePassword, &lockedUntil, &u.FailedLoginAttempts, &u.TokenVersion,
		&referralCode, &referredBy, &u.ReferralPoints, &u.ReferralsCount, &u.AvatarURL,
		&u.EmailNotificationsEnabled, &notifTypes,
		&codesGeneratedAt, &lastLoginAt, &u.LastLoginIP,
		&u.LastLoginUserAgent, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		return models.User{}, err
	}

	if lockedUntil.Valid {
		t := lockedUntil.Time
		u.LockedUntil = &t
	}
	if referralCode.Valid {
		u.ReferralCode = referralCode.String
	}
	if referredBy.Valid {
		id := referredBy.Int64
		u.ReferredBy = &id
	}
	if len(notifTypes) > 0 {
		if err := json.Unmarshal(notifTypes, &u.EmailNotificationTypes); err != nil {
			return models.User{}, fmt.Errorf("error decoding notification types: %w", err)
		}
	}
	if codesGeneratedAt.Valid {
		t := codesGeneratedAt.Time
		u.RecoveryCodesGeneratedAt = &t
	}
	if lastLoginAt.Valid {
		t := lastLoginAt.Time
		u.LastLoginAt = &t
	}

	return u, nil
}

// CreateUser persists a new account and returns the fully populated
// [models.User] with server-assigned fields (UserID, CreatedAt, defaults).
//
// Error handling:
//   - PostgreSQL unique_violation (23505) → [ErrEmailAlreadyExists].
//   - Any other driver-level error → wrapped as "unexpected DB error".
func (r *userRepository) CreateUser(ctx context.Context, user models.User) (models.User, error) {
	log := logger.FromContext(ctx)

	row := r.db.QueryRowContext(ctx, createUser,
		user.Name, user.Email, user.PasswordHash, user.Role, user.ReferredBy, user.EmailNotificationsEnabled)

	created, err := scanUser(row)
	if err != nil {
		log.Err(err).Str("func", "*userRepository.CreateUser").Msg("error creating user")

		switch postgresError(err) {
		case pgerrcode.UniqueViolation:
			return models.User{}, ErrEmailAlreadyExists
		default:
			return models.User{}, fmt.Errorf("unexpected DB error: %w", err)
		}
	}

	return created, nil
}

// FindUserByID retrieves one account by its identifier.
// Returns [ErrNoUserWasFound] if no row matches.
func (r *userRepository) FindUserByID(ctx context.Context, userID int64) (models.User, error) {
	return r.findOne(ctx, findUserByID, userID)
}

// FindUserByEmail retrieves one account by its (lowercased) e-mail.
// Returns [ErrNoUserWasFound] if no row matches.
func (r *userRepository) FindUserByEmail(ctx context.Context, email string) (models.User, error) {
	return r.findOne(ctx, findUserByEmail, email)
}

// FindUserByReferralCode retrieves the account owning the given referral
// code. Returns [ErrNoUserWasFound] if no row matches.
func (r *userRepository) FindUserByReferralCode(ctx context.Context, code string) (models.User, error) {
	return r.findOne(ctx, findUserByReferralCode, code)
}

func (r *userRepository) findOne(ctx context.Context, query string, arg any) (models.User, error) {
	log := logger.FromContext(ctx)

	row := r.db.QueryRowContext(ctx, query, arg)
	user, err := scanUser(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.User{}, ErrNoUserWasFound
		}
		log.Err(err).Str("func", "*userRepository.findOne").Msg("error scanning user")
		return models.User{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	return user, nil
}

// UpdateProfile applies the non-nil fields of upd and returns the updated
// account. The UPDATE is built dynamically so untouched columns keep their
// values.
func (r *userRepository) UpdateProfile(ctx context.Context, userID int64, upd models.UpdateProfileRequest) (models.User, error) {
	log := logger.FromContext(ctx)

	builder := psql.Update("users").
		Set("updated_at", time.Now()).
		Where("user_id = ?", userID).
		Suffix("RETURNING " + userColumns)

	if upd.Name != nil {
		builder = builder.Set("name", *upd.Name)
	}
	if upd.AvatarURL != nil {
		builder = builder.Set("avatar_url", *upd.AvatarURL)
	}
	if upd.EmailNotificationsEnabled != nil {
		builder = builder.Set("email_notifications_enabled", *upd.EmailNotificationsEnabled)
	}
	if upd.EmailNotificationTypes != nil {
		encoded, err := json.Marshal(upd.EmailNotificationTypes)
		if err != nil {
			return models.User{}, fmt.Errorf("error encoding notification types: %w", err)
		}
		builder = builder.Set("email_notification_types", encoded)
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return models.User{}, fmt.Errorf("error building update query: %w", err)
	}

	row := r.db.QueryRowContext(ctx, query, args...)
	user, err := scanUser(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.User{}, ErrNoUserWasFound
		}
		log.Err(err).Str("func", "*userRepository.UpdateProfile").Msg("error updating profile")
		return models.User{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	return user, nil
}

// SetPassword stores a new password hash, toggles must_change_password and
// bumps the token-version counter in a single statement. The lock state and
// the failed-login counter are cleared at the same time so that a reset
// account can log in immediately.
func (r *userRepository) SetPassword(ctx context.Context, userID int64, passwordHash string, mustChange bool) error {
	return r.execOnUser(ctx, setPassword, "*userRepository.SetPassword", userID, passwordHash, mustChange)
}

// SetLock stores locked_until (nil unlocks) and resets the failed-login
// counter.
func (r *userRepository) SetLock(ctx context.Context, userID int64, until *time.Time) error {
	return r.execOnUser(ctx, setLock, "*userRepository.SetLock", userID, until)
}

// SetActive toggles the soft-deactivation flag.
func (r *userRepository) SetActive(ctx context.Context, userID int64, active bool) error {
	return r.execOnUser(ctx, setActive, "*userRepository.SetActive", userID, active)
}

// SetRole changes the role and bumps the token-version counter in the same
// statement.
func (r *userRepository) SetRole(ctx context.Context, userID int64, role string) error {
	return r.execOnUser(ctx, setRole, "*userRepository.SetRole", userID, role)
}

// execOnUser runs an UPDATE that must affect exactly one user row.
func (r *userRepository) execOnUser(ctx context.Context, query, funcName string, userID int64, args ...any) error {
	log := logger.FromContext(ctx)

	res, err := r.db.ExecContext(ctx, query, append([]any{userID}, args...)...)
	if err != nil {
		log.Err(err).Str("func", funcName).Msg("error executing update")
		return fmt.Errorf("unexpected DB error: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("unexpected DB error: %w", err)
	}
	if affected == 0 {
		return ErrNoUserWasFound
	}

	return nil
}

// RegisterFailedLogin atomically increments the failed-login counter and
// returns the new value.
func (r *userRepository) RegisterFailedLogin(ctx context.Context, userID int64) (int, error) {
	log := logger.FromContext(ctx)

	var attempts int
	err := r.db.QueryRowContext(ctx, registerFailedLogin, userID).Scan(&attempts)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, ErrNoUserWasFound
		}
		log.Err(err).Str("func", "*userRepository.RegisterFailedLogin").Msg("error incrementing counter")
		return 0, fmt.Errorf("unexpected DB error: %w", err)
	}

	return attempts, nil
}

// RecordSuccessfulLogin resets the failed-login counter and stamps the
// last-login fields.
func (r *userRepository) RecordSuccessfulLogin(ctx context.Context, userID int64, ip, userAgent string) error {
	return r.execOnUser(ctx, recordSuccessfulLogin, "*userRepository.RecordSuccessfulLogin", userID, ip, userAgent)
}

// SetReferralCode assigns a referral code to a user that has none yet.
//
// Error handling:
//   - PostgreSQL unique_violation (23505) → [ErrReferralCodeExists], so the
//     caller can retry with a fresh code.
//   - Zero affected rows (user missing or code already set) → [ErrNoUserWasFound].
func (r *userRepository) SetReferralCode(ctx context.Context, userID int64, code string) error {
	log := logger.FromContext(ctx)

	res, err := r.db.ExecContext(ctx, setReferralCode, userID, code)
	if err != nil {
		log.Err(err).Str("func", "*userRepository.SetReferralCode").Msg("error assigning referral code")

		switch postgresError(err) {
		case pgerrcode.UniqueViolation:
			return ErrReferralCodeExists
		default:
			return fmt.Errorf("unexpected DB error: %w", err)
		}
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("unexpected DB error: %w", err)
	}
	if affected == 0 {
		return ErrNoUserWasFound
	}

	return nil
}

// AwardReferral atomically adds points to the given user, optionally
// incrementing the direct-referral count in the same statement.
func (r *userRepository) AwardReferral(ctx context.Context, userID int64, points int64, incrementCount bool) error {
	query := awardReferralPoints
	if incrementCount {
		query = awardReferralPointsAndCount
	}

	return r.execOnUser(ctx, query, "*userRepository.AwardReferral", userID, points)
}

// ReferrerOf returns the referred_by pointer of the given user, nil if the
// user has no referrer.
func (r *userRepository) ReferrerOf(ctx context.Context, userID int64) (*int64, error) {
	log := logger.FromContext(ctx)

	var referredBy sql.NullInt64
	err := r.db.QueryRowContext(ctx, referrerOf, userID).Scan(&referredBy)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNoUserWasFound
		}
		log.Err(err).Str("func", "*userRepository.ReferrerOf").Msg("error reading referrer")
		return nil, fmt.Errorf("unexpected DB error: %w", err)
	}

	if !referredBy.Valid {
		return nil, nil
	}
	id := referredBy.Int64
	return &id, nil
}

// ListUsers returns one page of the filtered admin user listing together
// with the total number of matches.
func (r *userRepository) ListUsers(ctx context.Context, filter UserListFilter) ([]models.AdminUserRow, int64, error) {
	log := logger.FromContext(ctx)

	dataSQL, dataArgs, countSQL, countArgs, err := buildListUsersQuery(filter, time.Now())
	if err != nil {
		return nil, 0, fmt.Errorf("error building user listing query: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, dataSQL, dataArgs...)
	if err != nil {
		log.Err(err).Str("func", "*userRepository.ListUsers").Msg("error querying users")
		return nil, 0, fmt.Errorf("unexpected DB error: %w", err)
	}
	defer rows.Close()

	items := make([]models.AdminUserRow, 0, filter.Limit)
	for rows.Next() {
		var (
			row         models.AdminUserRow
			lockedUntil sql.NullTime
			lastLoginAt sql.NullTime
		)
		if err := rows.Scan(
			&row.UserID, &row.Name, &row.Email, &row.Role, &row.IsActive,
			&row.MustChangePassword, &lockedUntil, &lastLoginAt,
			&row.FailedLoginAttempts, &row.CreatedAt,
		); err != nil {
			return nil, 0, fmt.Errorf("error scanning user row: %w", err)
		}
		if lockedUntil.Valid {
			t := lockedUntil.Time
			row.LockedUntil = &t
		}
		if lastLoginAt.Valid {
			t := lastLoginAt.Time
			row.LastLoginAt = &t
		}
		items = append(items, row)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("unexpected DB error: %w", err)
	}

	var total int64
	if err := r.db.QueryRowContext(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		log.Err(err).Str("func", "*userRepository.ListUsers").Msg("error counting users")
		return nil, 0, fmt.Errorf("unexpected DB error: %w", err)
	}

	return items, total, nil
}
