package store

import (
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"
)

// userColumns is the canonical column list scanned into models.User.
// Keep in sync with scanUser.
const userColumns = `user_id, name, email, password_hash, role, is_active,
	must_change_password, locked_until, failed_login_attempts, token_version,
	referral_code, referred_by, referral_points, referrals_count, avatar_url,
	email_notifications_enabled, email_notification_types,
	recovery_codes_generated_at, last_login_at, last_login_ip,
	last_login_user_agent, created_at, updated_at`

const (
	createUser = `INSERT INTO users (name, email, password_hash, role, referred_by, email_notifications_enabled)
    VALUES ($1, $2, $3, $4, $5, $6)
    RETURNING ` + userColumns + `;`

	findUserByID = `SELECT ` + userColumns + `
    FROM users
    WHERE user_id = $1;`

	findUserByEmail = `SELECT ` + userColumns + `
    FROM users
    WHERE email = $1;`

	findUserByReferralCode = `SELECT ` + userColumns + `
    FROM users
    WHERE referral_code = $1;`

	setPassword = `UPDATE users
    SET password_hash = $2,
        must_change_password = $3,
        token_version = token_version + 1,
        locked_until = NULL,
        failed_login_attempts = 0,
        updated_at = now()
    WHERE user_id = $1;`

	setLock = `UPDATE users
    SET locked_until = $2,
        failed_login_attempts = 0,
        updated_at = now()
    WHERE user_id = $1;`

	setActive = `UPDATE users
    SET is_active = $2,
        updated_at = now()
    WHERE user_id = $1;`

	setRole = `UPDATE users
    SET role = $2,
        token_version = token_version + 1,
        updated_at = now()
    WHERE user_id = $1;`

	registerFailedLogin = `UPDATE users
    SET failed_login_attempts = failed_login_attempts + 1,
        updated_at = now()
    WHERE user_id = $1
    RETURNING failed_login_attempts;`

	recordSuccessfulLogin = `UPDATE users
    SET failed_login_attempts = 0,
        last_login_at = now(),
        last_login_ip = $2,
        last_login_user_agent = $3,
        updated_at = now()
    WHERE user_id = $1;`

	setReferralCode = `UPDATE users
    SET referral_code = $2,
        updated_at = now()
    WHERE user_id = $1 AND referral_code IS NULL;`

	awardReferralPoints = `UPDATE users
    SET referral_points = referral_points + $2,
        updated_at = now()
    WHERE user_id = $1;`

	awardReferralPointsAndCount = `UPDATE users
    SET referral_points = referral_points + $2,
        referrals_count = referrals_count + 1,
        updated_at = now()
    WHERE user_id = $1;`

	referrerOf = `SELECT referred_by
    FROM users
    WHERE user_id = $1;`

	replaceRecoveryCodesDelete = `DELETE FROM recovery_codes
    WHERE user_id = $1;`

	replaceRecoveryCodesInsert = `INSERT INTO recovery_codes (user_id, code_hash, created_at)
    VALUES ($1, $2, $3);`

	replaceRecoveryCodesStamp = `UPDATE users
    SET recovery_codes_generated_at = $2,
        updated_at = now()
    WHERE user_id = $1;`

	consumeRecoveryCode = `UPDATE recovery_codes
    SET used_at = $3
    WHERE user_id = $1 AND code_hash = $2 AND used_at IS NULL;`

	listRecoveryCodes = `SELECT code_id, user_id, code_hash, used_at, created_at
    FROM recovery_codes
    WHERE user_id = $1
    ORDER BY code_id;`
)

// psql is a squirrel statement builder preconfigured for PostgreSQL
// ($N placeholders). Used by the dynamic admin listing queries.
var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// buildListUsersQuery assembles the filtered, paginated admin user listing.
// Returns the data query and the matching COUNT query.
func buildListUsersQuery(filter UserListFilter, now time.Time) (dataSQL string, dataArgs []any, countSQL string, countArgs []any, err error) {
	conds := sq.And{}

	if q := strings.TrimSpace(filter.Query); q != "" {
		pattern := "%" + q + "%"
		conds = append(conds, sq.Or{
			sq.ILike{"name": pattern},
			sq.ILike{"email": pattern},
		})
	}

	if filter.Role != "" {
		conds = append(conds, sq.Eq{"role": filter.Role})
	}

	switch filter.Status {
	case StatusFilterActive:
		conds = append(conds, sq.Eq{"is_active": true})
	case StatusFilterInactive:
		conds = append(conds, sq.Eq{"is_active": false})
	case StatusFilterLocked:
		conds = append(conds, sq.Gt{"locked_until": now})
	}

	base := psql.Select(
		"user_id", "name", "email", "role", "is_active",
		"must_change_password", "locked_until", "last_login_at",
		"failed_login_attempts", "created_at",
	).From("users")
	count := psql.Select("COUNT(*)").From("users")

	if len(conds) > 0 {
		base = base.Where(conds)
		count = count.Where(conds)
	}

	offset := uint64((filter.Page - 1) * filter.Limit)
	base = base.
		OrderBy("created_at DESC").
		Offset(offset).
		Limit(uint64(filter.Limit))

	dataSQL, dataArgs, err = base.ToSql()
	if err != nil {
		return "", nil, "", nil, err
	}

	countSQL, countArgs, err = count.ToSql()
	if err != nil {
		return "", nil, "", nil, err
	}

	return dataSQL, dataArgs, countSQL, countArgs, nil
}

// buildListLoginEventsQuery assembles the filtered, paginated login event
// listing together with its COUNT query.
func buildListLoginEventsQuery(filter LoginEventFilter) (dataSQL string, dataArgs []any, countSQL string, countArgs []any, err error) {
	conds := sq.And{}

	if q := strings.TrimSpace(filter.Query); q != "" {
		pattern := "%" + q + "%"
		conds = append(conds, sq.Or{
			sq.ILike{"email": pattern},
			sq.ILike{"ip": pattern},
		})
	}

	if filter.Success != nil {
		conds = append(conds, sq.Eq{"success": *filter.Success})
	}

	base := psql.Select(
		"event_id", "user_id", "email", "success", "reason", "ip",
		"user_agent", "created_at",
	).From("login_events")
	count := psql.Select("COUNT(*)").From("login_events")

	if len(conds) > 0 {
		base = base.Where(conds)
		count = count.Where(conds)
	}

	offset := uint64((filter.Page - 1) * filter.Limit)
	base = base.
		OrderBy("created_at DESC").
		Offset(offset).
		Limit(uint64(filter.Limit))

	dataSQL, dataArgs, err = base.ToSql()
	if err != nil {
		return "", nil, "", nil, err
	}

	countSQL, countArgs, err = count.ToSql()
	if err != nil {
		return "", nil, "", nil, err
	}

	return dataSQL, dataArgs, countSQL, countArgs, nil
}
