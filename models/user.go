package models

import "time"

// Role values assignable to a user account.
const (
	RoleMember = "member"
	RoleAdmin  = "admin"
)

// User represents an account entity: identity, credential state, notification
// preferences and referral state for one person.
// Sensitive fields must never be exposed outside trusted boundaries.
type User struct {
	// UserID is the internal unique identifier of the user.
	UserID int64 `json:"id"`

	// Name is the display name of the user. Non-sensitive, shown in UI.
	Name string `json:"name"`

	// Email is the unique, lowercased e-mail address used for login.
	Email string `json:"email"`

	// PasswordHash stores the bcrypt hash of the user's password.
	// Never exposed via JSON.
	PasswordHash string `json:"-"`

	// Role is either RoleMember or RoleAdmin.
	Role string `json:"role"`

	// IsActive is false for soft-deactivated accounts. Deactivated accounts
	// cannot log in and their tokens are rejected.
	IsActive bool `json:"isActive"`

	// MustChangePassword is set when an administrator assigns a temporary
	// password. The user is forced through the change-temp-password flow.
	MustChangePassword bool `json:"mustChangePassword"`

	// LockedUntil, when set and in the future, blocks logins and rejects
	// already issued tokens until it passes.
	LockedUntil *time.Time `json:"lockedUntil,omitempty"`

	// FailedLoginAttempts counts consecutive wrong-password logins.
	// Reset on success and whenever the account is locked or unlocked.
	FailedLoginAttempts int `json:"failedLoginAttempts"`

	// TokenVersion is embedded in every issued session token. It only ever
	// increases; incrementing it invalidates all previously issued tokens.
	TokenVersion int64 `json:"-"`

	// ReferralCode is the unique code other people may register with.
	// Assigned lazily, so it can be empty.
	ReferralCode string `json:"referralCode,omitempty"`

	// ReferredBy points at the account whose referral code was used at
	// registration. Nil for organic signups.
	ReferredBy *int64 `json:"referredBy,omitempty"`

	// ReferralPoints is the accumulated referral point total.
	ReferralPoints int64 `json:"referralPoints"`

	// ReferralsCount counts direct signups through this user's code.
	ReferralsCount int64 `json:"referralsCount"`

	// AvatarURL is the optional profile image path.
	AvatarURL string `json:"avatarUrl,omitempty"`

	// EmailNotificationsEnabled toggles outbound task e-mails.
	EmailNotificationsEnabled bool `json:"emailNotificationsEnabled"`

	// EmailNotificationTypes lists the notification types the user wants
	// delivered by e-mail (subset of the Notification type constants).
	EmailNotificationTypes []string `json:"emailNotificationTypes,omitempty"`

	// RecoveryCodesGeneratedAt marks when the current recovery code batch
	// was issued. Nil if codes were never generated.
	RecoveryCodesGeneratedAt *time.Time `json:"recoveryCodesGeneratedAt,omitempty"`

	// LastLoginAt / LastLoginIP / LastLoginUserAgent describe the most
	// recent successful login.
	LastLoginAt        *time.Time `json:"lastLoginAt,omitempty"`
	LastLoginIP        string     `json:"-"`
	LastLoginUserAgent string     `json:"-"`

	// CreatedAt is the timestamp when the account was created.
	CreatedAt time.Time `json:"createdAt"`

	// UpdatedAt is the timestamp of the last modification.
	UpdatedAt time.Time `json:"updatedAt"`
}

// TableName returns the name of the database table
// associated with the User model.
func (u User) TableName() string {
	return "users"
}

// IsLocked reports whether the account is locked at the given instant.
func (u User) IsLocked(now time.Time) bool {
	return u.LockedUntil != nil && u.LockedUntil.After(now)
}
