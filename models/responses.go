package models

import "time"

// AuthResponse is returned by register, login and the password-change flows
// that rotate the session token.
type AuthResponse struct {
	Token string      `json:"token"`
	User  UserSummary `json:"user"`
}

// UserSummary is the public projection of an account returned to its owner.
type UserSummary struct {
	UserID             int64  `json:"id"`
	Name               string `json:"name"`
	Email              string `json:"email"`
	Role               string `json:"role"`
	AvatarURL          string `json:"avatarUrl,omitempty"`
	MustChangePassword bool   `json:"mustChangePassword"`
}

// Summary returns the public projection of the user.
func (u User) Summary() UserSummary {
	return UserSummary{
		UserID:             u.UserID,
		Name:               u.Name,
		Email:              u.Email,
		Role:               u.Role,
		AvatarURL:          u.AvatarURL,
		MustChangePassword: u.MustChangePassword,
	}
}

// UserProfile extends UserSummary with the settings only the owner sees.
type UserProfile struct {
	UserSummary

	EmailNotificationsEnabled bool       `json:"emailNotificationsEnabled"`
	EmailNotificationTypes    []string   `json:"emailNotificationTypes"`
	RecoveryCodesGeneratedAt  *time.Time `json:"recoveryCodesGeneratedAt,omitempty"`
	CreatedAt                 time.Time  `json:"createdAt"`
}

// Profile returns the owner-facing projection of the user.
func (u User) Profile() UserProfile {
	return UserProfile{
		UserSummary:               u.Summary(),
		EmailNotificationsEnabled: u.EmailNotificationsEnabled,
		EmailNotificationTypes:    u.EmailNotificationTypes,
		RecoveryCodesGeneratedAt:  u.RecoveryCodesGeneratedAt,
		CreatedAt:                 u.CreatedAt,
	}
}

// RecoveryCodesResponse carries a freshly generated batch of plaintext
// recovery codes. This is the only moment the plaintext ever leaves the
// server.
type RecoveryCodesResponse struct {
	Codes       []string  `json:"codes"`
	GeneratedAt time.Time `json:"generatedAt"`
}

// RecoveryCodesStatusResponse reports how much of the current recovery code
// batch is still usable, without ever exposing the codes themselves.
type RecoveryCodesStatusResponse struct {
	Total       int        `json:"total"`
	Remaining   int        `json:"remaining"`
	GeneratedAt *time.Time `json:"generatedAt,omitempty"`
}

// Pagination describes the window of a paginated listing.
type Pagination struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"totalPages"`
}

// NewPagination computes TotalPages from the given window, never returning
// fewer than one page.
func NewPagination(page, limit int, total int64) Pagination {
	pages := int((total + int64(limit) - 1) / int64(limit))
	if pages < 1 {
		pages = 1
	}
	return Pagination{Page: page, Limit: limit, Total: total, TotalPages: pages}
}

// NotificationsResponse is the notification listing payload.
type NotificationsResponse struct {
	Items       []Notification `json:"items"`
	UnreadCount int64          `json:"unreadCount"`
}

// AccountEventsResponse is the account event listing payload.
type AccountEventsResponse struct {
	Items       []AccountEvent `json:"items"`
	UnreadCount int64          `json:"unreadCount"`
}

// ReferralResponse describes the caller's referral state.
type ReferralResponse struct {
	ReferralCode   string `json:"referralCode"`
	ReferralPoints int64  `json:"referralPoints"`
	ReferralsCount int64  `json:"referralsCount"`
}

// AdminUserRow is one row of the admin user listing.
type AdminUserRow struct {
	UserID              int64      `json:"id"`
	Name                string     `json:"name"`
	Email               string     `json:"email"`
	Role                string     `json:"role"`
	IsActive            bool       `json:"isActive"`
	MustChangePassword  bool       `json:"mustChangePassword"`
	LockedUntil         *time.Time `json:"lockedUntil"`
	LastLoginAt         *time.Time `json:"lastLoginAt"`
	FailedLoginAttempts int        `json:"failedLoginAttempts"`
	CreatedAt           time.Time  `json:"createdAt"`
}

// AdminUserListResponse is the paginated admin user listing payload.
type AdminUserListResponse struct {
	Items      []AdminUserRow `json:"items"`
	Pagination Pagination     `json:"pagination"`
}

// AdminUserDetail extends AdminUserRow with login forensics and per-user
// usage metrics.
type AdminUserDetail struct {
	AdminUserRow

	LastLoginIP        string           `json:"lastLoginIp"`
	LastLoginUserAgent string           `json:"lastLoginUserAgent"`
	Metrics            AdminUserMetrics `json:"metrics"`
}

// AdminUserMetrics counts a user's stored artefacts.
type AdminUserMetrics struct {
	Tasks               int64 `json:"tasks"`
	Activities          int64 `json:"activities"`
	FocusSessions       int64 `json:"focusSessions"`
	UnreadNotifications int64 `json:"unreadNotifications"`
}

// AdminOverview is the admin dashboard counter block.
type AdminOverview struct {
	Users  AdminOverviewUsers  `json:"users"`
	Usage  AdminOverviewUsage  `json:"usage"`
	Logins AdminOverviewLogins `json:"logins"`
}

type AdminOverviewUsers struct {
	Total    int64 `json:"total"`
	Active   int64 `json:"active"`
	Admins   int64 `json:"admins"`
	Locked   int64 `json:"locked"`
	Inactive int64 `json:"inactive"`
}

type AdminOverviewUsage struct {
	Tasks         int64 `json:"tasks"`
	Activities    int64 `json:"activities"`
	FocusSessions int64 `json:"focusSessions"`
}

type AdminOverviewLogins struct {
	Success24h int64 `json:"success24h"`
	Failed24h  int64 `json:"failed24h"`
}

// ActivityListResponse is a paginated activity listing payload.
type ActivityListResponse struct {
	Items      []Activity `json:"items"`
	Pagination Pagination `json:"pagination"`
}

// LoginEventListResponse is the paginated login event listing payload.
type LoginEventListResponse struct {
	Items      []LoginEvent `json:"items"`
	Pagination Pagination   `json:"pagination"`
}

// AuditLogListResponse is the paginated audit log listing payload.
type AuditLogListResponse struct {
	Items      []AdminAuditLog `json:"items"`
	Pagination Pagination      `json:"pagination"`
}

// MessageResponse is the generic {"message": "..."} payload.
type MessageResponse struct {
	Message string `json:"message"`
}
