package models

// Request bodies accepted by the HTTP layer. Kept separate from the domain
// entities so that handlers never bind client JSON straight into storage
// structs.

// RegisterRequest is the body of POST /api/auth/register.
type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`

	// ReferralCode optionally names an existing account's referral code.
	// An unknown code rejects the whole registration.
	ReferralCode string `json:"referralCode,omitempty"`
}

// LoginRequest is the body of POST /api/auth/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RecoveryResetRequest is the body of POST /api/auth/reset-password/recovery-code.
type RecoveryResetRequest struct {
	Email        string `json:"email"`
	RecoveryCode string `json:"recoveryCode"`
	NewPassword  string `json:"newPassword"`
}

// ChangeTempPasswordRequest is the body of POST /api/auth/change-temp-password.
type ChangeTempPasswordRequest struct {
	NewPassword string `json:"newPassword"`
}

// ChangePasswordRequest is the body of POST /api/users/me/password.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

// UpdateProfileRequest is the body of PATCH /api/users/me.
// Nil fields are left untouched.
type UpdateProfileRequest struct {
	Name                      *string  `json:"name,omitempty"`
	AvatarURL                 *string  `json:"avatarUrl,omitempty"`
	EmailNotificationsEnabled *bool    `json:"emailNotificationsEnabled,omitempty"`
	EmailNotificationTypes    []string `json:"emailNotificationTypes,omitempty"`
}

// TaskRequest is the body of task create/update calls.
// On update, nil fields are left untouched.
type TaskRequest struct {
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
	Status      *string `json:"status,omitempty"`
}

// FocusStartRequest is the body of POST /api/focus/start.
type FocusStartRequest struct {
	DurationMinutes int `json:"durationMinutes"`
}

// FocusStopRequest is the body of POST /api/focus/stop.
type FocusStopRequest struct {
	SessionID      int64 `json:"sessionId"`
	TasksCompleted int   `json:"tasksCompleted"`
}

// AdminLockRequest is the body of PATCH /api/admin/users/{id}/lock.
type AdminLockRequest struct {
	Minutes int `json:"minutes"`
}

// AdminStatusRequest is the body of PATCH /api/admin/users/{id}/status.
// IsActive is a pointer so that a missing field is distinguishable from false.
type AdminStatusRequest struct {
	IsActive *bool `json:"isActive"`
}

// AdminRoleRequest is the body of PATCH /api/admin/users/{id}/role.
type AdminRoleRequest struct {
	Role string `json:"role"`
}

// AdminResetPasswordRequest is the body of POST /api/admin/users/{id}/reset-password.
type AdminResetPasswordRequest struct {
	TemporaryPassword string `json:"temporaryPassword,omitempty"`
}
