package models

import "time"

// Login failure reasons recorded in login events.
const (
	LoginReasonUnknownEmail  = "unknown_email"
	LoginReasonWrongPassword = "wrong_password"
	LoginReasonLocked        = "account_locked"
	LoginReasonDeactivated   = "account_deactivated"
)

// LoginEvent records one login attempt, successful or not.
// UserID is nil when the e-mail did not match any account.
type LoginEvent struct {
	EventID   int64     `json:"id"`
	UserID    *int64    `json:"userId,omitempty"`
	Email     string    `json:"email"`
	Success   bool      `json:"success"`
	Reason    string    `json:"reason,omitempty"`
	IP        string    `json:"ip,omitempty"`
	UserAgent string    `json:"userAgent,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// TableName returns the name of the database table
// associated with the LoginEvent model.
func (e LoginEvent) TableName() string {
	return "login_events"
}
