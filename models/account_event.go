package models

import "time"

// Administrative action identifiers. Shared by the audit log and the
// account events emitted toward the affected user.
const (
	AdminActionLockUser       = "lock_user"
	AdminActionUnlockUser     = "unlock_user"
	AdminActionActivateUser   = "activate_user"
	AdminActionDeactivateUser = "deactivate_user"
	AdminActionChangeRole     = "change_role"
	AdminActionResetPassword  = "reset_password"
	AdminActionForceLogout    = "force_logout"
)

// MetadataRequiresLogout is the metadata key signalling that the client
// should drop its session once the user acknowledges the event.
const MetadataRequiresLogout = "requiresLogout"

// AccountEvent is a user-facing, dismissible notice describing an
// administrative action taken against that user's account.
// Mutated only to mark it read.
type AccountEvent struct {
	EventID   int64          `json:"id"`
	UserID    int64          `json:"userId"`
	Action    string         `json:"action"`
	Message   string         `json:"message"`
	Metadata  map[string]any `json:"metadata"`
	IsRead    bool           `json:"isRead"`
	ReadAt    *time.Time     `json:"readAt,omitempty"`
	CreatedAt time.Time      `json:"createdAt"`
}

// TableName returns the name of the database table
// associated with the AccountEvent model.
func (e AccountEvent) TableName() string {
	return "account_events"
}

// RequiresLogout reports whether the event carries the requiresLogout
// metadata flag set to true.
func (e AccountEvent) RequiresLogout() bool {
	v, ok := e.Metadata[MetadataRequiresLogout].(bool)
	return ok && v
}
