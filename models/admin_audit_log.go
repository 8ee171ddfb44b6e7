package models

import "time"

// AdminAuditLog is an immutable record of one administrative action.
// Entries are appended on every admin mutation and never updated or deleted.
type AdminAuditLog struct {
	LogID        int64          `json:"id"`
	AdminID      int64          `json:"adminId"`
	TargetUserID *int64         `json:"targetUserId,omitempty"`
	Action       string         `json:"action"`
	Metadata     map[string]any `json:"metadata"`
	CreatedAt    time.Time      `json:"createdAt"`

	// AdminName/AdminEmail and TargetName/TargetEmail are populated by the
	// listing query joining the users table. Empty on plain inserts.
	AdminName   string `json:"adminName,omitempty"`
	AdminEmail  string `json:"adminEmail,omitempty"`
	TargetName  string `json:"targetName,omitempty"`
	TargetEmail string `json:"targetEmail,omitempty"`
}

// TableName returns the name of the database table
// associated with the AdminAuditLog model.
func (l AdminAuditLog) TableName() string {
	return "admin_audit_logs"
}
