package models

import "time"

// RecoveryCode stores one hashed single-use recovery code.
//
// The plaintext code is shown to the user exactly once at generation time;
// only the SHA-256 hash is persisted. UsedAt transitions from nil to a
// timestamp exactly once and the code is never reusable afterwards.
type RecoveryCode struct {
	CodeID    int64      `json:"id"`
	UserID    int64      `json:"userId"`
	CodeHash  string     `json:"-"`
	UsedAt    *time.Time `json:"usedAt,omitempty"`
	CreatedAt time.Time  `json:"createdAt"`
}

// TableName returns the name of the database table
// associated with the RecoveryCode model.
func (c RecoveryCode) TableName() string {
	return "recovery_codes"
}
