package models

import "time"

// Activity action values.
const (
	ActivityCreated   = "created"
	ActivityUpdated   = "updated"
	ActivityCompleted = "completed"
	ActivityDeleted   = "deleted"
)

// Activity is one line of a user's task history feed, written alongside
// every task mutation.
type Activity struct {
	ActivityID int64     `json:"id"`
	UserID     int64     `json:"userId"`
	Action     string    `json:"action"`
	EntityType string    `json:"entityType"`
	EntityID   int64     `json:"entityId"`
	Message    string    `json:"message"`
	CreatedAt  time.Time `json:"createdAt"`
}

// TableName returns the name of the database table
// associated with the Activity model.
func (a Activity) TableName() string {
	return "activities"
}
