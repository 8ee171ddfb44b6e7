package models

import "time"

// Notification type values. They double as the e-mail notification type
// preference values stored on the user.
const (
	NotificationTaskCreated   = "task_created"
	NotificationTaskUpdated   = "task_updated"
	NotificationTaskCompleted = "task_completed"
	NotificationTaskDeleted   = "task_deleted"
)

// Notification is an in-app notice about a task change, shown in the
// notification bell and optionally mirrored to e-mail.
type Notification struct {
	NotificationID int64     `json:"id"`
	UserID         int64     `json:"userId"`
	Type           string    `json:"type"`
	Title          string    `json:"title"`
	Message        string    `json:"message"`
	EntityType     string    `json:"entityType"`
	EntityID       int64     `json:"entityId"`
	IsRead         bool      `json:"isRead"`
	CreatedAt      time.Time `json:"createdAt"`
}

// TableName returns the name of the database table
// associated with the Notification model.
func (n Notification) TableName() string {
	return "notifications"
}
