package models

import "time"

// Task status values.
const (
	TaskStatusPending   = "pending"
	TaskStatusCompleted = "completed"
)

// Limits enforced on task fields before anything touches storage.
const (
	TaskTitleMaxLen       = 120
	TaskDescriptionMaxLen = 2000
)

// Task is a single to-do item owned by one user.
type Task struct {
	TaskID      int64     `json:"id"`
	UserID      int64     `json:"userId"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// TableName returns the name of the database table
// associated with the Task model.
func (t Task) TableName() string {
	return "tasks"
}
