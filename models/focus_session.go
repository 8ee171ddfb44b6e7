package models

import "time"

// Bounds on a focus session duration, in minutes.
const (
	FocusMinMinutes = 5
	FocusMaxMinutes = 180
)

// FocusSession records one timed focus interval for a user.
// EndedAt stays nil while the session is running.
type FocusSession struct {
	SessionID       int64      `json:"id"`
	UserID          int64      `json:"userId"`
	StartedAt       time.Time  `json:"startedAt"`
	EndedAt         *time.Time `json:"endedAt,omitempty"`
	DurationMinutes int        `json:"durationMinutes"`
	TasksCompleted  int        `json:"tasksCompleted"`
	CreatedAt       time.Time  `json:"createdAt"`
}

// TableName returns the name of the database table
// associated with the FocusSession model.
func (f FocusSession) TableName() string {
	return "focus_sessions"
}

// FocusSummary aggregates the last seven days of focus activity.
type FocusSummary struct {
	Streak         int            `json:"streak"`
	TotalMinutes   int            `json:"totalMinutes"`
	TotalTasks     int            `json:"totalTasks"`
	FocusScore     int            `json:"focusScore"`
	RecentSessions []FocusSession `json:"recentSessions"`
}
