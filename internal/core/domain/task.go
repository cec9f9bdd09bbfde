package domain

import (
	"errors"
	"time"
)

var (
	ErrTaskNotFound = errors.New("task not found")
	ErrInvalidInput = errors.New("invalid inputs")
)

// Task is a to-do item owned by exactly one user.
// CreatedBy is set from the authenticated caller and never changes.
type Task struct {
	ID           string     `json:"_id"`
	Title        string     `json:"title"`
	Description  string     `json:"description"`
	EndTime      time.Time  `json:"endTime"`
	ReminderTime time.Time  `json:"reminderTime"`
	CreatedBy    string     `json:"created_by"`
	IsCompleted  bool       `json:"isCompleted"`
	DateCreated  time.Time  `json:"date_created"`
	RemindedAt   *time.Time `json:"-"`
}

// TaskPatch carries a partial update. Nil fields are left untouched.
type TaskPatch struct {
	Title        *string
	Description  *string
	EndTime      *time.Time
	ReminderTime *time.Time
	IsCompleted  *bool
}

// IsEmpty reports whether the patch would change nothing.
func (p TaskPatch) IsEmpty() bool {
	return p.Title == nil &&
		p.Description == nil &&
		p.EndTime == nil &&
		p.ReminderTime == nil &&
		p.IsCompleted == nil
}

// ReminderDue reports whether a reminder should fire for the task at now.
func (t *Task) ReminderDue(now time.Time) bool {
	if t.IsCompleted || t.RemindedAt != nil || t.ReminderTime.IsZero() {
		return false
	}
	return !t.ReminderTime.After(now)
}
