package handler

import "time"

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

// --- Auth ---

// String fields are pointers so a present-but-empty value passes and only a
// missing or non-string one is rejected.

type registerRequest struct {
	Name     *string `json:"name"     validate:"required"`
	Email    *string `json:"email"    validate:"required"`
	Password *string `json:"password" validate:"required"`
}

type loginRequest struct {
	Email    *string `json:"email"    validate:"required"`
	Password *string `json:"password" validate:"required"`
}

type authResponse struct {
	Text  string `json:"text"`
	Token string `json:"token"`
}

const loginSuccessText = "User log-in successful"

// --- Tasks ---

type createTaskRequest struct {
	Title        *string   `json:"title"        validate:"required"`
	Description  *string   `json:"description"  validate:"required"`
	EndTime      time.Time `json:"endTime"      validate:"required"`
	ReminderTime time.Time `json:"reminderTime" validate:"required"`
}

// updateTaskRequest is a partial update; at least one field must be present.
type updateTaskRequest struct {
	Title        *string    `json:"title"`
	Description  *string    `json:"description"`
	EndTime      *time.Time `json:"endTime"`
	ReminderTime *time.Time `json:"reminderTime"`
	IsCompleted  *bool      `json:"isCompleted"`
}

type healthResponse struct {
	Status string `json:"status"`
}
