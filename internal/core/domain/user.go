package domain

import (
	"errors"
	"time"
)

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrDuplicateEmail     = errors.New("email is already signed up")
	ErrInvalidCredentials = errors.New("email and password does not exist")
	ErrUserCreation       = errors.New("unable to create user at this time")
	ErrUnauthenticated    = errors.New("unauthenticated user")
)

// User models a registered account. Users are never updated or deleted
// through the API.
type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"date_created"`
}
