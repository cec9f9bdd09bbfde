package ports

import (
	"context"

	"github.com/99minutos/task-manager/internal/core/domain"
)

// UserRepository defines the persistence contract of the user directory.
type UserRepository interface {
	// FindByEmail returns domain.ErrUserNotFound when no user has the email.
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	// Create persists the user and returns it with its new ID.
	// A taken email yields domain.ErrDuplicateEmail.
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
}
