package ports

import (
	"context"

	"github.com/99minutos/task-manager/internal/core/domain"
)

type AuthService interface {
	Register(ctx context.Context, email, password, name string) (string, *domain.User, error)
	Login(ctx context.Context, email, password string) (string, *domain.User, error)
}
