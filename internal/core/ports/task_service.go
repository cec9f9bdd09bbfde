package ports

import (
	"context"
	"time"

	"github.com/99minutos/task-manager/internal/core/domain"
)

// CreateTaskInput carries everything needed to create a task.
// OwnerID always comes from the verified token.
type CreateTaskInput struct {
	OwnerID        string
	Title          string
	Description    string
	EndTime        time.Time
	ReminderTime   time.Time
	IdempotencyKey string
}

// TaskService defines use-case operations for tasks.
type TaskService interface {
	ListForUser(ctx context.Context, userID string) ([]*domain.Task, error)
	Create(ctx context.Context, input CreateTaskInput) (*domain.Task, error)
	GetByID(ctx context.Context, taskID, userID string) (*domain.Task, error)
	UpdateByID(ctx context.Context, taskID, userID string, patch domain.TaskPatch) (*domain.Task, error)
	DeleteByID(ctx context.Context, taskID, userID string) (bool, error)
}
