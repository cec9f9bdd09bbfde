package ports

import (
	"context"
	"time"

	"github.com/99minutos/task-manager/internal/core/domain"
)

// TaskRepository defines persistence operations for tasks.
//
// Methods taking ownerID apply an additional created_by filter when it is
// non-empty; an empty ownerID addresses the task by id alone.
type TaskRepository interface {
	Create(ctx context.Context, t *domain.Task) error
	FindByOwner(ctx context.Context, ownerID string) ([]*domain.Task, error)
	FindByID(ctx context.Context, id, ownerID string) (*domain.Task, error)
	Update(ctx context.Context, id, ownerID string, patch domain.TaskPatch) (*domain.Task, error)
	Delete(ctx context.Context, id, ownerID string) (bool, error)

	// FindDueReminders returns incomplete, not yet reminded tasks whose
	// reminder time is at or before now, oldest first.
	FindDueReminders(ctx context.Context, now time.Time, limit int) ([]*domain.Task, error)
	MarkReminded(ctx context.Context, id string, at time.Time) error
}

// IdempotencyStore remembers which resource a client-supplied key produced.
type IdempotencyStore interface {
	Lookup(ctx context.Context, scope, key string) (string, bool, error)
	Remember(ctx context.Context, scope, key, value string) error
}
