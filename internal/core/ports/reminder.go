package ports

import (
	"context"

	"github.com/99minutos/task-manager/internal/core/domain"
)

// Notifier delivers a reminder for a task to its owner.
type Notifier interface {
	Notify(ctx context.Context, task *domain.Task) error
}

// ReminderService finds due reminders and delivers them.
type ReminderService interface {
	Scan(ctx context.Context) ([]*domain.Task, error)
	Deliver(ctx context.Context, task *domain.Task) error
}
