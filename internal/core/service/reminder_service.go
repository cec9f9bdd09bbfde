package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/99minutos/task-manager/internal/core/domain"
	"github.com/99minutos/task-manager/internal/core/ports"
	"github.com/99minutos/task-manager/internal/pkg/metrics"
)

const defaultReminderBatch = 100

type reminderService struct {
	repo     ports.TaskRepository
	notifier ports.Notifier
	batch    int
	now      func() time.Time
	log      zerolog.Logger
}

// NewReminderService returns a ReminderService that scans at most batch
// tasks per call. A non-positive batch falls back to 100.
func NewReminderService(repo ports.TaskRepository, notifier ports.Notifier, batch int, log zerolog.Logger) ports.ReminderService {
	if batch <= 0 {
		batch = defaultReminderBatch
	}
	return &reminderService{
		repo:     repo,
		notifier: notifier,
		batch:    batch,
		now:      time.Now,
		log:      log,
	}
}

// Scan returns the tasks whose reminder is due and not yet delivered.
func (s *reminderService) Scan(ctx context.Context) ([]*domain.Task, error) {
	now := s.now().UTC()

	tasks, err := s.repo.FindDueReminders(ctx, now, s.batch)
	if err != nil {
		return nil, fmt.Errorf("scan reminders: %w", err)
	}

	due := tasks[:0]
	for _, t := range tasks {
		if t.ReminderDue(now) {
			due = append(due, t)
		}
	}

	if len(due) > 0 {
		s.log.Debug().Int("count", len(due)).Msg("reminders due")
		metrics.RemindersDueTotal.Add(float64(len(due)))
	}
	return due, nil
}

// Deliver notifies the owner and marks the task reminded. A failed
// notification leaves the marker unset so the next scan retries it.
func (s *reminderService) Deliver(ctx context.Context, task *domain.Task) error {
	if err := s.notifier.Notify(ctx, task); err != nil {
		metrics.RemindersDeliveredTotal.WithLabelValues("error").Inc()
		return fmt.Errorf("deliver reminder %s: %w", task.ID, err)
	}

	if err := s.repo.MarkReminded(ctx, task.ID, s.now().UTC()); err != nil {
		metrics.RemindersDeliveredTotal.WithLabelValues("error").Inc()
		return fmt.Errorf("deliver reminder %s: mark reminded: %w", task.ID, err)
	}

	s.log.Info().Str("task_id", task.ID).Str("user_id", task.CreatedBy).Msg("reminder delivered")
	metrics.RemindersDeliveredTotal.WithLabelValues("success").Inc()
	return nil
}
