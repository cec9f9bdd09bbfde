// Package notify holds reminder delivery channels.
package notify

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/99minutos/task-manager/internal/core/domain"
)

// LogNotifier delivers reminders as structured log lines.
type LogNotifier struct {
	log zerolog.Logger
}

func NewLogNotifier(log zerolog.Logger) *LogNotifier {
	return &LogNotifier{log: log}
}

func (n *LogNotifier) Notify(_ context.Context, task *domain.Task) error {
	n.log.Info().
		Str("task_id", task.ID).
		Str("user_id", task.CreatedBy).
		Str("title", task.Title).
		Time("reminder_time", task.ReminderTime).
		Time("end_time", task.EndTime).
		Msg("task reminder")
	return nil
}
