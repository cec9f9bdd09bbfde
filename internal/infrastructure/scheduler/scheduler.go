// Package scheduler runs the periodic reminder scan.
package scheduler

import (
	"context"
	"fmt"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"

	"github.com/99minutos/task-manager/internal/core/domain"
	"github.com/99minutos/task-manager/internal/core/ports"
)

// Enqueuer accepts due tasks for asynchronous delivery.
type Enqueuer interface {
	EnqueueBatch(ctx context.Context, tasks []*domain.Task) int
}

// ReminderScheduler periodically scans for due reminders and hands them to
// the dispatcher.
type ReminderScheduler struct {
	spec    string
	service ports.ReminderService
	queue   Enqueuer
	log     zerolog.Logger
	cron    *cron.Cron
}

// New builds a scheduler for the given cron spec (standard five-field
// syntax or descriptors such as "@every 1m"). An empty spec disables it.
func New(spec string, service ports.ReminderService, queue Enqueuer, log zerolog.Logger) (*ReminderScheduler, error) {
	s := &ReminderScheduler{spec: spec, service: service, queue: queue, log: log}
	if spec == "" {
		return s, nil
	}
	if _, err := cron.ParseStandard(spec); err != nil {
		return nil, fmt.Errorf("reminder schedule %q: %w", spec, err)
	}

	cl := cronLogger{log: log}
	s.cron = cron.New(
		cron.WithLogger(cl),
		cron.WithChain(cron.Recover(cl), cron.SkipIfStillRunning(cl)),
	)
	return s, nil
}

// Enabled reports whether a schedule was configured.
func (s *ReminderScheduler) Enabled() bool {
	return s.cron != nil
}

// Start registers the scan job and starts the cron runner. The runner stops
// when ctx is cancelled.
func (s *ReminderScheduler) Start(ctx context.Context) error {
	if !s.Enabled() {
		s.log.Info().Msg("reminder scheduler disabled")
		return nil
	}

	if _, err := s.cron.AddFunc(s.spec, func() { s.RunOnce(ctx) }); err != nil {
		return fmt.Errorf("reminder schedule %q: %w", s.spec, err)
	}
	s.cron.Start()
	s.log.Info().Str("schedule", s.spec).Msg("reminder scheduler started")

	go func() {
		<-ctx.Done()
		<-s.cron.Stop().Done()
		s.log.Info().Msg("reminder scheduler stopped")
	}()
	return nil
}

// RunOnce performs a single scan and enqueues what is due. It returns the
// number of tasks handed to the dispatcher.
func (s *ReminderScheduler) RunOnce(ctx context.Context) int {
	if ctx.Err() != nil {
		return 0
	}

	due, err := s.service.Scan(ctx)
	if err != nil {
		s.log.Error().Err(err).Msg("reminder scan failed")
		return 0
	}
	if len(due) == 0 {
		return 0
	}

	n := s.queue.EnqueueBatch(ctx, due)
	s.log.Debug().Int("due", len(due)).Int("enqueued", n).Msg("reminders enqueued")
	return n
}

// cronLogger adapts zerolog to cron.Logger.
type cronLogger struct {
	log zerolog.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.log.Debug().Fields(keysAndValues).Msg(msg)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.log.Error().Err(err).Fields(keysAndValues).Msg(msg)
}
