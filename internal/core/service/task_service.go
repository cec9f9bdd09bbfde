package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/99minutos/task-manager/internal/core/domain"
	"github.com/99minutos/task-manager/internal/core/ports"
	"github.com/99minutos/task-manager/internal/pkg/metrics"
)

type TaskService struct {
	repo             ports.TaskRepository
	idempotency      ports.IdempotencyStore
	enforceOwnership bool
	logger           zerolog.Logger
}

// NewTaskService wires the task use cases. idempotency may be nil, in which
// case Idempotency-Key headers are ignored. With enforceOwnership unset,
// updates and deletes address a task by id alone.
func NewTaskService(repo ports.TaskRepository, idempotency ports.IdempotencyStore, enforceOwnership bool, logger zerolog.Logger) *TaskService {
	return &TaskService{
		repo:             repo,
		idempotency:      idempotency,
		enforceOwnership: enforceOwnership,
		logger:           logger,
	}
}

func (s *TaskService) ListForUser(ctx context.Context, userID string) ([]*domain.Task, error) {
	tasks, err := s.repo.FindByOwner(ctx, userID)
	if err != nil {
		metrics.TaskOperationsTotal.WithLabelValues("list", "error").Inc()
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	if tasks == nil {
		tasks = []*domain.Task{}
	}
	metrics.TaskOperationsTotal.WithLabelValues("list", "success").Inc()
	return tasks, nil
}

// Create stores a new task owned by input.OwnerID. If an idempotency key is
// provided and already seen for this owner, the previously created task is
// returned without side effects.
func (s *TaskService) Create(ctx context.Context, input ports.CreateTaskInput) (*domain.Task, error) {
	if input.OwnerID == "" {
		return nil, domain.ErrUnauthenticated
	}

	if existing := s.replay(ctx, input.OwnerID, input.IdempotencyKey); existing != nil {
		return existing, nil
	}

	task := &domain.Task{
		Title:        input.Title,
		Description:  input.Description,
		EndTime:      input.EndTime.UTC(),
		ReminderTime: input.ReminderTime.UTC(),
		CreatedBy:    input.OwnerID,
		IsCompleted:  false,
		DateCreated:  time.Now().UTC(),
	}

	if err := s.repo.Create(ctx, task); err != nil {
		s.logger.Error().Err(err).Str("user_id", input.OwnerID).Msg("failed to create task")
		metrics.TaskOperationsTotal.WithLabelValues("create", "error").Inc()
		return nil, fmt.Errorf("create task: %w", err)
	}

	if input.IdempotencyKey != "" && s.idempotency != nil {
		if err := s.idempotency.Remember(ctx, input.OwnerID, input.IdempotencyKey, task.ID); err != nil {
			s.logger.Warn().Err(err).Str("idempotency_key", input.IdempotencyKey).Msg("failed to store idempotency key")
		}
	}

	s.logger.Info().Str("task_id", task.ID).Str("user_id", input.OwnerID).Msg("task created")
	metrics.TaskOperationsTotal.WithLabelValues("create", "success").Inc()

	return task, nil
}

// replay returns the task a previous request with the same key created, or
// nil when the key is unknown or the store is unavailable.
func (s *TaskService) replay(ctx context.Context, ownerID, key string) *domain.Task {
	if key == "" || s.idempotency == nil {
		return nil
	}

	taskID, found, err := s.idempotency.Lookup(ctx, ownerID, key)
	if err != nil {
		s.logger.Warn().Err(err).Str("idempotency_key", key).Msg("idempotency check failed, creating anyway")
		return nil
	}
	if !found {
		metrics.TaskIdempotencyTotal.WithLabelValues("miss").Inc()
		return nil
	}

	existing, err := s.repo.FindByID(ctx, taskID, ownerID)
	if err != nil {
		// The task was deleted since; treat the key as fresh.
		s.logger.Debug().Err(err).Str("idempotency_key", key).Msg("idempotent task no longer available")
		metrics.TaskIdempotencyTotal.WithLabelValues("miss").Inc()
		return nil
	}

	s.logger.Info().Str("idempotency_key", key).Str("task_id", existing.ID).Msg("idempotent replay")
	metrics.TaskIdempotencyTotal.WithLabelValues("hit").Inc()
	return existing
}

func (s *TaskService) GetByID(ctx context.Context, taskID, userID string) (*domain.Task, error) {
	task, err := s.repo.FindByID(ctx, taskID, userID)
	if err != nil {
		return nil, s.fail("get", err)
	}
	metrics.TaskOperationsTotal.WithLabelValues("get", "success").Inc()
	return task, nil
}

// UpdateByID applies patch and returns the updated task.
func (s *TaskService) UpdateByID(ctx context.Context, taskID, userID string, patch domain.TaskPatch) (*domain.Task, error) {
	if patch.IsEmpty() {
		return nil, domain.ErrInvalidInput
	}
	if patch.EndTime != nil {
		t := patch.EndTime.UTC()
		patch.EndTime = &t
	}
	if patch.ReminderTime != nil {
		t := patch.ReminderTime.UTC()
		patch.ReminderTime = &t
	}

	task, err := s.repo.Update(ctx, taskID, s.scope(userID), patch)
	if err != nil {
		return nil, s.fail("update", err)
	}

	s.logger.Info().Str("task_id", task.ID).Str("user_id", userID).Msg("task updated")
	metrics.TaskOperationsTotal.WithLabelValues("update", "success").Inc()
	return task, nil
}

// DeleteByID reports whether exactly one task was removed.
func (s *TaskService) DeleteByID(ctx context.Context, taskID, userID string) (bool, error) {
	deleted, err := s.repo.Delete(ctx, taskID, s.scope(userID))
	if err != nil {
		return false, s.fail("delete", err)
	}

	if deleted {
		s.logger.Info().Str("task_id", taskID).Str("user_id", userID).Msg("task deleted")
	}
	metrics.TaskOperationsTotal.WithLabelValues("delete", "success").Inc()
	return deleted, nil
}

// scope returns the owner filter applied to mutations.
func (s *TaskService) scope(userID string) string {
	if s.enforceOwnership {
		return userID
	}
	return ""
}

func (s *TaskService) fail(operation string, err error) error {
	if errors.Is(err, domain.ErrTaskNotFound) {
		metrics.TaskOperationsTotal.WithLabelValues(operation, "not_found").Inc()
		return err
	}
	s.logger.Error().Err(err).Str("operation", operation).Msg("task operation failed")
	metrics.TaskOperationsTotal.WithLabelValues(operation, "error").Inc()
	return fmt.Errorf("%s task: %w", operation, err)
}
