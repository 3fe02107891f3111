// описание сервисного слоя сервера задач
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"todo_list/task_service/internal/domain"
	taskinterfaces "todo_list/task_service/internal/task_interfaces"
)

// описание интерфейса сервисного слоя. Все операции ограничены владельцем ownerID.
type TaskServiceInterface interface {
	List(ctx context.Context, ownerID string) ([]domain.Task, error)
	Create(ctx context.Context, ownerID string, input CreateInput) (*domain.Task, error)
	Update(ctx context.Context, ownerID, taskID string, patch domain.TaskPatch) (*domain.Task, error)
	Delete(ctx context.Context, ownerID, taskID string) error
	Ready(ctx context.Context) error
}

var _ TaskServiceInterface = (*TaskService)(nil)

// поля новой задачи
type CreateInput struct {
	Text      string
	Date      string
	Completed bool
}

type TaskService struct {
	store  taskinterfaces.TaskStore
	logger *slog.Logger
	now    func() time.Time
}

type Option func(*TaskService)

// WithClock подменяет источник времени для created_at / updated_at
func WithClock(now func() time.Time) Option {
	return func(s *TaskService) {
		s.now = now
	}
}

func NewTaskService(store taskinterfaces.TaskStore, logger *slog.Logger, opts ...Option) *TaskService {
	s := &TaskService{
		store:  store,
		logger: logger,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// время в UTC с точностью до миллисекунд (как хранит MongoDB)
func (s *TaskService) timestamp() time.Time {
	return s.now().UTC().Truncate(time.Millisecond)
}

func (s *TaskService) List(ctx context.Context, ownerID string) ([]domain.Task, error) {
	tasks, err := s.store.List(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	return tasks, nil
}

func (s *TaskService) Create(ctx context.Context, ownerID string, input CreateInput) (*domain.Task, error) {
	if strings.TrimSpace(input.Text) == "" {
		return nil, &domain.FieldError{Field: "text", Reason: "must not be empty"}
	}
	if err := domain.ValidateDate(input.Date); err != nil {
		return nil, &domain.FieldError{Field: "date", Reason: err.Error()}
	}

	now := s.timestamp()
	task, err := s.store.Insert(ctx, domain.Task{
		Text:      input.Text,
		Date:      input.Date,
		Completed: input.Completed,
		CreatedAt: now,
		UpdatedAt: now,
	}, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	s.logger.Info("task created", "task_id", task.ID, "owner_id", ownerID)
	return task, nil
}

// частичное обновление: хотя бы одно поле из text/date/completed
func (s *TaskService) Update(ctx context.Context, ownerID, taskID string, patch domain.TaskPatch) (*domain.Task, error) {
	if patch.IsEmpty() {
		return nil, &domain.FieldError{Field: "body", Reason: "at least one of text, date, completed is required"}
	}
	if patch.Text != nil && strings.TrimSpace(*patch.Text) == "" {
		return nil, &domain.FieldError{Field: "text", Reason: "must not be empty"}
	}
	if patch.Date != nil {
		if err := domain.ValidateDate(*patch.Date); err != nil {
			return nil, &domain.FieldError{Field: "date", Reason: err.Error()}
		}
	}

	patch.UpdatedAt = s.timestamp()
	task, err := s.store.Update(ctx, taskID, ownerID, patch)
	if err != nil {
		if errors.Is(err, domain.ErrTaskNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to update task: %w", err)
	}

	s.logger.Info("task updated", "task_id", taskID, "owner_id", ownerID)
	return task, nil
}

func (s *TaskService) Delete(ctx context.Context, ownerID, taskID string) error {
	if err := s.store.Delete(ctx, taskID, ownerID); err != nil {
		if errors.Is(err, domain.ErrTaskNotFound) {
			return err
		}
		return fmt.Errorf("failed to delete task: %w", err)
	}

	s.logger.Info("task deleted", "task_id", taskID, "owner_id", ownerID)
	return nil
}

// Ready проверяет, что хранилище задач отвечает
func (s *TaskService) Ready(ctx context.Context) error {
	if err := s.store.Ping(ctx); err != nil {
		return fmt.Errorf("task store is not ready: %w", err)
	}
	return nil
}
