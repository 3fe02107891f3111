package taskinterfaces

import (
	"context"

	"todo_list/task_service/internal/domain"
)

// хранилище задач. Каждая операция ограничена владельцем ownerID.
// Чтение может идти с отстающей реплики: только что записанная задача
// может появиться в List не сразу.
type TaskStore interface {
	List(ctx context.Context, ownerID string) ([]domain.Task, error)
	Insert(ctx context.Context, task domain.Task, ownerID string) (*domain.Task, error)
	Update(ctx context.Context, id, ownerID string, patch domain.TaskPatch) (*domain.Task, error)
	Delete(ctx context.Context, id, ownerID string) error
	Ping(ctx context.Context) error
}
