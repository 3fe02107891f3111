// фейки для тестов task_service
package testutil

import (
	"context"
	"sync"
	"time"

	"todo_list/task_service/internal/domain"
	taskinterfaces "todo_list/task_service/internal/task_interfaces"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

var _ taskinterfaces.TaskStore = (*LaggingTaskStore)(nil)

// версия задачи на момент записи; task == nil - задача удалена
type version struct {
	at   time.Time
	task *domain.Task
}

// LaggingTaskStore - in-memory хранилище задач с отстающей репликой для чтения.
// Записи (Insert/Update/Delete) видят последнее состояние, как primary при majority.
// List видит только версии старше lag, как secondary-preferred чтение.
type LaggingTaskStore struct {
	mu       sync.Mutex
	lag      time.Duration
	order    []string
	versions map[string][]version
	now      func() time.Time
	Err      error // если задана - возвращается любой операцией
}

func NewLaggingTaskStore(lag time.Duration) *LaggingTaskStore {
	return &LaggingTaskStore{
		lag:      lag,
		versions: make(map[string][]version),
		now:      time.Now,
	}
}

func (s *LaggingTaskStore) List(_ context.Context, ownerID string) ([]domain.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}

	horizon := s.now().Add(-s.lag)
	tasks := make([]domain.Task, 0)
	for _, id := range s.order {
		var visible *domain.Task
		for _, v := range s.versions[id] {
			if v.at.After(horizon) {
				break
			}
			visible = v.task
		}
		if visible != nil && visible.OwnerID == ownerID {
			tasks = append(tasks, *visible)
		}
	}
	return tasks, nil
}

func (s *LaggingTaskStore) Insert(_ context.Context, task domain.Task, ownerID string) (*domain.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}

	task.ID = primitive.NewObjectID().Hex()
	task.OwnerID = ownerID
	s.order = append(s.order, task.ID)
	s.push(task.ID, &task)

	created := task
	return &created, nil
}

func (s *LaggingTaskStore) Update(_ context.Context, id, ownerID string, patch domain.TaskPatch) (*domain.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}

	current := s.latest(id)
	if current == nil || current.OwnerID != ownerID {
		return nil, domain.ErrTaskNotFound
	}

	updated := *current
	if patch.Text != nil {
		updated.Text = *patch.Text
	}
	if patch.Date != nil {
		updated.Date = *patch.Date
	}
	if patch.Completed != nil {
		updated.Completed = *patch.Completed
	}
	updated.UpdatedAt = patch.UpdatedAt
	s.push(id, &updated)

	result := updated
	return &result, nil
}

func (s *LaggingTaskStore) Delete(_ context.Context, id, ownerID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}

	current := s.latest(id)
	if current == nil || current.OwnerID != ownerID {
		return domain.ErrTaskNotFound
	}
	s.push(id, nil)
	return nil
}

func (s *LaggingTaskStore) Ping(context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.Err
}

// Latest - состояние задачи на primary (для проверок в тестах)
func (s *LaggingTaskStore) Latest(id string) (domain.Task, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t := s.latest(id)
	if t == nil {
		return domain.Task{}, false
	}
	return *t, true
}

func (s *LaggingTaskStore) latest(id string) *domain.Task {
	history := s.versions[id]
	if len(history) == 0 {
		return nil
	}
	return history[len(history)-1].task
}

func (s *LaggingTaskStore) push(id string, task *domain.Task) {
	s.versions[id] = append(s.versions[id], version{at: s.now(), task: task})
}
