// модели запросов и ответов сервера задач
package dto

import (
	"time"

	"todo_list/task_service/internal/domain"
)

// POST /tasks. Указатели, чтобы отличать отсутствующее поле от нулевого значения.
type CreateTaskRequest struct {
	Text      *string `json:"text" validate:"required"`
	Date      *string `json:"date" validate:"required"`
	Completed *bool   `json:"completed" validate:"required"`
}

// PUT /tasks/:id. Неизвестные поля (owner_id, user_id) игнорируются.
type UpdateTaskRequest struct {
	Text      *string `json:"text"`
	Date      *string `json:"date"`
	Completed *bool   `json:"completed"`
}

func (r UpdateTaskRequest) ToPatch() domain.TaskPatch {
	return domain.TaskPatch{
		Text:      r.Text,
		Date:      r.Date,
		Completed: r.Completed,
	}
}

type TaskResponse struct {
	ID        string    `json:"id"`
	Text      string    `json:"text"`
	Date      string    `json:"date"`
	Completed bool      `json:"completed"`
	OwnerID   string    `json:"owner_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func NewTaskResponse(t domain.Task) TaskResponse {
	return TaskResponse{
		ID:        t.ID,
		Text:      t.Text,
		Date:      t.Date,
		Completed: t.Completed,
		OwnerID:   t.OwnerID,
		CreatedAt: t.CreatedAt,
		UpdatedAt: t.UpdatedAt,
	}
}

func NewTaskListResponse(tasks []domain.Task) []TaskResponse {
	res := make([]TaskResponse, 0, len(tasks))
	for _, t := range tasks {
		res = append(res, NewTaskResponse(t))
	}
	return res
}

type DeleteTaskResponse struct {
	Message string `json:"message"`
}
