package repository

import (
	"time"

	"todo_list/task_service/internal/domain"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// документ задачи в коллекции tasks
type taskDocument struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Text      string             `bson:"text"`
	Date      string             `bson:"date"`
	Completed bool               `bson:"completed"`
	OwnerID   string             `bson:"owner_id"`
	CreatedAt time.Time          `bson:"created_at"`
	UpdatedAt time.Time          `bson:"updated_at"`
}

// владелец берётся только из аргумента, а не из задачи
func newTaskDocument(task domain.Task, ownerID string) taskDocument {
	return taskDocument{
		Text:      task.Text,
		Date:      task.Date,
		Completed: task.Completed,
		OwnerID:   ownerID,
		CreatedAt: task.CreatedAt,
		UpdatedAt: task.UpdatedAt,
	}
}

func (d taskDocument) toDomain() domain.Task {
	return domain.Task{
		ID:        d.ID.Hex(),
		Text:      d.Text,
		Date:      d.Date,
		Completed: d.Completed,
		OwnerID:   d.OwnerID,
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
}

// фильтр {_id, owner_id}. Невалидный id - задачи нет.
func ownerFilter(id, ownerID string) (bson.M, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrTaskNotFound
	}
	return bson.M{"_id": oid, "owner_id": ownerID}, nil
}

// $set из патча. owner_id сюда не попадает никогда.
func buildSetDocument(patch domain.TaskPatch) bson.M {
	set := bson.M{"updated_at": patch.UpdatedAt}
	if patch.Text != nil {
		set["text"] = *patch.Text
	}
	if patch.Date != nil {
		set["date"] = *patch.Date
	}
	if patch.Completed != nil {
		set["completed"] = *patch.Completed
	}
	return set
}
