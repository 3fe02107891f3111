// описание общих структур и ошибок для всего task_service
package domain

import (
	"errors"
	"time"
)

var (
	// задачи нет ИЛИ она принадлежит другому пользователю (эти случаи не различаются)
	ErrTaskNotFound = errors.New("task not found")
	ErrValidation   = errors.New("validation failed")
)

// ошибка валидации конкретного поля, errors.Is(err, ErrValidation) == true
type FieldError struct {
	Field  string
	Reason string
}

func (e *FieldError) Error() string {
	return e.Field + ": " + e.Reason
}

func (e *FieldError) Is(target error) bool {
	return target == ErrValidation
}

// формат даты задачи: день или полная метка времени
var DateLayouts = []string{"2006-01-02", time.RFC3339}

// задача пользователя
type Task struct {
	ID        string // ObjectID в hex
	Text      string
	Date      string // ISO-8601 в том виде, в каком пришёл от клиента
	Completed bool
	OwnerID   string // subject_id владельца, задаётся только при создании
	CreatedAt time.Time
	UpdatedAt time.Time
}

// частичное обновление задачи: nil - поле не меняется
type TaskPatch struct {
	Text      *string
	Date      *string
	Completed *bool
	UpdatedAt time.Time
}

// пустой ли патч (нет ни одного изменяемого поля)
func (p TaskPatch) IsEmpty() bool {
	return p.Text == nil && p.Date == nil && p.Completed == nil
}

// ValidateDate проверяет, что дата в формате ISO-8601
func ValidateDate(date string) error {
	for _, layout := range DateLayouts {
		if _, err := time.Parse(layout, date); err == nil {
			return nil
		}
	}
	return errors.New("date must be ISO-8601 (2006-01-02 or RFC3339)")
}
