package handlers

import (
	"errors"
	"net/http"

	"todo_list/shared/toolkit"
	"todo_list/task_service/internal/domain"
)

// маппинг ошибок сервисного слоя в HTTP ответ
func ToAPIError(err error) (int, toolkit.APIError) {
	var fieldErr *domain.FieldError
	switch {
	case errors.As(err, &fieldErr):
		return http.StatusBadRequest, toolkit.APIError{
			Code:    toolkit.CodeValidationFailed,
			Message: fieldErr.Reason,
			Field:   fieldErr.Field,
		}
	case errors.Is(err, domain.ErrValidation):
		return http.StatusBadRequest, toolkit.APIError{
			Code:    toolkit.CodeValidationFailed,
			Message: "Validation failed",
		}
	case errors.Is(err, domain.ErrTaskNotFound):
		return http.StatusNotFound, toolkit.APIError{
			Code:    toolkit.CodeTaskNotFound,
			Message: "Task not found",
		}
	default:
		return http.StatusInternalServerError, toolkit.APIError{
			Code:    toolkit.CodeInternalError,
			Message: toolkit.InternalErrorMessage,
		}
	}
}
