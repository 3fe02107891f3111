package handlers

import (
	"errors"
	"net/http"

	"todo_list/auth_service/internal/domain"
	"todo_list/shared/jwt_service"
	"todo_list/shared/toolkit"
)

// функция - маппер для формирования нужного результата в зависимости от типа кастомной ошибки
func ToAPIError(err error) (int, toolkit.APIError) {
	switch {
	case errors.Is(err, domain.ErrDuplicateIdentity):
		return http.StatusBadRequest, toolkit.APIError{
			Code:    toolkit.CodeUserExists,
			Message: "Email already exists",
			Field:   "email",
		}
	case errors.Is(err, domain.ErrPasswordTooLong):
		return http.StatusBadRequest, toolkit.APIError{
			Code:    toolkit.CodeValidationFailed,
			Message: "Password must not exceed 72 bytes",
			Field:   "password",
		}
	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusUnauthorized, toolkit.APIError{
			Code:    toolkit.CodeInvalidCredentials,
			Message: "Invalid credentials",
		}
	case errors.Is(err, domain.ErrTooManyAttempts):
		return http.StatusTooManyRequests, toolkit.APIError{
			Code:    toolkit.CodeTooManyAttempts,
			Message: "Too many failed login attempts, try again later",
		}
	case errors.Is(err, domain.ErrUnauthorized):
		return http.StatusUnauthorized, toolkit.APIError{
			Code:    toolkit.CodeUnauthorized,
			Message: jwt_service.DescribeVerifyError(err),
		}
	default:
		return http.StatusInternalServerError, toolkit.APIError{
			Code:    toolkit.CodeInternalError,
			Message: toolkit.InternalErrorMessage,
		}
	}
}
