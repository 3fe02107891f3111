package toolkit

import "github.com/gin-gonic/gin"

// коды ошибок для фронтенда
const (
	CodeValidationFailed   = "VALIDATION_FAILED"
	CodeUnauthorized       = "UNAUTHORIZED"
	CodeUserExists         = "USER_EXISTS"
	CodeInvalidCredentials = "INVALID_CREDENTIALS"
	CodeTooManyAttempts    = "TOO_MANY_ATTEMPTS"
	CodeTaskNotFound       = "TASK_NOT_FOUND"
	CodeInternalError      = "INTERNAL_ERROR"
	CodeNotReady           = "NOT_READY"

	// единое сообщение для всех 500, детали только в логах сервера
	InternalErrorMessage = "Internal server error"
)

type APIError struct {
	Code    string            `json:"code"`    // для фронтенда: "USER_EXISTS"
	Message string            `json:"message"` // для пользователя
	Field   string            `json:"field,omitempty"`
	Details map[string]string `json:"details,omitempty"`
}

// конверт ответа с ошибкой: {"error": {...}}
type ErrorResponse struct {
	Error APIError `json:"error"`
}

// AbortWithAPIError прерывает цепочку обработчиков и отдаёт ошибку в едином формате
func AbortWithAPIError(c *gin.Context, status int, apiErr APIError) {
	c.AbortWithStatusJSON(status, ErrorResponse{Error: apiErr})
}
