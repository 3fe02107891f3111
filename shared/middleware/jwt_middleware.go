package middleware

import (
	"errors"
	"net/http"
	"strings"

	"todo_list/shared/jwt_service"
	"todo_list/shared/toolkit"

	"github.com/gin-gonic/gin"
)

// ключи контекста gin с данными вызывающего пользователя
const (
	CtxUserID    = "user_id"
	CtxUserEmail = "user_email"
)

var (
	ErrMissingAuthHeader = errors.New("Authorization header is required")
	ErrBadAuthHeader     = errors.New("Invalid authorization header format")
)

// AuthMiddleware проверяет bearer токен прямо в процессе (без обращения к сервису авторизации)
func AuthMiddleware(manager jwt_service.JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, err := ExtractBearerToken(c.GetHeader("Authorization"))
		if err != nil {
			toolkit.AbortWithAPIError(c, http.StatusUnauthorized, toolkit.APIError{
				Code:    toolkit.CodeUnauthorized,
				Message: err.Error(),
			})
			return
		}

		claims, err := manager.Verify(tokenString)
		if err != nil {
			_ = c.Error(err)
			toolkit.AbortWithAPIError(c, http.StatusUnauthorized, toolkit.APIError{
				Code:    toolkit.CodeUnauthorized,
				Message: jwt_service.DescribeVerifyError(err),
			})
			return
		}

		// Добавляем данные пользователя в контекст
		c.Set(CtxUserID, claims.UserID)
		c.Set(CtxUserEmail, claims.Email)
		c.Next()
	}
}

// ExtractBearerToken достаёт токен из заголовка Authorization (префикс Bearer обязателен)
func ExtractBearerToken(authHeader string) (string, error) {
	if authHeader == "" {
		return "", ErrMissingAuthHeader
	}
	return CheckBearerFormat(authHeader)
}

// Проверяем формат "Bearer <token>"
func CheckBearerFormat(authHeader string) (string, error) {
	const prefix = "Bearer "
	if len(authHeader) > len(prefix) && authHeader[:len(prefix)] == prefix {
		if token := strings.TrimSpace(authHeader[len(prefix):]); token != "" {
			return token, nil
		}
	}
	return "", ErrBadAuthHeader
}

// UserFromContext - данные пользователя, которые положил AuthMiddleware
func UserFromContext(c *gin.Context) (userID, email string, ok bool) {
	userID = c.GetString(CtxUserID)
	email = c.GetString(CtxUserEmail)
	return userID, email, userID != ""
}
