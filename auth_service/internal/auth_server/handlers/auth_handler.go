// описание хэндлеров для сервера авторизации
package handlers

import (
	"log/slog"
	"net/http"

	"todo_list/auth_service/internal/auth_server/dto"
	"todo_list/auth_service/internal/auth_server/service"
	"todo_list/shared/middleware"
	"todo_list/shared/toolkit"

	"github.com/gin-gonic/gin"
)

// описание интерфейса слоя хэндлеров
type AuthHandlerInterface interface {
	EchoAuthServer(c *gin.Context)
	RegisterHandler(c *gin.Context)
	LoginHandler(c *gin.Context)
	VerifyHandler(c *gin.Context)
}

// структура хэндлера сервера авторизации
type AuthHandler struct {
	service service.AuthServiceInterface
	logger  *slog.Logger
}

// конструктор для слоя хэндлеров
func NewAuthHandler(service service.AuthServiceInterface, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{
		service: service,
		logger:  logger,
	}
}

// метод проверки работоспособности слоя хэндлеров
func (a *AuthHandler) EchoAuthServer(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "Hello from auth server!"})
}

// POST /auth/register: 201 {message, user_id, email}
func (a *AuthHandler) RegisterHandler(c *gin.Context) {
	req, ok := validatedRequest[dto.RegisterRequest](c)
	if !ok {
		return
	}

	user, err := a.service.Register(c.Request.Context(), req.Email, req.Password, req.Name)
	if err != nil {
		a.abortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.RegisterResponse{
		Message: "User registered successfully",
		UserID:  user.ID,
		Email:   user.Email,
	})
}

// POST /auth/login: 200 {token, token_type, user_id, expires_in}
func (a *AuthHandler) LoginHandler(c *gin.Context) {
	req, ok := validatedRequest[dto.LoginRequest](c)
	if !ok {
		return
	}

	res, err := a.service.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		a.abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.LoginResponse{
		Token:     res.Token,
		TokenType: res.TokenType,
		UserID:    res.UserID,
		ExpiresIn: int64(res.ExpiresIn.Seconds()),
	})
}

// POST /auth/verify: токен в заголовке Authorization: Bearer <token>
func (a *AuthHandler) VerifyHandler(c *gin.Context) {
	token, err := middleware.ExtractBearerToken(c.GetHeader("Authorization"))
	if err != nil {
		toolkit.AbortWithAPIError(c, http.StatusUnauthorized, toolkit.APIError{
			Code:    toolkit.CodeUnauthorized,
			Message: err.Error(),
		})
		return
	}

	identity, err := a.service.Verify(c.Request.Context(), token)
	if err != nil {
		a.abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.VerifyResponse{
		UserID: identity.UserID,
		Email:  identity.Email,
	})
}

// ошибки 5xx логируются целиком, клиенту уходит только общее сообщение
func (a *AuthHandler) abortWithError(c *gin.Context, err error) {
	status, apiErr := ToAPIError(err)
	if status >= http.StatusInternalServerError {
		a.logger.Error("request failed", "path", c.Request.URL.Path, "error", err,
			"request_id", c.GetString(toolkit.RequestIDKey))
	}
	_ = c.Error(err)
	toolkit.AbortWithAPIError(c, status, apiErr)
}

// достаём тело, которое положил ValidateMiddleware
func validatedRequest[T any](c *gin.Context) (*T, bool) {
	validatedData, exists := c.Get(middleware.CtxValidatedData)
	if !exists {
		toolkit.AbortWithAPIError(c, http.StatusBadRequest, toolkit.APIError{
			Code:    toolkit.CodeValidationFailed,
			Message: "Invalid request data",
		})
		return nil, false
	}

	req, ok := validatedData.(*T)
	if !ok {
		toolkit.AbortWithAPIError(c, http.StatusInternalServerError, toolkit.APIError{
			Code:    toolkit.CodeInternalError,
			Message: toolkit.InternalErrorMessage,
		})
		return nil, false
	}
	return req, true
}
