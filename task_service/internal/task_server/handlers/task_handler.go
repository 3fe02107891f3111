// описание хэндлеров для сервера задач
package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"todo_list/shared/middleware"
	"todo_list/shared/toolkit"
	"todo_list/task_service/internal/task_server/dto"
	"todo_list/task_service/internal/task_server/service"

	"github.com/gin-gonic/gin"
)

const readyTimeout = 2 * time.Second

type TaskHandlerInterface interface {
	EchoTaskServer(c *gin.Context)
	ReadyHandler(c *gin.Context)
	ListTasksHandler(c *gin.Context)
	CreateTaskHandler(c *gin.Context)
	UpdateTaskHandler(c *gin.Context)
	DeleteTaskHandler(c *gin.Context)
}

type TaskHandler struct {
	service service.TaskServiceInterface
	logger  *slog.Logger
}

func NewTaskHandler(service service.TaskServiceInterface, logger *slog.Logger) *TaskHandler {
	return &TaskHandler{
		service: service,
		logger:  logger,
	}
}

func (h *TaskHandler) EchoTaskServer(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "Hello from task server!"})
}

// GET /ready: 503, пока хранилище не отвечает
func (h *TaskHandler) ReadyHandler(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), readyTimeout)
	defer cancel()

	if err := h.service.Ready(ctx); err != nil {
		h.logger.Warn("readiness check failed", "error", err)
		toolkit.AbortWithAPIError(c, http.StatusServiceUnavailable, toolkit.APIError{
			Code:    toolkit.CodeNotReady,
			Message: "Service is not ready",
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ready"})
}

// GET /tasks: задачи текущего пользователя
func (h *TaskHandler) ListTasksHandler(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	tasks, err := h.service.List(c.Request.Context(), userID)
	if err != nil {
		h.abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewTaskListResponse(tasks))
}

// POST /tasks: 201 и созданная задача
func (h *TaskHandler) CreateTaskHandler(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	req, ok := validatedRequest[dto.CreateTaskRequest](c)
	if !ok {
		return
	}

	task, err := h.service.Create(c.Request.Context(), userID, service.CreateInput{
		Text:      *req.Text,
		Date:      *req.Date,
		Completed: *req.Completed,
	})
	if err != nil {
		h.abortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.NewTaskResponse(*task))
}

// PUT /tasks/:id: частичное обновление
func (h *TaskHandler) UpdateTaskHandler(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	req, ok := validatedRequest[dto.UpdateTaskRequest](c)
	if !ok {
		return
	}

	task, err := h.service.Update(c.Request.Context(), userID, c.Param("id"), req.ToPatch())
	if err != nil {
		h.abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewTaskResponse(*task))
}

// DELETE /tasks/:id
func (h *TaskHandler) DeleteTaskHandler(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), userID, c.Param("id")); err != nil {
		h.abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.DeleteTaskResponse{Message: "Task deleted successfully"})
}

func (h *TaskHandler) abortWithError(c *gin.Context, err error) {
	status, apiErr := ToAPIError(err)
	if status >= http.StatusInternalServerError {
		h.logger.Error("request failed", "path", c.Request.URL.Path, "error", err,
			"request_id", c.GetString(toolkit.RequestIDKey))
	}
	_ = c.Error(err)
	toolkit.AbortWithAPIError(c, status, apiErr)
}

// пользователь, которого положил AuthMiddleware
func currentUser(c *gin.Context) (string, bool) {
	userID, _, ok := middleware.UserFromContext(c)
	if !ok || userID == "" {
		toolkit.AbortWithAPIError(c, http.StatusUnauthorized, toolkit.APIError{
			Code:    toolkit.CodeUnauthorized,
			Message: "Unauthorized",
		})
		return "", false
	}
	return userID, true
}

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
