// описание сервера задач
package taskserver

import (
	"context"
	"log/slog"
	"net/http"

	"todo_list/shared/config"
	"todo_list/shared/jwt_service"
	"todo_list/shared/middleware"
	"todo_list/shared/toolkit"
	"todo_list/task_service/internal/task_server/dto"
	"todo_list/task_service/internal/task_server/handlers"

	"github.com/gin-gonic/gin"
)

type TaskServer struct {
	httpServer *http.Server
	router     *gin.Engine
	config     *config.ServerConfig
	jwt        jwt_service.JWTManager
	logger     *slog.Logger
	Handler    handlers.TaskHandlerInterface
}

func NewTaskServer(config *config.ServerConfig, handler handlers.TaskHandlerInterface, jwt jwt_service.JWTManager, logger *slog.Logger, allowedOrigins ...string) (*TaskServer, error) {
	router := gin.New()
	if err := router.SetTrustedProxies(nil); err != nil {
		return nil, err
	}

	router.Use(
		gin.Recovery(),
		toolkit.RequestID(),
		toolkit.RequestLogger(logger),
		toolkit.CORSMiddleware(allowedOrigins...),
	)

	server := &TaskServer{
		httpServer: config.NewHTTPServer(router),
		router:     router,
		config:     config,
		jwt:        jwt,
		logger:     logger,
		Handler:    handler,
	}
	server.SetUpRoutes()
	return server, nil
}

func (s *TaskServer) SetUpRoutes() {
	s.router.GET("/hello", s.Handler.EchoTaskServer)
	s.router.GET("/ready", s.Handler.ReadyHandler)

	// токен проверяется на месте, без обращения к сервису авторизации
	tasks := s.router.Group("/tasks", middleware.AuthMiddleware(s.jwt))
	{
		tasks.GET("", s.Handler.ListTasksHandler)
		tasks.POST("", middleware.ValidateMiddleware(&dto.CreateTaskRequest{}), s.Handler.CreateTaskHandler)
		tasks.PUT("/:id", middleware.ValidateMiddleware(&dto.UpdateTaskRequest{}), s.Handler.UpdateTaskHandler)
		tasks.DELETE("/:id", s.Handler.DeleteTaskHandler)
	}
}

func (s *TaskServer) Router() http.Handler {
	return s.router
}

func (s *TaskServer) Run() error {
	return s.config.Serve(s.httpServer, s.logger)
}

func (s *TaskServer) Shutdown(ctx context.Context) error {
	if err := s.httpServer.Shutdown(ctx); err != nil {
		return err
	}

	s.logger.Info("server shutdown completed")
	return nil
}
