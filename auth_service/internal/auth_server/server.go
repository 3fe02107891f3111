// описание сервера авторизации
package authserver

import (
	"context"
	"log/slog"
	"net/http"

	"todo_list/auth_service/internal/auth_server/dto"
	"todo_list/auth_service/internal/auth_server/handlers"
	"todo_list/shared/config"
	"todo_list/shared/middleware"
	"todo_list/shared/toolkit"

	"github.com/gin-gonic/gin"
)

// структура сервера авторизации
type AuthServer struct {
	httpServer *http.Server
	router     *gin.Engine
	config     *config.ServerConfig
	logger     *slog.Logger
	Handler    handlers.AuthHandlerInterface
}

// Конструктор для сервера
func NewAuthServer(config *config.ServerConfig, handler handlers.AuthHandlerInterface, logger *slog.Logger, allowedOrigins ...string) (*AuthServer, error) {
	router := gin.New()
	if err := router.SetTrustedProxies(nil); err != nil {
		return nil, err
	}

	router.Use(
		gin.Recovery(),
		toolkit.RequestID(),
		toolkit.RequestLogger(logger),
		toolkit.CORSMiddleware(allowedOrigins...), // используем для всех маршрутов работу с CORS
	)

	server := &AuthServer{
		httpServer: config.NewHTTPServer(router),
		router:     router,
		config:     config,
		logger:     logger,
		Handler:    handler,
	}
	server.SetUpRoutes()
	return server, nil
}

// Метод для маршрутизации сервера
func (a *AuthServer) SetUpRoutes() {
	a.router.GET("/hello", a.Handler.EchoAuthServer) // тестовый ендпоинт

	auth := a.router.Group("/auth")
	{
		auth.POST("/register", middleware.ValidateMiddleware(&dto.RegisterRequest{}), a.Handler.RegisterHandler)
		auth.POST("/login", middleware.ValidateMiddleware(&dto.LoginRequest{}), a.Handler.LoginHandler)
		auth.POST("/verify", a.Handler.VerifyHandler)
	}
}

// Router - http.Handler сервера (для тестов и встраивания)
func (a *AuthServer) Router() http.Handler {
	return a.router
}

// Метод для запуска сервера
func (a *AuthServer) Run() error {
	return a.config.Serve(a.httpServer, a.logger)
}

// Метод для graceful shutdown
func (a *AuthServer) Shutdown(ctx context.Context) error {
	if err := a.httpServer.Shutdown(ctx); err != nil {
		return err
	}

	a.logger.Info("server shutdown completed")
	return nil
}
