// описание сервера гейтвея
package gatewayserver

import (
	"context"
	"log/slog"
	"net/http"

	"todo_list/shared/config"
	"todo_list/shared/proxy"
	"todo_list/shared/toolkit"

	"github.com/gin-gonic/gin"
)

// сам гейтвей отвечает только на /hello, всё остальное уходит в Forwarder
type GatewayServer struct {
	httpServer *http.Server
	router     *gin.Engine
	config     *config.ServerConfig
	forwarder  *proxy.Forwarder
	logger     *slog.Logger
}

// NewGatewayServer. CORS здесь не навешивается: его выставляют сами сервисы,
// а гейтвей возвращает их заголовки как есть.
func NewGatewayServer(config *config.ServerConfig, forwarder *proxy.Forwarder, logger *slog.Logger) (*GatewayServer, error) {
	router := gin.New()
	if err := router.SetTrustedProxies(nil); err != nil {
		return nil, err
	}
	router.RedirectTrailingSlash = false
	router.RedirectFixedPath = false

	router.Use(
		gin.Recovery(),
		toolkit.RequestID(),
		toolkit.RequestLogger(logger),
	)

	server := &GatewayServer{
		httpServer: config.NewHTTPServer(router),
		router:     router,
		config:     config,
		forwarder:  forwarder,
		logger:     logger,
	}
	server.SetUpRoutes()
	return server, nil
}

func (s *GatewayServer) SetUpRoutes() {
	s.router.GET("/hello", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "Hello from gateway!"})
	})
	// /auth/** и /tasks/** любыми методами, неизвестный путь - 404
	s.router.NoRoute(s.forwarder.Handle)
}

func (s *GatewayServer) Router() http.Handler {
	return s.router
}

func (s *GatewayServer) Run() error {
	return s.config.Serve(s.httpServer, s.logger)
}

func (s *GatewayServer) Shutdown(ctx context.Context) error {
	if err := s.httpServer.Shutdown(ctx); err != nil {
		return err
	}

	s.logger.Info("server shutdown completed")
	return nil
}
