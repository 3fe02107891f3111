package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"todo_list/auth_service/internal/core"

	"github.com/gin-gonic/gin"
	"github.com/spf13/pflag"
)

func main() {
	envFile := pflag.String("env-file", "", "path to .env file (default: ./.env if present)")
	pflag.Parse()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil)).With("service", "auth_service")
	gin.SetMode(gin.ReleaseMode)

	// Создаем корневой контекст
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Инициализируем общие зависимости
	deps, err := core.InitDependencies(ctx, *envFile, logger)
	if err != nil {
		logger.Error("failed to initialize dependencies", "error", err)
		os.Exit(1)
	}

	// канал для системных сигналов
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	serverErr := make(chan error, 1)
	go func() {
		if err := deps.Server.Run(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	// Ожидание сигнала или падения сервера
	select {
	case sig := <-sigChan:
		logger.Info("stopping auth server", "signal", sig.String())
	case err := <-serverErr:
		logger.Error("server failed", "error", err)
	}

	// Graceful shutdown
	shutdownCtx, shutdownCancel := context.WithTimeout(ctx, deps.AuthConfig.ServerConf.ShutdownTimeout)
	defer shutdownCancel()

	if err := deps.Server.Shutdown(shutdownCtx); err != nil {
		logger.Error("error during server shutdown", "error", err)
	}

	// Закрываем зависимости после HTTP сервера
	if err := deps.Close(); err != nil {
		logger.Error("error during resources closing", "error", err)
	}

	logger.Info("auth server stopped")
}
