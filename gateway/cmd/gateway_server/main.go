package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"todo_list/gateway/internal/core"

	"github.com/gin-gonic/gin"
	"github.com/spf13/pflag"
)

func main() {
	envFile := pflag.String("env-file", "", "path to .env file (default: ./.env if present)")
	pflag.Parse()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil)).With("service", "gateway")
	gin.SetMode(gin.ReleaseMode)

	deps, err := core.InitDependencies(*envFile, logger)
	if err != nil {
		logger.Error("failed to initialize dependencies", "error", err)
		os.Exit(1)
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	serverErr := make(chan error, 1)
	go func() {
		if err := deps.Server.Run(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	select {
	case sig := <-sigChan:
		logger.Info("stopping gateway", "signal", sig.String())
	case err := <-serverErr:
		logger.Error("server failed", "error", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), deps.GatewayConfig.ServerConf.ShutdownTimeout)
	defer cancel()

	if err := deps.Server.Shutdown(shutdownCtx); err != nil {
		logger.Error("error during server shutdown", "error", err)
	}

	logger.Info("gateway stopped")
}
