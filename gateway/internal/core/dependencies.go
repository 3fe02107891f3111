package core

import (
	"fmt"
	"log/slog"

	"todo_list/gateway/configs"
	gatewayserver "todo_list/gateway/internal/gateway_server"
	"todo_list/shared/proxy"
)

// у гейтвея нет хранилищ: только конфиг и сервер
type GatewayDependencies struct {
	GatewayConfig *configs.GatewayConfig
	Server        *gatewayserver.GatewayServer
}

func InitDependencies(envFile string, logger *slog.Logger) (*GatewayDependencies, error) {
	conf, err := configs.LoadConfig(envFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	routes := []proxy.Route{
		{Name: "auth_service", Prefix: "/auth", Upstream: conf.UpstreamsConf.AuthServiceURL},
		{Name: "task_service", Prefix: "/tasks", Upstream: conf.UpstreamsConf.TaskServiceURL},
	}
	forwarder, err := proxy.NewForwarder(conf.ProxyConf, routes, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create forwarder: %w", err)
	}
	for _, r := range routes {
		logger.Info("route registered", "prefix", r.Prefix, "upstream", r.Upstream.String())
	}

	server, err := gatewayserver.NewGatewayServer(conf.ServerConf, forwarder, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create server: %w", err)
	}

	return &GatewayDependencies{GatewayConfig: conf, Server: server}, nil
}
