// описание общего конфига для гейтвея
package configs

import (
	"fmt"
	"os"

	"todo_list/shared/config"
)

// порт гейтвея по умолчанию
const DefaultPort = "5000"

type GatewayConfig struct {
	ServerConf    *config.ServerConfig
	ProxyConf     *config.ProxyConfig
	UpstreamsConf *config.UpstreamsConfig
}

// загружаем конфиг: .env -> yml файлы -> переменные окружения
func LoadConfig(envFile string) (*GatewayConfig, error) {
	if err := config.LoadEnvFile(envFile); err != nil {
		return nil, fmt.Errorf("error during loading config: %w", err)
	}

	serverConfig, err := config.LoadServerConfig(os.Getenv("SERVER_CONFIG_ADDRESS_STRING"), DefaultPort)
	if err != nil {
		return nil, fmt.Errorf("error during loading server config: %w", err)
	}

	proxyConfig, err := config.LoadYAMLConfig(os.Getenv("PROXY_CONFIG_ADDRESS_STRING"), config.UseDefaultProxyConfig)
	if err != nil {
		return nil, fmt.Errorf("error during loading proxy config: %w", err)
	}
	if err := proxyConfig.Validate(); err != nil {
		return nil, fmt.Errorf("invalid proxy config: %w", err)
	}

	upstreams, err := config.NewUpstreamsConfigFromEnv()
	if err != nil {
		return nil, err
	}

	return &GatewayConfig{
		ServerConf:    serverConfig,
		ProxyConf:     proxyConfig,
		UpstreamsConf: upstreams,
	}, nil
}
