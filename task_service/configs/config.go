// описание общего конфига для сервиса задач
package configs

import (
	"fmt"
	"os"

	"todo_list/shared/config"
	"todo_list/shared/jwt_service"
)

// порт сервиса задач по умолчанию
const DefaultPort = "5002"

type TaskServiceConfig struct {
	ServerConf     *config.ServerConfig
	MongoDBConf    *config.MongoDBConfig
	JWTConfig      *jwt_service.JWTConfig // тот же секрет, что и у сервиса авторизации
	AllowedOrigins []string
}

// загружаем конфиг: .env -> yml файлы -> переменные окружения
func LoadConfig(envFile string) (*TaskServiceConfig, error) {
	if err := config.LoadEnvFile(envFile); err != nil {
		return nil, fmt.Errorf("error during loading config: %w", err)
	}

	serverConfig, err := config.LoadServerConfig(os.Getenv("SERVER_CONFIG_ADDRESS_STRING"), DefaultPort)
	if err != nil {
		return nil, fmt.Errorf("error during loading server config: %w", err)
	}

	mongoConfig, err := config.NewMongoDBConfigFromEnv()
	if err != nil {
		return nil, fmt.Errorf("error during loading mongo config: %w", err)
	}

	jwtConfig, err := jwt_service.LoadJWTConfig(os.Getenv("JWT_CONFIG_ADDRESS_STRING"))
	if err != nil {
		return nil, fmt.Errorf("error during loading jwt config: %w", err)
	}

	return &TaskServiceConfig{
		ServerConf:     serverConfig,
		MongoDBConf:    mongoConfig,
		JWTConfig:      jwtConfig,
		AllowedOrigins: config.AllowedOriginsFromEnv(),
	}, nil
}
