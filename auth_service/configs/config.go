// описание общего конфига для сервиса авторизации
package configs

import (
	"fmt"
	"os"

	"todo_list/shared/config"
	"todo_list/shared/jwt_service"
)

// порт сервиса авторизации по умолчанию
const DefaultPort = "5001"

type AuthServiceConfig struct {
	ServerConf     *config.ServerConfig
	PostgresDBConf *config.PostgresDBConfig
	RedisConf      *config.RedisConfig    // nil - счётчик попыток входа живёт в inmemory кэше
	JWTConfig      *jwt_service.JWTConfig // общий секрет для подписи и время жизни токена
	ThrottleConf   *LoginThrottleConfig
	AllowedOrigins []string // для CORS
}

// загружаем конфиг: .env -> yml файлы -> переменные окружения
func LoadConfig(envFile string) (*AuthServiceConfig, error) {
	if err := config.LoadEnvFile(envFile); err != nil {
		return nil, fmt.Errorf("error during loading config: %w", err)
	}

	// загружаем данные из .yml файла для serverConfig
	serverConfig, err := config.LoadServerConfig(os.Getenv("SERVER_CONFIG_ADDRESS_STRING"), DefaultPort)
	if err != nil {
		return nil, fmt.Errorf("error during loading server config: %w", err)
	}

	// загружаем данные из .yml файла для ограничения попыток входа
	throttleConfig, err := config.LoadYAMLConfig(os.Getenv("THROTTLE_CONFIG_ADDRESS_STRING"), UseDefaultLoginThrottleConfig)
	if err != nil {
		return nil, fmt.Errorf("error during loading throttle config: %w", err)
	}
	if err := throttleConfig.Validate(); err != nil {
		return nil, err
	}

	postgresDBConfig, err := config.NewPostgresDBConfigFromEnv()
	if err != nil {
		return nil, fmt.Errorf("error during loading postgres config: %w", err)
	}

	var redisConfig *config.RedisConfig
	if config.RedisConfigured() {
		redisConfig, err = config.NewRedisConfigFromEnv()
		if err != nil {
			return nil, fmt.Errorf("error during loading redis config: %w", err)
		}
	}

	// загружаем данные из .yml файла для jwtConfig (JWT_SECRET из окружения важнее файла)
	jwtConfig, err := jwt_service.LoadJWTConfig(os.Getenv("JWT_CONFIG_ADDRESS_STRING"))
	if err != nil {
		return nil, fmt.Errorf("error during loading jwt config: %w", err)
	}

	return &AuthServiceConfig{
		ServerConf:     serverConfig,
		PostgresDBConf: postgresDBConfig,
		RedisConf:      redisConfig,
		JWTConfig:      jwtConfig,
		ThrottleConf:   throttleConfig,
		AllowedOrigins: config.AllowedOriginsFromEnv(),
	}, nil
}
