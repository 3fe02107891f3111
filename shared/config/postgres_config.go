// описание конфига для подключения к базе PostgreSQL (хранилище пользователей)
package config

import (
	"fmt"
	"strings"
	"time"
)

// структура конфига для базы
type PostgresDBConfig struct {
	DSN string

	// настройки пула соединений
	MaxConns int32
	MinConns int32

	// проверки живости соединений
	HealthCheckPeriod time.Duration
	MaxConnLifetime   time.Duration
	MaxConnIdleTime   time.Duration

	// таймаут на установку соединения
	ConnectTimeout time.Duration
}

// NewPostgresDBConfigFromEnv создает конфиг PostgreSQL из переменных окружения.
// Если задан POSTGRES_DSN - он используется целиком, иначе DSN собирается из DB_* переменных.
// Все ошибки валидации собираются и возвращаются одним списком.
func NewPostgresDBConfigFromEnv() (*PostgresDBConfig, error) {
	var errs []string

	dsn := getEnvWithDefault("POSTGRES_DSN", "")
	if dsn == "" {
		parts := make([]string, 0, 6)
		for _, key := range []string{"DB_HOST", "DB_USER", "DB_PASSWORD", "DB_NAME"} {
			val, err := getRequiredEnv(key)
			if err != nil {
				errs = append(errs, err.Error())
				continue
			}
			parts = append(parts, dsnKey(key)+"="+val)
		}

		// без обязательных полей дальше проверять нечего
		if len(errs) > 0 {
			return nil, fmt.Errorf("missing required environment variables: %s", strings.Join(errs, ", "))
		}

		parts = append(parts,
			"port="+getEnvWithDefault("DB_PORT", "5432"),
			"sslmode="+getEnvWithDefault("DB_SSL_MODE", "disable"),
		)
		dsn = strings.Join(parts, " ")
	}

	maxConns, err := getEnvAsInt32WithValidation("DB_MAX_CONNS", 10, 1, 100)
	if err != nil {
		errs = append(errs, err.Error())
	}

	minConns, err := getEnvAsInt32WithValidation("DB_MIN_CONNS", 2, 0, 50)
	if err != nil {
		errs = append(errs, err.Error())
	}

	if minConns > maxConns {
		errs = append(errs, fmt.Sprintf("DB_MIN_CONNS (%d) cannot be greater than DB_MAX_CONNS (%d)", minConns, maxConns))
	}

	healthCheckPeriod, err := getEnvAsDurationWithValidation("DB_HEALTH_CHECK_PERIOD", time.Minute, time.Second, 5*time.Minute)
	if err != nil {
		errs = append(errs, err.Error())
	}

	maxConnLifetime, err := getEnvAsDurationWithValidation("DB_MAX_CONN_LIFETIME", time.Hour, time.Second, 24*time.Hour)
	if err != nil {
		errs = append(errs, err.Error())
	}

	maxConnIdleTime, err := getEnvAsDurationWithValidation("DB_MAX_CONN_IDLE_TIME", 30*time.Minute, time.Second, 24*time.Hour)
	if err != nil {
		errs = append(errs, err.Error())
	}

	connectTimeout, err := getEnvAsDurationWithValidation("DB_CONNECT_TIMEOUT", 5*time.Second, time.Second, time.Minute)
	if err != nil {
		errs = append(errs, err.Error())
	}

	if maxConnIdleTime > maxConnLifetime {
		errs = append(errs, fmt.Sprintf("DB_MAX_CONN_IDLE_TIME (%v) cannot be greater than DB_MAX_CONN_LIFETIME (%v)", maxConnIdleTime, maxConnLifetime))
	}

	if len(errs) > 0 {
		return nil, fmt.Errorf("configuration errors:\n%s", strings.Join(errs, "\n"))
	}

	return &PostgresDBConfig{
		DSN:               dsn,
		MaxConns:          maxConns,
		MinConns:          minConns,
		HealthCheckPeriod: healthCheckPeriod,
		MaxConnLifetime:   maxConnLifetime,
		MaxConnIdleTime:   maxConnIdleTime,
		ConnectTimeout:    connectTimeout,
	}, nil
}

// имя переменной окружения -> ключ в DSN строке
func dsnKey(envKey string) string {
	switch envKey {
	case "DB_HOST":
		return "host"
	case "DB_USER":
		return "user"
	case "DB_PASSWORD":
		return "password"
	default:
		return "dbname"
	}
}
