package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-redis/redis/v8"
)

// структура конфига для Redis
type RedisConfig struct {
	Host            string        // Хост, где расположен redis
	Port            string        // Порт для подключения
	Password        string        // Пароль (может быть пустым)
	DB              int32         // номер базы (0-15)
	PoolSize        int32         // Максимальное количество одновременных TCP-соединений к Redis
	MinIdleConns    int32         // Минимальное количество соединений, которое держим открытыми
	MaxRetries      int32         // Количество повторов при временных сетевых сбоях
	DialTimeout     time.Duration // Время на установку нового TCP-соединения
	ReadTimeout     time.Duration // Таймаут чтения ответа
	WriteTimeout    time.Duration // Таймаут отправки команды
	IdleTimeout     time.Duration // Через сколько закрывается неиспользуемое соединение
	PoolTimeout     time.Duration // Таймаут ожидания свободного соединения
	MaxConnAge      time.Duration // Максимальное время жизни соединения в пуле
	MinRetryBackOff time.Duration // Нижняя граница интервала между повторами
	MaxRetryBackOff time.Duration // Верхняя граница интервала между повторами
}

// redis не обязателен: если REDIS_HOST не задан, сервис работает на inmemory кэше
func RedisConfigured() bool {
	return os.Getenv("REDIS_HOST") != ""
}

// NewRedisConfigFromEnv создает конфиг Redis из переменных окружения
func NewRedisConfigFromEnv() (*RedisConfig, error) {
	var errs []string

	host, err := getRequiredEnv("REDIS_HOST")
	if err != nil {
		return nil, fmt.Errorf("missing required environment variables: %w", err)
	}

	dbNum, err := getEnvAsInt32WithValidation("REDIS_DB", 0, 0, 15)
	if err != nil {
		errs = append(errs, err.Error())
	}

	poolSize, err := getEnvAsInt32WithValidation("REDIS_POOL_SIZE", 50, 1, 1000)
	if err != nil {
		errs = append(errs, err.Error())
	}

	minIdleConns, err := getEnvAsInt32WithValidation("REDIS_MIN_IDLE_CONNS", 10, 0, 1000)
	if err != nil {
		errs = append(errs, err.Error())
	}

	if minIdleConns > poolSize {
		errs = append(errs, fmt.Sprintf("REDIS_MIN_IDLE_CONNS (%d) cannot be greater than REDIS_POOL_SIZE (%d)", minIdleConns, poolSize))
	}

	maxRetries, err := getEnvAsInt32WithValidation("REDIS_MAX_RETRIES", 2, 0, 3)
	if err != nil {
		errs = append(errs, err.Error())
	}

	dialTimeout, err := getEnvAsDurationWithValidation("REDIS_DIAL_TIMEOUT", 5*time.Second, time.Second, 30*time.Second)
	if err != nil {
		errs = append(errs, err.Error())
	}

	readTimeout, err := getEnvAsDurationWithValidation("REDIS_READ_TIMEOUT", 3*time.Second, 100*time.Millisecond, 30*time.Second)
	if err != nil {
		errs = append(errs, err.Error())
	}

	writeTimeout, err := getEnvAsDurationWithValidation("REDIS_WRITE_TIMEOUT", 3*time.Second, 100*time.Millisecond, 30*time.Second)
	if err != nil {
		errs = append(errs, err.Error())
	}

	idleTimeout, err := getEnvAsDurationWithValidation("REDIS_IDLE_TIMEOUT", 5*time.Minute, time.Minute, 24*time.Hour)
	if err != nil {
		errs = append(errs, err.Error())
	}

	poolTimeout, err := getEnvAsDurationWithValidation("REDIS_POOL_TIMEOUT", 4*time.Second, time.Second, time.Minute)
	if err != nil {
		errs = append(errs, err.Error())
	}

	maxConnAge, err := getEnvAsDurationWithValidation("REDIS_MAX_CONN_AGE", 30*time.Minute, 10*time.Minute, time.Hour)
	if err != nil {
		errs = append(errs, err.Error())
	}

	minRetryBackoff, err := getEnvAsDurationWithValidation("REDIS_MIN_RETRY_BACKOFF", 100*time.Millisecond, 50*time.Millisecond, 300*time.Millisecond)
	if err != nil {
		errs = append(errs, err.Error())
	}

	maxRetryBackoff, err := getEnvAsDurationWithValidation("REDIS_MAX_RETRY_BACKOFF", time.Second, 512*time.Millisecond, 2*time.Second)
	if err != nil {
		errs = append(errs, err.Error())
	}

	if len(errs) > 0 {
		return nil, fmt.Errorf("configuration errors:\n%s", strings.Join(errs, "\n"))
	}

	return &RedisConfig{
		Host:            host,
		Port:            getEnvWithDefault("REDIS_PORT", "6379"),
		Password:        os.Getenv("REDIS_PASSWORD"),
		DB:              dbNum,
		PoolSize:        poolSize,
		MinIdleConns:    minIdleConns,
		MaxRetries:      maxRetries,
		DialTimeout:     dialTimeout,
		ReadTimeout:     readTimeout,
		WriteTimeout:    writeTimeout,
		IdleTimeout:     idleTimeout,
		PoolTimeout:     poolTimeout,
		MaxConnAge:      maxConnAge,
		MinRetryBackOff: minRetryBackoff,
		MaxRetryBackOff: maxRetryBackoff,
	}, nil
}

// для создания клиента redis необходимо передать указатель на структуру опций: *redis.Options
func (r *RedisConfig) ToRedisOptions() *redis.Options {
	return &redis.Options{
		Addr:     r.Host + ":" + r.Port,
		Password: r.Password,
		DB:       int(r.DB),

		// Пул соединений
		PoolSize:     int(r.PoolSize),
		MinIdleConns: int(r.MinIdleConns),
		IdleTimeout:  r.IdleTimeout,
		PoolTimeout:  r.PoolTimeout,
		MaxConnAge:   r.MaxConnAge,

		// Таймауты
		DialTimeout:  r.DialTimeout,
		ReadTimeout:  r.ReadTimeout,
		WriteTimeout: r.WriteTimeout,

		// Повторы
		MaxRetries:      int(r.MaxRetries),
		MinRetryBackoff: r.MinRetryBackOff,
		MaxRetryBackoff: r.MaxRetryBackOff,
	}
}
