package core

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime"
	"time"

	"todo_list/auth_service/configs"
	authserver "todo_list/auth_service/internal/auth_server"
	"todo_list/auth_service/internal/auth_server/handlers"
	"todo_list/auth_service/internal/auth_server/repository"
	"todo_list/auth_service/internal/auth_server/service"
	"todo_list/global_models/global_cache"
	"todo_list/global_models/global_db"
	"todo_list/shared/inmemory_cache"
	"todo_list/shared/jwt_service"
	postgresdb "todo_list/shared/postgres_db"
	"todo_list/shared/redis"
)

// параметры inmemory кэша, когда redis не настроен
const (
	inmemoryShards          = 16
	inmemoryCleanUpInterval = time.Minute
)

// Dependencies содержит все общие зависимости
type AuthServiceDependencies struct {
	AuthConfig *configs.AuthServiceConfig
	Server     *authserver.AuthServer
	pool       global_db.Pool
	cache      global_cache.Cache
}

// InitDependencies инициализирует общие зависимости для auth_service
func InitDependencies(ctx context.Context, envFile string, logger *slog.Logger) (*AuthServiceDependencies, error) {
	logger.Info("runtime", "gomaxprocs", runtime.GOMAXPROCS(-1))

	// Получаем конфигурацию
	conf, err := configs.LoadConfig(envFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	// создаём экземпляр пула соединений для postgreSQL
	pgRepo, err := postgresdb.NewPgRepo(ctx, conf.PostgresDBConf)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to postgres: %w", err)
	}
	pool := pgRepo.Adapter()

	deps := &AuthServiceDependencies{AuthConfig: conf, pool: pool}

	dbRepo := repository.NewAuthUserRepository(pool)
	if err := dbRepo.EnsureSchema(ctx); err != nil {
		deps.Close()
		return nil, err
	}

	identityStore, err := repository.NewIdentityStore(dbRepo, 0)
	if err != nil {
		deps.Close()
		return nil, err
	}

	// кэш для счётчика попыток входа: redis, если настроен, иначе inmemory
	deps.cache, err = newCache(ctx, conf, logger)
	if err != nil {
		deps.Close()
		return nil, err
	}

	attemptsRepo := repository.NewLoginAttemptsRepo(deps.cache, conf.ThrottleConf.MaxFailedAttempts, conf.ThrottleConf.Window)

	// создаём слой репозитория
	repo, err := repository.NewAuthRepository(identityStore, attemptsRepo)
	if err != nil {
		deps.Close()
		return nil, err
	}

	jwtManager := jwt_service.NewJWTService(conf.JWTConfig)

	// создаём сервис авторизации и хэндлеры
	authService := service.NewAuthService(repo, jwtManager, logger)
	authHandler := handlers.NewAuthHandler(authService, logger)

	deps.Server, err = authserver.NewAuthServer(conf.ServerConf, authHandler, logger, conf.AllowedOrigins...)
	if err != nil {
		deps.Close()
		return nil, fmt.Errorf("failed to create server: %w", err)
	}

	return deps, nil
}

func newCache(ctx context.Context, conf *configs.AuthServiceConfig, logger *slog.Logger) (global_cache.Cache, error) {
	if conf.RedisConf != nil {
		cache, err := redis.NewRedisCacheRepository(ctx, conf.RedisConf)
		if err != nil {
			return nil, err
		}
		logger.Info("login throttle uses redis", "addr", conf.RedisConf.Host+":"+conf.RedisConf.Port)
		return cache, nil
	}

	cache, err := inmemory_cache.NewInmemoryShardedCache(inmemoryShards, inmemoryCleanUpInterval)
	if err != nil {
		return nil, err
	}
	logger.Info("login throttle uses in-memory cache")
	return cache, nil
}

// Close закрывает соединения с хранилищами
func (d *AuthServiceDependencies) Close() error {
	var errs []error
	if d.cache != nil {
		if err := d.cache.Close(); err != nil {
			errs = append(errs, fmt.Errorf("cache: %w", err))
		}
	}
	if d.pool != nil {
		if err := d.pool.Close(); err != nil {
			errs = append(errs, fmt.Errorf("postgres: %w", err))
		}
	}
	return errors.Join(errs...)
}
