package redis

import (
	"context"
	"errors"
	"fmt"

	"todo_list/global_models/global_cache"
	"todo_list/shared/config"

	"github.com/go-redis/redis/v8"
)

// NewRedisCacheRepository подключается к redis и возвращает хранилище счётчиков.
// Недоступный сервер - ошибка старта, а не тихий откат на inmemory.
func NewRedisCacheRepository(ctx context.Context, cfg *config.RedisConfig) (global_cache.Cache, error) {
	if cfg == nil {
		return nil, errors.New("redis config is nil")
	}

	client := redis.NewClient(cfg.ToRedisOptions())

	pingCtx, cancel := context.WithTimeout(ctx, cfg.DialTimeout)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis connection failed: %w", err)
	}

	return NewCacheAdapter(client), nil
}
