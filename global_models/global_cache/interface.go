package global_cache

import (
	"context"
	"time"
)

// Cache - хранилище счётчиков с TTL (redis или inmemory).
// Значения строковые, как в redis: Incr хранит число в десятичной записи.
type Cache interface {
	// Get возвращает globalmodels.ErrCacheMiss, если ключа нет или он истёк
	Get(ctx context.Context, key string) (string, error)
	Delete(ctx context.Context, key string) error

	// Incr атомарен; отсутствующий ключ создаётся со значением 1 и без TTL,
	// TTL существующего ключа не меняется
	Incr(ctx context.Context, key string) (int64, error)
	Expire(ctx context.Context, key string, expiration time.Duration) error
	// TTL: -1 если срок не задан, -2 если ключа нет
	TTL(ctx context.Context, key string) (time.Duration, error)

	Close() error
}
