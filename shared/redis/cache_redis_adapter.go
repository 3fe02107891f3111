package redis

import (
	"context"
	"errors"
	"time"

	globalmodels "todo_list/global_models"
	"todo_list/global_models/global_cache"

	"github.com/go-redis/redis/v8"
)

var _ global_cache.Cache = (*CacheRedisAdapter)(nil)

// CacheRedisAdapter - счётчики поверх redis; все операции одиночные команды, атомарность даёт сам redis
type CacheRedisAdapter struct {
	client redis.Cmdable
	closer func() error
}

func NewCacheAdapter(client *redis.Client) *CacheRedisAdapter {
	return &CacheRedisAdapter{client: client, closer: client.Close}
}

func (r *CacheRedisAdapter) Get(ctx context.Context, key string) (string, error) {
	val, err := r.client.Get(ctx, key).Result()
	return val, mapRedisErr(err)
}

func (r *CacheRedisAdapter) Delete(ctx context.Context, key string) error {
	return r.client.Del(ctx, key).Err()
}

func (r *CacheRedisAdapter) Incr(ctx context.Context, key string) (int64, error) {
	return r.client.Incr(ctx, key).Result()
}

// Expire на отсутствующий ключ в redis ничего не делает, ошибки нет
func (r *CacheRedisAdapter) Expire(ctx context.Context, key string, expiration time.Duration) error {
	return r.client.Expire(ctx, key, expiration).Err()
}

func (r *CacheRedisAdapter) TTL(ctx context.Context, key string) (time.Duration, error) {
	return r.client.TTL(ctx, key).Result()
}

func (r *CacheRedisAdapter) Close() error {
	if r.closer == nil {
		return nil
	}
	return r.closer()
}

// redis.Nil -> общий промах кэша
func mapRedisErr(err error) error {
	if errors.Is(err, redis.Nil) {
		return globalmodels.ErrCacheMiss
	}
	return err
}
