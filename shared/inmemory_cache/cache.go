package inmemory_cache

import (
	"context"
	"fmt"
	"hash/fnv"
	"strconv"
	"time"

	globalmodels "todo_list/global_models"
	"todo_list/global_models/global_cache"
)

// проверка реализации интерфейса
var _ global_cache.Cache = (*InmemoryShardedCache)(nil)

// значения TTL в том же виде, что отдаёт go-redis
const (
	ttlNoExpiration = time.Duration(-1)
	ttlKeyMissing   = time.Duration(-2)
)

// конструктор для создания кэша с указаным количеством шардов и интервалом очистки кэша
func NewInmemoryShardedCache(numShards int, cleanUpInterval time.Duration) (*InmemoryShardedCache, error) {
	// Валидация входных параметров
	if numShards <= 0 {
		return nil, fmt.Errorf("numShards must be positive, got %d", numShards)
	}

	if cleanUpInterval < 0 {
		return nil, fmt.Errorf("cleanUpInterval must be non-negative, got %v", cleanUpInterval)
	}

	if numShards > 1000 {
		return nil, fmt.Errorf("numShards is too large: %d", numShards)
	}

	cache := &InmemoryShardedCache{
		shards:    make([]*Shard, numShards),
		numShards: numShards,
		stopChan:  make(chan struct{}),
	}

	for i := 0; i < numShards; i++ {
		cache.shards[i] = &Shard{
			Items: map[string]CashItem{},
		}
	}

	// Запускаем очистку только если интервал > 0
	if cleanUpInterval > 0 {
		go cache.cleanUp(cleanUpInterval)
	}

	return cache, nil
}

// метод получения значения из кэша по заданному ключу
func (c *InmemoryShardedCache) GetItem(key string) ([]byte, bool) {
	shard := c.getShard(key)
	now := time.Now()

	shard.mu.RLock()
	defer shard.mu.RUnlock()

	val, ok := shard.Items[key]
	if !ok || val.expired(now) {
		return nil, false
	}
	return val.value, true
}

// метод, чтобы находить нужный шард по заданному ключу
func (c *InmemoryShardedCache) getShard(key string) *Shard {
	hashf := fnv.New32a()
	_, _ = hashf.Write([]byte(key)) // Write у fnv никогда не возвращает ошибку

	// хэш по ключу % количество шардов = индекс шарда в диапазоне от 0 до shardNum-1
	shardIndex := int(hashf.Sum32() % uint32(c.numShards))
	return c.shards[shardIndex]
}

// метод удаления элемента из кэша по ключу
func (c *InmemoryShardedCache) DeleteItem(key string) {
	shard := c.getShard(key)

	shard.mu.Lock()
	defer shard.mu.Unlock()
	delete(shard.Items, key)
}

// ---- реализация global_cache.Cache ----
// значения появляются только через Incr

func (c *InmemoryShardedCache) Get(_ context.Context, key string) (string, error) {
	val, ok := c.GetItem(key)
	if !ok {
		return "", globalmodels.ErrCacheMiss
	}
	return string(val), nil
}

func (c *InmemoryShardedCache) Delete(_ context.Context, key string) error {
	c.DeleteItem(key)
	return nil
}

// Incr - атомарный инкремент под локом шарда. Как и в redis, TTL существующего ключа сохраняется.
func (c *InmemoryShardedCache) Incr(_ context.Context, key string) (int64, error) {
	shard := c.getShard(key)
	now := time.Now()

	shard.mu.Lock()
	defer shard.mu.Unlock()

	item, ok := shard.Items[key]
	if !ok || item.expired(now) {
		item = CashItem{}
	}

	var current int64
	if item.value != nil {
		parsed, err := strconv.ParseInt(string(item.value), 10, 64)
		if err != nil {
			return 0, fmt.Errorf("value for key %q is not an integer", key)
		}
		current = parsed
	}

	current++
	item.value = []byte(strconv.FormatInt(current, 10))
	shard.Items[key] = item
	return current, nil
}

// Expire задаёт новый срок жизни существующему ключу (expiration <= 0 удаляет ключ)
func (c *InmemoryShardedCache) Expire(_ context.Context, key string, expiration time.Duration) error {
	shard := c.getShard(key)
	now := time.Now()

	shard.mu.Lock()
	defer shard.mu.Unlock()

	item, ok := shard.Items[key]
	if !ok || item.expired(now) {
		return nil
	}
	if expiration <= 0 {
		delete(shard.Items, key)
		return nil
	}
	item.expTime = now.Add(expiration)
	shard.Items[key] = item
	return nil
}

// TTL возвращает оставшееся время жизни (-1 если без TTL, -2 если ключа нет)
func (c *InmemoryShardedCache) TTL(_ context.Context, key string) (time.Duration, error) {
	shard := c.getShard(key)
	now := time.Now()

	shard.mu.RLock()
	defer shard.mu.RUnlock()

	item, ok := shard.Items[key]
	switch {
	case !ok || item.expired(now):
		return ttlKeyMissing, nil
	case item.expTime.IsZero():
		return ttlNoExpiration, nil
	default:
		return item.expTime.Sub(now), nil
	}
}

// Close останавливает фоновую очистку (повторный вызов безопасен)
func (c *InmemoryShardedCache) Close() error {
	c.stopOnce.Do(func() {
		close(c.stopChan)
	})
	return nil
}
