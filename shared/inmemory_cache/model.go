package inmemory_cache

import (
	"sync"
	"time"
)

// основная структура inmemory cache. Кэш - шардирован.
// Используется как замена redis, когда REDIS_HOST не задан.
type InmemoryShardedCache struct {
	shards    []*Shard
	numShards int
	stopChan  chan struct{}
	stopOnce  sync.Once
}

// структура отдельного шарда
// у него есть мапа с CashItems и мьютекс для доступа к мапе
type Shard struct {
	Items map[string]CashItem
	mu    sync.RWMutex
}

// структура отдельного элемента inmemory cache
type CashItem struct {
	value   []byte
	expTime time.Time // нулевое значение - без TTL
}

// истёк ли срок жизни элемента на момент now
func (i CashItem) expired(now time.Time) bool {
	return !i.expTime.IsZero() && now.After(i.expTime)
}
