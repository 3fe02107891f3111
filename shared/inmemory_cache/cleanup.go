package inmemory_cache

import "time"

// интервальная очистка кэша, работает до вызова Close
func (c *InmemoryShardedCache) cleanUp(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			c.cleanUpExpired()
		case <-c.stopChan:
			return
		}
	}
}

// метод для очистки кэша от устаревших данных
func (c *InmemoryShardedCache) cleanUpExpired() {
	now := time.Now()
	for _, shard := range c.shards {
		shard.mu.Lock()
		for key, value := range shard.Items {
			if value.expired(now) {
				delete(shard.Items, key)
			}
		}
		shard.mu.Unlock()
	}
}
