package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/coffee-finder/internal/domain"
	"github.com/coffee-finder/internal/domain/repository"
)

// MemoryLocationCache хранит записи в памяти процесса в том же JSON виде,
// что и Redis. Для тестов и CACHE_DRIVER=memory.
type MemoryLocationCache struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
	ttl     time.Duration
	now     func() time.Time
	logger  *zap.Logger

	lastSweep time.Time
}

// sweepInterval - как часто SetRaw просматривает записи на истечение TTL.
const sweepInterval = time.Minute

type memoryEntry struct {
	data      []byte
	expiresAt time.Time
}

var _ repository.LocationCacheRepository = (*MemoryLocationCache)(nil)

func NewMemoryLocationCache(ttl time.Duration, logger *zap.Logger) *MemoryLocationCache {
	return &MemoryLocationCache{
		entries: make(map[string]memoryEntry),
		ttl:     ttl,
		now:     time.Now,
		logger:  logger,
	}
}

func (c *MemoryLocationCache) Get(_ context.Context, key string, maxAge time.Duration) (*domain.CachedLocation, error) {
	now := c.now()

	c.mu.RLock()
	entry, ok := c.entries[key]
	c.mu.RUnlock()

	if !ok {
		return nil, nil
	}
	if !entry.expiresAt.IsZero() && now.After(entry.expiresAt) {
		c.mu.Lock()
		delete(c.entries, key)
		c.mu.Unlock()
		return nil, nil
	}

	return DecodeLocation(entry.data, maxAge, now, c.logger), nil
}

func (c *MemoryLocationCache) Set(_ context.Context, key string, loc domain.CachedLocation) error {
	data, err := json.Marshal(loc)
	if err != nil {
		return fmt.Errorf("marshal location: %w", err)
	}
	c.SetRaw(key, data)
	return nil
}

// SetRaw кладёт байты как есть; в тестах так подкладываются битые записи.
func (c *MemoryLocationCache) SetRaw(key string, data []byte) {
	now := c.now()
	entry := memoryEntry{data: data}
	if c.ttl > 0 {
		entry.expiresAt = now.Add(c.ttl)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = entry
	c.sweepLocked(now)
}

// sweepLocked удаляет просроченные записи сессий, которые больше не пришли.
// Не чаще раза в sweepInterval, вызывается под c.mu.
func (c *MemoryLocationCache) sweepLocked(now time.Time) {
	if c.ttl <= 0 || now.Sub(c.lastSweep) < sweepInterval {
		return
	}
	c.lastSweep = now

	removed := 0
	for k, e := range c.entries {
		if !e.expiresAt.IsZero() && now.After(e.expiresAt) {
			delete(c.entries, k)
			removed++
		}
	}
	if removed > 0 {
		c.logger.Debug("Swept expired locations", zap.Int("removed", removed))
	}
}
