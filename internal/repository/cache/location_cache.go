package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/coffee-finder/internal/domain"
	"github.com/coffee-finder/internal/domain/repository"
)

type locationCache struct {
	client *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

// NewLocationCache - кеш геопозиций в Redis. ttl задаёт срок жизни ключа.
func NewLocationCache(r *Redis, ttl time.Duration) repository.LocationCacheRepository {
	return &locationCache{
		client: r.Client(),
		ttl:    ttl,
		logger: r.logger,
	}
}

func (c *locationCache) Get(ctx context.Context, key string, maxAge time.Duration) (*domain.CachedLocation, error) {
	data, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		c.logger.Error("Failed to get from cache", zap.String("key", key), zap.Error(err))
		return nil, fmt.Errorf("cache get error: %w", err)
	}

	return DecodeLocation(data, maxAge, time.Now(), c.logger), nil
}

func (c *locationCache) Set(ctx context.Context, key string, loc domain.CachedLocation) error {
	data, err := json.Marshal(loc)
	if err != nil {
		return fmt.Errorf("marshal location: %w", err)
	}

	if err := c.client.Set(ctx, key, data, c.ttl).Err(); err != nil {
		c.logger.Error("Failed to set cache", zap.String("key", key), zap.Error(err))
		return fmt.Errorf("cache set error: %w", err)
	}

	c.logger.Debug("Cache set", zap.String("key", key), zap.Duration("ttl", c.ttl))
	return nil
}

// DecodeLocation разбирает сохранённую запись. Повреждённая или устаревшая
// запись считается промахом.
func DecodeLocation(data []byte, maxAge time.Duration, now time.Time, logger *zap.Logger) *domain.CachedLocation {
	var loc domain.CachedLocation
	if err := json.Unmarshal(data, &loc); err != nil {
		logger.Warn("Corrupt cached location, treating as miss", zap.Error(err))
		return nil
	}
	if !loc.Point.Valid() || loc.CapturedAt.IsZero() {
		logger.Warn("Cached location has invalid fields, treating as miss")
		return nil
	}
	if maxAge > 0 && now.Sub(loc.CapturedAt) > maxAge {
		return nil
	}
	return &loc
}
