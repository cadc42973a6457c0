package valkey

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/valkey-io/valkey-go"
	"go.uber.org/zap"

	"github.com/coffee-finder/internal/domain"
	"github.com/coffee-finder/internal/domain/repository"
	"github.com/coffee-finder/internal/repository/cache"
)

// LocationCache - кеш геопозиций в Valkey, формат записей совпадает с Redis
type LocationCache struct {
	client valkey.Client
	ttl    time.Duration
	logger *zap.Logger
}

var _ repository.LocationCacheRepository = (*LocationCache)(nil)

// New подключается к Valkey по адресу host:port
func New(addr string, ttl time.Duration, logger *zap.Logger) (*LocationCache, error) {
	client, err := valkey.NewClient(valkey.ClientOption{
		InitAddress: []string{addr},
	})
	if err != nil {
		return nil, fmt.Errorf("valkey connect: %w", err)
	}

	logger.Info("Valkey connected", zap.String("addr", addr))
	return &LocationCache{client: client, ttl: ttl, logger: logger}, nil
}

func (c *LocationCache) Get(ctx context.Context, key string, maxAge time.Duration) (*domain.CachedLocation, error) {
	data, err := c.client.Do(ctx, c.client.B().Get().Key(key).Build()).AsBytes()
	if valkey.IsValkeyNil(err) {
		return nil, nil
	}
	if err != nil {
		c.logger.Error("Failed to get from valkey", zap.String("key", key), zap.Error(err))
		return nil, fmt.Errorf("valkey get: %w", err)
	}

	return cache.DecodeLocation(data, maxAge, time.Now(), c.logger), nil
}

func (c *LocationCache) Set(ctx context.Context, key string, loc domain.CachedLocation) error {
	data, err := json.Marshal(loc)
	if err != nil {
		return fmt.Errorf("marshal location: %w", err)
	}

	cmd := c.client.B().Set().Key(key).Value(string(data)).Ex(c.ttl).Build()
	if err := c.client.Do(ctx, cmd).Error(); err != nil {
		c.logger.Error("Failed to set valkey", zap.String("key", key), zap.Error(err))
		return fmt.Errorf("valkey set: %w", err)
	}
	return nil
}

// Health pings the server.
func (c *LocationCache) Health(ctx context.Context) error {
	return c.client.Do(ctx, c.client.B().Ping().Build()).Error()
}

// Close releases the client.
func (c *LocationCache) Close() {
	c.client.Close()
}
