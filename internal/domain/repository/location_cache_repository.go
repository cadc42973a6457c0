package repository

import (
	"context"
	"time"

	"github.com/coffee-finder/internal/domain"
)

// LocationCacheRepository хранит последнюю геопозицию по ключу сессии.
// Get возвращает nil, nil при промахе, устаревшей или повреждённой записи.
type LocationCacheRepository interface {
	Get(ctx context.Context, key string, maxAge time.Duration) (*domain.CachedLocation, error)
	Set(ctx context.Context, key string, loc domain.CachedLocation) error
}
