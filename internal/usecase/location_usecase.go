package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/coffee-finder/internal/domain"
	"github.com/coffee-finder/internal/domain/repository"
	"github.com/coffee-finder/internal/pkg/errors"
	"github.com/coffee-finder/internal/pkg/metrics"
	"github.com/coffee-finder/internal/usecase/dto"
)

const (
	// DefaultLocationTTL - сколько живёт сохранённая геопозиция
	DefaultLocationTTL = 25 * time.Minute

	locationKeyPrefix = "location:"
)

// LocationUseCase - кеш последней геопозиции пользователя по сессии
type LocationUseCase struct {
	cache  repository.LocationCacheRepository
	logger *zap.Logger
	maxAge time.Duration
	now    func() time.Time
}

// NewLocationUseCase - создание нового LocationUseCase
func NewLocationUseCase(cache repository.LocationCacheRepository, logger *zap.Logger, maxAge time.Duration) *LocationUseCase {
	if maxAge <= 0 {
		maxAge = DefaultLocationTTL
	}
	return &LocationUseCase{
		cache:  cache,
		logger: logger,
		maxAge: maxAge,
		now:    time.Now,
	}
}

// WithClock подменяет источник времени
func (uc *LocationUseCase) WithClock(now func() time.Time) *LocationUseCase {
	uc.now = now
	return uc
}

// SaveFix сохраняет геопозицию, полученную браузером
func (uc *LocationUseCase) SaveFix(ctx context.Context, session string, req dto.LocationFixRequest) (*dto.LocationResponse, error) {
	key, err := locationKey(session)
	if err != nil {
		return nil, err
	}
	if req.Latitude == nil || req.Longitude == nil {
		return nil, errors.ErrInvalidCoordinates
	}

	point := domain.GeoPoint{Latitude: *req.Latitude, Longitude: *req.Longitude}
	if !point.Valid() {
		return nil, errors.ErrInvalidCoordinates
	}

	loc := domain.CachedLocation{Point: point, CapturedAt: uc.now().UTC()}
	if err := uc.cache.Set(ctx, key, loc); err != nil {
		uc.logger.Error("Failed to cache location",
			zap.String("session", session),
			zap.Error(err))
		return nil, fmt.Errorf("save location: %w", errors.ErrCacheError)
	}

	return uc.toResponse(loc), nil
}

// GetFix возвращает сохранённую геопозицию или ErrLocationNotFound
func (uc *LocationUseCase) GetFix(ctx context.Context, session string) (*dto.LocationResponse, error) {
	loc, err := uc.lookup(ctx, session)
	if err != nil {
		return nil, err
	}
	if loc == nil {
		return nil, errors.ErrLocationNotFound
	}
	return uc.toResponse(*loc), nil
}

// ResolvePoint возвращает точку сессии; ok=false при промахе
func (uc *LocationUseCase) ResolvePoint(ctx context.Context, session string) (domain.GeoPoint, bool, error) {
	loc, err := uc.lookup(ctx, session)
	if err != nil || loc == nil {
		return domain.GeoPoint{}, false, err
	}
	return loc.Point, true, nil
}

func (uc *LocationUseCase) lookup(ctx context.Context, session string) (*domain.CachedLocation, error) {
	key, err := locationKey(session)
	if err != nil {
		return nil, err
	}

	loc, err := uc.cache.Get(ctx, key, uc.maxAge)
	if err != nil {
		uc.logger.Error("Failed to read cached location",
			zap.String("session", session),
			zap.Error(err))
		return nil, fmt.Errorf("read location: %w", errors.ErrCacheError)
	}
	if loc == nil {
		metrics.CacheMisses.WithLabelValues("location").Inc()
		return nil, nil
	}

	metrics.CacheHits.WithLabelValues("location").Inc()
	return loc, nil
}

func (uc *LocationUseCase) toResponse(loc domain.CachedLocation) *dto.LocationResponse {
	age := uc.now().Sub(loc.CapturedAt)
	if age < 0 {
		age = 0
	}
	return &dto.LocationResponse{
		Point:      loc.Point,
		CapturedAt: loc.CapturedAt,
		AgeSeconds: int64(age / time.Second),
	}
}

func locationKey(session string) (string, error) {
	session = strings.TrimSpace(session)
	if session == "" || len(session) > 128 {
		return "", errors.ErrInvalidRequest.WithDetails(map[string]interface{}{"session": "required"})
	}
	return locationKeyPrefix + session, nil
}
