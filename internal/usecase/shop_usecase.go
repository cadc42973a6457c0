package usecase

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/coffee-finder/internal/domain/repository"
	"github.com/coffee-finder/internal/pkg/errors"
	"github.com/coffee-finder/internal/pkg/hours"
	"github.com/coffee-finder/internal/pkg/metrics"
	"github.com/coffee-finder/internal/pkg/slug"
	"github.com/coffee-finder/internal/usecase/dto"
)

// ShopUseCase - карточка магазина по slug из URL
type ShopUseCase struct {
	detailRepo repository.ShopDetailRepository
	normalizer *ShopNormalizer
	logger     *zap.Logger
	now        func() time.Time
}

// NewShopUseCase - создание нового ShopUseCase
func NewShopUseCase(
	detailRepo repository.ShopDetailRepository,
	normalizer *ShopNormalizer,
	logger *zap.Logger,
) *ShopUseCase {
	return &ShopUseCase{
		detailRepo: detailRepo,
		normalizer: normalizer,
		logger:     logger,
		now:        time.Now,
	}
}

// WithClock подменяет источник времени для is_open_now
func (uc *ShopUseCase) WithClock(now func() time.Time) *ShopUseCase {
	uc.now = now
	return uc
}

// GetBySlug загружает запись, нормализует её и проверяет, что она
// соответствует slug маршрута. Несовпадение считается отсутствием магазина.
func (uc *ShopUseCase) GetBySlug(ctx context.Context, routeSlug string) (*dto.ShopDetailResponse, error) {
	if slug.Slugify(routeSlug) == "" {
		return nil, errors.ErrShopNotFound
	}

	raw, err := uc.detailRepo.GetBySlug(ctx, routeSlug)
	if err != nil {
		if errors.Is(err, errors.ErrShopNotFound) {
			return nil, err
		}
		uc.logger.Error("Failed to load shop",
			zap.String("slug", routeSlug),
			zap.Error(err))
		return nil, fmt.Errorf("get shop %q: %w", routeSlug, errors.ErrUpstream)
	}

	result := uc.normalizer.Normalize(raw, routeSlug)
	if result.Mismatch {
		metrics.SlugMismatches.Inc()
		uc.logger.Warn("Shop record does not match route slug",
			zap.String("slug", routeSlug))
		return nil, errors.ErrShopNotFound
	}

	return &dto.ShopDetailResponse{
		Shop:      result.Shop,
		IsOpenNow: hours.IsCurrentlyOpen(result.Shop.OpeningHours, uc.now()),
	}, nil
}

// Slug возвращает slug и подпись для произвольного названия
func (uc *ShopUseCase) Slug(name string) dto.SlugResponse {
	return dto.SlugResponse{
		Slug:  slug.Slugify(name),
		Title: slug.TitleCase(name),
	}
}
