package usecase

import (
	"context"

	"go.uber.org/zap"

	"github.com/coffee-finder/internal/domain"
	"github.com/coffee-finder/internal/domain/repository"
	"github.com/coffee-finder/internal/pkg/metrics"
)

// IndexingUseCase - наполнение локальной проекции магазинов из событий бэкенда
type IndexingUseCase struct {
	store      repository.ShopStoreRepository
	normalizer *ShopNormalizer
	logger     *zap.Logger
}

// NewIndexingUseCase - создание нового IndexingUseCase
func NewIndexingUseCase(store repository.ShopStoreRepository, normalizer *ShopNormalizer, logger *zap.Logger) *IndexingUseCase {
	return &IndexingUseCase{
		store:      store,
		normalizer: normalizer,
		logger:     logger,
	}
}

// IndexBatch нормализует и сохраняет магазины. Результат по каждому
// событию возвращается в том же порядке; ошибка одного не останавливает пачку.
func (uc *IndexingUseCase) IndexBatch(ctx context.Context, events []domain.ShopUpsertEvent) []domain.ShopIndexedEvent {
	results := make([]domain.ShopIndexedEvent, 0, len(events))

	for _, event := range events {
		result := domain.ShopIndexedEvent{EventID: event.EventID}

		shop, ok := uc.normalizer.NormalizeListItem(event.Shop)
		if !ok {
			result.Error = "shop record has no name"
			metrics.ShopsIndexed.WithLabelValues("skipped").Inc()
			results = append(results, result)
			continue
		}

		result.ShopID = shop.ID
		result.Slug = shop.Slug
		result.HasGeo = shop.Coordinates != nil

		if err := uc.store.Upsert(ctx, shop, event.Shop); err != nil {
			uc.logger.Error("Failed to upsert shop",
				zap.String("event_id", event.EventID.String()),
				zap.String("shop_id", shop.ID),
				zap.Error(err))
			result.Error = err.Error()
			metrics.ShopsIndexed.WithLabelValues("error").Inc()
			results = append(results, result)
			continue
		}

		metrics.ShopsIndexed.WithLabelValues("ok").Inc()
		results = append(results, result)
	}

	return results
}
