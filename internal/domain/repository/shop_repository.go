package repository

import (
	"context"

	"github.com/coffee-finder/internal/domain"
)

// ShopSearchRepository - источник кандидатов для поиска места встречи
type ShopSearchRepository interface {
	// SearchNearby возвращает до limit сырых записей рядом с точкой
	SearchNearby(ctx context.Context, point domain.GeoPoint, limit int) ([]domain.RawShopRecord, *domain.PageInfo, error)
}

// ShopDetailRepository - получение карточки магазина по slug из URL
type ShopDetailRepository interface {
	GetBySlug(ctx context.Context, slug string) (domain.RawShopRecord, error)
}

// ShopStoreRepository - локальная проекция магазинов для гео-поиска
type ShopStoreRepository interface {
	ShopSearchRepository

	// Upsert сохраняет нормализованный магазин вместе с исходной записью
	Upsert(ctx context.Context, shop *domain.Shop, raw domain.RawShopRecord) error
}
