package usecase_test

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/coffee-finder/internal/domain"
)

// MockShopSearchRepository is a mock of ShopSearchRepository
type MockShopSearchRepository struct {
	mock.Mock
}

func (m *MockShopSearchRepository) SearchNearby(ctx context.Context, point domain.GeoPoint, limit int) ([]domain.RawShopRecord, *domain.PageInfo, error) {
	args := m.Called(ctx, point, limit)
	var records []domain.RawShopRecord
	if v := args.Get(0); v != nil {
		records = v.([]domain.RawShopRecord)
	}
	var info *domain.PageInfo
	if v := args.Get(1); v != nil {
		info = v.(*domain.PageInfo)
	}
	return records, info, args.Error(2)
}

// MockShopDetailRepository is a mock of ShopDetailRepository
type MockShopDetailRepository struct {
	mock.Mock
}

func (m *MockShopDetailRepository) GetBySlug(ctx context.Context, slug string) (domain.RawShopRecord, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(domain.RawShopRecord), args.Error(1)
}

// MockShopStoreRepository is a mock of ShopStoreRepository
type MockShopStoreRepository struct {
	MockShopSearchRepository
}

func (m *MockShopStoreRepository) Upsert(ctx context.Context, shop *domain.Shop, raw domain.RawShopRecord) error {
	args := m.Called(ctx, shop, raw)
	return args.Error(0)
}

// MockGeocoderRepository is a mock of GeocoderRepository
type MockGeocoderRepository struct {
	mock.Mock
}

func (m *MockGeocoderRepository) Autocomplete(ctx context.Context, search string) ([]domain.Suggestion, error) {
	args := m.Called(ctx, search)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Suggestion), args.Error(1)
}

// MockLocationCache is a mock of LocationCacheRepository
type MockLocationCache struct {
	mock.Mock
}

func (m *MockLocationCache) Get(ctx context.Context, key string, maxAge time.Duration) (*domain.CachedLocation, error) {
	args := m.Called(ctx, key, maxAge)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CachedLocation), args.Error(1)
}

func (m *MockLocationCache) Set(ctx context.Context, key string, loc domain.CachedLocation) error {
	args := m.Called(ctx, key, loc)
	return args.Error(0)
}

// MockAnalyticsPublisher is a mock of AnalyticsPublisher
type MockAnalyticsPublisher struct {
	mock.Mock
}

func (m *MockAnalyticsPublisher) Publish(ctx context.Context, event string, payload interface{}) error {
	args := m.Called(ctx, event, payload)
	return args.Error(0)
}
