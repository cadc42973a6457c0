package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/coffee-finder/internal/domain"
	apperrors "github.com/coffee-finder/internal/pkg/errors"
	"github.com/coffee-finder/internal/usecase"
)

func TestShopUseCase_GetBySlug(t *testing.T) {
	ctx := context.Background()
	monday8pm := time.Date(2024, 6, 3, 20, 0, 0, 0, time.Local)

	newUC := func(repo *MockShopDetailRepository) *usecase.ShopUseCase {
		return usecase.NewShopUseCase(repo, newNormalizer(), zap.NewNop()).
			WithClock(func() time.Time { return monday8pm })
	}

	t.Run("matching record", func(t *testing.T) {
		repo := &MockShopDetailRepository{}
		repo.On("GetBySlug", ctx, "test-cafe").Return(rawFromJSON(t, `{
			"id": "1",
			"name": "Test Café",
			"location": {"coordinates": [121.05, 14.52]},
			"openingHours": [{"day": "Monday", "open": "7:00 AM", "close": "9:30 PM"}]
		}`), nil).Once()

		resp, err := newUC(repo).GetBySlug(ctx, "test-cafe")

		require.NoError(t, err)
		require.NotNil(t, resp.Shop)
		assert.Equal(t, "Test Café", resp.Shop.Name)
		assert.True(t, resp.IsOpenNow)
		repo.AssertExpectations(t)
	})

	t.Run("mismatched record is not found", func(t *testing.T) {
		repo := &MockShopDetailRepository{}
		repo.On("GetBySlug", ctx, "test-cafe").
			Return(domain.RawShopRecord{"id": "2", "name": "Somewhere Else"}, nil).Once()

		resp, err := newUC(repo).GetBySlug(ctx, "test-cafe")

		assert.Nil(t, resp)
		assert.True(t, errors.Is(err, apperrors.ErrShopNotFound))
	})

	t.Run("backend 404 passes through", func(t *testing.T) {
		repo := &MockShopDetailRepository{}
		repo.On("GetBySlug", ctx, "gone").Return(nil, apperrors.ErrShopNotFound).Once()

		_, err := newUC(repo).GetBySlug(ctx, "gone")
		assert.True(t, errors.Is(err, apperrors.ErrShopNotFound))
	})

	t.Run("backend failure is upstream error", func(t *testing.T) {
		repo := &MockShopDetailRepository{}
		repo.On("GetBySlug", ctx, "test-cafe").Return(nil, errors.New("timeout")).Once()

		_, err := newUC(repo).GetBySlug(ctx, "test-cafe")
		assert.True(t, errors.Is(err, apperrors.ErrUpstream))
	})

	t.Run("blank slug makes no call", func(t *testing.T) {
		repo := &MockShopDetailRepository{}

		_, err := newUC(repo).GetBySlug(ctx, " -- ")
		assert.True(t, errors.Is(err, apperrors.ErrShopNotFound))
		repo.AssertNotCalled(t, "GetBySlug", mock.Anything, mock.Anything)
	})
}

func TestShopUseCase_Slug(t *testing.T) {
	uc := usecase.NewShopUseCase(&MockShopDetailRepository{}, newNormalizer(), zap.NewNop())

	resp := uc.Slug("kape_ni-juan")
	assert.Equal(t, "kape-ni-juan", resp.Slug)
	assert.Equal(t, "Kape Ni Juan", resp.Title)
}
