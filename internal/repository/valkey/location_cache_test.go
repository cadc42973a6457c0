package valkey_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/coffee-finder/internal/domain"
	"github.com/coffee-finder/internal/repository/valkey"
)

func TestLocationCache(t *testing.T) {
	c, err := valkey.New("localhost:6379", time.Minute, zap.NewNop())
	if err != nil {
		t.Skipf("Valkey not available for integration tests: %v", err)
	}
	defer c.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := c.Health(ctx); err != nil {
		t.Skipf("Valkey not available for integration tests: %v", err)
	}

	missing, err := c.Get(ctx, "test:valkey:missing", time.Minute)
	require.NoError(t, err)
	assert.Nil(t, missing)

	loc := domain.CachedLocation{
		Point:      domain.GeoPoint{Latitude: 14.6, Longitude: 121.1},
		CapturedAt: time.Now().UTC(),
	}
	require.NoError(t, c.Set(ctx, "test:valkey:loc", loc))

	got, err := c.Get(ctx, "test:valkey:loc", time.Minute)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, loc.Point, got.Point)
}
