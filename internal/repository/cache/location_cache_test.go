package cache

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/coffee-finder/internal/domain"
)

func TestMemoryLocationCache(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 6, 3, 9, 0, 0, 0, time.UTC)

	c := NewMemoryLocationCache(25*time.Minute, zap.NewNop())
	c.now = func() time.Time { return now }

	loc := domain.CachedLocation{
		Point:      domain.GeoPoint{Latitude: 14.5, Longitude: 121.0},
		CapturedAt: now,
	}

	t.Run("miss", func(t *testing.T) {
		got, err := c.Get(ctx, "location:none", time.Minute)
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("hit within max age", func(t *testing.T) {
		require.NoError(t, c.Set(ctx, "location:a", loc))
		c.now = func() time.Time { return now.Add(30 * time.Second) }

		got, err := c.Get(ctx, "location:a", time.Minute)
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, loc.Point, got.Point)
		assert.True(t, loc.CapturedAt.Equal(got.CapturedAt))
	})

	t.Run("older than max age", func(t *testing.T) {
		c.now = func() time.Time { return now.Add(2 * time.Minute) }

		got, err := c.Get(ctx, "location:a", time.Minute)
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("expired by ttl", func(t *testing.T) {
		c.now = func() time.Time { return now.Add(26 * time.Minute) }

		got, err := c.Get(ctx, "location:a", time.Hour)
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("corrupt payload is a miss", func(t *testing.T) {
		c.now = func() time.Time { return now }
		c.SetRaw("location:bad", []byte("{not json"))
		c.SetRaw("location:nan", []byte(`{"point":{"latitude":200,"longitude":0},"captured_at":"2024-06-03T09:00:00Z"}`))

		got, err := c.Get(ctx, "location:bad", time.Minute)
		require.NoError(t, err)
		assert.Nil(t, got)

		got, err = c.Get(ctx, "location:nan", time.Minute)
		require.NoError(t, err)
		assert.Nil(t, got)
	})
}

func TestMemoryLocationCache_SweepsExpiredOnWrite(t *testing.T) {
	now := time.Date(2024, 6, 3, 9, 0, 0, 0, time.UTC)
	c := NewMemoryLocationCache(25*time.Minute, zap.NewNop())
	c.now = func() time.Time { return now }

	c.SetRaw("location:gone-1", []byte("{}"))
	c.SetRaw("location:gone-2", []byte("{}"))
	require.Len(t, c.entries, 2)

	// никто больше не читает эти ключи
	c.now = func() time.Time { return now.Add(26 * time.Minute) }
	c.SetRaw("location:fresh", []byte("{}"))

	assert.Len(t, c.entries, 1)
	assert.Contains(t, c.entries, "location:fresh")

	// запись в пределах sweepInterval не сканирует заново
	c.now = func() time.Time { return now.Add(26*time.Minute + sweepInterval/2) }
	c.SetRaw("location:next", []byte("{}"))
	assert.Len(t, c.entries, 2)

	c.now = func() time.Time { return now.Add(51*time.Minute + 15*time.Second) }
	c.SetRaw("location:later", []byte("{}"))
	assert.Len(t, c.entries, 2)
	assert.NotContains(t, c.entries, "location:fresh")
	assert.Contains(t, c.entries, "location:next")
}

func TestRedisLocationCache(t *testing.T) {
	client := redis.NewClient(&redis.Options{Addr: "localhost:6379", DB: 1})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		t.Skipf("Redis not available for integration tests: %v", err)
	}
	defer client.Close()

	r := &Redis{client: client, logger: zap.NewNop()}
	c := NewLocationCache(r, time.Minute)
	key := "test:location:session"
	defer client.Del(context.Background(), key, key+":bad")

	loc := domain.CachedLocation{
		Point:      domain.GeoPoint{Latitude: 14.5, Longitude: 121.0},
		CapturedAt: time.Now().UTC(),
	}
	require.NoError(t, c.Set(ctx, key, loc))

	got, err := c.Get(ctx, key, time.Minute)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, loc.Point, got.Point)

	ttl, err := client.TTL(ctx, key).Result()
	require.NoError(t, err)
	assert.Greater(t, ttl, time.Duration(0))

	require.NoError(t, client.Set(ctx, key+":bad", "garbage", time.Minute).Err())
	got, err = c.Get(ctx, key+":bad", time.Minute)
	require.NoError(t, err)
	assert.Nil(t, got)
}
