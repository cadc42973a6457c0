package redis_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/coffee-finder/internal/domain"
	redisRepo "github.com/coffee-finder/internal/repository/redis"
)

const (
	testUpsertStream  = "test:stream:shop:upsert"
	testIndexedStream = "test:stream:shop:indexed"
)

// getTestRedisClient creates a Redis client for testing
func getTestRedisClient(t *testing.T) *redis.Client {
	client := redis.NewClient(&redis.Options{
		Addr: "localhost:6379",
		DB:   1,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		t.Skipf("Redis not available for integration tests: %v", err)
	}

	client.Del(ctx, testUpsertStream, testIndexedStream)
	t.Cleanup(func() {
		client.Del(context.Background(), testUpsertStream, testIndexedStream)
		client.Close()
	})

	return client
}

func TestStreamRepository_CreateConsumerGroup(t *testing.T) {
	client := getTestRedisClient(t)
	repo := redisRepo.NewStreamRepository(client, zap.NewNop())
	ctx := context.Background()

	require.NoError(t, repo.CreateConsumerGroup(ctx, testUpsertStream, "test-group"))

	groups, err := client.XInfoGroups(ctx, testUpsertStream).Result()
	require.NoError(t, err)
	require.Len(t, groups, 1)
	assert.Equal(t, "test-group", groups[0].Name)

	// BUSYGROUP is tolerated
	assert.NoError(t, repo.CreateConsumerGroup(ctx, testUpsertStream, "test-group"))
}

func TestStreamRepository_PublishToStream(t *testing.T) {
	client := getTestRedisClient(t)
	repo := redisRepo.NewStreamRepository(client, zap.NewNop())
	ctx := context.Background()

	event := domain.ShopIndexedEvent{
		EventID: uuid.New(),
		ShopID:  "1",
		Slug:    "test-cafe",
		HasGeo:  true,
	}
	require.NoError(t, repo.PublishToStream(ctx, testIndexedStream, event))

	streams, err := client.XRead(ctx, &redis.XReadArgs{
		Streams: []string{testIndexedStream, "0"},
		Count:   1,
	}).Result()
	require.NoError(t, err)
	require.Len(t, streams, 1)
	require.Len(t, streams[0].Messages, 1)

	data, ok := streams[0].Messages[0].Values["data"].(string)
	require.True(t, ok)

	var got domain.ShopIndexedEvent
	require.NoError(t, json.Unmarshal([]byte(data), &got))
	assert.Equal(t, event, got)
}

func TestStreamRepository_ConsumeBatchAndAck(t *testing.T) {
	client := getTestRedisClient(t)
	repo := redisRepo.NewStreamRepository(client, zap.NewNop())
	ctx := context.Background()

	require.NoError(t, repo.CreateConsumerGroup(ctx, testUpsertStream, "batch-group"))

	empty, err := repo.ConsumeBatch(ctx, testUpsertStream, "batch-group", "c1", 10)
	require.NoError(t, err)
	assert.Empty(t, empty)

	for i := 0; i < 3; i++ {
		require.NoError(t, repo.PublishToStream(ctx, testUpsertStream, domain.ShopUpsertEvent{
			EventID: uuid.New(),
			Shop:    domain.RawShopRecord{"name": "Shop"},
		}))
	}

	messages, err := repo.ConsumeBatch(ctx, testUpsertStream, "batch-group", "c1", 2)
	require.NoError(t, err)
	require.Len(t, messages, 2)
	assert.NotEmpty(t, messages[0].Data)

	ids := []string{messages[0].ID, messages[1].ID}
	require.NoError(t, repo.AckMessages(ctx, testUpsertStream, "batch-group", ids))

	pending, err := client.XPending(ctx, testUpsertStream, "batch-group").Result()
	require.NoError(t, err)
	assert.Equal(t, int64(0), pending.Count)

	rest, err := repo.ConsumeBatch(ctx, testUpsertStream, "batch-group", "c1", 10)
	require.NoError(t, err)
	require.Len(t, rest, 1)
	require.NoError(t, repo.AckMessage(ctx, testUpsertStream, "batch-group", rest[0].ID))
}
