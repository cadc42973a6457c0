package shopindex

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/coffee-finder/internal/domain"
	"github.com/coffee-finder/internal/domain/repository"
	"github.com/coffee-finder/internal/worker"
)

const (
	maxBatchSize    = 20
	emptyQueueSleep = 100 * time.Millisecond
	errorBackoff    = time.Second
)

// Indexer сохраняет пачку магазинов в локальную проекцию
type Indexer interface {
	IndexBatch(ctx context.Context, events []domain.ShopUpsertEvent) []domain.ShopIndexedEvent
}

// ShopIndexWorker читает stream:shop:upsert и наполняет таблицу shops
type ShopIndexWorker struct {
	*worker.BaseWorker
	streamRepo repository.StreamRepository
	indexer    Indexer
	maxRetries int
}

// NewShopIndexWorker создает новый ShopIndexWorker
func NewShopIndexWorker(
	streamRepo repository.StreamRepository,
	indexer Indexer,
	consumerGroup string,
	maxRetries int,
	logger *zap.Logger,
) *ShopIndexWorker {
	return &ShopIndexWorker{
		BaseWorker: worker.NewBaseWorker("shop-index", consumerGroup, logger),
		streamRepo: streamRepo,
		indexer:    indexer,
		maxRetries: maxRetries,
	}
}

// Start создаёт consumer group и обрабатывает пачки до остановки
func (w *ShopIndexWorker) Start(ctx context.Context) error {
	logger := w.Logger()
	logger.Info("Starting shop index worker",
		zap.String("consumer_group", w.ConsumerGroup()),
		zap.String("consumer_name", w.ConsumerName()),
		zap.Int("max_batch_size", maxBatchSize))

	if err := w.createGroup(ctx); err != nil {
		return err
	}

	for {
		select {
		case <-w.StopChan():
			logger.Info("Worker stopped")
			return nil
		case <-ctx.Done():
			logger.Info("Context cancelled")
			return ctx.Err()
		default:
		}

		processed, err := w.processBatch(ctx)
		if err != nil {
			logger.Error("Failed to process batch", zap.Error(err))
			w.Pause(ctx, errorBackoff)
			continue
		}
		if processed == 0 {
			w.Pause(ctx, emptyQueueSleep)
		}
	}
}

func (w *ShopIndexWorker) createGroup(ctx context.Context) error {
	attempts := w.maxRetries
	if attempts < 1 {
		attempts = 1
	}

	var err error
	for i := 0; i < attempts; i++ {
		err = w.streamRepo.CreateConsumerGroup(ctx, domain.StreamShopUpsert, w.ConsumerGroup())
		if err == nil {
			return nil
		}
		w.Logger().Warn("Failed to create consumer group",
			zap.Int("attempt", i+1),
			zap.Error(err))
		if i == attempts-1 || !w.Pause(ctx, errorBackoff) {
			break
		}
	}
	return fmt.Errorf("failed to create consumer group: %w", err)
}

// processBatch возвращает количество прочитанных сообщений
func (w *ShopIndexWorker) processBatch(ctx context.Context) (int, error) {
	logger := w.Logger()

	messages, err := w.streamRepo.ConsumeBatch(ctx, domain.StreamShopUpsert, w.ConsumerGroup(), w.ConsumerName(), maxBatchSize)
	if err != nil {
		return 0, fmt.Errorf("failed to consume batch: %w", err)
	}
	if len(messages) == 0 {
		return 0, nil
	}

	events := make([]domain.ShopUpsertEvent, 0, len(messages))
	ids := make([]string, 0, len(messages))

	for _, msg := range messages {
		ids = append(ids, msg.ID)

		event, err := parseMessage(msg)
		if err != nil {
			// битое сообщение подтверждаем вместе с пачкой, чтобы не застревало
			logger.Warn("Skipping malformed message",
				zap.String("message_id", msg.ID),
				zap.Error(err))
			continue
		}
		events = append(events, event)
	}

	if len(events) > 0 {
		results := w.indexer.IndexBatch(ctx, events)
		failed := 0
		for _, result := range results {
			if result.Error != "" {
				failed++
			}
			if err := w.streamRepo.PublishToStream(ctx, domain.StreamShopIndexed, result); err != nil {
				logger.Error("Failed to publish indexed event",
					zap.String("event_id", result.EventID.String()),
					zap.Error(err))
			}
		}

		logger.Info("Batch indexed",
			zap.Int("messages", len(messages)),
			zap.Int("events", len(events)),
			zap.Int("failed", failed))
	}

	if err := w.streamRepo.AckMessages(ctx, domain.StreamShopUpsert, w.ConsumerGroup(), ids); err != nil {
		logger.Error("Failed to ack messages", zap.Error(err))
	}

	return len(messages), nil
}

func parseMessage(msg domain.StreamMessage) (domain.ShopUpsertEvent, error) {
	var event domain.ShopUpsertEvent
	if msg.Data == "" {
		return event, fmt.Errorf("missing 'data' field")
	}
	if err := json.Unmarshal([]byte(msg.Data), &event); err != nil {
		return event, fmt.Errorf("failed to unmarshal event: %w", err)
	}
	if event.Shop == nil {
		return event, fmt.Errorf("event has no shop record")
	}
	return event, nil
}
