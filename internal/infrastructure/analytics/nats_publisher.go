package analytics

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"
	"go.uber.org/zap"

	"github.com/coffee-finder/internal/config"
	"github.com/coffee-finder/internal/domain/repository"
)

// Publisher отправляет продуктовые события в NATS как JSON.
// Доставка best effort: без JetStream, без подтверждений.
type Publisher struct {
	conn   *nats.Conn
	prefix string
	logger *zap.Logger
}

var _ repository.AnalyticsPublisher = (*Publisher)(nil)

// NewPublisher подключается к NATS с бесконечными переподключениями
func NewPublisher(cfg *config.AnalyticsConfig, logger *zap.Logger) (*Publisher, error) {
	conn, err := nats.Connect(cfg.NATSURL,
		nats.Name("coffee-finder-analytics"),
		nats.RetryOnFailedConnect(true),
		nats.MaxReconnects(-1),
		nats.ReconnectWait(2*time.Second),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			if err != nil {
				logger.Warn("NATS disconnected", zap.Error(err))
			}
		}),
		nats.ReconnectHandler(func(c *nats.Conn) {
			logger.Info("NATS reconnected", zap.String("url", c.ConnectedUrl()))
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("nats connect: %w", err)
	}

	logger.Info("NATS analytics publisher ready", zap.String("url", cfg.NATSURL))

	return &Publisher{conn: conn, prefix: cfg.SubjectPrefix, logger: logger}, nil
}

// Publish сериализует payload и публикует в <prefix>.<event>
func (p *Publisher) Publish(ctx context.Context, event string, payload interface{}) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal %s event: %w", event, err)
	}

	subject := Subject(p.prefix, event)
	if err := p.conn.Publish(subject, data); err != nil {
		return fmt.Errorf("publish %s: %w", subject, err)
	}
	return nil
}

// Close drains and closes the connection.
func (p *Publisher) Close() {
	if err := p.conn.Drain(); err != nil {
		p.logger.Warn("NATS drain failed", zap.Error(err))
	}
}

// Subject joins prefix and event name with a dot.
func Subject(prefix, event string) string {
	if prefix == "" {
		return event
	}
	return prefix + "." + event
}
