package repository

import "context"

// AnalyticsPublisher публикует продуктовые события. Ошибки не критичны.
type AnalyticsPublisher interface {
	Publish(ctx context.Context, event string, payload interface{}) error
}
