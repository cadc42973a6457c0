package worker

import "context"

// Worker - фоновый обработчик, запускаемый Manager
type Worker interface {
	// Start блокирует до остановки или отмены ctx
	Start(ctx context.Context) error

	// Stop сигнализирует о завершении, повторный вызов безопасен
	Stop() error

	Name() string
}
