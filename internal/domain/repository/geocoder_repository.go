package repository

import (
	"context"

	"github.com/coffee-finder/internal/domain"
)

// GeocoderRepository - внешний сервис автодополнения адресов
type GeocoderRepository interface {
	// Autocomplete возвращает подсказки только с валидными координатами
	Autocomplete(ctx context.Context, search string) ([]domain.Suggestion, error)
}
