package usecase

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/coffee-finder/internal/domain"
	"github.com/coffee-finder/internal/domain/repository"
	"github.com/coffee-finder/internal/pkg/metrics"
	"github.com/coffee-finder/internal/usecase/dto"
)

const autocompleteFailedMessage = "Address suggestions are unavailable right now."

// AutocompleteUseCase - подсказки адреса для выбора точки B
type AutocompleteUseCase struct {
	geocoder repository.GeocoderRepository
	logger   *zap.Logger
}

// NewAutocompleteUseCase - создание нового AutocompleteUseCase
func NewAutocompleteUseCase(geocoder repository.GeocoderRepository, logger *zap.Logger) *AutocompleteUseCase {
	return &AutocompleteUseCase{
		geocoder: geocoder,
		logger:   logger,
	}
}

// Suggest возвращает подсказки. Пустой запрос не уходит в сервис,
// ошибка сервиса превращается в пустой список с сообщением.
func (uc *AutocompleteUseCase) Suggest(ctx context.Context, req dto.AutocompleteRequest) *dto.AutocompleteResponse {
	search := strings.TrimSpace(req.Search)
	if search == "" {
		return &dto.AutocompleteResponse{Suggestions: []domain.Suggestion{}}
	}

	suggestions, err := uc.geocoder.Autocomplete(ctx, search)
	if err != nil {
		uc.logger.Warn("Autocomplete failed",
			zap.String("search", search),
			zap.Error(err))
		metrics.UpstreamErrors.WithLabelValues("geocoder").Inc()
		return &dto.AutocompleteResponse{
			Suggestions: []domain.Suggestion{},
			Error:       autocompleteFailedMessage,
		}
	}

	valid := make([]domain.Suggestion, 0, len(suggestions))
	for _, s := range suggestions {
		if s.Point().Valid() {
			valid = append(valid, s)
		}
	}

	return &dto.AutocompleteResponse{Suggestions: valid}
}
