package geocoder

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/coffee-finder/internal/config"
	"github.com/coffee-finder/internal/domain"
	"github.com/coffee-finder/internal/domain/repository"
)

type client struct {
	httpClient *http.Client
	baseURL    string
	logger     *zap.Logger
}

// NewClient создает клиент сервиса автодополнения адресов
func NewClient(cfg *config.GeocoderConfig, logger *zap.Logger) repository.GeocoderRepository {
	timeout := cfg.RequestTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    cfg.BaseURL,
		logger:     logger,
	}
}

// Autocomplete запрашивает подсказки. Записи без конечных координат отбрасываются.
func (c *client) Autocomplete(ctx context.Context, search string) ([]domain.Suggestion, error) {
	search = strings.TrimSpace(search)
	if search == "" {
		return []domain.Suggestion{}, nil
	}

	endpoint := c.baseURL + "/autocomplete?" + url.Values{"search": {search}}.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		c.logger.Error("Geocoder returned error",
			zap.Int("status_code", resp.StatusCode),
			zap.String("body", string(body)))
		return nil, fmt.Errorf("geocoder error: status %d", resp.StatusCode)
	}

	var body any
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	items, _ := body.([]any)
	if obj, ok := body.(map[string]any); ok {
		items, _ = obj["data"].([]any)
	}

	suggestions := make([]domain.Suggestion, 0, len(items))
	for _, item := range items {
		entry, ok := item.(map[string]any)
		if !ok {
			continue
		}
		s, ok := toSuggestion(entry)
		if !ok {
			continue
		}
		suggestions = append(suggestions, s)
	}

	c.logger.Debug("Autocomplete completed",
		zap.String("search", search),
		zap.Int("suggestions", len(suggestions)))

	return suggestions, nil
}

func toSuggestion(entry map[string]any) (domain.Suggestion, bool) {
	lat, ok := number(first(entry, "lat", "latitude"))
	if !ok {
		return domain.Suggestion{}, false
	}
	lon, ok := number(first(entry, "lon", "lng", "longitude"))
	if !ok {
		return domain.Suggestion{}, false
	}

	address, _ := first(entry, "address", "label", "value", "display_name").(string)
	return domain.Suggestion{Address: address, Lat: lat, Lon: lon}, true
}

func first(entry map[string]any, keys ...string) any {
	for _, k := range keys {
		if v, ok := entry[k]; ok && v != nil {
			return v
		}
	}
	return nil
}

func number(v any) (float64, bool) {
	var f float64
	switch t := v.(type) {
	case float64:
		f = t
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
		if err != nil {
			return 0, false
		}
		f = parsed
	default:
		return 0, false
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}
