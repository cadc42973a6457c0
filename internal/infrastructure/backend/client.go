package backend

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/coffee-finder/internal/config"
	"github.com/coffee-finder/internal/domain"
	"github.com/coffee-finder/internal/pkg/errors"
	"github.com/coffee-finder/internal/pkg/metrics"
)

const maxErrorBody = 512

// Client - REST бэкенд магазинов. Реализует ShopSearchRepository и ShopDetailRepository.
type Client struct {
	httpClient *http.Client
	baseURL    string
	logger     *zap.Logger
}

// NewClient создает клиент бэкенда
func NewClient(cfg *config.BackendConfig, logger *zap.Logger) *Client {
	timeout := cfg.RequestTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    cfg.BaseURL,
		logger:     logger,
	}
}

// SearchNearby запрашивает магазины рядом с точкой.
// Форма ответа различается между версиями бэкенда, поэтому список ищется в нескольких обёртках.
func (c *Client) SearchNearby(ctx context.Context, point domain.GeoPoint, limit int) ([]domain.RawShopRecord, *domain.PageInfo, error) {
	q := url.Values{}
	q.Set("lat", strconv.FormatFloat(point.Latitude, 'f', -1, 64))
	q.Set("lng", strconv.FormatFloat(point.Longitude, 'f', -1, 64))
	q.Set("limit", strconv.Itoa(limit))

	body, err := c.get(ctx, c.baseURL+"/shops?"+q.Encode())
	if err != nil {
		return nil, nil, err
	}

	items := extractItems(body)
	records := make([]domain.RawShopRecord, 0, len(items))
	for _, item := range items {
		if m, ok := item.(map[string]any); ok {
			records = append(records, domain.RawShopRecord(m))
		}
	}

	info := &domain.PageInfo{Total: len(records), PageSize: limit}
	if total, ok := extractTotal(body); ok {
		info.Total = total
	}

	c.logger.Debug("Backend search completed",
		zap.Int("records", len(records)),
		zap.Int("total", info.Total))

	return records, info, nil
}

// GetBySlug запрашивает карточку магазина. 404 отдаётся как ErrShopNotFound.
func (c *Client) GetBySlug(ctx context.Context, slug string) (domain.RawShopRecord, error) {
	body, err := c.get(ctx, c.baseURL+"/shops/"+url.PathEscape(slug))
	if err != nil {
		return nil, err
	}

	obj, ok := body.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("unexpected shop payload %T", body)
	}
	if data, ok := obj["data"].(map[string]any); ok {
		obj = data
	}
	return domain.RawShopRecord(obj), nil
}

func (c *Client) get(ctx context.Context, endpoint string) (any, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		metrics.UpstreamErrors.WithLabelValues("backend").Inc()
		c.logger.Error("Backend request failed", zap.String("url", endpoint), zap.Error(err))
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, errors.ErrShopNotFound
	}
	if resp.StatusCode != http.StatusOK {
		metrics.UpstreamErrors.WithLabelValues("backend").Inc()
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		c.logger.Error("Backend returned error",
			zap.String("url", endpoint),
			zap.Int("status_code", resp.StatusCode),
			zap.String("body", string(snippet)))
		return nil, fmt.Errorf("backend error: status %d", resp.StatusCode)
	}

	var body any
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	return body, nil
}

// extractItems: data[], data.items[], data.docs[], items[] или массив верхнего уровня
func extractItems(body any) []any {
	if arr, ok := body.([]any); ok {
		return arr
	}
	obj, ok := body.(map[string]any)
	if !ok {
		return nil
	}

	switch data := obj["data"].(type) {
	case []any:
		return data
	case map[string]any:
		for _, key := range []string{"items", "docs"} {
			if arr, ok := data[key].([]any); ok {
				return arr
			}
		}
	}
	if arr, ok := obj["items"].([]any); ok {
		return arr
	}
	return nil
}

func extractTotal(body any) (int, bool) {
	obj, ok := body.(map[string]any)
	if !ok {
		return 0, false
	}

	candidates := []any{
		nested(obj, "pageInfo", "total"),
		nested(obj, "pagination", "total"),
		nested(obj, "meta", "total"),
		nested(obj, "data", "total"),
		obj["total"],
	}
	for _, v := range candidates {
		if f, ok := v.(float64); ok && f >= 0 {
			return int(f), true
		}
	}
	return 0, false
}

func nested(obj map[string]any, outer, inner string) any {
	m, ok := obj[outer].(map[string]any)
	if !ok {
		return nil
	}
	return m[inner]
}
