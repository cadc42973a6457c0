package http_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/coffee-finder/internal/config"
	httpDelivery "github.com/coffee-finder/internal/delivery/http"
	"github.com/coffee-finder/internal/delivery/http/handler"
	"github.com/coffee-finder/internal/domain"
	"github.com/coffee-finder/internal/repository/cache"
	"github.com/coffee-finder/internal/usecase"
)

type emptySource struct{}

func (emptySource) SearchNearby(ctx context.Context, point domain.GeoPoint, limit int) ([]domain.RawShopRecord, *domain.PageInfo, error) {
	return []domain.RawShopRecord{{"id": "1", "name": "Kape", "lat": point.Latitude, "lng": point.Longitude}}, &domain.PageInfo{Total: 1}, nil
}

func (emptySource) GetBySlug(ctx context.Context, slug string) (domain.RawShopRecord, error) {
	return domain.RawShopRecord{"id": "1", "name": "Kape"}, nil
}

type noGeocoder struct{}

func (noGeocoder) Autocomplete(ctx context.Context, search string) ([]domain.Suggestion, error) {
	return nil, nil
}

func newTestServer(t *testing.T) *httpDelivery.Server {
	t.Helper()
	logger := zap.NewNop()
	cfg := &config.Config{Server: config.ServerConfig{Host: "127.0.0.1", Port: 0, AllowOrigins: "*"}}

	normalizer := usecase.NewShopNormalizer(logger)
	locationUC := usecase.NewLocationUseCase(cache.NewMemoryLocationCache(time.Hour, logger), logger, 0)

	return httpDelivery.NewServer(cfg, logger, httpDelivery.Handlers{
		Shop:         handler.NewShopHandler(usecase.NewShopUseCase(emptySource{}, normalizer, logger), logger),
		Meeting:      handler.NewMeetingHandler(usecase.NewMeetingUseCase(emptySource{}, normalizer, nil, logger, 0, 0), locationUC, nil, logger),
		Autocomplete: handler.NewAutocompleteHandler(usecase.NewAutocompleteUseCase(noGeocoder{}, logger), logger),
		Location:     handler.NewLocationHandler(locationUC, logger),
		Health:       handler.NewHealthHandler(nil, logger),
	})
}

func TestServer_Routes(t *testing.T) {
	app := newTestServer(t).App()

	tests := []struct {
		method string
		target string
		body   string
		want   int
	}{
		{http.MethodGet, "/api/v1/health", "", http.StatusOK},
		{http.MethodGet, "/api/v1/shops/kape", "", http.StatusOK},
		{http.MethodGet, "/api/v1/slug?name=Kape", "", http.StatusOK},
		{http.MethodGet, "/api/v1/meeting-spots?a_lat=14.5&a_lng=121&b_lat=14.6&b_lng=121.1", "", http.StatusOK},
		{http.MethodGet, "/api/v1/meeting-spots?a_lat=14.5&a_lng=121", "", http.StatusBadRequest},
		{http.MethodGet, "/api/v1/autocomplete?search=x", "", http.StatusOK},
		{http.MethodPut, "/api/v1/location/s1", `{"latitude":1,"longitude":2}`, http.StatusOK},
		{http.MethodGet, "/api/v1/location/s1", "", http.StatusOK},
		{http.MethodGet, "/metrics", "", http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.target, func(t *testing.T) {
			var body io.Reader
			if tt.body != "" {
				body = strings.NewReader(tt.body)
			}
			req := httptest.NewRequest(tt.method, tt.target, body)
			if tt.body != "" {
				req.Header.Set("Content-Type", "application/json")
			}
			resp, err := app.Test(req, -1)
			require.NoError(t, err)
			assert.Equal(t, tt.want, resp.StatusCode)
		})
	}
}

func TestServer_UnknownRoute(t *testing.T) {
	app := newTestServer(t).App()

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/v1/nope", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	var body struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "HTTP_ERROR", body.Error.Code)
}
