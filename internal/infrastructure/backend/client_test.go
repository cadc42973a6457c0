package backend

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/coffee-finder/internal/config"
	"github.com/coffee-finder/internal/domain"
	apperrors "github.com/coffee-finder/internal/pkg/errors"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	return NewClient(&config.BackendConfig{
		BaseURL:        server.URL,
		RequestTimeout: 2 * time.Second,
	}, zap.NewNop())
}

func TestClient_SearchNearby_Envelopes(t *testing.T) {
	tests := []struct {
		name      string
		body      string
		wantCount int
		wantTotal int
	}{
		{"data array", `{"data":[{"name":"A"},{"name":"B"}],"pageInfo":{"total":40}}`, 2, 40},
		{"data.items", `{"data":{"items":[{"name":"A"}],"total":7}}`, 1, 7},
		{"data.docs", `{"data":{"docs":[{"name":"A"},{"name":"B"},{"name":"C"}]},"pagination":{"total":3}}`, 3, 3},
		{"items", `{"items":[{"name":"A"}],"meta":{"total":9}}`, 1, 9},
		{"top-level array", `[{"name":"A"},{"name":"B"},"junk"]`, 2, 2},
		{"top-level total", `{"data":[{"name":"A"}],"total":5}`, 1, 5},
		{"unknown shape", `{"results":[{"name":"A"}]}`, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				_, _ = w.Write([]byte(tt.body))
			})

			records, info, err := client.SearchNearby(context.Background(), domain.GeoPoint{Latitude: 14.55, Longitude: 121.05}, 36)
			require.NoError(t, err)
			assert.Len(t, records, tt.wantCount)
			require.NotNil(t, info)
			assert.Equal(t, tt.wantTotal, info.Total)
		})
	}
}

func TestClient_SearchNearby_Query(t *testing.T) {
	var got *http.Request
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		got = r
		_, _ = w.Write([]byte(`[]`))
	})

	_, _, err := client.SearchNearby(context.Background(), domain.GeoPoint{Latitude: 14.55, Longitude: 121.05}, 36)
	require.NoError(t, err)

	require.NotNil(t, got)
	assert.Equal(t, "/shops", got.URL.Path)
	assert.Equal(t, "14.55", got.URL.Query().Get("lat"))
	assert.Equal(t, "121.05", got.URL.Query().Get("lng"))
	assert.Equal(t, "36", got.URL.Query().Get("limit"))
}

func TestClient_SearchNearby_Errors(t *testing.T) {
	t.Run("server error", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		})
		_, _, err := client.SearchNearby(context.Background(), domain.GeoPoint{}, 12)
		assert.Error(t, err)
	})

	t.Run("invalid json", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{oops`))
		})
		_, _, err := client.SearchNearby(context.Background(), domain.GeoPoint{}, 12)
		assert.Error(t, err)
	})

	t.Run("cancelled context", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`[]`))
		})
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, _, err := client.SearchNearby(ctx, domain.GeoPoint{}, 12)
		assert.True(t, errors.Is(err, context.Canceled))
	})
}

func TestClient_GetBySlug(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/shops/test-cafe":
			_, _ = w.Write([]byte(`{"data":{"id":"1","name":"Test Café"}}`))
		case "/shops/bare":
			_, _ = w.Write([]byte(`{"id":"2","name":"Bare"}`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	})
	ctx := context.Background()

	raw, err := client.GetBySlug(ctx, "test-cafe")
	require.NoError(t, err)
	assert.Equal(t, "Test Café", raw["name"])

	raw, err = client.GetBySlug(ctx, "bare")
	require.NoError(t, err)
	assert.Equal(t, "2", raw["id"])

	_, err = client.GetBySlug(ctx, "missing")
	assert.True(t, errors.Is(err, apperrors.ErrShopNotFound))
}
