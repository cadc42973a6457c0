package metrics

import (
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func requestCount(path string, status int) float64 {
	return testutil.ToFloat64(httpRequestsTotal.WithLabelValues(http.MethodGet, path, strconv.Itoa(status)))
}

func TestMiddleware_RecordsSentStatus(t *testing.T) {
	app := fiber.New()
	app.Use(Middleware())
	app.Use(recover.New())
	app.Get("/ok", func(c *fiber.Ctx) error { return c.SendString("ok") })
	app.Get("/boom", func(c *fiber.Ctx) error { panic("boom") })
	app.Get("/teapot", func(c *fiber.Ctx) error { return fiber.NewError(http.StatusTeapot, "short and stout") })

	tests := []struct {
		target string
		path   string
		status int
	}{
		{"/ok", "/ok", http.StatusOK},
		{"/boom", "/boom", http.StatusInternalServerError},
		{"/teapot", "/teapot", http.StatusTeapot},
		{"/does-not-exist", "unmatched", http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.target, func(t *testing.T) {
			before := requestCount(tt.path, tt.status)
			beforeOK := requestCount(tt.path, http.StatusOK)

			resp, err := app.Test(httptest.NewRequest(http.MethodGet, tt.target, nil), -1)
			require.NoError(t, err)
			assert.Equal(t, tt.status, resp.StatusCode)

			assert.Equal(t, before+1, requestCount(tt.path, tt.status))
			if tt.status != http.StatusOK {
				assert.Equal(t, beforeOK, requestCount(tt.path, http.StatusOK))
			}
		})
	}
}
