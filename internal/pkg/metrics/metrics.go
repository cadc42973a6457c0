// Package metrics exposes Prometheus counters for the HTTP layer and the
// meeting-point search.
package metrics

import (
	"errors"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/valyala/fasthttp/fasthttpadaptor"
)

const namespace = "coffee_finder"

var (
	httpRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "http",
		Name:      "requests_total",
		Help:      "Total HTTP requests processed",
	}, []string{"method", "path", "status"})

	httpRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "http",
		Name:      "request_duration_seconds",
		Help:      "HTTP request latency in seconds",
		Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
	}, []string{"method", "path"})

	MeetingSearches = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "meeting",
		Name:      "searches_total",
		Help:      "Meeting-point searches by outcome",
	}, []string{"outcome"})

	MeetingCandidates = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "meeting",
		Name:      "candidates",
		Help:      "Candidate shops returned by the search source per request",
		Buckets:   []float64{0, 1, 5, 12, 24, 36, 72},
	})

	UpstreamErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "upstream",
		Name:      "errors_total",
		Help:      "Failed calls to external services",
	}, []string{"service"})

	SlugMismatches = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "shops",
		Name:      "slug_mismatches_total",
		Help:      "Detail lookups rejected because the record did not match the route slug",
	})

	CacheHits = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "cache",
		Name:      "hits_total",
		Help:      "Total cache hits",
	}, []string{"operation"})

	CacheMisses = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "cache",
		Name:      "misses_total",
		Help:      "Total cache misses",
	}, []string{"operation"})

	ShopsIndexed = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "worker",
		Name:      "shops_indexed_total",
		Help:      "Shop upsert events processed by the indexing worker",
	}, []string{"result"})
)

// Middleware records request metrics. Returned errors are passed to the
// app's error handler first so the recorded status is the one sent.
// Unknown routes share the "unmatched" path label.
func Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()

		err := c.Next()
		unmatched := false
		if err != nil {
			var fe *fiber.Error
			unmatched = errors.As(err, &fe) && fe.Code == fiber.StatusNotFound
			if handlerErr := c.App().ErrorHandler(c, err); handlerErr != nil {
				_ = c.SendStatus(fiber.StatusInternalServerError)
			}
		}

		status := strconv.Itoa(c.Response().StatusCode())
		path := c.Route().Path
		if unmatched {
			path = "unmatched"
		} else if path == "" {
			path = c.Path()
		}
		method := c.Method()

		httpRequestsTotal.WithLabelValues(method, path, status).Inc()
		httpRequestDuration.WithLabelValues(method, path).Observe(time.Since(start).Seconds())

		return nil
	}
}

// Handler serves the Prometheus exposition format.
func Handler() fiber.Handler {
	handler := fasthttpadaptor.NewFastHTTPHandler(promhttp.Handler())
	return func(c *fiber.Ctx) error {
		handler(c.Context())
		return nil
	}
}
