package metrics

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/valyala/fasthttp/fasthttpadaptor"
)

// Статусы рендеринга для метки status
const (
	StatusOK         = "ok"
	StatusNoGeometry = "no_geometry"
	StatusError      = "error"
	StatusCached     = "cached"
)

var (
	// HTTP метрики
	httpRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "osm2svg",
		Subsystem: "http",
		Name:      "requests_total",
		Help:      "Total HTTP requests processed",
	}, []string{"method", "path", "status"})

	httpRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "osm2svg",
		Subsystem: "http",
		Name:      "request_duration_seconds",
		Help:      "HTTP request latency in seconds",
		Buckets:   []float64{0.005, 0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
	}, []string{"method", "path"})

	// Метрики конвейера рендеринга
	RendersTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "osm2svg",
		Subsystem: "render",
		Name:      "total",
		Help:      "Total drawing renders by outcome",
	}, []string{"status"})

	RenderDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "osm2svg",
		Subsystem: "render",
		Name:      "duration_seconds",
		Help:      "Duration of a full render run (acquisition excluded)",
		Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
	})

	RenderPaths = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "osm2svg",
		Subsystem: "render",
		Name:      "paths",
		Help:      "Number of contour paths drawn per render",
		Buckets:   prometheus.ExponentialBuckets(1, 4, 8),
	})

	AcquisitionDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "osm2svg",
		Subsystem: "terrain",
		Name:      "acquisition_duration_seconds",
		Help:      "Duration of the external terrain acquisition step",
		Buckets:   []float64{1, 5, 10, 30, 60, 120, 300, 600},
	})
)

// ObserveRender записывает результат одного рендеринга
func ObserveRender(status string, started time.Time, paths int) {
	RendersTotal.WithLabelValues(status).Inc()
	if status == StatusOK {
		RenderDuration.Observe(time.Since(started).Seconds())
		RenderPaths.Observe(float64(paths))
	}
}

// Middleware собирает метрики HTTP запросов
func Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()

		err := c.Next()

		status := strconv.Itoa(c.Response().StatusCode())
		path := c.Route().Path
		if path == "" {
			path = c.Path()
		}
		method := c.Method()

		httpRequestsTotal.WithLabelValues(method, path, status).Inc()
		httpRequestDuration.WithLabelValues(method, path).Observe(time.Since(start).Seconds())

		return err
	}
}

// Handler отдаёт /metrics для Prometheus
func Handler() fiber.Handler {
	handler := fasthttpadaptor.NewFastHTTPHandler(promhttp.Handler())
	return func(c *fiber.Ctx) error {
		handler(c.Context())
		return nil
	}
}
