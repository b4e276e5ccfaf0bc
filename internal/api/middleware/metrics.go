// metrics.go — Prometheus HTTP метрики SWIFT Monitor.
// Регистрирует метрики: swiftmon_http_requests_total, swiftmon_http_request_duration_seconds.
// Нормализация путей предотвращает взрывной рост кардинальности.
package middleware

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTP метрики SWIFT Monitor
var (
	// httpRequestsTotal — общее количество HTTP-запросов.
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "swiftmon_http_requests_total",
			Help: "Общее количество HTTP-запросов к SWIFT Monitor",
		},
		[]string{"method", "path", "status"},
	)

	// httpRequestDuration — гистограмма длительности HTTP-запросов.
	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "swiftmon_http_request_duration_seconds",
			Help:    "Длительность HTTP-запросов к SWIFT Monitor в секундах",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)
)

// MetricsMiddleware возвращает HTTP middleware для сбора Prometheus метрик.
// prefix — префикс API (SM_API_PREFIX), отбрасывается при нормализации пути.
func MetricsMiddleware(prefix string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			normalizedPath := normalizePath(prefix, r.URL.Path)

			wrapped := newMetricsResponseWriter(w)
			next.ServeHTTP(wrapped, r)

			duration := time.Since(start).Seconds()
			status := strconv.Itoa(wrapped.statusCode)

			httpRequestsTotal.WithLabelValues(r.Method, normalizedPath, status).Inc()
			httpRequestDuration.WithLabelValues(r.Method, normalizedPath).Observe(duration)
		})
	}
}

// metricsResponseWriter — обёртка для перехвата статус-кода.
type metricsResponseWriter struct {
	http.ResponseWriter
	statusCode int
}

func newMetricsResponseWriter(w http.ResponseWriter) *metricsResponseWriter {
	return &metricsResponseWriter{ResponseWriter: w, statusCode: http.StatusOK}
}

func (rw *metricsResponseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// Unwrap позволяет http.ResponseController получить доступ к оригинальному ResponseWriter.
func (rw *metricsResponseWriter) Unwrap() http.ResponseWriter {
	return rw.ResponseWriter
}

// knownPaths — статические маршруты (без префикса).
var knownPaths = map[string]bool{
	"/health":                      true,
	"/health/live":                 true,
	"/health/ready":                true,
	"/metrics":                     true,
	"/openapi.yaml":                true,
	"/transactions":                true,
	"/transactions/stats":          true,
	"/transactions/form-types":     true,
	"/transactions/errors":         true,
	"/transactions/message-states": true,
	"/transactions/query-states":   true,
	"/errors":                      true,
	"/errors/form-types":           true,
	"/export/transactions":         true,
	"/export/preview":              true,
}

// normalizePath приводит путь к шаблону маршрута.
// /api/transactions/12345 → /transactions/{id}
// Неизвестные пути сворачиваются в "other".
func normalizePath(prefix, path string) string {
	if prefix != "" {
		if trimmed, ok := strings.CutPrefix(path, prefix); ok && strings.HasPrefix(trimmed, "/") {
			path = trimmed
		}
	}

	if knownPaths[path] {
		return path
	}

	const txPrefix = "/transactions/"
	if id, ok := strings.CutPrefix(path, txPrefix); ok && id != "" && !strings.Contains(id, "/") {
		return "/transactions/{id}"
	}

	return "other"
}
