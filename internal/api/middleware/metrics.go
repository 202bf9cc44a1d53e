package middleware

import (
	"sync"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/bloglist/bloglist-api/internal/api/metrics"
)

var defaultMetrics = sync.OnceValue(func() echo.MiddlewareFunc {
	return MetricsWith(prometheus.DefaultRegisterer)
})

// Metrics returns the HTTP metrics middleware registered on the default
// Prometheus registry. Collectors register once per process, so every router
// built in the process shares them.
func Metrics() echo.MiddlewareFunc {
	return defaultMetrics()
}

// MetricsWith records request count, latency and sizes on reg as
// bloglist_http_*, labelled by method, route template and status code.
// It panics if reg already holds the collectors.
func MetricsWith(reg prometheus.Registerer) echo.MiddlewareFunc {
	return echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Namespace:  metrics.Namespace,
		Subsystem:  "http",
		Registerer: reg,
	})
}
