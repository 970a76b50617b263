package middleware

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"hello-api/internal/metrics"
)

// MetricsConfig configures MetricsWithConfig.
type MetricsConfig struct {
	// Skipper excludes requests from recording, e.g. scrapes of the metrics endpoint.
	Skipper echomw.Skipper

	// Metrics receives the observations. Required.
	Metrics *metrics.Metrics
}

// MetricsMiddleware records every request into m.
func MetricsMiddleware(m *metrics.Metrics) echo.MiddlewareFunc {
	return MetricsWithConfig(MetricsConfig{Metrics: m})
}

// MetricsWithConfig returns an Echo middleware that counts inbound requests
// and observes their latency, labeled by method, status and route. Routes are
// bounded by metrics.NormalizePath, so every greeting shares one series.
func MetricsWithConfig(cfg MetricsConfig) echo.MiddlewareFunc {
	if cfg.Skipper == nil {
		cfg.Skipper = echomw.DefaultSkipper
	}
	m := cfg.Metrics

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if cfg.Skipper(c) {
				return next(c)
			}

			m.RequestsInFlight.Inc()
			defer m.RequestsInFlight.Dec()

			start := time.Now()
			err := next(c)
			elapsed := time.Since(start).Seconds()

			method := metrics.NormalizeMethod(c.Request().Method)
			status := strconv.Itoa(responseStatus(c, err))
			route := metrics.NormalizePath(c.Request().URL.Path)

			m.RequestsTotal.WithLabelValues(method, status, route).Inc()
			m.RequestDuration.WithLabelValues(method, status, route).Observe(elapsed)

			return err
		}
	}
}

// responseStatus returns the status the client receives. An error that has
// not been rendered yet is written later by Echo's error handler, which uses
// the HTTPError code or 500.
func responseStatus(c echo.Context, err error) int {
	res := c.Response()
	if err == nil || res.Committed {
		return res.Status
	}
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code
	}
	return http.StatusInternalServerError
}
