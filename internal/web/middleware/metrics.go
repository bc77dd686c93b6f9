package middleware

import (
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/junseo/marketctl/internal/metrics"
)

// metricsSkipPaths defines URL paths excluded from HTTP request metrics.
// Probe and scrape endpoints would otherwise create metric noise.
var metricsSkipPaths = map[string]struct{}{
	"/metrics": {},
	"/healthz": {},
}

// Metrics returns Echo middleware that records request duration and status.
func Metrics() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			path := c.Path()
			if path == "" {
				path = c.Request().URL.Path
			}

			if _, skip := metricsSkipPaths[path]; skip {
				return next(c)
			}

			start := time.Now()

			err := next(c)

			duration := time.Since(start).Seconds()
			status := strconv.Itoa(c.Response().Status)
			method := c.Request().Method

			metrics.WebRequestDuration.
				WithLabelValues(method, path, status).
				Observe(duration)
			metrics.WebRequestsTotal.
				WithLabelValues(method, path, status).
				Inc()

			return err
		}
	}
}
