package server

import (
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/henryli127-lang/volca/internal/metrics"
)

// metricsMiddleware records request counts and latency per route. Routes are
// labeled by their registered path so path parameters don't explode the
// metric cardinality.
func metricsMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		start := time.Now()
		err := next(c)

		route := c.Path()
		if route == "" {
			route = "unmatched"
		}

		status := c.Response().Status
		if err != nil {
			if httpErr, ok := err.(*echo.HTTPError); ok {
				status = httpErr.Code
			}
		}

		metrics.HTTPRequestsTotal.WithLabelValues(route, strconv.Itoa(status)).Inc()
		metrics.HTTPRequestDuration.WithLabelValues(route).Observe(time.Since(start).Seconds())

		return err
	}
}
