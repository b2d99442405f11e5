package middleware

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"notified-dashboard/internal/metrics"
)

// MetricsMiddleware returns an Echo middleware that records Prometheus metrics
// for each inbound request. It runs inside Recover, so a panicking handler is
// recorded as a 500 before the panic continues outward.
func MetricsMiddleware(m *metrics.Metrics) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) (err error) {
			m.RequestsInFlight.Inc()
			start := time.Now()

			panicked := true
			defer func() {
				m.RequestsInFlight.Dec()

				status := statusOf(c, err)
				if panicked {
					status = http.StatusInternalServerError
				}
				method := metrics.NormalizeMethod(c.Request().Method)
				path := m.NormalizePath(c.Request().URL.Path)
				code := strconv.Itoa(status)

				m.RequestsTotal.WithLabelValues(method, code, path).Inc()
				m.RequestDuration.WithLabelValues(method, code, path).Observe(time.Since(start).Seconds())
			}()

			err = next(c)
			panicked = false
			return err
		}
	}
}

// statusOf resolves the status the client will see. A returned
// *echo.HTTPError has not been written yet; Echo's error handler writes it
// after the middleware chain unwinds.
func statusOf(c echo.Context, err error) int {
	var he *echo.HTTPError
	if err != nil && errors.As(err, &he) {
		return he.Code
	}
	if err != nil && !c.Response().Committed {
		return http.StatusInternalServerError
	}
	return c.Response().Status
}
