// Package middleware provides Echo middleware for logging, metrics, request
// IDs and security headers.
package middleware

import (
	"context"
	"log/slog"
	"time"

	"github.com/labstack/echo/v4"
)

// RequestLogger returns an Echo middleware that logs each request with slog.
// Server errors log at error level and client errors at warn. Requests for
// the paths in quiet (probes, scrapes) log at debug.
func RequestLogger(logger *slog.Logger, quiet ...string) echo.MiddlewareFunc {
	skip := make(map[string]bool, len(quiet))
	for _, p := range quiet {
		skip[p] = true
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			err := next(c)

			req := c.Request()
			res := c.Response()

			status := statusOf(c, err)

			level := slog.LevelInfo
			switch {
			case skip[req.URL.Path]:
				level = slog.LevelDebug
			case status >= 500:
				level = slog.LevelError
			case status >= 400:
				level = slog.LevelWarn
			}

			logger.Log(context.Background(), level, "request",
				"method", req.Method,
				"path", req.URL.Path,
				"status", status,
				"duration_ms", time.Since(start).Milliseconds(),
				"request_id", res.Header().Get(echo.HeaderXRequestID),
				"remote_ip", c.RealIP(),
				"bytes_out", res.Size,
			)

			return err
		}
	}
}
