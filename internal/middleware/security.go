package middleware

import (
	"strings"

	"github.com/labstack/echo/v4"
)

// dashboardCSP restricts dashboard pages to their own origin plus the chart
// library CDN. API responses are JSON and get no CSP.
const dashboardCSP = "default-src 'self'; " +
	"script-src 'self' https://cdn.jsdelivr.net; " +
	"style-src 'self' 'unsafe-inline'; " +
	"img-src 'self' data:; " +
	"connect-src 'self'; " +
	"frame-ancestors 'none'"

// SecurityHeaders returns an Echo middleware that adds security headers to
// every response. apiPrefix marks the paths that are relayed to the gateway.
func SecurityHeaders(apiPrefix string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			path := c.Request().URL.Path
			api := path == apiPrefix || strings.HasPrefix(path, apiPrefix+"/")

			// Set headers before the body is written; handlers that stream
			// commit the header map on first write.
			c.Response().Before(func() {
				h := c.Response().Header()
				h.Set("X-Content-Type-Options", "nosniff")
				h.Set("X-Frame-Options", "DENY")
				h.Set("Referrer-Policy", "same-origin")
				if !api {
					h.Set("Content-Security-Policy", dashboardCSP)
				}
			})

			return next(c)
		}
	}
}
