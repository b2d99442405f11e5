package middleware

import (
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
)

// RequestID returns Echo's request ID middleware with UUIDv4 identifiers.
// An inbound X-Request-Id is kept so IDs from an edge proxy survive the hop
// to the gateway.
func RequestID() echo.MiddlewareFunc {
	return echomw.RequestIDWithConfig(echomw.RequestIDConfig{
		Generator: uuid.NewString,
	})
}
