package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

func TestRequestID(t *testing.T) {
	e := echo.New()
	e.Use(RequestID())
	e.GET("/test", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	t.Run("generates uuid", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/test", http.NoBody)
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)

		id := rec.Header().Get(echo.HeaderXRequestID)
		if _, err := uuid.Parse(id); err != nil {
			t.Errorf("X-Request-Id = %q is not a UUID: %v", id, err)
		}
	})

	t.Run("keeps inbound id", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/test", http.NoBody)
		req.Header.Set(echo.HeaderXRequestID, "edge-123")
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)

		if id := rec.Header().Get(echo.HeaderXRequestID); id != "edge-123" {
			t.Errorf("X-Request-Id = %q, want %q", id, "edge-123")
		}
	})
}
