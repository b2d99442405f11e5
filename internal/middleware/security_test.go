package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
)

func TestSecurityHeaders_AddsHeaders(t *testing.T) {
	e := echo.New()
	e.Use(SecurityHeaders("/api"))
	e.GET("/*", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	tests := []struct {
		name    string
		path    string
		wantCSP bool
	}{
		{"dashboard page", "/admin.html", true},
		{"root", "/", true},
		{"api call", "/api/users", false},
		{"bare prefix", "/api", false},
		{"lookalike path", "/apiary", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.path, http.NoBody)
			rec := httptest.NewRecorder()
			e.ServeHTTP(rec, req)

			res := rec.Result()
			if v := res.Header.Get("X-Content-Type-Options"); v != "nosniff" {
				t.Errorf("X-Content-Type-Options = %q, want %q", v, "nosniff")
			}
			if v := res.Header.Get("X-Frame-Options"); v != "DENY" {
				t.Errorf("X-Frame-Options = %q, want %q", v, "DENY")
			}
			if v := res.Header.Get("Referrer-Policy"); v != "same-origin" {
				t.Errorf("Referrer-Policy = %q, want %q", v, "same-origin")
			}
			if got := res.Header.Get("Content-Security-Policy") != ""; got != tt.wantCSP {
				t.Errorf("CSP present = %v, want %v", got, tt.wantCSP)
			}
		})
	}
}

func TestSecurityHeaders_OnErrorResponse(t *testing.T) {
	e := echo.New()
	e.Use(SecurityHeaders("/api"))
	e.GET("/api/*", func(c echo.Context) error {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to connect to API Gateway"})
	})

	req := httptest.NewRequest(http.MethodGet, "/api/users", http.NoBody)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if v := rec.Result().Header.Get("X-Content-Type-Options"); v != "nosniff" {
		t.Errorf("X-Content-Type-Options = %q, want %q", v, "nosniff")
	}
}
