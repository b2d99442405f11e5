package middleware

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
)

func TestRequestLogger(t *testing.T) {
	tests := []struct {
		name      string
		path      string
		status    int
		wantLevel string
	}{
		{"success", "/api/users", http.StatusOK, "INFO"},
		{"client error", "/api/preferences/alice", http.StatusNotFound, "WARN"},
		{"gateway down", "/api/notifications", http.StatusInternalServerError, "ERROR"},
		{"quiet probe", "/healthz", http.StatusOK, "DEBUG"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			logger := slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

			e := echo.New()
			e.Use(RequestID())
			e.Use(RequestLogger(logger, "/healthz"))
			e.GET("/*", func(c echo.Context) error {
				return c.NoContent(tt.status)
			})

			req := httptest.NewRequest(http.MethodGet, tt.path, http.NoBody)
			rec := httptest.NewRecorder()
			e.ServeHTTP(rec, req)

			var entry map[string]any
			if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
				t.Fatalf("unmarshal log line %q: %v", buf.String(), err)
			}
			if entry["level"] != tt.wantLevel {
				t.Errorf("level = %v, want %s", entry["level"], tt.wantLevel)
			}
			if entry["status"] != float64(tt.status) {
				t.Errorf("status = %v, want %d", entry["status"], tt.status)
			}
			if id, _ := entry["request_id"].(string); id == "" || id != rec.Header().Get(echo.HeaderXRequestID) {
				t.Errorf("request_id = %q, want response header %q", id, rec.Header().Get(echo.HeaderXRequestID))
			}
		})
	}
}

func TestRequestLogger_HTTPErrorStatus(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))

	e := echo.New()
	e.Use(RequestLogger(logger))
	e.GET("/x", func(c echo.Context) error {
		return echo.NewHTTPError(http.StatusRequestEntityTooLarge)
	})

	req := httptest.NewRequest(http.MethodGet, "/x", http.NoBody)
	e.ServeHTTP(httptest.NewRecorder(), req)

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if entry["status"] != float64(http.StatusRequestEntityTooLarge) {
		t.Errorf("status = %v, want 413", entry["status"])
	}
}
