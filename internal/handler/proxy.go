package handler

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"net/url"

	"github.com/labstack/echo/v4"

	"notified-dashboard/internal/model"
	"notified-dashboard/internal/service"
)

// ProxyHandler forwards API requests to the upstream gateway.
type ProxyHandler struct {
	service *service.ProxyService
	logger  *slog.Logger
}

// NewProxyHandler creates a ProxyHandler.
func NewProxyHandler(svc *service.ProxyService, logger *slog.Logger) *ProxyHandler {
	return &ProxyHandler{
		service: svc,
		logger:  logger.With("component", "proxy_handler"),
	}
}

// Handle proxies the request to the gateway and relays status and body.
func (h *ProxyHandler) Handle(c echo.Context) error {
	req := c.Request()

	pr := &model.ProxyRequest{
		Ctx:       req.Context(),
		Method:    req.Method,
		Path:      req.URL.EscapedPath(),
		RawQuery:  req.URL.RawQuery,
		Header:    req.Header,
		Body:      req.Body,
		RequestID: c.Response().Header().Get(echo.HeaderXRequestID),
	}

	resp, err := h.service.Forward(pr)
	if err != nil {
		return h.mapError(c, err)
	}

	if req.Method == http.MethodHead || len(resp.Body) == 0 {
		if resp.ContentType != "" {
			c.Response().Header().Set(echo.HeaderContentType, resp.ContentType)
		}
		return c.NoContent(resp.StatusCode)
	}
	if resp.JSON {
		return c.JSONBlob(resp.StatusCode, resp.Body)
	}
	return c.Blob(resp.StatusCode, resp.ContentType, resp.Body)
}

func (h *ProxyHandler) mapError(c echo.Context, err error) error {
	if errors.Is(err, service.ErrInvalidBody) {
		h.logger.Warn("rejecting request body",
			"err", err,
			"path", c.Request().URL.Path,
		)
		return c.JSON(http.StatusBadRequest, map[string]string{
			"error":   "Invalid JSON body",
			"details": err.Error(),
		})
	}

	h.logger.Error("proxy error",
		"err", err,
		"method", c.Request().Method,
		"path", c.Request().URL.Path,
	)

	return c.JSON(http.StatusInternalServerError, map[string]string{
		"error":   "Failed to connect to API Gateway",
		"details": failureReason(err),
	})
}

// failureReason describes a transport failure without leaking internal
// addresses beyond what the caller already knows.
func failureReason(err error) string {
	if errors.Is(err, context.DeadlineExceeded) {
		return "upstream request timed out"
	}
	if errors.Is(err, context.Canceled) {
		return "client disconnected"
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return "upstream request timed out"
	}

	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return "upstream host unreachable"
	}

	var opErr *net.OpError
	if errors.As(err, &opErr) && opErr.Op == "dial" {
		return "upstream connection refused"
	}

	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return "upstream connection failed"
	}

	return "upstream request failed"
}
