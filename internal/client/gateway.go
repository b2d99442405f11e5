// Package client provides the upstream HTTP client for the API gateway.
package client

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"time"

	"notified-dashboard/internal/config"
	"notified-dashboard/internal/metrics"
)

// GatewayClient sends requests to the upstream API gateway.
type GatewayClient struct {
	httpClient *http.Client
	logger     *slog.Logger
	metrics    *metrics.Metrics
}

// NewGatewayClient creates a GatewayClient with connection pooling.
// No overall request timeout is set unless upstream.timeout_seconds is
// configured. The metrics parameter is optional; pass nil to disable upstream
// metrics recording.
func NewGatewayClient(cfg *config.Config, logger *slog.Logger, m *metrics.Metrics) *GatewayClient {
	transport := &http.Transport{
		Proxy:               http.ProxyFromEnvironment,
		MaxIdleConns:        cfg.Upstream.IdleConnections,
		MaxIdleConnsPerHost: cfg.Upstream.IdleConnections,
		IdleConnTimeout:     90 * time.Second,
		DialContext: (&net.Dialer{
			Timeout:   30 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
	}

	return &GatewayClient{
		httpClient: &http.Client{
			Transport: transport,
			Timeout:   time.Duration(cfg.Upstream.TimeoutSeconds) * time.Second,
			// Redirects are relayed to the caller, not followed.
			CheckRedirect: func(*http.Request, []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
		logger:  logger.With("component", "gateway_client"),
		metrics: m,
	}
}

// Do executes an HTTP request against the gateway and returns the raw response.
// The caller is responsible for closing the response body.
func (c *GatewayClient) Do(req *http.Request) (*http.Response, error) {
	c.logger.Debug("upstream request",
		"method", req.Method,
		"path", req.URL.Path,
	)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	duration := time.Since(start).Seconds()

	method := metrics.NormalizeMethod(req.Method)

	if err != nil {
		if c.metrics != nil {
			c.metrics.UpstreamDuration.WithLabelValues(method).Observe(duration)
			c.metrics.UpstreamFailures.WithLabelValues(method).Inc()
		}
		return nil, fmt.Errorf("upstream request: %w", err)
	}

	if c.metrics != nil {
		status := strconv.Itoa(resp.StatusCode)
		c.metrics.UpstreamDuration.WithLabelValues(method).Observe(duration)
		c.metrics.UpstreamResponses.WithLabelValues(method, status).Inc()
	}

	return resp, nil
}

// Send builds a request and executes it with Do.
// The provided context controls the lifetime of the upstream request:
// when the context is canceled (e.g. client disconnects), the upstream
// request is also canceled.
func (c *GatewayClient) Send(ctx context.Context, method, url string, header http.Header, body io.Reader) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, fmt.Errorf("build upstream request: %w", err)
	}
	if header != nil {
		req.Header = header
	}

	return c.Do(req)
}
