// Package service implements the core proxy forwarding logic.
package service

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"net/url"
	"strings"

	"github.com/gabriel-vasile/mimetype"

	"notified-dashboard/internal/client"
	"notified-dashboard/internal/config"
	"notified-dashboard/internal/model"
)

// ErrInvalidBody is returned when a request body that must be relayed as JSON
// does not parse as JSON.
var ErrInvalidBody = errors.New("request body is not valid JSON")

// droppedRequestHeaders are never replayed to the gateway. Accept-Encoding is
// left to the transport so JSON bodies arrive decoded.
var droppedRequestHeaders = []string{
	"Connection",
	"Keep-Alive",
	"Proxy-Authenticate",
	"Proxy-Authorization",
	"Proxy-Connection",
	"TE",
	"Trailer",
	"Transfer-Encoding",
	"Upgrade",
	"Host",
	"Content-Length",
	"Accept-Encoding",
}

const (
	jsonMediaType = "application/json"
	userAgent     = "notified-dashboard/1.0"
)

// ProxyService handles the forwarding logic for proxy requests.
type ProxyService struct {
	client  *client.GatewayClient
	logger  *slog.Logger
	base    string
	prefix  string
	rewrite string
}

// NewProxyService creates a ProxyService for the configured gateway.
func NewProxyService(c *client.GatewayClient, cfg *config.Config, logger *slog.Logger) (*ProxyService, error) {
	u, err := url.Parse(cfg.Upstream.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse upstream base_url: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("upstream base_url %q must be absolute", cfg.Upstream.BaseURL)
	}

	return &ProxyService{
		client:  c,
		logger:  logger.With("component", "proxy_service"),
		base:    strings.TrimSuffix(u.String(), "/"),
		prefix:  cfg.Upstream.Prefix,
		rewrite: cfg.Upstream.Rewrite,
	}, nil
}

// Forward sends a ProxyRequest to the gateway and returns the relayed response.
//
// A non-2xx gateway status is not an error: it is returned like any other
// response. An error is returned only when the body cannot be relayed
// (ErrInvalidBody) or the gateway could not be reached at all.
func (s *ProxyService) Forward(pr *model.ProxyRequest) (*model.ProxyResponse, error) {
	target := s.UpstreamURL(pr.Path, pr.RawQuery)

	body, err := encodeBody(pr.Method, pr.Header.Get("Content-Type"), pr.Body)
	if err != nil {
		return nil, err
	}

	header := s.filterRequestHeaders(pr.Header)
	if body != nil {
		header.Set("Content-Type", jsonMediaType)
	}
	if pr.RequestID != "" {
		header.Set("X-Request-Id", pr.RequestID)
	}

	s.logger.Info("forwarding request",
		"method", pr.Method,
		"url", target,
		"request_id", pr.RequestID,
	)

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	resp, err := s.client.Send(pr.Ctx, pr.Method, target, header, reader)
	if err != nil {
		return nil, fmt.Errorf("forward to upstream: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read upstream body: %w", err)
	}

	return s.relay(resp.StatusCode, resp.Header.Get("Content-Type"), raw), nil
}

// UpstreamURL maps an inbound escaped path and raw query to the gateway URL.
// In preserve mode the prefix is kept; in strip mode it is removed. Paths
// outside the prefix are passed through unchanged.
func (s *ProxyService) UpstreamURL(path, rawQuery string) string {
	if s.rewrite == config.RewriteStrip {
		if rest, ok := strings.CutPrefix(path, s.prefix); ok && (rest == "" || rest[0] == '/' || rest[0] == '?') {
			path = rest
		}
	}
	if path == "" {
		path = "/"
	}

	target := s.base + path
	if rawQuery != "" {
		target += "?" + rawQuery
	}
	return target
}

// relay builds the caller-facing response. JSON bodies are re-serialized in
// compact form; anything else, including JSON-typed bodies that do not
// parse, is passed through byte for byte.
func (s *ProxyService) relay(status int, contentType string, raw []byte) *model.ProxyResponse {
	if strings.Contains(contentType, jsonMediaType) {
		var buf bytes.Buffer
		if err := json.Compact(&buf, raw); err == nil {
			return &model.ProxyResponse{
				StatusCode:  status,
				ContentType: contentType,
				Body:        buf.Bytes(),
				JSON:        true,
			}
		} else if len(raw) > 0 {
			s.logger.Warn("upstream sent malformed JSON; relaying raw body",
				"status", status,
				"err", err,
			)
		}
	}

	if contentType == "" && len(raw) > 0 {
		contentType = mimetype.Detect(raw).String()
	}

	return &model.ProxyResponse{
		StatusCode:  status,
		ContentType: contentType,
		Body:        raw,
	}
}

// encodeBody returns the compact JSON body to send upstream, or nil for
// methods that carry no body. Only an application/json body is parsed; any
// other content type, and an empty body, is sent as "{}".
func encodeBody(method, contentType string, body io.Reader) ([]byte, error) {
	if method == http.MethodGet || method == http.MethodHead {
		return nil, nil
	}
	if !isJSONMediaType(contentType) {
		if body != nil {
			_, _ = io.Copy(io.Discard, body)
		}
		return []byte("{}"), nil
	}

	var raw []byte
	if body != nil {
		var err error
		raw, err = io.ReadAll(body)
		if err != nil {
			return nil, fmt.Errorf("read request body: %w", err)
		}
	}
	if len(bytes.TrimSpace(raw)) == 0 {
		return []byte("{}"), nil
	}

	var buf bytes.Buffer
	if err := json.Compact(&buf, raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidBody, err)
	}
	return buf.Bytes(), nil
}

func isJSONMediaType(contentType string) bool {
	mt, _, err := mime.ParseMediaType(contentType)
	return err == nil && mt == jsonMediaType
}

func (s *ProxyService) filterRequestHeaders(src http.Header) http.Header {
	dst := src.Clone()
	if dst == nil {
		dst = make(http.Header)
	}
	// Headers named in Connection are hop-by-hop as well.
	for _, v := range dst.Values("Connection") {
		for _, name := range strings.Split(v, ",") {
			if name = strings.TrimSpace(name); name != "" {
				dst.Del(name)
			}
		}
	}
	for _, key := range droppedRequestHeaders {
		dst.Del(key)
	}
	dst.Set("User-Agent", userAgent)
	return dst
}
