// Package model defines the request-scoped proxy types and the payloads of
// the API gateway contracts consumed by the dashboard.
package model

import (
	"context"
	"io"
	"net/http"
)

// ProxyRequest is an inbound request to be forwarded to the gateway.
// Path is the escaped path including the forwarding prefix.
type ProxyRequest struct {
	Ctx       context.Context
	Method    string
	Path      string
	RawQuery  string
	Header    http.Header
	Body      io.Reader
	RequestID string
}

// ProxyResponse is the gateway response as it is relayed to the caller.
// JSON is set when Body holds re-serialized JSON rather than raw bytes.
type ProxyResponse struct {
	StatusCode  int
	ContentType string
	Body        []byte
	JSON        bool
}
