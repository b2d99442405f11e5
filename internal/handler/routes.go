package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"notified-dashboard/internal/assets"
	"notified-dashboard/internal/config"
	"notified-dashboard/internal/metrics"
)

// proxyMethods are the methods relayed to the gateway. Anything else under
// the prefix gets 405 from the router.
var proxyMethods = []string{
	http.MethodGet,
	http.MethodHead,
	http.MethodPost,
	http.MethodPut,
	http.MethodPatch,
	http.MethodDelete,
}

// RegisterRoutes wires all route handlers onto the Echo instance.
func RegisterRoutes(
	e *echo.Echo,
	cfg *config.Config,
	proxy *ProxyHandler,
	health *HealthHandler,
	static *assets.Server,
	m *metrics.Metrics,
) {
	e.GET("/healthz", health.Healthz)
	e.GET("/proxy/status", health.Status)

	if cfg.Metrics.Enabled {
		e.GET(cfg.Metrics.Path, echo.WrapHandler(promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{})))
	}

	prefix := cfg.Upstream.Prefix
	e.Match(proxyMethods, prefix, proxy.Handle)
	e.Match(proxyMethods, prefix+"/*", proxy.Handle)

	e.GET("/*", static.Handle)
	e.HEAD("/*", static.Handle)
}
