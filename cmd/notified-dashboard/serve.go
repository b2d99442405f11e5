package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/pires/go-proxyproto"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"

	"notified-dashboard/internal/assets"
	"notified-dashboard/internal/client"
	"notified-dashboard/internal/config"
	"notified-dashboard/internal/handler"
	"notified-dashboard/internal/metrics"
	"notified-dashboard/internal/middleware"
	"notified-dashboard/internal/service"
)

func serve(cli *config.CLI) error {
	app := fx.New(
		fx.Provide(
			func() *config.CLI { return cli },
			func() handler.Version { return handler.Version(version) },
			config.Load,
			newLogger,
			newMetrics,
			newEcho,
			client.NewGatewayClient,
			service.NewProxyService,
			handler.NewProxyHandler,
			handler.NewHealthHandler,
			assets.NewServer,
		),
		fx.WithLogger(func(logger *slog.Logger) fxevent.Logger {
			return &fxevent.SlogLogger{Logger: logger.With("component", "fx")}
		}),
		fx.Invoke(handler.RegisterRoutes, warnConfigPermissions, startServer),
	)
	if err := app.Err(); err != nil {
		return err
	}
	app.Run()
	return nil
}

func newLogger(cfg *config.Config) *slog.Logger {
	level := slog.LevelInfo
	switch strings.ToLower(cfg.Log.Level) {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}

	opts := &slog.HandlerOptions{Level: level}

	var h slog.Handler
	switch strings.ToLower(cfg.Log.Format) {
	case "text":
		h = slog.NewTextHandler(os.Stdout, opts)
	default:
		h = slog.NewJSONHandler(os.Stdout, opts)
	}

	return slog.New(h)
}

func newMetrics(cfg *config.Config) *metrics.Metrics {
	return metrics.New(cfg.Upstream.Prefix, cfg.Metrics.Path)
}

func newEcho(cfg *config.Config, logger *slog.Logger, m *metrics.Metrics) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Server.ReadTimeout = 30 * time.Second
	// Relays are buffered, so the write deadline only has to cover the
	// slowest gateway call.
	e.Server.WriteTimeout = 0
	if cfg.Upstream.TimeoutSeconds > 0 {
		e.Server.WriteTimeout = time.Duration(cfg.Upstream.TimeoutSeconds)*time.Second + 10*time.Second
	}
	e.Server.IdleTimeout = 120 * time.Second
	e.Server.ReadHeaderTimeout = 10 * time.Second

	e.Use(echomw.Recover())
	e.Use(middleware.RequestID())
	e.Use(middleware.RequestLogger(logger, "/healthz", cfg.Metrics.Path))
	e.Use(middleware.MetricsMiddleware(m))
	e.Use(echomw.BodyLimit(fmt.Sprintf("%dB", cfg.Server.BodyMaxBytes)))
	e.Use(middleware.SecurityHeaders(cfg.Upstream.Prefix))

	if cfg.Server.RateLimit.Enabled {
		e.Use(middleware.RateLimiter(cfg.Server.RateLimit.RequestsPerSecond))
		logger.Info("rate limiter enabled", "rps", cfg.Server.RateLimit.RequestsPerSecond)
	}

	return e
}

func warnConfigPermissions(cfg *config.Config, logger *slog.Logger) {
	cfg.WarnPermissions(logger)
}

func startServer(lc fx.Lifecycle, e *echo.Echo, cfg *config.Config, logger *slog.Logger) {
	lc.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			addr := cfg.Server.Addr()
			ln, err := net.Listen("tcp", addr)
			if err != nil {
				return fmt.Errorf("bind %s: %w", addr, err)
			}
			if cfg.Server.ProxyProtocol {
				ln = &proxyproto.Listener{
					Listener:          ln,
					ReadHeaderTimeout: 10 * time.Second,
				}
			}
			logger.Info("starting server",
				"addr", addr,
				"upstream", cfg.Upstream.BaseURL,
				"prefix", cfg.Upstream.Prefix,
				"rewrite", cfg.Upstream.Rewrite,
				"static_dir", cfg.Static.Dir,
				"proxy_protocol", cfg.Server.ProxyProtocol,
			)
			go func() {
				if err := e.Server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
					logger.Error("server error", "err", err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			logger.Info("shutting down server")
			return e.Shutdown(ctx)
		},
	})
}
