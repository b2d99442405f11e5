// Package config handles TOML configuration loading and validation.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
)

// configSearchPaths lists paths checked in order when no explicit config is given.
var configSearchPaths = []string{
	"/etc/notified-dashboard/config.toml",
	"configs/config.toml",
}

// Rewrite modes for turning an inbound path into an upstream path.
const (
	RewritePreserve = "preserve" // /api/x -> <base>/api/x
	RewriteStrip    = "strip"    // /api/x -> <base>/x
)

// CLI holds command-line arguments parsed by Kong.
type CLI struct {
	Config   string `kong:"short='c',help='Path to TOML config file.',env='CONFIG_PATH'"`
	Host     string `kong:"help='Listen host (overrides config).',env='HOST'"`
	Port     int    `kong:"short='p',help='Listen port (overrides config).',env='PORT'"`
	Upstream string `kong:"help='API gateway base URL (overrides config).',env='UPSTREAM_URL'"`
	Static   string `kong:"help='Directory of dashboard assets (overrides config).',env='STATIC_DIR'"`
	LogLevel string `kong:"help='Log level: debug|info|warn|error (overrides config).',env='LOG_LEVEL'"`
}

// Config is the top-level application configuration.
type Config struct {
	Server   ServerConfig   `toml:"server"`
	Upstream UpstreamConfig `toml:"upstream"`
	Static   StaticConfig   `toml:"static"`
	Log      LogConfig      `toml:"log"`
	Metrics  MetricsConfig  `toml:"metrics"`

	filePath string // resolved config file path (unexported)
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host          string          `toml:"host"`
	Port          int             `toml:"port"` // 0 means "use default" (3000)
	BodyMaxBytes  int64           `toml:"body_max_bytes"`
	ProxyProtocol bool            `toml:"proxy_protocol"`
	RateLimit     RateLimitConfig `toml:"rate_limit"`
}

// RateLimitConfig controls per-IP request rate limiting.
type RateLimitConfig struct {
	Enabled           bool    `toml:"enabled"`
	RequestsPerSecond float64 `toml:"requests_per_second"`
}

// UpstreamConfig holds the API gateway connection settings.
type UpstreamConfig struct {
	BaseURL         string `toml:"base_url"`
	Prefix          string `toml:"prefix"`
	Rewrite         string `toml:"rewrite"`
	TimeoutSeconds  int    `toml:"timeout_seconds"` // 0 leaves the transport default in place
	IdleConnections int    `toml:"idle_connections"`
}

// StaticConfig controls where dashboard assets are served from.
type StaticConfig struct {
	Dir   string `toml:"dir"`
	Index string `toml:"index"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

// MetricsConfig holds Prometheus metrics settings.
type MetricsConfig struct {
	Enabled bool   `toml:"enabled"`
	Path    string `toml:"path"`
}

// Load reads the TOML config file and applies CLI overrides.
// An explicit path (via --config or CONFIG_PATH) must exist. Without one,
// /etc/notified-dashboard/config.toml then configs/config.toml are searched,
// and built-in defaults are used when neither exists.
func Load(cli *CLI) (*Config, error) {
	var cfg Config

	path := cli.Config
	if path == "" {
		path = findConfig()
	}
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		}
		if err := toml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("config: parse %s: %w", path, err)
		}
		cfg.filePath = path
	}

	cfg.applyCLI(cli)
	cfg.setDefaults()

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config: validate: %w", err)
	}

	return &cfg, nil
}

// applyCLI overrides config values with non-zero CLI flags.
func (c *Config) applyCLI(cli *CLI) {
	if cli.Host != "" {
		c.Server.Host = cli.Host
	}
	if cli.Port != 0 {
		c.Server.Port = cli.Port
	}
	if cli.Upstream != "" {
		c.Upstream.BaseURL = cli.Upstream
	}
	if cli.Static != "" {
		c.Static.Dir = cli.Static
	}
	if cli.LogLevel != "" {
		c.Log.Level = cli.LogLevel
	}
}

func (c *Config) validate() error {
	u, err := url.Parse(c.Upstream.BaseURL)
	if err != nil {
		return fmt.Errorf("upstream.base_url is not a valid URL: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("upstream.base_url must use http or https; got %q", c.Upstream.BaseURL)
	}
	if u.Host == "" {
		return fmt.Errorf("upstream.base_url has no host; got %q", c.Upstream.BaseURL)
	}
	if u.RawQuery != "" || u.Fragment != "" {
		return errors.New("upstream.base_url must not carry a query or fragment")
	}

	p := c.Upstream.Prefix
	if p[0] != '/' || (len(p) > 1 && strings.HasSuffix(p, "/")) || p == "/" {
		return fmt.Errorf("upstream.prefix must start with '/', not end with '/' and not be the root; got %q", p)
	}
	switch c.Upstream.Rewrite {
	case RewritePreserve, RewriteStrip:
	default:
		return fmt.Errorf("upstream.rewrite must be one of: %s, %s; got %q", RewritePreserve, RewriteStrip, c.Upstream.Rewrite)
	}

	// Numeric bounds.
	if c.Server.Port < 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be 0–65535; got %d", c.Server.Port)
	}
	if c.Server.BodyMaxBytes < 0 {
		return fmt.Errorf("server.body_max_bytes must be non-negative; got %d", c.Server.BodyMaxBytes)
	}
	if c.Upstream.TimeoutSeconds < 0 {
		return fmt.Errorf("upstream.timeout_seconds must be non-negative; got %d", c.Upstream.TimeoutSeconds)
	}
	if c.Upstream.IdleConnections < 0 {
		return fmt.Errorf("upstream.idle_connections must be non-negative; got %d", c.Upstream.IdleConnections)
	}
	if c.Server.RateLimit.Enabled && c.Server.RateLimit.RequestsPerSecond <= 0 {
		return fmt.Errorf("server.rate_limit.requests_per_second must be > 0 when rate limiting is enabled; got %v", c.Server.RateLimit.RequestsPerSecond)
	}

	// Log fields.
	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log.level must be one of: debug, info, warn, error; got %q", c.Log.Level)
	}
	switch strings.ToLower(c.Log.Format) {
	case "json", "text":
	default:
		return fmt.Errorf("log.format must be one of: json, text; got %q", c.Log.Format)
	}

	if strings.ContainsAny(c.Static.Index, `/\`) {
		return fmt.Errorf("static.index must be a bare file name; got %q", c.Static.Index)
	}

	if c.Metrics.Enabled {
		mp := c.Metrics.Path
		if mp[0] != '/' {
			return fmt.Errorf("metrics.path must start with '/'; got %q", mp)
		}
		for _, reserved := range c.ReservedRoutes() {
			if mp == reserved || strings.HasPrefix(mp, reserved+"/") {
				return fmt.Errorf("metrics.path %q conflicts with reserved route %q", mp, reserved)
			}
		}
	}

	return nil
}

// setDefaults fills zero-valued fields with sensible defaults.
// TOML cannot distinguish an explicit 0 from an omitted key, so port=0 in the
// file results in the default port (3000).
func (c *Config) setDefaults() {
	if c.Server.Host == "" {
		c.Server.Host = "0.0.0.0"
	}
	if c.Server.Port == 0 {
		c.Server.Port = 3000
	}
	if c.Server.BodyMaxBytes == 0 {
		c.Server.BodyMaxBytes = 1024 * 1024 // 1 MB
	}
	if c.Upstream.BaseURL == "" {
		c.Upstream.BaseURL = "http://localhost:8080"
	}
	if c.Upstream.Prefix == "" {
		c.Upstream.Prefix = "/api"
	}
	if c.Upstream.Rewrite == "" {
		c.Upstream.Rewrite = RewritePreserve
	}
	if c.Upstream.IdleConnections == 0 {
		c.Upstream.IdleConnections = 100
	}
	if c.Static.Dir == "" {
		c.Static.Dir = "public"
	}
	if c.Static.Index == "" {
		c.Static.Index = "index.html"
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "json"
	}
	if c.Metrics.Path == "" {
		c.Metrics.Path = "/metrics"
	}
}

// ReservedRoutes returns the route prefixes owned by the proxy itself.
func (c *Config) ReservedRoutes() []string {
	return []string{c.Upstream.Prefix, "/healthz", "/proxy/status"}
}

// findConfig returns the first config path that exists, or empty string.
func findConfig() string {
	return findConfigInPaths(configSearchPaths)
}

// findConfigInPaths returns the first path that exists on disk, or empty string.
func findConfigInPaths(paths []string) string {
	for _, p := range paths {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}

// Addr returns the server listen address as host:port.
func (c *ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// WarnPermissions logs a warning if the config file is writable by group or others.
func (c *Config) WarnPermissions(logger *slog.Logger) {
	if c.filePath == "" {
		return
	}
	info, err := os.Stat(c.filePath)
	if err != nil {
		return
	}
	if perm := info.Mode().Perm(); perm&0o022 != 0 {
		logger.Warn("config file is writable by group/others; consider chmod 644",
			"path", c.filePath,
			"mode", fmt.Sprintf("%04o", perm),
		)
	}
}
