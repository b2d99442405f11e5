// Package assets serves the dashboard's static files from a local directory.
package assets

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"

	securejoin "github.com/cyphar/filepath-securejoin"
	"github.com/labstack/echo/v4"

	"notified-dashboard/internal/config"
)

// Server resolves request paths inside the static root. Resolution follows
// symlinks but never leaves the root.
type Server struct {
	root   string
	index  string
	logger *slog.Logger
}

// NewServer creates a Server for cfg.Static. A missing directory is not an
// error; requests are answered with 404 until it appears.
func NewServer(cfg *config.Config, logger *slog.Logger) (*Server, error) {
	root, err := filepath.Abs(cfg.Static.Dir)
	if err != nil {
		return nil, fmt.Errorf("static dir %q: %w", cfg.Static.Dir, err)
	}

	s := &Server{
		root:   root,
		index:  cfg.Static.Index,
		logger: logger.With("component", "assets"),
	}
	if info, err := os.Stat(root); err != nil || !info.IsDir() {
		s.logger.Warn("static dir not found; dashboard pages will 404", "dir", root)
	}
	return s, nil
}

// Resolve maps a URL path to a regular file inside the root. Directories
// resolve to their index file.
func (s *Server) Resolve(urlPath string) (string, error) {
	p, err := securejoin.SecureJoin(s.root, filepath.FromSlash(urlPath))
	if err != nil {
		return "", fmt.Errorf("resolve %q: %w", urlPath, err)
	}

	info, err := os.Stat(p)
	if err != nil {
		return "", err
	}
	if info.IsDir() {
		p = filepath.Join(p, s.index)
		if info, err = os.Stat(p); err != nil {
			return "", err
		}
	}
	if !info.Mode().IsRegular() {
		return "", fs.ErrNotExist
	}
	return p, nil
}

// Handle serves the file for the request path.
func (s *Server) Handle(c echo.Context) error {
	p, err := s.Resolve(c.Request().URL.Path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			s.logger.Error("resolving static file", "err", err, "path", c.Request().URL.Path)
		}
		return c.JSON(http.StatusNotFound, map[string]string{
			"error": "not found",
		})
	}
	return c.File(p)
}
