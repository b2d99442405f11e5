package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alecthomas/kong"

	"notified-dashboard/internal/config"
	"notified-dashboard/internal/dashboard"
)

// Set by goreleaser ldflags.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// Globals are flags shared by the terminal dashboard commands.
type Globals struct {
	URL     string           `kong:"help='Dashboard server URL.',default='http://localhost:3000',env='DASHBOARD_URL'"`
	Prefix  string           `kong:"name='api-prefix',help='Path prefix the server proxies to the gateway.',default='/api',env='DASHBOARD_API_PREFIX'"`
	Timeout time.Duration    `kong:"help='Per-request timeout for dashboard commands.',default='30s'"`
	Version kong.VersionFlag `kong:"short='v',help='Print version and exit.'"`
}

func (g *Globals) client() (*dashboard.Client, error) {
	return dashboard.NewClient(g.URL, g.Prefix, g.Timeout)
}

type cli struct {
	Globals

	Serve         ServeCmd         `kong:"cmd,default='withargs',help='Run the dashboard server (default).'"`
	Overview      OverviewCmd      `kong:"cmd,help='Show system status and statistics.'"`
	Users         UsersCmd         `kong:"cmd,help='List users.'"`
	Activity      ActivityCmd      `kong:"cmd,help='Show recent notification activity.'"`
	Scraper       ScraperCmd       `kong:"cmd,help='Show article counts per scraper category.'"`
	Scrape        ScrapeCmd        `kong:"cmd,help='Trigger a scraping run.'"`
	Preferences   PreferencesCmd   `kong:"cmd,help='Manage notification preferences.'"`
	Notifications NotificationsCmd `kong:"cmd,help='Send and inspect notifications.'"`
}

// ServeCmd runs the HTTP server.
type ServeCmd struct {
	config.CLI `kong:"embed"`
}

// Run starts the server and blocks until it is stopped.
func (s *ServeCmd) Run() error {
	return serve(&s.CLI)
}

func main() {
	var c cli
	kctx := kong.Parse(&c,
		kong.Name("notified-dashboard"),
		kong.Description("Admin dashboard and API proxy for the notification platform."),
		kong.UsageOnError(),
		kong.Vars{"version": fmt.Sprintf("%s (%s, %s)", version, commit, date)},
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	kctx.BindTo(ctx, (*context.Context)(nil))
	err := kctx.Run(&c.Globals)
	stop()
	if errors.Is(err, errReported) {
		os.Exit(1)
	}
	kctx.FatalIfErrorf(err)
}
