package main

import (
	"context"
	"errors"
	"os"

	"go.uber.org/multierr"

	"notified-dashboard/internal/dashboard"
	"notified-dashboard/internal/model"
)

// errReported marks a failure already shown to the operator as a status line.
var errReported = errors.New("command failed")

// report prints st and converts error statuses into errReported so the
// process exits non-zero without printing the error twice.
func report(r *dashboard.Renderer, st dashboard.Status) error {
	r.Status(st)
	if st.Kind == dashboard.KindError {
		return errReported
	}
	return nil
}

// OverviewCmd shows every admin panel.
type OverviewCmd struct{}

// Run refreshes all panels and renders whatever loaded.
func (o *OverviewCmd) Run(ctx context.Context, g *Globals) error {
	c, err := g.client()
	if err != nil {
		return err
	}
	r := dashboard.NewRenderer(os.Stdout)

	ov, err := c.Overview(ctx)
	r.Overview(ov)
	for _, e := range multierr.Errors(err) {
		r.Status(dashboard.Classify("load panel", "", e))
	}
	if err != nil {
		return errReported
	}
	return nil
}

// UsersCmd lists users.
type UsersCmd struct {
	Search string `kong:"short='s',help='Case-insensitive filter on user id, email or Telegram username.'"`
}

// Run lists users matching the search.
func (u *UsersCmd) Run(ctx context.Context, g *Globals) error {
	c, err := g.client()
	if err != nil {
		return err
	}
	r := dashboard.NewRenderer(os.Stdout)

	users, err := c.Users(ctx)
	if err != nil {
		return report(r, dashboard.Classify("load users", "", err))
	}
	r.Users(dashboard.FilterUsers(users, u.Search))
	return nil
}

// ActivityCmd shows recent notifications.
type ActivityCmd struct {
	Limit int `kong:"short='n',default='30',help='Number of entries to show.'"`
}

// Run shows the recent activity feed.
func (a *ActivityCmd) Run(ctx context.Context, g *Globals) error {
	c, err := g.client()
	if err != nil {
		return err
	}
	r := dashboard.NewRenderer(os.Stdout)

	items, err := c.RecentActivity(ctx, a.Limit)
	if err != nil {
		return report(r, dashboard.Classify("load activity", "", err))
	}
	r.Activity(items)
	return nil
}

// ScraperCmd shows scraper categories and their article counts.
type ScraperCmd struct{}

// Run lists article counts per category.
func (s *ScraperCmd) Run(ctx context.Context, g *Globals) error {
	c, err := g.client()
	if err != nil {
		return err
	}
	r := dashboard.NewRenderer(os.Stdout)

	if err := c.Health(ctx); err != nil {
		r.Status(dashboard.Classify("check scraper health", "", err))
	}

	categories, err := c.Categories(ctx)
	if err != nil {
		return report(r, dashboard.Classify("load categories", "", err))
	}

	counts := make([]model.ArticleCount, 0, len(categories))
	for _, category := range categories {
		count, err := c.ArticleCount(ctx, category)
		if err != nil {
			continue
		}
		counts = append(counts, *count)
	}
	r.ArticleCounts(counts)
	return nil
}

// ScrapeCmd triggers a scraping run.
type ScrapeCmd struct{}

// Run triggers scraping.
func (s *ScrapeCmd) Run(ctx context.Context, g *Globals) error {
	c, err := g.client()
	if err != nil {
		return err
	}
	r := dashboard.NewRenderer(os.Stdout)

	if err := c.TriggerScrape(ctx); err != nil {
		return report(r, dashboard.Classify("trigger scraping", "", err))
	}
	r.Status(dashboard.Success("Scraping triggered successfully! Check logs for progress."))
	return nil
}
