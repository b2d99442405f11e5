package dashboard

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"go.uber.org/multierr"

	"notified-dashboard/internal/model"
)

// Overview is one refresh of the admin dashboard's panels. Fields of panels
// that failed are left nil.
type Overview struct {
	Online        bool
	Users         *model.UserStats
	Notifications *model.NotificationStats
	Categories    []string
	ArticleCounts []model.ArticleCount
}

// Overview refreshes every panel concurrently. Panels fail independently: the
// returned Overview holds whatever loaded, and the error combines the panel
// failures. Article counts that fail are skipped without error.
func (c *Client) Overview(ctx context.Context) (*Overview, error) {
	var (
		ov   Overview
		mu   sync.Mutex
		errs error
		wg   sync.WaitGroup
	)

	fail := func(panel string, err error) {
		mu.Lock()
		defer mu.Unlock()
		errs = multierr.Append(errs, fmt.Errorf("%s: %w", panel, err))
	}

	wg.Add(4)
	go func() {
		defer wg.Done()
		// An unreachable scraper is a panel state, not a failure.
		online := c.Health(ctx) == nil
		mu.Lock()
		ov.Online = online
		mu.Unlock()
	}()
	go func() {
		defer wg.Done()
		stats, err := c.UserStats(ctx)
		if err != nil {
			fail("user stats", err)
			return
		}
		mu.Lock()
		ov.Users = stats
		mu.Unlock()
	}()
	go func() {
		defer wg.Done()
		stats, err := c.NotificationStats(ctx)
		if err != nil {
			fail("notification stats", err)
			return
		}
		mu.Lock()
		ov.Notifications = stats
		mu.Unlock()
	}()
	go func() {
		defer wg.Done()
		categories, err := c.Categories(ctx)
		if err != nil {
			fail("scraper categories", err)
			return
		}
		counts := c.articleCounts(ctx, categories)
		mu.Lock()
		ov.Categories = categories
		ov.ArticleCounts = counts
		mu.Unlock()
	}()
	wg.Wait()

	return &ov, errs
}

// articleCounts fetches counts for every category concurrently and returns
// the successful ones in category order.
func (c *Client) articleCounts(ctx context.Context, categories []string) []model.ArticleCount {
	results := make([]*model.ArticleCount, len(categories))

	var wg sync.WaitGroup
	for i, category := range categories {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if count, err := c.ArticleCount(ctx, category); err == nil {
				results[i] = count
			}
		}()
	}
	wg.Wait()

	counts := make([]model.ArticleCount, 0, len(categories))
	for _, r := range results {
		if r != nil {
			counts = append(counts, *r)
		}
	}
	return counts
}

// FilterUsers returns the users whose id, email or Telegram username contains
// search, case-insensitively. An empty search matches everyone.
func FilterUsers(users []model.UserSummary, search string) []model.UserSummary {
	search = strings.ToLower(strings.TrimSpace(search))
	if search == "" {
		return users
	}

	var out []model.UserSummary
	for _, u := range users {
		if strings.Contains(strings.ToLower(u.UserID), search) ||
			strings.Contains(strings.ToLower(u.Email), search) ||
			strings.Contains(strings.ToLower(u.TelegramUsername), search) {
			out = append(out, u)
		}
	}
	return out
}
