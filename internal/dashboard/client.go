// Package dashboard is a typed client for the admin dashboard's API. It talks
// to the dashboard proxy, never to the gateway directly, so every call takes
// the same path a browser would.
package dashboard

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"notified-dashboard/internal/model"
)

// maxErrorBody bounds how much of a failed response is kept in an APIError.
const maxErrorBody = 4 << 10

// APIError is returned for any non-2xx response.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("api: %d %s", e.StatusCode, http.StatusText(e.StatusCode))
	}
	return fmt.Sprintf("api: %d: %s", e.StatusCode, e.Message)
}

// IsNotFound reports whether err is an APIError with status 404.
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound
}

// Client calls the dashboard API through the proxy.
type Client struct {
	base   string
	prefix string
	http   *http.Client
}

// NewClient creates a Client for the proxy at baseURL whose API routes live
// under prefix. A zero timeout means no client-side limit.
func NewClient(baseURL, prefix string, timeout time.Duration) (*Client, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse dashboard url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("dashboard url %q: scheme must be http or https", baseURL)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("dashboard url %q: missing host", baseURL)
	}
	if prefix != "" && !strings.HasPrefix(prefix, "/") {
		return nil, fmt.Errorf("api prefix %q must start with /", prefix)
	}

	return &Client{
		base:   strings.TrimSuffix(u.String(), "/"),
		prefix: strings.TrimSuffix(prefix, "/"),
		http:   &http.Client{Timeout: timeout},
	}, nil
}

// Health reports whether the scraper service answers through the proxy.
func (c *Client) Health(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, "/scraper/health", nil, nil)
}

// UserStats fetches aggregate user statistics.
func (c *Client) UserStats(ctx context.Context) (*model.UserStats, error) {
	var out model.UserStats
	if err := c.do(ctx, http.MethodGet, "/admin/users/stats/users", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Users lists per-user summaries.
func (c *Client) Users(ctx context.Context) ([]model.UserSummary, error) {
	var out []model.UserSummary
	if err := c.do(ctx, http.MethodGet, "/admin/users/stats/users/list", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// NotificationStats fetches aggregate notification statistics.
func (c *Client) NotificationStats(ctx context.Context) (*model.NotificationStats, error) {
	var out model.NotificationStats
	if err := c.do(ctx, http.MethodGet, "/admin/notifications/stats/notifications", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// RecentActivity lists the most recent notifications, newest first.
func (c *Client) RecentActivity(ctx context.Context, limit int) ([]model.Notification, error) {
	path := "/admin/notifications/stats/notifications/recent"
	if limit > 0 {
		path += "?limit=" + strconv.Itoa(limit)
	}
	var out []model.Notification
	if err := c.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Categories lists the categories the scraper knows about.
func (c *Client) Categories(ctx context.Context) ([]string, error) {
	var out []string
	if err := c.do(ctx, http.MethodGet, "/scraper/categories", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ArticleCount returns the number of stored articles for category.
func (c *Client) ArticleCount(ctx context.Context, category string) (*model.ArticleCount, error) {
	var out model.ArticleCount
	if err := c.do(ctx, http.MethodGet, "/scraper/articles/"+url.PathEscape(category)+"/count", nil, &out); err != nil {
		return nil, err
	}
	if out.Category == "" {
		out.Category = category
	}
	return &out, nil
}

// TriggerScrape starts a scraping run. The run itself is asynchronous.
func (c *Client) TriggerScrape(ctx context.Context) error {
	return c.do(ctx, http.MethodPost, "/scraper/scrape", nil, nil)
}

// Preferences lists every stored preference.
func (c *Client) Preferences(ctx context.Context) ([]model.UserPreference, error) {
	var out []model.UserPreference
	if err := c.do(ctx, http.MethodGet, "/preferences", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Preference fetches one user's preference.
func (c *Client) Preference(ctx context.Context, userID string) (*model.UserPreference, error) {
	var out model.UserPreference
	if err := c.do(ctx, http.MethodGet, "/preferences/"+url.PathEscape(userID), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreatePreference stores a new preference.
func (c *Client) CreatePreference(ctx context.Context, p *model.UserPreference) (*model.UserPreference, error) {
	var out model.UserPreference
	if err := c.do(ctx, http.MethodPost, "/preferences", p, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdatePreference replaces the preference of p.UserID.
func (c *Client) UpdatePreference(ctx context.Context, p *model.UserPreference) (*model.UserPreference, error) {
	var out model.UserPreference
	if err := c.do(ctx, http.MethodPut, "/preferences/"+url.PathEscape(p.UserID), p, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeletePreference removes a user's preference.
func (c *Client) DeletePreference(ctx context.Context, userID string) error {
	return c.do(ctx, http.MethodDelete, "/preferences/"+url.PathEscape(userID), nil, nil)
}

// SendNotification sends a notification and returns it with its status.
func (c *Client) SendNotification(ctx context.Context, req *model.SendNotificationRequest) (*model.Notification, error) {
	var out model.Notification
	if err := c.do(ctx, http.MethodPost, "/notifications", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Notifications lists every notification.
func (c *Client) Notifications(ctx context.Context) ([]model.Notification, error) {
	var out []model.Notification
	if err := c.do(ctx, http.MethodGet, "/notifications", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// UserNotifications lists the notification history of one user.
func (c *Client) UserNotifications(ctx context.Context, userID string) ([]model.Notification, error) {
	var out []model.Notification
	if err := c.do(ctx, http.MethodGet, "/notifications/user/"+url.PathEscape(userID), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// DeleteNotification removes a notification by id.
func (c *Client) DeleteNotification(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/notifications/"+url.PathEscape(id), nil, nil)
}

// do issues one request under the API prefix. in is JSON-encoded when non-nil;
// out is decoded from the response when non-nil and the body is not empty.
func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode %s %s: %w", method, path, err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.base+c.prefix+path, body)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return &APIError{StatusCode: resp.StatusCode, Message: errorMessage(raw)}
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read %s %s: %w", method, path, err)
	}
	if len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode %s %s: %w", method, path, err)
	}
	return nil
}

// errorMessage extracts a readable message from an error body. Gateway
// services use "message"; the proxy uses "error" plus "details".
func errorMessage(raw []byte) string {
	var body struct {
		Error   string `json:"error"`
		Details string `json:"details"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(raw, &body); err == nil {
		switch {
		case body.Error != "" && body.Details != "":
			return body.Error + ": " + body.Details
		case body.Error != "":
			return body.Error
		case body.Message != "":
			return body.Message
		}
	}
	return strings.TrimSpace(string(raw))
}
