package dashboard

import (
	"fmt"
	"io"
	"maps"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/dustin/go-humanize"
	"github.com/fatih/color"

	"notified-dashboard/internal/model"
)

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39")).
			Padding(0, 1)

	cellStyle = lipgloss.NewStyle().Padding(0, 1)

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Padding(0, 1)

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39"))

	borderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

var (
	successColor = color.New(color.FgGreen)
	infoColor    = color.New(color.FgCyan)
	errorColor   = color.New(color.FgRed)
)

// Renderer writes dashboard views as terminal text. Now is the reference for
// relative times.
type Renderer struct {
	W   io.Writer
	Now func() time.Time
}

// NewRenderer returns a Renderer writing to w.
func NewRenderer(w io.Writer) *Renderer {
	return &Renderer{W: w, Now: time.Now}
}

// Status prints a colored one-line status.
func (r *Renderer) Status(s Status) {
	switch s.Kind {
	case KindSuccess:
		_, _ = successColor.Fprintln(r.W, "✓ "+s.Message)
	case KindError:
		_, _ = errorColor.Fprintln(r.W, "✗ "+s.Message)
	default:
		_, _ = infoColor.Fprintln(r.W, "• "+s.Message)
	}
}

// Overview prints every panel that loaded.
func (r *Renderer) Overview(ov *Overview) {
	if ov.Online {
		r.Status(Success("All Systems Online"))
	} else {
		r.Status(Status{Kind: KindError, Message: "Some Services Offline"})
	}

	if u := ov.Users; u != nil {
		r.section("Users")
		r.table([]string{"Total", "Telegram", "Email", "Never notified"}, [][]string{{
			humanize.Comma(u.TotalUsers),
			humanize.Comma(u.TelegramUsers),
			humanize.Comma(u.EmailUsers),
			humanize.Comma(u.NeverNotifiedUsers),
		}})
		r.distribution("Categories", u.CategoryDistribution, byCountDesc)
		r.distribution("Frequency", u.FrequencyDistribution, byCountDesc)
	}

	if n := ov.Notifications; n != nil {
		r.section("Notifications")
		var likes, dislikes int64
		if n.Reactions != nil {
			likes, dislikes = n.Reactions.Likes, n.Reactions.Dislikes
		}
		r.table([]string{"Total", "Last 24h", "Sent", "Pending", "Failed", "Likes", "Dislikes"}, [][]string{{
			humanize.Comma(n.TotalNotifications),
			humanize.Comma(n.SentLast24Hours),
			humanize.Comma(n.ByStatus["SENT"]),
			humanize.Comma(n.ByStatus["PENDING"]),
			humanize.Comma(n.ByStatus["FAILED"]),
			humanize.Comma(likes),
			humanize.Comma(dislikes),
		}})
		r.distribution("By channel", n.ByChannel, byCountDesc)
		r.distribution("Daily", n.DailyBreakdown, byKey)
	}

	if ov.Categories != nil {
		r.section(fmt.Sprintf("Scraper (%d categories)", len(ov.Categories)))
		r.ArticleCounts(ov.ArticleCounts)
	}
}

// ArticleCounts prints per-category article counts.
func (r *Renderer) ArticleCounts(counts []model.ArticleCount) {
	rows := make([][]string, 0, len(counts))
	for _, c := range counts {
		rows = append(rows, []string{c.Category, humanize.Comma(c.Count)})
	}
	r.table([]string{"Category", "Articles"}, rows)
}

// Users prints the user list.
func (r *Renderer) Users(users []model.UserSummary) {
	if len(users) == 0 {
		r.Status(Info("No users found"))
		return
	}

	rows := make([][]string, 0, len(users))
	for _, u := range users {
		telegram := "-"
		if u.HasTelegram {
			telegram = orDash(u.TelegramUsername)
			if u.TelegramUsername == "" {
				telegram = "Connected"
			}
		}
		rows = append(rows, []string{
			u.UserID,
			orDash(u.Email),
			telegram,
			orDash(strings.Join(u.Categories, ", ")),
			orDash(u.FrequencyLabel),
			r.since(u.LastNotificationSent, "Never"),
		})
	}
	r.table([]string{"User", "Email", "Telegram", "Categories", "Frequency", "Last notified"}, rows)
}

// Activity prints a notification feed, used for recent activity and history.
func (r *Renderer) Activity(items []model.Notification) {
	if len(items) == 0 {
		r.Status(Info("No recent activity"))
		return
	}

	rows := make([][]string, 0, len(items))
	for _, n := range items {
		subject := n.Subject
		if subject == "" {
			subject = "Notification"
		}
		channels := "Unknown"
		if len(n.Channels) > 0 {
			channels = joinEnums(n.Channels)
		}
		rows = append(rows, []string{
			n.ID,
			subject,
			n.UserID,
			channels,
			orDash(n.Status),
			r.since(n.SentAt, "-"),
			reaction(n.Reaction),
		})
	}
	r.table([]string{"ID", "Subject", "To", "Channels", "Status", "Sent", "Reaction"}, rows)
}

// Preferences prints stored preferences.
func (r *Renderer) Preferences(prefs []model.UserPreference) {
	if len(prefs) == 0 {
		r.Status(Info("No preferences found"))
		return
	}

	rows := make([][]string, 0, len(prefs))
	for _, p := range prefs {
		rows = append(rows, []string{
			p.UserID,
			orDash(p.Email),
			orDash(p.PhoneNumber),
			orDash(joinEnums(p.Preferences)),
			orDash(joinEnums(p.EnabledChannels)),
		})
	}
	r.table([]string{"User", "Email", "Phone", "Categories", "Channels"}, rows)
}

func (r *Renderer) section(title string) {
	_, _ = fmt.Fprintln(r.W)
	_, _ = fmt.Fprintln(r.W, titleStyle.Render(title))
}

func (r *Renderer) table(headers []string, rows [][]string) {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(borderStyle).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		}).
		Headers(headers...).
		Rows(rows...)
	_, _ = fmt.Fprintln(r.W, t.Render())
}

// distribution prints a label/count breakdown; empty maps print nothing.
func (r *Renderer) distribution(title string, m map[string]int64, order func(map[string]int64) []string) {
	if len(m) == 0 {
		return
	}
	_, _ = fmt.Fprintln(r.W, dimStyle.Render(title))
	rows := make([][]string, 0, len(m))
	for _, k := range order(m) {
		rows = append(rows, []string{k, humanize.Comma(m[k])})
	}
	r.table([]string{"", "Count"}, rows)
}

func (r *Renderer) since(ts *model.Timestamp, zero string) string {
	if ts == nil || ts.IsZero() {
		return zero
	}
	return humanize.RelTime(ts.Time, r.Now(), "ago", "from now")
}

func byKey(m map[string]int64) []string {
	return slices.Sorted(maps.Keys(m))
}

func byCountDesc(m map[string]int64) []string {
	keys := byKey(m)
	slices.SortStableFunc(keys, func(a, b string) int {
		switch {
		case m[a] > m[b]:
			return -1
		case m[a] < m[b]:
			return 1
		}
		return 0
	})
	return keys
}

func joinEnums[T ~string](vals []T) string {
	parts := make([]string, len(vals))
	for i, v := range vals {
		parts[i] = string(v)
	}
	return strings.Join(parts, ", ")
}

func reaction(r string) string {
	switch strings.ToLower(r) {
	case "like":
		return "👍"
	case "dislike":
		return "👎"
	case "":
		return ""
	}
	return r
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
