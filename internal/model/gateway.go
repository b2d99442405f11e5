package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"
)

// timestampLayouts are tried in order; the gateway emits zone-less local times.
var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04",
}

// Timestamp is a gateway date-time that may or may not carry a zone offset.
type Timestamp struct {
	time.Time
}

// UnmarshalJSON accepts RFC 3339 and zone-less ISO-8601 strings, and null.
func (t *Timestamp) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("timestamp: %w", err)
	}
	if s == "" {
		return nil
	}
	for _, layout := range timestampLayouts {
		if parsed, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			t.Time = parsed
			return nil
		}
	}
	return fmt.Errorf("timestamp: unrecognized format %q", s)
}

// UserPreference is a user's notification preference record.
type UserPreference struct {
	UserID          string     `json:"userId"`
	Email           string     `json:"email,omitempty"`
	PhoneNumber     string     `json:"phoneNumber,omitempty"`
	Preferences     []Category `json:"preferences"`
	EnabledChannels []Channel  `json:"enabledChannels"`
}

// SendNotificationRequest is the body of POST /api/notifications.
type SendNotificationRequest struct {
	UserID   string    `json:"userId"`
	Subject  string    `json:"subject"`
	Message  string    `json:"message"`
	Channels []Channel `json:"channels"`
}

// Notification is a sent or pending notification.
type Notification struct {
	ID       string     `json:"id"`
	UserID   string     `json:"userId"`
	Subject  string     `json:"subject,omitempty"`
	Message  string     `json:"message,omitempty"`
	Channels []Channel  `json:"channels,omitempty"`
	Status   string     `json:"status,omitempty"`
	SentAt   *Timestamp `json:"sentAt,omitempty"`
	Reaction string     `json:"reaction,omitempty"`
}

// UserStats is the aggregate returned by GET /api/admin/users/stats/users.
type UserStats struct {
	TotalUsers            int64            `json:"totalUsers"`
	TelegramUsers         int64            `json:"telegramUsers"`
	EmailUsers            int64            `json:"emailUsers"`
	NeverNotifiedUsers    int64            `json:"neverNotifiedUsers"`
	CategoryDistribution  map[string]int64 `json:"categoryDistribution,omitempty"`
	FrequencyDistribution map[string]int64 `json:"frequencyDistribution,omitempty"`
}

// UserSummary is one row of GET /api/admin/users/stats/users/list.
type UserSummary struct {
	UserID               string     `json:"userId"`
	Email                string     `json:"email,omitempty"`
	HasTelegram          bool       `json:"hasTelegram"`
	TelegramUsername     string     `json:"telegramUsername,omitempty"`
	Categories           []string   `json:"categories,omitempty"`
	FrequencyMinutes     int        `json:"frequencyMinutes,omitempty"`
	FrequencyLabel       string     `json:"frequencyLabel,omitempty"`
	LastNotificationSent *Timestamp `json:"lastNotificationSent,omitempty"`
}

// Reactions counts user feedback on notifications.
type Reactions struct {
	Likes    int64 `json:"likes"`
	Dislikes int64 `json:"dislikes"`
}

// NotificationStats is the aggregate returned by
// GET /api/admin/notifications/stats/notifications.
type NotificationStats struct {
	TotalNotifications int64            `json:"totalNotifications"`
	SentLast24Hours    int64            `json:"sentLast24Hours"`
	SentLast7Days      int64            `json:"sentLast7Days"`
	Reactions          *Reactions       `json:"reactions,omitempty"`
	ByStatus           map[string]int64 `json:"byStatus,omitempty"`
	ByChannel          map[string]int64 `json:"byChannel,omitempty"`
	DailyBreakdown     map[string]int64 `json:"dailyBreakdown,omitempty"`
}

// ArticleCount is the response of GET /api/scraper/articles/{category}/count.
type ArticleCount struct {
	Category string `json:"category"`
	Count    int64  `json:"count"`
}
