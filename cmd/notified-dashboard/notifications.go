package main

import (
	"context"
	"os"

	"notified-dashboard/internal/dashboard"
	"notified-dashboard/internal/model"
)

// NotificationsCmd groups the notification subcommands.
type NotificationsCmd struct {
	List   NotificationsListCmd   `kong:"cmd,help='List notifications, optionally for one user.'"`
	Send   NotificationsSendCmd   `kong:"cmd,help='Send a notification.'"`
	Delete NotificationsDeleteCmd `kong:"cmd,help='Delete a notification.'"`
}

// NotificationsListCmd lists notification history.
type NotificationsListCmd struct {
	User string `kong:"short='u',help='Only show notifications for this user.'"`
}

// Run lists notifications.
func (n *NotificationsListCmd) Run(ctx context.Context, g *Globals) error {
	c, err := g.client()
	if err != nil {
		return err
	}
	r := dashboard.NewRenderer(os.Stdout)

	var items []model.Notification
	if n.User != "" {
		items, err = c.UserNotifications(ctx, n.User)
	} else {
		items, err = c.Notifications(ctx)
	}
	if err != nil {
		return report(r, dashboard.Classify("load history", "", err))
	}
	r.Activity(items)
	return nil
}

// NotificationsSendCmd sends a notification.
type NotificationsSendCmd struct {
	UserID   string   `kong:"arg,help='Recipient user ID.'"`
	Subject  string   `kong:"required,help='Subject line.'"`
	Message  string   `kong:"required,short='m',help='Message body.'"`
	Channels []string `kong:"sep=',',help='Channels, comma separated (EMAIL,WHATSAPP,SMS,APP).'"`
}

// Run validates the channels and sends.
func (n *NotificationsSendCmd) Run(ctx context.Context, g *Globals) error {
	c, err := g.client()
	if err != nil {
		return err
	}
	r := dashboard.NewRenderer(os.Stdout)

	channels, err := model.ParseSet(model.Channels, n.Channels)
	if err != nil {
		return report(r, dashboard.Status{Kind: dashboard.KindError, Message: err.Error()})
	}
	if len(channels) == 0 {
		return report(r, dashboard.Status{Kind: dashboard.KindError, Message: "Please select at least one channel"})
	}

	sent, err := c.SendNotification(ctx, &model.SendNotificationRequest{
		UserID:   n.UserID,
		Subject:  n.Subject,
		Message:  n.Message,
		Channels: channels,
	})
	if err != nil {
		return report(r, dashboard.Classify("send notification", "", err))
	}
	r.Status(dashboard.Success("Notification sent! Status: %s", sent.Status))
	return nil
}

// NotificationsDeleteCmd deletes a notification.
type NotificationsDeleteCmd struct {
	ID string `kong:"arg,help='Notification ID.'"`
}

// Run deletes the notification.
func (n *NotificationsDeleteCmd) Run(ctx context.Context, g *Globals) error {
	c, err := g.client()
	if err != nil {
		return err
	}
	r := dashboard.NewRenderer(os.Stdout)

	if err := c.DeleteNotification(ctx, n.ID); err != nil {
		return report(r, dashboard.Classify("delete notification", "Notification not found.", err))
	}
	r.Status(dashboard.Success("Notification deleted"))
	return nil
}
