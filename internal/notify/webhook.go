package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// WebhookNotifier posts plain-text messages to a Slack-compatible
// incoming webhook. Used when no bot token is configured.
type WebhookNotifier struct {
	WebhookURL string
	Client     *http.Client

	// field selects the JSON key ("text" for Slack, "content" for
	// Discord-style webhooks).
	field string
}

// NewSlackWebhook creates a webhook notifier speaking Slack's payload
// shape.
func NewSlackWebhook(webhookURL string) *WebhookNotifier {
	return &WebhookNotifier{
		WebhookURL: webhookURL,
		Client:     &http.Client{Timeout: 10 * time.Second},
		field:      "text",
	}
}

// NewDiscordWebhook creates a webhook notifier speaking Discord's
// payload shape.
func NewDiscordWebhook(webhookURL string) *WebhookNotifier {
	return &WebhookNotifier{
		WebhookURL: webhookURL,
		Client:     &http.Client{Timeout: 10 * time.Second},
		field:      "content",
	}
}

// Send posts one message to the webhook.
func (n *WebhookNotifier) Send(ctx context.Context, message string) error {
	if n.WebhookURL == "" {
		return fmt.Errorf("webhook URL is not configured")
	}

	body, err := json.Marshal(map[string]string{n.field: message})
	if err != nil {
		return fmt.Errorf("failed to marshal webhook payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.WebhookURL, bytes.NewBuffer(body))
	if err != nil {
		return fmt.Errorf("failed to create webhook request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	client := n.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send webhook notification: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("webhook notification failed with status: %s", resp.Status)
	}
	return nil
}
