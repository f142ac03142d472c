package notify

import (
	"context"
	"os"

	"github.com/slack-go/slack"
	"github.com/spf13/viper"
)

// Manager routes dashboard events to the configured providers. Slack
// goes through the API client when a bot token is present, falling
// back to an incoming webhook; Discord is webhook-only.
type Manager struct {
	slackClient  *slack.Client
	slackChannel string
	slackHook    *WebhookNotifier
	discordHook  *WebhookNotifier

	logger func(string, ...any)
}

// NewManager builds a manager from viper configuration and provider
// credentials in the environment.
func NewManager(logger func(string, ...any)) *Manager {
	m := &Manager{logger: logger}
	m.initSlack()
	m.initDiscord()
	return m
}

func (m *Manager) initSlack() {
	if !viper.GetBool("notifications.slack.enabled") {
		return
	}
	if token := os.Getenv("SLACK_BOT_USER_TOKEN"); token != "" {
		m.slackClient = slack.New(token)
		m.slackChannel = viper.GetString("notifications.slack.channel")
		return
	}
	if url := os.Getenv("SLACK_WEBHOOK_URL"); url != "" {
		m.slackHook = NewSlackWebhook(url)
		return
	}
	if m.logger != nil {
		m.logger("Warning: slack notifications enabled but neither SLACK_BOT_USER_TOKEN nor SLACK_WEBHOOK_URL is set")
	}
}

func (m *Manager) initDiscord() {
	if !viper.GetBool("notifications.discord.enabled") {
		return
	}
	if url := os.Getenv("DISCORD_WEBHOOK_URL"); url != "" {
		m.discordHook = NewDiscordWebhook(url)
		return
	}
	if m.logger != nil {
		m.logger("Warning: discord notifications enabled but DISCORD_WEBHOOK_URL is not set")
	}
}

// Notify delivers the message to every configured provider, if the
// event is enabled in configuration. Provider failures are logged, not
// returned; a notification must never break a refresh tick.
func (m *Manager) Notify(ctx context.Context, eventType, message string) error {
	if !m.eventEnabled(eventType) {
		return nil
	}

	if m.slackClient != nil {
		channel := m.slackChannel
		if channel == "" {
			channel = "#general"
		}
		if _, _, err := m.slackClient.PostMessageContext(ctx, channel, slack.MsgOptionText(message, false)); err != nil && m.logger != nil {
			m.logger("Failed to send Slack notification: %v", err)
		}
	} else if m.slackHook != nil {
		if err := m.slackHook.Send(ctx, message); err != nil && m.logger != nil {
			m.logger("Failed to send Slack webhook notification: %v", err)
		}
	}

	if m.discordHook != nil {
		if err := m.discordHook.Send(ctx, message); err != nil && m.logger != nil {
			m.logger("Failed to send Discord notification: %v", err)
		}
	}
	return nil
}

func (m *Manager) eventEnabled(eventType string) bool {
	slackOn := viper.GetBool("notifications.slack.enabled")
	discordOn := viper.GetBool("notifications.discord.enabled")
	if !slackOn && !discordOn {
		return false
	}
	return viper.GetBool("notifications.events." + eventType)
}
