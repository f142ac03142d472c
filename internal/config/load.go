package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Load initializes configuration from file and environment variables.
// Precedence: flags (bound by the CLI) > CLAWBOARD_* env vars > config
// file > defaults.
func Load(cfgFile string) {
	// explicit .env loading; a missing file is fine
	_ = godotenv.Load()

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName("config")
	}

	viper.SetEnvPrefix("CLAWBOARD")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	// Gateway
	viper.SetDefault("gateway.url", "http://127.0.0.1:18789")
	viper.SetDefault("gateway.token", "")

	// Refresh loop
	viper.SetDefault("poll_interval", "30s")
	viper.SetDefault("message_limit", 5)

	// Stores
	viper.SetDefault("store.type", "sqlite")
	viper.SetDefault("store.path", ".clawboard.db")
	viper.SetDefault("logstore.type", "memory")

	// Servers
	viper.SetDefault("port", 8420)
	viper.SetDefault("metrics_port", 2112)

	viper.SetDefault("verbose", false)
	viper.SetDefault("mock", false)

	// Notifications
	slackEnabled := os.Getenv("SLACK_BOT_USER_TOKEN") != "" || os.Getenv("SLACK_WEBHOOK_URL") != ""
	viper.SetDefault("notifications.slack.enabled", slackEnabled)
	viper.SetDefault("notifications.slack.channel", "#general")
	viper.SetDefault("notifications.discord.enabled", os.Getenv("DISCORD_WEBHOOK_URL") != "")
	viper.SetDefault("notifications.events.on_disconnect", true)
	viper.SetDefault("notifications.events.on_reconnect", true)
	viper.SetDefault("notifications.events.on_agent_offline", true)
	viper.SetDefault("notifications.events.on_task_done", true)

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}
