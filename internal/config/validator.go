package config

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/spf13/viper"
)

// ValidateConfig checks configuration values after viper has loaded
// them, collecting every problem instead of stopping at the first.
func ValidateConfig() error {
	var errs []string

	if raw := viper.GetString("gateway.url"); raw != "" {
		u, err := url.Parse(raw)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") {
			errs = append(errs, fmt.Sprintf("gateway.url must be an http(s) URL, got: %s", raw))
		}
	}

	if d := viper.GetDuration("poll_interval"); d <= 0 {
		errs = append(errs, fmt.Sprintf("poll_interval must be positive, got: %v", viper.Get("poll_interval")))
	}

	if n := viper.GetInt("message_limit"); n < 0 {
		errs = append(errs, fmt.Sprintf("message_limit must not be negative, got: %d", n))
	}

	for _, key := range []string{"port", "metrics_port"} {
		if port := viper.GetInt(key); port < 1 || port > 65535 {
			errs = append(errs, fmt.Sprintf("%s must be between 1 and 65535, got: %d", key, port))
		}
	}

	switch t := strings.ToLower(viper.GetString("store.type")); t {
	case "", "sqlite", "sqlite3", "postgres", "postgresql":
	default:
		errs = append(errs, fmt.Sprintf("store.type must be sqlite or postgres, got: %s", t))
	}

	switch t := strings.ToLower(viper.GetString("logstore.type")); t {
	case "", "memory", "sqlite", "sqlite3":
	default:
		errs = append(errs, fmt.Sprintf("logstore.type must be memory or sqlite, got: %s", t))
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed:\n  %s", strings.Join(errs, "\n  "))
	}
	return nil
}
