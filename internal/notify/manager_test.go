package notify

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManagerDisabledEventsAreDropped(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	var hits atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
	}))
	defer server.Close()

	t.Setenv("SLACK_BOT_USER_TOKEN", "")
	t.Setenv("SLACK_WEBHOOK_URL", server.URL)
	viper.Set("notifications.slack.enabled", true)
	viper.Set("notifications.events."+EventDisconnect, true)
	viper.Set("notifications.events."+EventTaskDone, false)

	m := NewManager(nil)
	require.NoError(t, m.Notify(context.Background(), EventTaskDone, "done"))
	assert.EqualValues(t, 0, hits.Load())

	require.NoError(t, m.Notify(context.Background(), EventDisconnect, "down"))
	assert.EqualValues(t, 1, hits.Load())
}

func TestManagerNoProvidersIsNoop(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	viper.Set("notifications.events."+EventDisconnect, true)
	m := NewManager(nil)
	assert.NoError(t, m.Notify(context.Background(), EventDisconnect, "down"))
}

func TestManagerProviderFailureIsSwallowed(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	t.Setenv("SLACK_BOT_USER_TOKEN", "")
	t.Setenv("DISCORD_WEBHOOK_URL", server.URL)
	viper.Set("notifications.discord.enabled", true)
	viper.Set("notifications.events."+EventReconnect, true)

	logged := false
	m := NewManager(func(string, ...any) { logged = true })
	assert.NoError(t, m.Notify(context.Background(), EventReconnect, "up"))
	assert.True(t, logged)
}
