package main

import (
	"context"
	"errors"
	"time"

	"github.com/spf13/viper"

	"clawboard/internal/gateway"
	"clawboard/internal/logstore"
	"clawboard/internal/poller"
	"clawboard/internal/taskstore"
)

var errGatewayUnreachable = errors.New("gateway unreachable; is it running? (try --mock)")

// newSource picks the gateway backing for a command: the real HTTP
// client, or canned data when --mock is set.
func newSource() gateway.Source {
	if viper.GetBool("mock") {
		return gateway.NewMockSource()
	}
	return gateway.NewClient(viper.GetString("gateway.url"), viper.GetString("gateway.token"))
}

func newTaskStore() (taskstore.Store, error) {
	return taskstore.New(taskstore.Config{
		Type:             viper.GetString("store.type"),
		ConnectionString: viper.GetString("store.path"),
	})
}

func newLogStore() (logstore.Store, error) {
	return logstore.New(logstore.Config{
		Type: viper.GetString("logstore.type"),
		Path: viper.GetString("store.path"),
	})
}

func pollConfig() poller.Config {
	return poller.Config{
		Interval:     viper.GetDuration("poll_interval"),
		MessageLimit: viper.GetInt("message_limit"),
	}
}

// fetchOnce runs a single refresh against the gateway and returns the
// resulting snapshot. Used by the one-shot commands (status, logs, cron).
func fetchOnce(ctx context.Context, logs logstore.Store) (poller.Snapshot, error) {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	p := poller.New(newSource(), logs, pollConfig(), nil, nil)
	p.Refresh(ctx)
	snap := p.Snapshot()
	if !snap.Connected && !viper.GetBool("mock") {
		return snap, errGatewayUnreachable
	}
	return snap, nil
}
