package notify

import "context"

// Notifier sends operator-facing notifications for dashboard events.
type Notifier interface {
	Notify(ctx context.Context, eventType string, message string) error
}

// Event types the poller and task surfaces emit.
const (
	EventDisconnect   = "on_disconnect"
	EventReconnect    = "on_reconnect"
	EventAgentOffline = "on_agent_offline"
	EventTaskDone     = "on_task_done"
)

// Noop is a Notifier that discards everything.
type Noop struct{}

func (Noop) Notify(ctx context.Context, eventType, message string) error {
	return nil
}
