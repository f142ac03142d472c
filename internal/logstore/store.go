// Package logstore is the locally maintained activity log buffer:
// entries added by hand (task mutations, operator notes) rather than
// derived from session traffic. Stores are explicit instances injected
// into whatever needs them; there is no package-level singleton.
package logstore

import (
	"time"

	"clawboard/internal/model"
)

// Store is an append-only log buffer. Add assigns a sequential display
// id and prepends, so iteration order is newest first. Logs returns a
// snapshot copy, never a live reference.
type Store interface {
	Add(entry model.ActivityLogEntry) model.ActivityLogEntry
	Logs() []model.ActivityLogEntry
	Close() error
}

// Seed returns the fixed historical entries a fresh store starts with.
// Illustrative data only; the only invariant is that entries are
// well-formed.
func Seed() []model.ActivityLogEntry {
	at := func(s string) time.Time {
		t, _ := time.Parse("2006-01-02T15:04:05", s)
		return t
	}
	return []model.ActivityLogEntry{
		{ID: "LOG-008", Timestamp: at("2026-02-10T10:55:00"), Agent: "Zoe", Action: "Updated agent configuration", Details: `Renamed crypto analyst from "Sol" to "Sam"`, Level: model.LevelInfo},
		{ID: "LOG-007", Timestamp: at("2026-02-10T10:54:00"), Agent: "Zoe", Action: "Created dashboard feature", Details: "Added heartbeat status bar to track agent activity", Level: model.LevelSuccess, Duration: "2m"},
		{ID: "LOG-006", Timestamp: at("2026-02-10T10:45:00"), Agent: "Zoe", Action: "Set up heartbeat monitoring", Details: "Created cron job for 30-minute intervals", Level: model.LevelSuccess, Model: "sonnet"},
		{ID: "LOG-005", Timestamp: at("2026-02-10T10:15:00"), Agent: "Zoe", Action: "Configured cron job", Details: "Set up 30-minute heartbeat checks with isolated agent monitoring", Level: model.LevelInfo, Model: "sonnet"},
		{ID: "LOG-004", Timestamp: at("2026-02-10T09:35:00"), Agent: "Zoe", Action: "Built web UI", Details: "Created dashboard with board, task list and focus views", Level: model.LevelSuccess, Duration: "15m"},
		{ID: "LOG-003", Timestamp: at("2026-02-10T09:20:00"), Agent: "Sam", Action: "Task updated", Details: `Changed crypto market analysis status to "in_progress"`, Level: model.LevelInfo, Model: "sonnet"},
		{ID: "LOG-002", Timestamp: at("2026-02-10T09:15:00"), Agent: "Victor", Action: "Job discovery", Details: "Found 3 new bounty opportunities on Agent Bounty Board", Level: model.LevelInfo, Model: "sonnet"},
		{ID: "LOG-001", Timestamp: at("2026-02-10T09:00:00"), Agent: "Leo", Action: "Investment analysis", Details: "Completed Series A assessment for an AI infrastructure startup", Level: model.LevelSuccess, Model: "opus", Duration: "45m"},
	}
}
