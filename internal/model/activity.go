package model

import "time"

// LogLevel classifies an activity log entry. Entries derived from
// session traffic are always "info"; manually added entries may carry
// any level.
type LogLevel string

const (
	LevelInfo    LogLevel = "info"
	LevelSuccess LogLevel = "success"
	LevelWarning LogLevel = "warning"
	LevelError   LogLevel = "error"
)

// ActivityLogEntry is one row of the consolidated activity log. Entries
// come from two places: synthesized from session messages, or appended
// to the local log store by hand. IDs are unique within one aggregated
// view; duplicates are dropped, not merged.
type ActivityLogEntry struct {
	ID        string    `json:"id"`
	Timestamp time.Time `json:"timestamp"`
	Agent     string    `json:"agent"`
	Action    string    `json:"action"`
	Details   string    `json:"details"`
	Model     string    `json:"model,omitempty"`
	Level     LogLevel  `json:"level"`
	Duration  string    `json:"duration,omitempty"`
}
