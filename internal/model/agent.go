package model

// AgentState is the coarse activity classification derived from session
// recency. "active" is reserved for the orchestrator; subagents report
// "working" instead.
type AgentState string

const (
	StateActive  AgentState = "active"
	StateWorking AgentState = "working"
	StateIdle    AgentState = "idle"
	StateOffline AgentState = "offline"
)

// AgentStatus is the derived per-agent summary shown on the dashboard.
// It is recomputed from scratch on every refresh and never partially
// updated. LastActivity is epoch milliseconds, matching the gateway's
// updatedAt field; zero means no session was attributed.
type AgentStatus struct {
	ID           string     `json:"id"`
	Name         string     `json:"name"`
	Status       AgentState `json:"status"`
	LastActivity int64      `json:"lastActivity,omitempty"`
	CurrentTask  string     `json:"currentTask,omitempty"`
	Model        string     `json:"model,omitempty"`
	TokenUsage   int        `json:"tokenUsage,omitempty"`
	SessionKey   string     `json:"sessionKey,omitempty"`
}
