package gateway

// Wire types for the gateway's tool-invocation API. Field names mirror
// the JSON the gateway emits; most fields are optional and absent
// fields must be treated as "no contribution" by consumers.

// Message roles.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
	RoleSystem    = "system"
)

// Content block types. Only text and toolCall are interpreted by the
// derivation core; the rest pass through unrecognized.
const (
	ContentText       = "text"
	ContentThinking   = "thinking"
	ContentToolCall   = "toolCall"
	ContentToolResult = "toolResult"
)

// Session is one conversational session as reported by the gateway.
// UpdatedAt (epoch milliseconds) is the authoritative recency signal.
type Session struct {
	Key            string           `json:"key"`
	Kind           string           `json:"kind,omitempty"`
	Channel        string           `json:"channel,omitempty"`
	DisplayName    string           `json:"displayName,omitempty"`
	Label          string           `json:"label,omitempty"`
	UpdatedAt      int64            `json:"updatedAt"`
	SessionID      string           `json:"sessionId"`
	Model          string           `json:"model,omitempty"`
	ContextTokens  int              `json:"contextTokens,omitempty"`
	TotalTokens    int              `json:"totalTokens"`
	SystemSent     bool             `json:"systemSent,omitempty"`
	AbortedLastRun bool             `json:"abortedLastRun,omitempty"`
	LastChannel    string           `json:"lastChannel,omitempty"`
	Messages       []SessionMessage `json:"messages,omitempty"`
}

// SessionMessage is one turn within a session. Messages without a
// timestamp cannot be ordered and are excluded from the activity log.
type SessionMessage struct {
	Role       string           `json:"role"`
	Content    []MessageContent `json:"content"`
	Model      string           `json:"model,omitempty"`
	Timestamp  int64            `json:"timestamp,omitempty"`
	Usage      *TokenUsage      `json:"usage,omitempty"`
	StopReason string           `json:"stopReason,omitempty"`
}

// MessageContent is one content block inside a message.
type MessageContent struct {
	Type     string `json:"type"`
	Text     string `json:"text,omitempty"`
	Thinking string `json:"thinking,omitempty"`
	Name     string `json:"name,omitempty"`
	ID       string `json:"id,omitempty"`
}

// TokenUsage annotates a message with token accounting.
type TokenUsage struct {
	Input       int        `json:"input"`
	Output      int        `json:"output"`
	CacheRead   int        `json:"cacheRead,omitempty"`
	CacheWrite  int        `json:"cacheWrite,omitempty"`
	TotalTokens int        `json:"totalTokens"`
	Cost        *UsageCost `json:"cost,omitempty"`
}

// UsageCost is the dollar cost breakdown of a usage record.
type UsageCost struct {
	Input  float64 `json:"input"`
	Output float64 `json:"output"`
	Total  float64 `json:"total"`
}

// Schedule describes when a cron job fires. Kind is one of "at",
// "every" or "cron"; the remaining fields depend on the kind.
type Schedule struct {
	Kind    string `json:"kind"`
	At      int64  `json:"at,omitempty"`      // epoch ms, kind "at"
	EveryMs int64  `json:"everyMs,omitempty"` // interval, kind "every"
	Expr    string `json:"expr,omitempty"`    // crontab expression, kind "cron"
}

// CronPayload is what the job delivers when it fires.
type CronPayload struct {
	Kind    string `json:"kind"` // "systemEvent" | "agentTurn"
	Text    string `json:"text,omitempty"`
	Message string `json:"message,omitempty"`
}

// CronJob is a scheduled gateway job. The dashboard displays these
// as-is; it never mutates them.
type CronJob struct {
	ID            string      `json:"id"`
	Name          string      `json:"name,omitempty"`
	Schedule      Schedule    `json:"schedule"`
	Payload       CronPayload `json:"payload"`
	SessionTarget string      `json:"sessionTarget"`
	Enabled       bool        `json:"enabled"`
	LastRunAt     int64       `json:"lastRunAt,omitempty"`
	NextRunAt     int64       `json:"nextRunAt,omitempty"`
}

// SessionsResponse is the result of the sessions_list tool.
type SessionsResponse struct {
	Count    int       `json:"count"`
	Sessions []Session `json:"sessions"`
}

// CronListResponse is the result of the cron list tool.
type CronListResponse struct {
	Jobs []CronJob `json:"jobs"`
}

// HistoryResponse is the result of the sessions_history tool.
type HistoryResponse struct {
	Messages []SessionMessage `json:"messages"`
}

// ResolvedLabel returns the best human label for a session: label,
// then display name, then the key itself.
func (s Session) ResolvedLabel() string {
	if s.Label != "" {
		return s.Label
	}
	if s.DisplayName != "" {
		return s.DisplayName
	}
	return s.Key
}
