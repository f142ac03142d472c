package gateway

import (
	"context"
	"time"
)

// MockSource is an in-process Source for demo mode and tests. Sessions
// are generated relative to construction time so staleness derivation
// behaves the same as against a live gateway.
type MockSource struct {
	now func() time.Time
}

// NewMockSource creates a mock source using the wall clock.
func NewMockSource() *MockSource {
	return &MockSource{now: time.Now}
}

// NewMockSourceAt creates a mock source with a fixed clock, for tests.
func NewMockSourceAt(now func() time.Time) *MockSource {
	return &MockSource{now: now}
}

func (m *MockSource) FetchSessions(ctx context.Context, messageLimit int) (*SessionsResponse, error) {
	now := m.now().UnixMilli()
	sessions := []Session{
		{
			Key:         "agent:main:main",
			Kind:        "agent",
			SessionID:   "mock-main",
			Model:       "claude-sonnet",
			TotalTokens: 48213,
			UpdatedAt:   now - time.Minute.Milliseconds(),
			Messages: []SessionMessage{
				{
					Role:      RoleUser,
					Timestamp: now - 3*time.Minute.Milliseconds(),
					Content:   []MessageContent{{Type: ContentText, Text: "Status check on the fleet, please."}},
				},
				{
					Role:      RoleAssistant,
					Model:     "claude-sonnet",
					Timestamp: now - time.Minute.Milliseconds(),
					Usage:     &TokenUsage{Input: 320, Output: 180, TotalTokens: 500},
					Content: []MessageContent{
						{Type: ContentText, Text: "Reviewing task board and dispatching follow-ups to Sam and Leo."},
						{Type: ContentToolCall, Name: "sessions_list", ID: "call-1"},
					},
				},
			},
		},
		{
			Key:         "agent:sub:sam-research",
			Kind:        "agent",
			Label:       "Sam - market scan",
			SessionID:   "mock-sam",
			Model:       "claude-haiku",
			TotalTokens: 12870,
			UpdatedAt:   now - 2*time.Minute.Milliseconds(),
			Messages: []SessionMessage{
				{
					Role:      RoleAssistant,
					Model:     "claude-haiku",
					Timestamp: now - 2*time.Minute.Milliseconds(),
					Content:   []MessageContent{{Type: ContentText, Text: "Collected onchain volume data for the weekly DeFi digest."}},
				},
			},
		},
		{
			Key:         "agent:sub:leo-deals",
			Kind:        "agent",
			Label:       "Leo - deal flow",
			SessionID:   "mock-leo",
			Model:       "claude-sonnet",
			TotalTokens: 9104,
			UpdatedAt:   now - 42*time.Minute.Milliseconds(),
			Messages: []SessionMessage{
				{
					Role:      RoleAssistant,
					Model:     "claude-sonnet",
					Timestamp: now - 42*time.Minute.Milliseconds(),
					Content:   []MessageContent{{Type: ContentText, Text: "Series A memo drafted, waiting on founder call notes."}},
				},
			},
		},
		{
			Key:         "cron:isolated:heartbeat",
			Kind:        "cron",
			Label:       "Heartbeat monitor",
			SessionID:   "mock-heartbeat",
			Model:       "claude-haiku",
			TotalTokens: 1530,
			UpdatedAt:   now - 18*time.Minute.Milliseconds(),
		},
	}

	if messageLimit == 0 {
		for i := range sessions {
			sessions[i].Messages = nil
		}
	}
	return &SessionsResponse{Count: len(sessions), Sessions: sessions}, nil
}

func (m *MockSource) FetchCronJobs(ctx context.Context) (*CronListResponse, error) {
	now := m.now().UnixMilli()
	return &CronListResponse{Jobs: []CronJob{
		{
			ID:            "cron-heartbeat",
			Name:          "Heartbeat check",
			Schedule:      Schedule{Kind: "every", EveryMs: 30 * time.Minute.Milliseconds()},
			Payload:       CronPayload{Kind: "systemEvent", Text: "heartbeat"},
			SessionTarget: "isolated",
			Enabled:       true,
			LastRunAt:     now - 18*time.Minute.Milliseconds(),
			NextRunAt:     now + 12*time.Minute.Milliseconds(),
		},
		{
			ID:            "cron-digest",
			Name:          "Morning digest",
			Schedule:      Schedule{Kind: "cron", Expr: "0 8 * * *"},
			Payload:       CronPayload{Kind: "agentTurn", Message: "Prepare the morning digest"},
			SessionTarget: "main",
			Enabled:       true,
		},
		{
			ID:            "cron-retro",
			Name:          "Weekly retro",
			Schedule:      Schedule{Kind: "cron", Expr: "0 17 * * 5"},
			Payload:       CronPayload{Kind: "agentTurn", Message: "Run the weekly retro"},
			SessionTarget: "main",
			Enabled:       false,
		},
	}}, nil
}

func (m *MockSource) FetchHistory(ctx context.Context, sessionKey string, limit int) ([]SessionMessage, error) {
	resp, _ := m.FetchSessions(ctx, limit)
	for _, s := range resp.Sessions {
		if s.Key == sessionKey {
			return s.Messages, nil
		}
	}
	return nil, nil
}

func (m *MockSource) Ping(ctx context.Context) error {
	return nil
}
