package derive

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"clawboard/internal/gateway"
	"clawboard/internal/model"
	"clawboard/internal/roster"
)

var testNow = time.Date(2026, 2, 10, 12, 0, 0, 0, time.UTC)

func statusFor(t *testing.T, statuses []model.AgentStatus, id string) model.AgentStatus {
	t.Helper()
	for _, s := range statuses {
		if s.ID == id {
			return s
		}
	}
	t.Fatalf("no status for %s", id)
	return model.AgentStatus{}
}

func TestAgentStatusesAllOfflineWithoutSessions(t *testing.T) {
	statuses := AgentStatuses(nil, testNow)
	require.Len(t, statuses, len(roster.All()))
	for _, s := range statuses {
		assert.Equal(t, model.StateOffline, s.Status)
		assert.Zero(t, s.LastActivity)
	}
	// roster order is preserved, orchestrator first
	assert.Equal(t, "zoe", statuses[0].ID)
}

func TestPrimarySessionActive(t *testing.T) {
	sessions := []gateway.Session{{
		Key:       roster.PrimarySessionKey,
		UpdatedAt: testNow.Add(-time.Minute).UnixMilli(),
		Model:     "claude-opus",
		Messages: []gateway.SessionMessage{{
			Role:    gateway.RoleAssistant,
			Content: []gateway.MessageContent{{Type: gateway.ContentText, Text: "Reviewing the deploy"}},
		}},
	}}

	s := statusFor(t, AgentStatuses(sessions, testNow), "zoe")
	assert.Equal(t, model.StateActive, s.Status)
	assert.Equal(t, "Reviewing the deploy", s.CurrentTask)
	assert.Equal(t, "claude-opus", s.Model)
	assert.Equal(t, roster.PrimarySessionKey, s.SessionKey)
}

func TestPrimarySessionIdleAfterWindow(t *testing.T) {
	sessions := []gateway.Session{{
		Key:       roster.PrimarySessionKey,
		UpdatedAt: testNow.Add(-recentWindow).UnixMilli(),
	}}
	s := statusFor(t, AgentStatuses(sessions, testNow), "zoe")
	assert.Equal(t, model.StateIdle, s.Status)
}

func TestSubagentWorkingNotActive(t *testing.T) {
	sessions := []gateway.Session{{
		Key:       "agent:sam:research",
		UpdatedAt: testNow.Add(-30 * time.Second).UnixMilli(),
	}}
	s := statusFor(t, AgentStatuses(sessions, testNow), "sam")
	assert.Equal(t, model.StateWorking, s.Status)
}

func TestLabelMatchWhenKeyIsOpaque(t *testing.T) {
	sessions := []gateway.Session{{
		Key:       "session-81f3",
		Label:     "Leo deal screening",
		UpdatedAt: testNow.Add(-time.Minute).UnixMilli(),
	}}
	s := statusFor(t, AgentStatuses(sessions, testNow), "leo")
	assert.Equal(t, model.StateWorking, s.Status)
}

func TestLegacyAliasAttribution(t *testing.T) {
	sessions := []gateway.Session{{
		Key:       "agent:cipher:scan",
		UpdatedAt: testNow.Add(-time.Minute).UnixMilli(),
	}}
	s := statusFor(t, AgentStatuses(sessions, testNow), "sam")
	assert.Equal(t, model.StateWorking, s.Status)
}

func TestLaterSessionWinsForSameMember(t *testing.T) {
	sessions := []gateway.Session{
		{Key: "agent:rex:old", UpdatedAt: testNow.Add(-10 * time.Minute).UnixMilli(), Model: "haiku"},
		{Key: "agent:rex:new", UpdatedAt: testNow.Add(-time.Minute).UnixMilli(), Model: "sonnet"},
	}
	s := statusFor(t, AgentStatuses(sessions, testNow), "rex")
	assert.Equal(t, "agent:rex:new", s.SessionKey)
	assert.Equal(t, "sonnet", s.Model)
	assert.Equal(t, model.StateWorking, s.Status)
}

func TestPrimaryKeyNeverFeedsSubagents(t *testing.T) {
	// "main" sessions belong to the orchestrator only; nobody else
	// substring-matches it by accident.
	sessions := []gateway.Session{{
		Key:       roster.PrimarySessionKey,
		UpdatedAt: testNow.Add(-time.Minute).UnixMilli(),
	}}
	statuses := AgentStatuses(sessions, testNow)
	for _, s := range statuses {
		if s.ID == "zoe" {
			continue
		}
		assert.Equal(t, model.StateOffline, s.Status, "agent %s", s.ID)
	}
}

func TestUnknownSessionIgnored(t *testing.T) {
	sessions := []gateway.Session{{
		Key:       "agent:heartbeat:cron",
		UpdatedAt: testNow.UnixMilli(),
	}}
	for _, s := range AgentStatuses(sessions, testNow) {
		assert.Equal(t, model.StateOffline, s.Status)
	}
}

func TestTokenUsageCarriedThrough(t *testing.T) {
	sessions := []gateway.Session{{
		Key:         "agent:mika:content",
		UpdatedAt:   testNow.UnixMilli(),
		TotalTokens: 48211,
	}}
	s := statusFor(t, AgentStatuses(sessions, testNow), "mika")
	assert.Equal(t, 48211, s.TokenUsage)
}
