package derive

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"clawboard/internal/gateway"
)

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 100))

	long := strings.Repeat("a", 150)
	got := truncate(long, 100)
	assert.Equal(t, 103, len(got))
	assert.True(t, strings.HasSuffix(got, "..."))

	// exactly at the limit stays untouched
	exact := strings.Repeat("b", 100)
	assert.Equal(t, exact, truncate(exact, 100))
}

func TestTruncateMultibyte(t *testing.T) {
	// rune-based, not byte-based
	s := strings.Repeat("ü", 110)
	got := truncate(s, 100)
	assert.Equal(t, strings.Repeat("ü", 100)+"...", got)
}

func TestFirstLine(t *testing.T) {
	assert.Equal(t, "first", firstLine("first\nsecond\nthird"))
	assert.Equal(t, "no newline", firstLine("no newline"))
	assert.Equal(t, "", firstLine("\nleading"))
}

func TestCurrentTaskPicksNewestText(t *testing.T) {
	s := gateway.Session{
		Messages: []gateway.SessionMessage{
			{Content: []gateway.MessageContent{{Type: gateway.ContentText, Text: "old work"}}},
			{Content: []gateway.MessageContent{{Type: gateway.ContentToolCall, Name: "web_search"}}},
			{Content: []gateway.MessageContent{
				{Type: gateway.ContentThinking, Thinking: "hmm"},
				{Type: gateway.ContentText, Text: "current work\nmore detail"},
			}},
		},
	}
	assert.Equal(t, "current work", currentTask(s))
}

func TestCurrentTaskSkipsNonText(t *testing.T) {
	s := gateway.Session{
		Messages: []gateway.SessionMessage{
			{Content: []gateway.MessageContent{{Type: gateway.ContentText, Text: "only text"}}},
			{Content: []gateway.MessageContent{{Type: gateway.ContentToolCall, Name: "exec"}}},
		},
	}
	// the newest message has no text block, so the older one wins
	assert.Equal(t, "only text", currentTask(s))
}

func TestCurrentTaskEmpty(t *testing.T) {
	assert.Equal(t, "", currentTask(gateway.Session{}))
	assert.Equal(t, "", currentTask(gateway.Session{
		Messages: []gateway.SessionMessage{
			{Content: []gateway.MessageContent{{Type: gateway.ContentThinking, Thinking: "x"}}},
		},
	}))
}
