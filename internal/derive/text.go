package derive

import (
	"strings"

	"clawboard/internal/gateway"
)

const (
	currentTaskLimit = 100
	detailsLimit     = 200
	ellipsis         = "..."
)

// truncate cuts s to at most limit runes, marking the cut with an
// ellipsis. The marker comes on top of the limit, so callers see at
// most limit+3 characters.
func truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit]) + ellipsis
}

// firstLine returns everything before the first newline.
func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}

// currentTask scans a session's messages newest-first for the most
// recent text block and returns its first line, truncated. Empty when
// the session has no messages or no text content.
func currentTask(s gateway.Session) string {
	for i := len(s.Messages) - 1; i >= 0; i-- {
		for _, block := range s.Messages[i].Content {
			if block.Type == gateway.ContentText && block.Text != "" {
				return truncate(firstLine(block.Text), currentTaskLimit)
			}
		}
	}
	return ""
}
