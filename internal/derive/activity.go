package derive

import (
	"fmt"
	"sort"
	"time"

	"clawboard/internal/gateway"
	"clawboard/internal/model"
	"clawboard/internal/roster"
)

// DisplayLimit caps how many entries one aggregated view shows.
const DisplayLimit = 100

// Scope selects which sources feed the aggregated log.
type Scope string

const (
	ScopeAll      Scope = "all"
	ScopeLocal    Scope = "local"
	ScopeSessions Scope = "sessions"
)

// ValidScope reports whether s names a log source scope.
func ValidScope(s Scope) bool {
	switch s {
	case ScopeAll, ScopeLocal, ScopeSessions:
		return true
	}
	return false
}

// Result is one aggregated activity view. Entries holds at most
// DisplayLimit entries, newest first; TotalCount is the size of the
// deduplicated set before truncation.
type Result struct {
	Entries        []model.ActivityLogEntry `json:"entries"`
	TotalCount     int                      `json:"totalCount"`
	DisplayedCount int                      `json:"displayedCount"`
}

// ActivityLogs folds the local log store and session-derived entries
// into one deduplicated, time-descending view. Local entries are
// concatenated first, so they win id collisions.
func ActivityLogs(sessions []gateway.Session, local []model.ActivityLogEntry, scope Scope) Result {
	var combined []model.ActivityLogEntry
	if scope == ScopeAll || scope == ScopeLocal {
		combined = append(combined, local...)
	}
	if scope == ScopeAll || scope == ScopeSessions {
		combined = append(combined, sessionEntries(sessions)...)
	}

	seen := make(map[string]bool, len(combined))
	deduped := combined[:0]
	for _, e := range combined {
		if seen[e.ID] {
			continue
		}
		seen[e.ID] = true
		deduped = append(deduped, e)
	}

	sort.SliceStable(deduped, func(i, j int) bool {
		return deduped[i].Timestamp.After(deduped[j].Timestamp)
	})

	total := len(deduped)
	shown := deduped
	if len(shown) > DisplayLimit {
		shown = shown[:DisplayLimit]
	}
	return Result{Entries: shown, TotalCount: total, DisplayedCount: len(shown)}
}

// sessionEntries synthesizes log entries from session messages. A
// message contributes one entry per non-empty text block and one per
// tool call; messages without a timestamp contribute nothing.
func sessionEntries(sessions []gateway.Session) []model.ActivityLogEntry {
	var out []model.ActivityLogEntry
	for _, s := range sessions {
		agent := attributedName(s)
		for _, msg := range s.Messages {
			if msg.Timestamp == 0 {
				continue
			}
			ts := time.UnixMilli(msg.Timestamp)
			for _, block := range msg.Content {
				switch {
				case block.Type == gateway.ContentText && block.Text != "":
					action := "Input"
					if msg.Role == gateway.RoleAssistant {
						action = "Response"
					}
					entry := model.ActivityLogEntry{
						ID:        fmt.Sprintf("%s-%d", s.SessionID, msg.Timestamp),
						Timestamp: ts,
						Agent:     agent,
						Action:    action,
						Details:   truncate(block.Text, detailsLimit),
						Model:     msg.Model,
						Level:     model.LevelInfo,
					}
					if msg.Usage != nil {
						entry.Duration = fmt.Sprintf("%d tokens", msg.Usage.TotalTokens)
					}
					out = append(out, entry)
				case block.Type == gateway.ContentToolCall:
					out = append(out, model.ActivityLogEntry{
						ID:        fmt.Sprintf("%s-%d-tool", s.SessionID, msg.Timestamp),
						Timestamp: ts,
						Agent:     agent,
						Action:    "Tool: " + block.Name,
						Details:   "Called " + block.Name,
						Model:     msg.Model,
						Level:     model.LevelInfo,
					})
				}
			}
		}
	}
	return out
}

// attributedName resolves the display name a session's entries are
// logged under. Sessions outside the roster fall back to their own
// label so the log still reads sensibly.
func attributedName(s gateway.Session) string {
	if a, ok := roster.Attribute(s.Key, s.ResolvedLabel()); ok {
		return a.Name
	}
	if l := s.ResolvedLabel(); l != "" {
		return l
	}
	return "Unknown"
}
