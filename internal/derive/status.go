// Package derive holds the two pure aggregation procedures behind the
// dashboard: deriving per-agent statuses from raw sessions, and folding
// sessions plus the local log store into one activity log. Both run to
// completion on every refresh and never return errors; malformed input
// degrades to an empty contribution.
package derive

import (
	"time"

	"clawboard/internal/gateway"
	"clawboard/internal/model"
	"clawboard/internal/roster"
)

// recentWindow is how long after its last update a session still
// counts as actively doing something.
const recentWindow = 5 * time.Minute

// AgentStatuses derives exactly one status per roster member from the
// current session batch. Members with no matching session stay offline.
// Later sessions in the input overwrite earlier attributions for the
// same member.
func AgentStatuses(sessions []gateway.Session, now time.Time) []model.AgentStatus {
	members := roster.All()
	byID := make(map[string]model.AgentStatus, len(members))
	for _, a := range members {
		byID[a.ID] = model.AgentStatus{ID: a.ID, Name: a.Name, Status: model.StateOffline}
	}

	primary := roster.Primary()
	for _, s := range sessions {
		if s.Key == roster.PrimarySessionKey {
			byID[primary.ID] = statusFromSession(primary, s, now)
		}
	}

	for _, s := range sessions {
		for _, a := range members {
			if a.Primary() {
				continue
			}
			if a.Matches(s.Key, s.ResolvedLabel()) {
				byID[a.ID] = statusFromSession(a, s, now)
			}
		}
	}

	out := make([]model.AgentStatus, 0, len(members))
	for _, a := range members {
		out = append(out, byID[a.ID])
	}
	return out
}

func statusFromSession(a roster.Agent, s gateway.Session, now time.Time) model.AgentStatus {
	state := model.StateIdle
	if now.Sub(time.UnixMilli(s.UpdatedAt)) < recentWindow {
		if a.Primary() {
			state = model.StateActive
		} else {
			state = model.StateWorking
		}
	}
	return model.AgentStatus{
		ID:           a.ID,
		Name:         a.Name,
		Status:       state,
		LastActivity: s.UpdatedAt,
		CurrentTask:  currentTask(s),
		Model:        s.Model,
		TokenUsage:   s.TotalTokens,
		SessionKey:   s.Key,
	}
}
