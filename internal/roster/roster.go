// Package roster defines the closed set of agent identities the
// dashboard can attribute activity to. Matching is an explicit ordered
// list so that the multi-match tie-break is deterministic rather than
// an accident of map iteration.
package roster

import "strings"

// PrimarySessionKey is the gateway key of the orchestrator's session.
const PrimarySessionKey = "agent:main:main"

// Agent is one roster identity. Aliases are retired identity names
// that still appear in old session labels and resolve to this agent.
type Agent struct {
	ID      string
	Name    string
	Role    string
	Emoji   string
	Aliases []string
}

// Primary reports whether this is the orchestrator identity.
func (a Agent) Primary() bool {
	return a.ID == agents[0].ID
}

// Matches reports whether the session key or label names this agent.
// Both inputs are matched case-insensitively as substrings, including
// legacy aliases.
func (a Agent) Matches(key, label string) bool {
	key = strings.ToLower(key)
	label = strings.ToLower(label)
	for _, id := range append([]string{a.ID}, a.Aliases...) {
		if strings.Contains(key, id) || strings.Contains(label, id) {
			return true
		}
	}
	return false
}

// agents is the pinned iteration order. The orchestrator comes first;
// everything downstream (status derivation, log attribution) walks this
// slice in order.
var agents = []Agent{
	{ID: "zoe", Name: "Zoe", Role: "Orchestrator", Emoji: "⚡"},
	{ID: "sam", Name: "Sam", Role: "Crypto Analyst", Emoji: "🔮", Aliases: []string{"sol", "cipher"}},
	{ID: "leo", Name: "Leo", Role: "VC Analyst", Emoji: "🦁"},
	{ID: "mika", Name: "Mika", Role: "Content Creator", Emoji: "✨"},
	{ID: "rex", Name: "Rex", Role: "Trading Bot", Emoji: "🤖"},
	{ID: "victor", Name: "Victor", Role: "Job Market Agent", Emoji: "🎯", Aliases: []string{"vilma"}},
	{ID: "dante", Name: "Dante", Role: "Africa Operations", Emoji: "🌍"},
}

// All returns the roster in pinned order. Callers get a copy; the
// roster itself is immutable.
func All() []Agent {
	out := make([]Agent, len(agents))
	copy(out, agents)
	return out
}

// Primary returns the orchestrator identity.
func Primary() Agent {
	return agents[0]
}

// Lookup finds a roster member by ID or alias. The second return is
// false for identities outside the roster.
func Lookup(id string) (Agent, bool) {
	id = strings.ToLower(id)
	for _, a := range agents {
		if a.ID == id {
			return a, true
		}
		for _, alias := range a.Aliases {
			if alias == id {
				return a, true
			}
		}
	}
	return Agent{}, false
}

// Attribute resolves a session to a roster member for log attribution.
// The primary pattern is checked first (orchestrator session key, or a
// label naming the orchestrator), then each member in roster order
// against key and label. First match wins. The second return is false
// when no member matches.
func Attribute(key, label string) (Agent, bool) {
	if strings.Contains(strings.ToLower(key), "main:main") {
		return agents[0], true
	}
	for _, a := range agents {
		if a.Matches(key, label) {
			return a, true
		}
	}
	return Agent{}, false
}
