package roster

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrimaryIsFirst(t *testing.T) {
	all := All()
	require.NotEmpty(t, all)
	assert.Equal(t, "zoe", all[0].ID)
	assert.True(t, all[0].Primary())
	assert.Equal(t, Primary().ID, all[0].ID)
}

func TestAllReturnsCopy(t *testing.T) {
	a := All()
	a[0].Name = "clobbered"
	assert.Equal(t, "Zoe", All()[0].Name)
}

func TestMatchesCaseInsensitive(t *testing.T) {
	sam, ok := Lookup("sam")
	require.True(t, ok)
	assert.True(t, sam.Matches("agent:SAM:research", ""))
	assert.True(t, sam.Matches("", "Sam's market scan"))
	assert.False(t, sam.Matches("agent:leo:x", "deal flow"))
}

func TestMatchesAliases(t *testing.T) {
	sam, ok := Lookup("sam")
	require.True(t, ok)
	assert.True(t, sam.Matches("agent:sol:legacy", ""))
	assert.True(t, sam.Matches("", "Cipher scan"))

	victor, ok := Lookup("victor")
	require.True(t, ok)
	assert.True(t, victor.Matches("agent:vilma:jobs", ""))
}

func TestLookupByAlias(t *testing.T) {
	a, ok := Lookup("cipher")
	require.True(t, ok)
	assert.Equal(t, "sam", a.ID)

	_, ok = Lookup("nobody")
	assert.False(t, ok)
}

func TestAttributePrimaryFirst(t *testing.T) {
	a, ok := Attribute(PrimarySessionKey, "")
	require.True(t, ok)
	assert.Equal(t, "zoe", a.ID)

	// any session key containing the orchestrator pattern resolves to
	// the orchestrator even if a label names someone else
	a, ok = Attribute("agent:main:main", "sam")
	require.True(t, ok)
	assert.Equal(t, "zoe", a.ID)
}

func TestAttributeRosterOrder(t *testing.T) {
	// a label naming two members resolves to the earlier one
	a, ok := Attribute("", "sam and leo pairing session")
	require.True(t, ok)
	assert.Equal(t, "sam", a.ID)
}

func TestAttributeNoMatch(t *testing.T) {
	_, ok := Attribute("session-4711", "Heartbeat")
	assert.False(t, ok)
}
