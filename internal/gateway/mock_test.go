package gateway

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMockSourceSessions(t *testing.T) {
	fixed := time.Date(2026, 2, 10, 12, 0, 0, 0, time.UTC)
	m := NewMockSourceAt(func() time.Time { return fixed })

	resp, err := m.FetchSessions(context.Background(), 5)
	require.NoError(t, err)
	require.NotEmpty(t, resp.Sessions)
	assert.Equal(t, "agent:main:main", resp.Sessions[0].Key)
	// session recency is clock-relative so staleness math holds
	assert.Equal(t, fixed.Add(-time.Minute).UnixMilli(), resp.Sessions[0].UpdatedAt)
	assert.NotEmpty(t, resp.Sessions[0].Messages)
}

func TestMockSourceMessageLimitZero(t *testing.T) {
	m := NewMockSource()
	resp, err := m.FetchSessions(context.Background(), 0)
	require.NoError(t, err)
	for _, s := range resp.Sessions {
		assert.Empty(t, s.Messages)
	}
}

func TestMockSourceCronAndHistory(t *testing.T) {
	m := NewMockSource()

	jobs, err := m.FetchCronJobs(context.Background())
	require.NoError(t, err)
	assert.NotEmpty(t, jobs.Jobs)

	msgs, err := m.FetchHistory(context.Background(), "agent:main:main", 10)
	require.NoError(t, err)
	assert.NotEmpty(t, msgs)

	msgs, err = m.FetchHistory(context.Background(), "nope", 10)
	require.NoError(t, err)
	assert.Empty(t, msgs)

	assert.NoError(t, m.Ping(context.Background()))
}
