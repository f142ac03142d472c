package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"clawboard/internal/gateway"
)

var now = time.Date(2026, 2, 10, 12, 0, 0, 0, time.UTC)

func TestDescribe(t *testing.T) {
	assert.Equal(t, "every 30m0s", Describe(gateway.Schedule{Kind: "every", EveryMs: 30 * 60 * 1000}))
	assert.Equal(t, "cron 0 9 * * *", Describe(gateway.Schedule{Kind: "cron", Expr: "0 9 * * *"}))
	assert.Equal(t, "every ?", Describe(gateway.Schedule{Kind: "every"}))
	assert.Equal(t, "cron ?", Describe(gateway.Schedule{Kind: "cron"}))
	assert.Equal(t, "once", Describe(gateway.Schedule{Kind: "at"}))
	assert.Contains(t, Describe(gateway.Schedule{Kind: "at", At: now.UnixMilli()}), "2026-02-10")
}

func TestNextPrefersGatewayValue(t *testing.T) {
	at := now.Add(time.Hour).UnixMilli()
	got, ok := Next(gateway.CronJob{
		NextRunAt: at,
		Schedule:  gateway.Schedule{Kind: "cron", Expr: "bogus"},
	}, now)
	require.True(t, ok)
	assert.Equal(t, at, got.UnixMilli())
}

func TestNextEvery(t *testing.T) {
	job := gateway.CronJob{
		Schedule:  gateway.Schedule{Kind: "every", EveryMs: 60_000},
		LastRunAt: now.Add(-30 * time.Second).UnixMilli(),
	}
	got, ok := Next(job, now)
	require.True(t, ok)
	assert.Equal(t, now.Add(30*time.Second).UnixMilli(), got.UnixMilli())

	// no last run: next interval from now
	job.LastRunAt = 0
	got, ok = Next(job, now)
	require.True(t, ok)
	assert.Equal(t, now.Add(time.Minute).UnixMilli(), got.UnixMilli())
}

func TestNextCron(t *testing.T) {
	job := gateway.CronJob{Schedule: gateway.Schedule{Kind: "cron", Expr: "0 9 * * *"}}
	got, ok := Next(job, now)
	require.True(t, ok)
	assert.Equal(t, time.Date(2026, 2, 11, 9, 0, 0, 0, time.UTC), got)

	_, ok = Next(gateway.CronJob{Schedule: gateway.Schedule{Kind: "cron", Expr: "not a cron"}}, now)
	assert.False(t, ok)
}

func TestNextAt(t *testing.T) {
	future := now.Add(time.Hour)
	got, ok := Next(gateway.CronJob{Schedule: gateway.Schedule{Kind: "at", At: future.UnixMilli()}}, now)
	require.True(t, ok)
	assert.Equal(t, future.UnixMilli(), got.UnixMilli())

	// already fired
	_, ok = Next(gateway.CronJob{Schedule: gateway.Schedule{Kind: "at", At: now.Add(-time.Hour).UnixMilli()}}, now)
	assert.False(t, ok)
}

func TestValidate(t *testing.T) {
	assert.NoError(t, Validate(gateway.Schedule{Kind: "every", EveryMs: 1000}))
	assert.NoError(t, Validate(gateway.Schedule{Kind: "cron", Expr: "*/5 * * * *"}))
	assert.ErrorContains(t, Validate(gateway.Schedule{Kind: "cron", Expr: "banana"}), "invalid cron expression")
}
