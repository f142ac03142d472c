// Package schedule renders gateway cron-job schedules for display and
// computes the next firing time when the gateway didn't supply one.
package schedule

import (
	"fmt"
	"time"

	"github.com/robfig/cron/v3"

	"clawboard/internal/gateway"
)

// Describe returns a one-line human description of a schedule.
func Describe(s gateway.Schedule) string {
	switch s.Kind {
	case "at":
		if s.At == 0 {
			return "once"
		}
		return "at " + time.UnixMilli(s.At).Local().Format("2006-01-02 15:04")
	case "every":
		if s.EveryMs <= 0 {
			return "every ?"
		}
		return "every " + (time.Duration(s.EveryMs) * time.Millisecond).String()
	case "cron":
		if s.Expr == "" {
			return "cron ?"
		}
		return "cron " + s.Expr
	default:
		return s.Kind
	}
}

// Next computes when the job fires next, preferring the gateway's own
// nextRunAt. The second return is false when the next firing cannot be
// determined (disabled one-shots, unparseable expressions).
func Next(job gateway.CronJob, now time.Time) (time.Time, bool) {
	if job.NextRunAt > 0 {
		return time.UnixMilli(job.NextRunAt), true
	}
	switch job.Schedule.Kind {
	case "at":
		if job.Schedule.At > 0 {
			t := time.UnixMilli(job.Schedule.At)
			if t.After(now) {
				return t, true
			}
		}
		return time.Time{}, false
	case "every":
		if job.Schedule.EveryMs <= 0 {
			return time.Time{}, false
		}
		interval := time.Duration(job.Schedule.EveryMs) * time.Millisecond
		if job.LastRunAt > 0 {
			return time.UnixMilli(job.LastRunAt).Add(interval), true
		}
		return now.Add(interval), true
	case "cron":
		sched, err := cron.ParseStandard(job.Schedule.Expr)
		if err != nil {
			return time.Time{}, false
		}
		return sched.Next(now), true
	default:
		return time.Time{}, false
	}
}

// Validate checks a cron-kind expression; other kinds always pass.
func Validate(s gateway.Schedule) error {
	if s.Kind != "cron" {
		return nil
	}
	if _, err := cron.ParseStandard(s.Expr); err != nil {
		return fmt.Errorf("invalid cron expression %q: %w", s.Expr, err)
	}
	return nil
}
