// Package poller drives the dashboard's refresh loop: fetch sessions
// and cron jobs from the gateway on an interval, run the pure
// derivations, and republish one immutable snapshot. A failed fetch
// keeps the last good snapshot and flips the connectivity flag.
package poller

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"clawboard/internal/derive"
	"clawboard/internal/gateway"
	"clawboard/internal/logstore"
	"clawboard/internal/metrics"
	"clawboard/internal/model"
	"clawboard/internal/notify"
)

// Snapshot is one self-consistent derived view of the fleet. Consumers
// get copies; the poller never mutates a published snapshot.
type Snapshot struct {
	Statuses  []model.AgentStatus
	Activity  derive.Result
	Sessions  []gateway.Session
	CronJobs  []gateway.CronJob
	Connected bool
	FetchedAt time.Time
}

// Config tunes the refresh loop.
type Config struct {
	Interval     time.Duration
	MessageLimit int
}

// defaults matching the original dashboard's polling cadence.
func (c *Config) fill() {
	if c.Interval <= 0 {
		c.Interval = 30 * time.Second
	}
	if c.MessageLimit <= 0 {
		c.MessageLimit = 5
	}
}

// Poller periodically refreshes the derived snapshot.
type Poller struct {
	src      gateway.Source
	logs     logstore.Store
	cfg      Config
	metrics  *metrics.Metrics
	notifier notify.Notifier

	mu   sync.RWMutex
	snap Snapshot

	prevStatuses map[string]model.AgentState
	wasConnected bool
	everFetched  bool
}

// New creates a poller. metrics and notifier may be nil.
func New(src gateway.Source, logs logstore.Store, cfg Config, m *metrics.Metrics, n notify.Notifier) *Poller {
	cfg.fill()
	if n == nil {
		n = notify.Noop{}
	}
	return &Poller{
		src:      src,
		logs:     logs,
		cfg:      cfg,
		metrics:  m,
		notifier: n,
	}
}

// Start refreshes once immediately, then on every tick until the
// context is cancelled.
func (p *Poller) Start(ctx context.Context) {
	slog.Info("Starting gateway poller", "interval", p.cfg.Interval)

	p.Refresh(ctx)

	ticker := time.NewTicker(p.cfg.Interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			slog.Info("Stopping gateway poller")
			return
		case <-ticker.C:
			p.Refresh(ctx)
		}
	}
}

// Refresh performs one fetch-and-derive pass. Safe to invoke
// redundantly; each pass fully replaces the snapshot on success.
func (p *Poller) Refresh(ctx context.Context) {
	start := time.Now()
	sessions, cronJobs, err := p.fetch(ctx)
	if p.metrics != nil {
		p.metrics.ObserveFetch(time.Since(start), err)
	}

	if err != nil {
		slog.Warn("Gateway fetch failed, keeping previous snapshot", "error", err)
		p.markDisconnected(ctx)
		return
	}

	now := time.Now()
	statuses := derive.AgentStatuses(sessions, now)
	activity := derive.ActivityLogs(sessions, p.localLogs(), derive.ScopeAll)

	if p.metrics != nil {
		p.metrics.SetAgentStatuses(statuses)
		p.metrics.ActivityEntries.Set(float64(activity.TotalCount))
	}
	p.publish(Snapshot{
		Statuses:  statuses,
		Activity:  activity,
		Sessions:  sessions,
		CronJobs:  cronJobs,
		Connected: true,
		FetchedAt: now,
	}, ctx)
}

func (p *Poller) fetch(ctx context.Context) ([]gateway.Session, []gateway.CronJob, error) {
	resp, err := p.src.FetchSessions(ctx, p.cfg.MessageLimit)
	if err != nil {
		return nil, nil, fmt.Errorf("fetch sessions: %w", err)
	}
	cron, err := p.src.FetchCronJobs(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("fetch cron jobs: %w", err)
	}
	return resp.Sessions, cron.Jobs, nil
}

func (p *Poller) localLogs() []model.ActivityLogEntry {
	if p.logs == nil {
		return nil
	}
	return p.logs.Logs()
}

// Snapshot returns the latest published snapshot instance. Zero-valued
// until the first successful refresh.
func (p *Poller) Snapshot() Snapshot {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.snap
}

func (p *Poller) publish(s Snapshot, ctx context.Context) {
	p.mu.Lock()
	reconnected := p.everFetched && !p.wasConnected
	offline := p.offlineTransitions(s.Statuses)
	p.snap = s
	p.wasConnected = true
	p.everFetched = true
	p.mu.Unlock()

	if reconnected {
		p.notifier.Notify(ctx, notify.EventReconnect, "Gateway connection restored")
	}
	for _, name := range offline {
		p.notifier.Notify(ctx, notify.EventAgentOffline, fmt.Sprintf("Agent %s went offline", name))
	}
}

func (p *Poller) markDisconnected(ctx context.Context) {
	p.mu.Lock()
	notifyDrop := p.wasConnected
	p.snap.Connected = false
	p.wasConnected = false
	p.mu.Unlock()

	if notifyDrop {
		p.notifier.Notify(ctx, notify.EventDisconnect, "Lost connection to the gateway")
	}
}

// offlineTransitions records which agents dropped from a non-offline
// status to offline since the previous publish. Caller holds the lock.
func (p *Poller) offlineTransitions(statuses []model.AgentStatus) []string {
	var dropped []string
	next := make(map[string]model.AgentState, len(statuses))
	for _, s := range statuses {
		next[s.ID] = s.Status
		prev, seen := p.prevStatuses[s.ID]
		if seen && prev != model.StateOffline && s.Status == model.StateOffline {
			dropped = append(dropped, s.Name)
		}
	}
	p.prevStatuses = next
	return dropped
}
