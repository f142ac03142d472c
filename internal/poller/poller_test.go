package poller

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"clawboard/internal/gateway"
	"clawboard/internal/logstore"
	"clawboard/internal/model"
	"clawboard/internal/notify"
	"clawboard/internal/roster"
)

// fakeSource is a scriptable gateway.Source.
type fakeSource struct {
	mu       sync.Mutex
	sessions []gateway.Session
	jobs     []gateway.CronJob
	fail     bool
}

func (f *fakeSource) set(sessions []gateway.Session, fail bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sessions = sessions
	f.fail = fail
}

func (f *fakeSource) FetchSessions(ctx context.Context, messageLimit int) (*gateway.SessionsResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail {
		return nil, errors.New("connection refused")
	}
	return &gateway.SessionsResponse{Sessions: f.sessions}, nil
}

func (f *fakeSource) FetchCronJobs(ctx context.Context) (*gateway.CronListResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail {
		return nil, errors.New("connection refused")
	}
	return &gateway.CronListResponse{Jobs: f.jobs}, nil
}

func (f *fakeSource) FetchHistory(ctx context.Context, sessionKey string, limit int) ([]gateway.SessionMessage, error) {
	return nil, nil
}

func (f *fakeSource) Ping(ctx context.Context) error { return nil }

// recordingNotifier captures every notification.
type recordingNotifier struct {
	mu     sync.Mutex
	events []string
}

func (r *recordingNotifier) Notify(ctx context.Context, eventType, message string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, eventType)
	return nil
}

func (r *recordingNotifier) all() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.events...)
}

func activeSession(key string) gateway.Session {
	return gateway.Session{Key: key, UpdatedAt: time.Now().UnixMilli()}
}

func TestRefreshPublishesSnapshot(t *testing.T) {
	src := &fakeSource{}
	src.set([]gateway.Session{activeSession(roster.PrimarySessionKey)}, false)

	p := New(src, logstore.NewMemoryStore(), Config{}, nil, nil)
	p.Refresh(context.Background())

	snap := p.Snapshot()
	assert.True(t, snap.Connected)
	assert.False(t, snap.FetchedAt.IsZero())
	require.Len(t, snap.Statuses, len(roster.All()))
	assert.Equal(t, model.StateActive, snap.Statuses[0].Status)
	// seed entries plus nothing derived (sessions carry no messages)
	assert.Equal(t, 8, snap.Activity.TotalCount)
}

func TestFailedFetchKeepsLastSnapshot(t *testing.T) {
	src := &fakeSource{}
	src.set([]gateway.Session{activeSession(roster.PrimarySessionKey)}, false)

	p := New(src, logstore.NewEmptyMemoryStore(), Config{}, nil, nil)
	p.Refresh(context.Background())
	good := p.Snapshot()
	require.True(t, good.Connected)

	src.set(nil, true)
	p.Refresh(context.Background())

	snap := p.Snapshot()
	assert.False(t, snap.Connected)
	// derived data survives the outage
	assert.Equal(t, good.Statuses, snap.Statuses)
	assert.Equal(t, good.FetchedAt, snap.FetchedAt)
}

func TestDisconnectReconnectNotifies(t *testing.T) {
	src := &fakeSource{}
	src.set(nil, false)
	rec := &recordingNotifier{}

	p := New(src, logstore.NewEmptyMemoryStore(), Config{}, nil, rec)
	ctx := context.Background()

	p.Refresh(ctx)
	assert.Empty(t, rec.all())

	src.set(nil, true)
	p.Refresh(ctx)
	assert.Equal(t, []string{notify.EventDisconnect}, rec.all())

	// still down: no duplicate notification
	p.Refresh(ctx)
	assert.Equal(t, []string{notify.EventDisconnect}, rec.all())

	src.set(nil, false)
	p.Refresh(ctx)
	assert.Equal(t, []string{notify.EventDisconnect, notify.EventReconnect}, rec.all())
}

func TestAgentOfflineTransitionNotifies(t *testing.T) {
	src := &fakeSource{}
	src.set([]gateway.Session{activeSession("agent:sam:scan")}, false)
	rec := &recordingNotifier{}

	p := New(src, logstore.NewEmptyMemoryStore(), Config{}, nil, rec)
	ctx := context.Background()

	p.Refresh(ctx)
	assert.Empty(t, rec.all())

	// sam's session disappears
	src.set(nil, false)
	p.Refresh(ctx)
	assert.Equal(t, []string{notify.EventAgentOffline}, rec.all())

	// staying offline is not a transition
	p.Refresh(ctx)
	assert.Equal(t, []string{notify.EventAgentOffline}, rec.all())
}

func TestStartStopsOnCancel(t *testing.T) {
	src := &fakeSource{}
	src.set(nil, false)
	p := New(src, logstore.NewEmptyMemoryStore(), Config{Interval: 10 * time.Millisecond}, nil, nil)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		p.Start(ctx)
		close(done)
	}()

	require.Eventually(t, func() bool {
		return p.Snapshot().Connected
	}, time.Second, 5*time.Millisecond)

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("poller did not stop after cancel")
	}
}

func TestConfigDefaults(t *testing.T) {
	c := Config{}
	c.fill()
	assert.Equal(t, 30*time.Second, c.Interval)
	assert.Equal(t, 5, c.MessageLimit)
}
