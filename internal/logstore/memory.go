package logstore

import (
	"fmt"
	"sync"
	"time"

	"clawboard/internal/model"
)

// MemoryStore keeps the log buffer in process memory, newest first.
type MemoryStore struct {
	mu   sync.Mutex
	logs []model.ActivityLogEntry
	seq  int
}

// NewMemoryStore creates a store pre-populated with the seed dataset.
func NewMemoryStore() *MemoryStore {
	seed := Seed()
	return &MemoryStore{logs: seed, seq: len(seed)}
}

// NewEmptyMemoryStore creates a store with no seed data.
func NewEmptyMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// Add assigns the next sequential id (unless the entry brings its own),
// stamps a missing timestamp with now, and prepends.
func (s *MemoryStore) Add(entry model.ActivityLogEntry) model.ActivityLogEntry {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.seq++
	if entry.ID == "" {
		entry.ID = fmt.Sprintf("LOG-%03d", s.seq)
	}
	if entry.Timestamp.IsZero() {
		entry.Timestamp = time.Now()
	}
	if entry.Level == "" {
		entry.Level = model.LevelInfo
	}
	s.logs = append([]model.ActivityLogEntry{entry}, s.logs...)
	return entry
}

// Logs returns a snapshot copy; callers re-fetch to observe appends.
func (s *MemoryStore) Logs() []model.ActivityLogEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.ActivityLogEntry, len(s.logs))
	copy(out, s.logs)
	return out
}

func (s *MemoryStore) Close() error {
	return nil
}
