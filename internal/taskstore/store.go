// Package taskstore persists the kanban task list. The dashboard's
// aggregation core is independent of task persistence; this package is
// the external collaborator behind the board and task CRUD surfaces.
package taskstore

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"clawboard/internal/model"
)

// Store is the task persistence contract, implemented by the SQLite
// and Postgres backends.
type Store interface {
	List(ctx context.Context) ([]model.Task, error)
	Get(ctx context.Context, id string) (model.Task, error)
	Create(ctx context.Context, t model.Task) (model.Task, error)
	Update(ctx context.Context, t model.Task) (model.Task, error)
	SetStatus(ctx context.Context, id string, status model.TaskStatus) (model.Task, error)
	Delete(ctx context.Context, id string) error
	Close() error
}

// Config selects the task store backend.
type Config struct {
	Type             string // "sqlite" or "postgres"
	ConnectionString string // file path for SQLite, DSN for Postgres
}

// New creates a Store from config, defaulting to a local SQLite file
// the way the rest of the tool does.
func New(cfg Config) (Store, error) {
	switch strings.ToLower(cfg.Type) {
	case "postgres", "postgresql":
		if cfg.ConnectionString == "" {
			return nil, fmt.Errorf("postgres connection string is required")
		}
		return NewPostgresStore(cfg.ConnectionString)
	case "", "sqlite", "sqlite3":
		path := cfg.ConnectionString
		if path == "" {
			path = ".clawboard.db"
		}
		return NewSQLiteStore(path)
	default:
		return nil, fmt.Errorf("unsupported task store type: %s", cfg.Type)
	}
}

// prepare normalizes a task before insert: id, defaults, timestamps.
func prepare(t model.Task, now time.Time) (model.Task, error) {
	if strings.TrimSpace(t.Title) == "" {
		return t, fmt.Errorf("task title is required")
	}
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	if t.Status == "" {
		t.Status = model.TaskBacklog
	}
	if !model.ValidTaskStatus(t.Status) {
		return t, fmt.Errorf("invalid task status: %s", t.Status)
	}
	if t.Priority == "" {
		t.Priority = model.PriorityMedium
	}
	if !model.ValidTaskPriority(t.Priority) {
		return t, fmt.Errorf("invalid task priority: %s", t.Priority)
	}
	if t.Tags == nil {
		t.Tags = []string{}
	}
	if t.CreatedAt.IsZero() {
		t.CreatedAt = now
	}
	t.UpdatedAt = now
	if t.Status == model.TaskDone && t.CompletedAt == nil {
		done := now
		t.CompletedAt = &done
	}
	return t, nil
}

// stampStatus applies a status move: updated_at always, completed_at
// set on entering done and cleared on leaving it.
func stampStatus(t model.Task, status model.TaskStatus, now time.Time) model.Task {
	t.Status = status
	t.UpdatedAt = now
	if status == model.TaskDone {
		if t.CompletedAt == nil {
			done := now
			t.CompletedAt = &done
		}
	} else {
		t.CompletedAt = nil
	}
	return t
}
