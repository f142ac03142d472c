package taskstore

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"clawboard/internal/model"
)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore creates a new SQLite task store and applies migrations.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	store := &SQLiteStore{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	return store, nil
}

func (s *SQLiteStore) migrate() error {
	_, err := s.db.Exec(`
	CREATE TABLE IF NOT EXISTS tasks (
		id TEXT PRIMARY KEY,
		title TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		assignee TEXT NOT NULL DEFAULT '',
		status TEXT NOT NULL DEFAULT 'backlog',
		priority TEXT NOT NULL DEFAULT 'medium',
		deadline TEXT NOT NULL DEFAULT '',
		tags TEXT NOT NULL DEFAULT '[]',
		subtasks TEXT NOT NULL DEFAULT '[]',
		created_at DATETIME NOT NULL,
		updated_at DATETIME NOT NULL,
		completed_at DATETIME
	);`)
	return err
}

func (s *SQLiteStore) List(ctx context.Context) ([]model.Task, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+taskColumns+` FROM tasks ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	defer rows.Close()

	var out []model.Task
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func (s *SQLiteStore) Get(ctx context.Context, id string) (model.Task, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+taskColumns+` FROM tasks WHERE id = ?`, id)
	t, err := scanTask(row)
	if err == sql.ErrNoRows {
		return model.Task{}, fmt.Errorf("task not found: %s", id)
	}
	return t, err
}

func (s *SQLiteStore) Create(ctx context.Context, t model.Task) (model.Task, error) {
	t, err := prepare(t, time.Now())
	if err != nil {
		return model.Task{}, err
	}
	tags, subtasks := encodeLists(t)
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO tasks (id, title, description, assignee, status, priority, deadline, tags, subtasks, created_at, updated_at, completed_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		t.ID, t.Title, t.Description, t.Assignee, string(t.Status), string(t.Priority), t.Deadline, tags, subtasks, t.CreatedAt, t.UpdatedAt, t.CompletedAt,
	)
	if err != nil {
		return model.Task{}, fmt.Errorf("failed to create task: %w", err)
	}
	return t, nil
}

func (s *SQLiteStore) Update(ctx context.Context, t model.Task) (model.Task, error) {
	if !model.ValidTaskStatus(t.Status) {
		return model.Task{}, fmt.Errorf("invalid task status: %s", t.Status)
	}
	t.UpdatedAt = time.Now()
	tags, subtasks := encodeLists(t)
	res, err := s.db.ExecContext(ctx,
		`UPDATE tasks SET title = ?, description = ?, assignee = ?, status = ?, priority = ?, deadline = ?, tags = ?, subtasks = ?, updated_at = ?, completed_at = ? WHERE id = ?`,
		t.Title, t.Description, t.Assignee, string(t.Status), string(t.Priority), t.Deadline, tags, subtasks, t.UpdatedAt, t.CompletedAt, t.ID,
	)
	if err != nil {
		return model.Task{}, fmt.Errorf("failed to update task: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return model.Task{}, fmt.Errorf("task not found: %s", t.ID)
	}
	return t, nil
}

func (s *SQLiteStore) SetStatus(ctx context.Context, id string, status model.TaskStatus) (model.Task, error) {
	if !model.ValidTaskStatus(status) {
		return model.Task{}, fmt.Errorf("invalid task status: %s", status)
	}
	t, err := s.Get(ctx, id)
	if err != nil {
		return model.Task{}, err
	}
	t = stampStatus(t, status, time.Now())
	return s.Update(ctx, t)
}

func (s *SQLiteStore) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM tasks WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("task not found: %s", id)
	}
	return nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

const taskColumns = `id, title, description, assignee, status, priority, deadline, tags, subtasks, created_at, updated_at, completed_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTask(row rowScanner) (model.Task, error) {
	var t model.Task
	var status, priority, tags, subtasks string
	var completed sql.NullTime
	err := row.Scan(&t.ID, &t.Title, &t.Description, &t.Assignee, &status, &priority, &t.Deadline, &tags, &subtasks, &t.CreatedAt, &t.UpdatedAt, &completed)
	if err != nil {
		return model.Task{}, err
	}
	t.Status = model.TaskStatus(status)
	t.Priority = model.TaskPriority(priority)
	if completed.Valid {
		t.CompletedAt = &completed.Time
	}
	// JSON list columns; a corrupt blob degrades to an empty list.
	if err := json.Unmarshal([]byte(tags), &t.Tags); err != nil {
		t.Tags = []string{}
	}
	if err := json.Unmarshal([]byte(subtasks), &t.Subtasks); err != nil {
		t.Subtasks = nil
	}
	return t, nil
}

func encodeLists(t model.Task) (tags string, subtasks string) {
	tb, err := json.Marshal(t.Tags)
	if err != nil {
		tb = []byte("[]")
	}
	sb, err := json.Marshal(t.Subtasks)
	if err != nil {
		sb = []byte("[]")
	}
	if t.Subtasks == nil {
		sb = []byte("[]")
	}
	return string(tb), string(sb)
}
