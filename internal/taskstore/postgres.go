package taskstore

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"

	"clawboard/internal/model"
)

// PostgresStore implements Store using PostgreSQL, for deployments
// where the task list is shared by a hosted database service.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgresStore creates a new Postgres task store and applies
// migrations.
func NewPostgresStore(dsn string) (*PostgresStore, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	store := &PostgresStore{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	return store, nil
}

func (s *PostgresStore) migrate() error {
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
		created_at TIMESTAMP NOT NULL,
		updated_at TIMESTAMP NOT NULL,
		completed_at TIMESTAMP
	);`)
	return err
}

func (s *PostgresStore) List(ctx context.Context) ([]model.Task, error) {
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

func (s *PostgresStore) Get(ctx context.Context, id string) (model.Task, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+taskColumns+` FROM tasks WHERE id = $1`, id)
	t, err := scanTask(row)
	if err == sql.ErrNoRows {
		return model.Task{}, fmt.Errorf("task not found: %s", id)
	}
	return t, err
}

func (s *PostgresStore) Create(ctx context.Context, t model.Task) (model.Task, error) {
	t, err := prepare(t, time.Now())
	if err != nil {
		return model.Task{}, err
	}
	tags, subtasks := encodeLists(t)
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO tasks (id, title, description, assignee, status, priority, deadline, tags, subtasks, created_at, updated_at, completed_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
		t.ID, t.Title, t.Description, t.Assignee, string(t.Status), string(t.Priority), t.Deadline, tags, subtasks, t.CreatedAt, t.UpdatedAt, t.CompletedAt,
	)
	if err != nil {
		return model.Task{}, fmt.Errorf("failed to create task: %w", err)
	}
	return t, nil
}

func (s *PostgresStore) Update(ctx context.Context, t model.Task) (model.Task, error) {
	if !model.ValidTaskStatus(t.Status) {
		return model.Task{}, fmt.Errorf("invalid task status: %s", t.Status)
	}
	t.UpdatedAt = time.Now()
	tags, subtasks := encodeLists(t)
	res, err := s.db.ExecContext(ctx,
		`UPDATE tasks SET title = $1, description = $2, assignee = $3, status = $4, priority = $5, deadline = $6, tags = $7, subtasks = $8, updated_at = $9, completed_at = $10 WHERE id = $11`,
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

func (s *PostgresStore) SetStatus(ctx context.Context, id string, status model.TaskStatus) (model.Task, error) {
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

func (s *PostgresStore) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM tasks WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("task not found: %s", id)
	}
	return nil
}

func (s *PostgresStore) Close() error {
	return s.db.Close()
}
