package logstore

import (
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"clawboard/internal/model"
)

// SQLiteStore persists the local log buffer so manually added entries
// survive restarts.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens (or creates) the database at path, applies the
// schema and seeds an empty table with the default dataset.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open log database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping log database: %w", err)
	}

	s := &SQLiteStore{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate log database: %w", err)
	}
	return s, nil
}

func (s *SQLiteStore) migrate() error {
	_, err := s.db.Exec(`
	CREATE TABLE IF NOT EXISTS activity_logs (
		seq INTEGER PRIMARY KEY AUTOINCREMENT,
		id TEXT NOT NULL UNIQUE,
		timestamp DATETIME NOT NULL,
		agent TEXT NOT NULL,
		action TEXT NOT NULL,
		details TEXT NOT NULL DEFAULT '',
		model TEXT NOT NULL DEFAULT '',
		level TEXT NOT NULL DEFAULT 'info',
		duration TEXT NOT NULL DEFAULT ''
	);`)
	if err != nil {
		return err
	}

	var count int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM activity_logs`).Scan(&count); err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	seed := Seed()
	for i := len(seed) - 1; i >= 0; i-- { // oldest first so seq follows time
		e := seed[i]
		_, err := s.db.Exec(
			`INSERT INTO activity_logs (id, timestamp, agent, action, details, model, level, duration) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			e.ID, e.Timestamp, e.Agent, e.Action, e.Details, e.Model, string(e.Level), e.Duration,
		)
		if err != nil {
			return err
		}
	}
	return nil
}

// Add inserts the entry, assigning the next sequential display id when
// the entry has none.
func (s *SQLiteStore) Add(entry model.ActivityLogEntry) model.ActivityLogEntry {
	if entry.Timestamp.IsZero() {
		entry.Timestamp = time.Now()
	}
	if entry.Level == "" {
		entry.Level = model.LevelInfo
	}
	if entry.ID == "" {
		var count int
		if err := s.db.QueryRow(`SELECT COUNT(*) FROM activity_logs`).Scan(&count); err != nil {
			count = 0
		}
		entry.ID = fmt.Sprintf("LOG-%03d", count+1)
	}
	_, err := s.db.Exec(
		`INSERT OR IGNORE INTO activity_logs (id, timestamp, agent, action, details, model, level, duration) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		entry.ID, entry.Timestamp, entry.Agent, entry.Action, entry.Details, entry.Model, string(entry.Level), entry.Duration,
	)
	if err != nil {
		slog.Warn("Failed to persist activity log entry", "id", entry.ID, "error", err)
	}
	return entry
}

// Logs returns all persisted entries newest first. Unreadable rows are
// skipped; a completely unreadable table degrades to the seed dataset
// rather than an error.
func (s *SQLiteStore) Logs() []model.ActivityLogEntry {
	rows, err := s.db.Query(`SELECT id, timestamp, agent, action, details, model, level, duration FROM activity_logs ORDER BY timestamp DESC, seq DESC`)
	if err != nil {
		return Seed()
	}
	defer rows.Close()

	var out []model.ActivityLogEntry
	for rows.Next() {
		var e model.ActivityLogEntry
		var level string
		if err := rows.Scan(&e.ID, &e.Timestamp, &e.Agent, &e.Action, &e.Details, &e.Model, &level, &e.Duration); err != nil {
			continue
		}
		e.Level = model.LogLevel(level)
		out = append(out, e)
	}
	if rows.Err() != nil && len(out) == 0 {
		return Seed()
	}
	return out
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
