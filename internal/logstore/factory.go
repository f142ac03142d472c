package logstore

import (
	"fmt"
	"strings"
)

// Config selects the log store backend.
type Config struct {
	Type string // "memory" or "sqlite"
	Path string // file path for sqlite
}

// New creates a Store from config. An empty type defaults to memory,
// matching the original in-process logger.
func New(cfg Config) (Store, error) {
	switch strings.ToLower(cfg.Type) {
	case "", "memory":
		return NewMemoryStore(), nil
	case "sqlite", "sqlite3":
		path := cfg.Path
		if path == "" {
			path = ".clawboard.db"
		}
		return NewSQLiteStore(path)
	default:
		return nil, fmt.Errorf("unsupported log store type: %s", cfg.Type)
	}
}
