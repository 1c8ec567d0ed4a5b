package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	// Pure Go SQLite driver (no CGO).
	_ "modernc.org/sqlite"
)

// Store holds the diagnostics database. It only records LLM request
// events; conversations themselves live in memory.
type Store struct {
	db  *sql.DB
	seq *sequenceCounter
}

// Open creates a new Store connected to the SQLite database at dsn.
// It applies recommended pragmas and creates the schema.
func Open(dsn string) (*Store, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// One connection keeps in-memory databases alive across queries and
	// matches the single-session workload.
	db.SetMaxOpenConns(1)

	if err := applyPragmas(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply pragmas: %w", err)
	}

	if err := migrate(context.Background(), db); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	seq, err := newSequenceCounter(db)
	if err != nil {
		db.Close()
		return nil, err
	}

	return &Store{db: db, seq: seq}, nil
}

// DB returns the underlying *sql.DB for raw queries.
func (s *Store) DB() *sql.DB {
	return s.db
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// EventRepo returns the LLM event repository backed by this store.
func (s *Store) EventRepo() *LLMEventRepo {
	return &LLMEventRepo{db: s.db, seq: s.seq}
}

// applyPragmas configures SQLite for single-user use.
func applyPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA foreign_keys = ON",
		"PRAGMA synchronous = NORMAL",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			return fmt.Errorf("%s: %w", p, err)
		}
	}
	return nil
}

func migrate(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS llm_request_events (
		id            INTEGER PRIMARY KEY AUTOINCREMENT,
		sequence      INTEGER NOT NULL UNIQUE,
		timestamp     DATETIME NOT NULL,
		provider      TEXT NOT NULL,
		model         TEXT NOT NULL,
		purpose       TEXT NOT NULL,
		input_tokens  INTEGER NOT NULL DEFAULT 0,
		output_tokens INTEGER NOT NULL DEFAULT 0,
		latency_ms    INTEGER NOT NULL DEFAULT 0,
		success       BOOLEAN NOT NULL,
		error_message TEXT NOT NULL DEFAULT '',
		request_body  TEXT NOT NULL DEFAULT '',
		response_body TEXT NOT NULL DEFAULT ''
	)`)
	if err != nil {
		return fmt.Errorf("create llm_request_events: %w", err)
	}

	for _, idx := range []string{
		`CREATE INDEX IF NOT EXISTS idx_llm_events_purpose ON llm_request_events (purpose)`,
		`CREATE INDEX IF NOT EXISTS idx_llm_events_timestamp ON llm_request_events (timestamp)`,
	} {
		if _, err := db.ExecContext(ctx, idx); err != nil {
			return fmt.Errorf("create index: %w", err)
		}
	}
	return nil
}

// DefaultDBPath resolves the database file path in priority order:
// 1. ETERNAL_DB environment variable
// 2. $XDG_DATA_HOME/eternal/eternal.db
// 3. ~/.local/share/eternal/eternal.db
func DefaultDBPath() (string, error) {
	if p := os.Getenv("ETERNAL_DB"); p != "" {
		return p, EnsureDir(p)
	}

	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		dataHome = filepath.Join(home, ".local", "share")
	}

	p := filepath.Join(dataHome, "eternal", "eternal.db")
	return p, EnsureDir(p)
}

// EnsureDir creates the parent directory of path if it doesn't exist.
func EnsureDir(path string) error {
	dir := filepath.Dir(path)
	return os.MkdirAll(dir, 0o755)
}
