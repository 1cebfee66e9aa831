package repository

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite" // pure-Go SQLite driver, no CGO
)

// DB wraps the SQLite connection shared by all repositories.
type DB struct {
	conn *sql.DB
}

// Open creates or opens the database at the given path, enabling WAL mode
// and foreign keys, and applies the schema.
func Open(path string) (*DB, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return nil, fmt.Errorf("create data dir: %w", err)
		}
	}

	dsn := path + "?_journal_mode=WAL&_busy_timeout=5000&_foreign_keys=on"
	conn, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}

	db := &DB{conn: conn}
	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, err
	}
	return db, nil
}

// Close closes the underlying connection.
func (d *DB) Close() error {
	return d.conn.Close()
}

func (d *DB) migrate() error {
	schema := `
CREATE TABLE IF NOT EXISTS usage_records (
	date TEXT PRIMARY KEY,
	screen_time_minutes INTEGER NOT NULL,
	social_media_minutes INTEGER NOT NULL,
	productive_minutes INTEGER NOT NULL,
	unlock_count INTEGER NOT NULL,
	app_categories TEXT NOT NULL DEFAULT '[]'
);

CREATE TABLE IF NOT EXISTS mood_records (
	date TEXT PRIMARY KEY,
	mood_score INTEGER NOT NULL,
	energy_level INTEGER NOT NULL,
	sleep_quality INTEGER NOT NULL,
	stress_indicator INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS intervention_rules (
	id TEXT PRIMARY KEY,
	title TEXT NOT NULL,
	action_text TEXT NOT NULL,
	trigger_condition TEXT NOT NULL DEFAULT '{}',
	priority TEXT NOT NULL,
	effectiveness REAL NOT NULL,
	created_at TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS challenge_state (
	id INTEGER PRIMARY KEY CHECK (id = 1),
	current_day INTEGER NOT NULL,
	points INTEGER NOT NULL,
	completed_days TEXT NOT NULL DEFAULT '[]',
	difficulty TEXT NOT NULL,
	status TEXT NOT NULL,
	consecutive_full INTEGER NOT NULL DEFAULT 0,
	started_at TEXT,
	updated_at TEXT NOT NULL
);
`
	if _, err := d.conn.Exec(schema); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	return nil
}
