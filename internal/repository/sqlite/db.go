// Package sqlite is the embedded storage backend, used for single-binary
// deployments where running Postgres is overkill. It implements the same
// repository interfaces as the postgres package.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS items (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    list_id INTEGER NOT NULL,
    text TEXT NOT NULL,
    done BOOLEAN NOT NULL DEFAULT 0
);
CREATE INDEX IF NOT EXISTS idx_items_list_id ON items (list_id);

CREATE TABLE IF NOT EXISTS render_pointers (
    list_id INTEGER PRIMARY KEY,
    chat_id INTEGER NOT NULL,
    message_id INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS delete_sessions (
    user_id INTEGER PRIMARY KEY,
    list_id INTEGER NOT NULL,
    selected TEXT NOT NULL DEFAULT '',
    notice_chat_id INTEGER,
    notice_message_id INTEGER,
    panel_chat_id INTEGER,
    panel_message_id INTEGER
);

CREATE TABLE IF NOT EXISTS api_tokens (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    list_id INTEGER NOT NULL,
    token TEXT NOT NULL UNIQUE,
    issued_at INTEGER NOT NULL,
    last_used_at INTEGER,
    revoked_at INTEGER
);
CREATE INDEX IF NOT EXISTS idx_api_tokens_list_id ON api_tokens (list_id);
`

// DB wraps the embedded database handle
type DB struct {
	SQL *sql.DB
}

// Open opens (creating if needed) the database file and applies the schema.
func Open(ctx context.Context, path string) (*DB, error) {
	if path == "" {
		return nil, fmt.Errorf("database file path is required")
	}

	dsn := fmt.Sprintf("file:%s?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=foreign_keys(1)", path)

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(1) // SQLite only supports one writer
	db.SetMaxIdleConns(1)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to apply schema: %w", err)
	}

	return &DB{SQL: db}, nil
}

// Close closes the database handle
func (db *DB) Close() error {
	return db.SQL.Close()
}

// Ping verifies database connectivity
func (db *DB) Ping(ctx context.Context) error {
	return db.SQL.PingContext(ctx)
}
