package db

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// MemoryPath opens a private in-memory database instead of a file.
const MemoryPath = ":memory:"

// OpenDB opens the mapty SQLite database at the given path, creating the
// parent directory when needed, and runs migrations.
// An in-memory database is pinned to a single connection because every new
// connection to ":memory:" would otherwise see its own empty database.
func OpenDB(path string) (*sql.DB, error) {
	if path != MemoryPath {
		dir := filepath.Dir(path)
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("creating db directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", dsn(path))
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	if path == MemoryPath {
		db.SetMaxOpenConns(1)
	}

	if _, err := db.Exec("PRAGMA journal_mode = WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("setting WAL mode: %w", err)
	}

	if err := Migrate(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return db, nil
}

// dsn applies per-connection pragmas. A second mapty process (or a pooled
// connection) may hold the write lock for a moment.
func dsn(path string) string {
	if path == MemoryPath {
		return path
	}
	return path + "?_pragma=busy_timeout(2000)"
}
