package store

import (
	"database/sql"
	"fmt"
	"sync"
)

// Current schema version
const SchemaVersion = "1"

// SQLite is a SQLite-backed transcript.
type SQLite struct {
	mu sync.Mutex
	db *sql.DB
}

// NewSQLite creates a new SQLite transcript at the given path.
func NewSQLite(path string) (*SQLite, error) {
	db, err := sql.Open(driverName, path)
	if err != nil {
		return nil, err
	}

	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS commands (
			seq INTEGER PRIMARY KEY AUTOINCREMENT,
			source TEXT NOT NULL
		);
		CREATE TABLE IF NOT EXISTS metadata (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		);
	`)
	if err != nil {
		db.Close()
		return nil, err
	}

	s := &SQLite{db: db}

	version, err := s.getMetadata("schema_version")
	if err != nil {
		db.Close()
		return nil, err
	}
	if version == "" {
		if err := s.setMetadata("schema_version", SchemaVersion); err != nil {
			db.Close()
			return nil, err
		}
	} else if version != SchemaVersion {
		db.Close()
		return nil, fmt.Errorf("unsupported schema version: %s (expected %s)", version, SchemaVersion)
	}

	return s, nil
}

// Append records a command.
func (s *SQLite) Append(source string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec("INSERT INTO commands (source) VALUES (?)", source)
	return err
}

// All returns the transcript in recorded order.
func (s *SQLite) All() ([]Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := s.db.Query("SELECT seq, source FROM commands ORDER BY seq")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.Seq, &e.Source); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Reset discards the transcript.
func (s *SQLite) Reset() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec("DELETE FROM commands")
	return err
}

// Close closes the database.
func (s *SQLite) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.db.Close()
}

func (s *SQLite) getMetadata(key string) (string, error) {
	var value string
	err := s.db.QueryRow("SELECT value FROM metadata WHERE key = ?", key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return value, nil
}

func (s *SQLite) setMetadata(key, value string) error {
	_, err := s.db.Exec(`
		INSERT INTO metadata (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`, key, value)
	return err
}
