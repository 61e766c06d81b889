package main

import (
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	_ "github.com/mattn/go-sqlite3"
)

// sqliteStore persists key/value pairs in a single SQLite table. It backs
// periodic.Store for the desktop app and the CLI.
type sqliteStore struct {
	db  *sql.DB
	log *slog.Logger
}

// openStore creates/opens the sqlite database at path and ensures the kv
// table exists.
func openStore(path string, logger *slog.Logger) (*sqliteStore, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		// try rwc as a fallback
		db, err = sql.Open("sqlite3", "file:"+path+"?mode=rwc")
		if err != nil {
			return nil, fmt.Errorf("open database %s: %w", path, err)
		}
	}

	if err := db.Ping(); err != nil {
		db.Close()
		db2, err2 := sql.Open("sqlite3", "file:"+path+"?mode=rwc")
		if err2 != nil {
			return nil, fmt.Errorf("connect to %s: %v / %w", path, err, err2)
		}
		if err := db2.Ping(); err != nil {
			db2.Close()
			return nil, fmt.Errorf("ping newly opened %s: %w", path, err)
		}
		db = db2
	}
	// one writer; keeps whole-value overwrites serialized
	db.SetMaxOpenConns(1)

	createKV := `
	CREATE TABLE IF NOT EXISTS kv (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL
	);
	`
	if _, err := db.Exec(createKV); err != nil {
		db.Close()
		return nil, fmt.Errorf("ensure kv table exists: %w", err)
	}

	logger.Debug("database ready", "path", path)
	return &sqliteStore{db: db, log: logger}, nil
}

func (s *sqliteStore) Get(key string) (string, bool, error) {
	var value string
	err := s.db.QueryRow("SELECT value FROM kv WHERE key = ?", key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return value, true, nil
}

func (s *sqliteStore) Set(key, value string) error {
	_, err := s.db.Exec(
		"INSERT INTO kv (key, value) VALUES (?, ?) ON CONFLICT(key) DO UPDATE SET value = excluded.value",
		key, value)
	if err != nil {
		return fmt.Errorf("write %s: %w", key, err)
	}
	s.log.Debug("stored", "key", key, "bytes", len(value))
	return nil
}

func (s *sqliteStore) Remove(key string) error {
	if _, err := s.db.Exec("DELETE FROM kv WHERE key = ?", key); err != nil {
		return fmt.Errorf("delete %s: %w", key, err)
	}
	s.log.Debug("removed", "key", key)
	return nil
}

// Keys lists stored keys in order, for diagnostics.
func (s *sqliteStore) Keys() ([]string, error) {
	rows, err := s.db.Query("SELECT key FROM kv ORDER BY key")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var k string
		if err := rows.Scan(&k); err != nil {
			return nil, err
		}
		out = append(out, k)
	}
	return out, rows.Err()
}

func (s *sqliteStore) Close() error {
	return s.db.Close()
}
