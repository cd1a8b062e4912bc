package db

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// Store provides access to the preferences database.
type Store struct {
	db *sql.DB
}

// Open opens (and if needed creates) the database at path with WAL.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create db dir: %w", err)
		}
	}

	dsn := fmt.Sprintf("file:%s?_journal_mode=WAL", path)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if _, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS prefs (
			key TEXT PRIMARY KEY,
			value INTEGER NOT NULL
		)
	`); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate database: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// LoadPrefs returns the stored preferences, or defaults for missing keys.
func (s *Store) LoadPrefs() (Prefs, error) {
	p := DefaultPrefs()

	rows, err := s.db.Query(`SELECT key, value FROM prefs`)
	if err != nil {
		return p, fmt.Errorf("query prefs: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var key string
		var value int
		if err := rows.Scan(&key, &value); err != nil {
			return p, fmt.Errorf("scan pref: %w", err)
		}
		switch key {
		case "camera_enabled":
			p.CameraEnabled = value != 0
		case "microphone_enabled":
			p.MicrophoneEnabled = value != 0
		case "text_only":
			p.TextOnly = value != 0
		}
	}
	return p, rows.Err()
}

// SavePrefs upserts all preference keys.
func (s *Store) SavePrefs(p Prefs) error {
	for key, value := range map[string]bool{
		"camera_enabled":     p.CameraEnabled,
		"microphone_enabled": p.MicrophoneEnabled,
		"text_only":          p.TextOnly,
	} {
		v := 0
		if value {
			v = 1
		}
		if _, err := s.db.Exec(`
			INSERT INTO prefs (key, value) VALUES (?, ?)
			ON CONFLICT(key) DO UPDATE SET value = excluded.value
		`, key, v); err != nil {
			return fmt.Errorf("save pref %s: %w", key, err)
		}
	}
	return nil
}
