// Package store persists the session form and theme preference in a local
// SQLite key/value table.
package store

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	_ "modernc.org/sqlite"

	"github.com/thywilljoshua/boardmate/internal/study"
)

const (
	SessionKey = "boardMateSession"
	ThemeKey   = "theme"
)

type Theme string

const (
	Light Theme = "light"
	Dark  Theme = "dark"
)

func (t Theme) IsDark() bool { return t == Dark }

func (t Theme) Toggle() Theme {
	if t == Dark {
		return Light
	}
	return Dark
}

type Store struct {
	db  *sql.DB
	log *zap.Logger
}

func Open(path string, log *zap.Logger) (*Store, error) {
	if log == nil {
		log = zap.NewNop()
	}
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create state dir: %w", err)
		}
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open state db: %w", err)
	}
	db.SetMaxOpenConns(1)
	s := &Store{db: db, log: log}
	if err := s.initSchema(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *Store) initSchema() error {
	_, err := s.db.Exec(`CREATE TABLE IF NOT EXISTS kv (
		key   TEXT PRIMARY KEY,
		value TEXT NOT NULL
	)`)
	if err != nil {
		return fmt.Errorf("init state schema: %w", err)
	}
	return nil
}

func (s *Store) Close() error { return s.db.Close() }

// Get returns the stored value and whether the key was present.
func (s *Store) Get(key string) (string, bool, error) {
	var v string
	err := s.db.QueryRow(`SELECT value FROM kv WHERE key = ?`, key).Scan(&v)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("read %s: %w", key, err)
	}
	return v, true, nil
}

func (s *Store) Set(key, value string) error {
	_, err := s.db.Exec(`INSERT INTO kv (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value`, key, value)
	if err != nil {
		return fmt.Errorf("write %s: %w", key, err)
	}
	return nil
}

// LoadForm restores the saved form, falling back to the defaults when the
// blob is missing or cannot be decoded.
func (s *Store) LoadForm() study.FormState {
	raw, ok, err := s.Get(SessionKey)
	if err != nil {
		s.log.Warn("reading saved session", zap.Error(err))
		return study.DefaultForm()
	}
	if !ok {
		return study.DefaultForm()
	}
	// Keys missing from the blob keep their defaults.
	f := study.DefaultForm()
	if err := json.Unmarshal([]byte(raw), &f); err != nil {
		s.log.Warn("discarding unreadable saved session", zap.Error(err))
		return study.DefaultForm()
	}
	return f
}

func (s *Store) SaveForm(f study.FormState) error {
	b, err := json.Marshal(f)
	if err != nil {
		return err
	}
	return s.Set(SessionKey, string(b))
}

// LoadTheme returns the saved theme, or the environment preference when none
// has been saved.
func (s *Store) LoadTheme(systemDark bool) Theme {
	raw, ok, err := s.Get(ThemeKey)
	if err != nil {
		s.log.Warn("reading saved theme", zap.Error(err))
	}
	if ok {
		switch Theme(raw) {
		case Dark, Light:
			return Theme(raw)
		}
	}
	if systemDark {
		return Dark
	}
	return Light
}

func (s *Store) SaveTheme(t Theme) error {
	return s.Set(ThemeKey, string(t))
}

// ToggleTheme flips the current theme and persists the result.
func (s *Store) ToggleTheme(systemDark bool) (Theme, error) {
	next := s.LoadTheme(systemDark).Toggle()
	if err := s.SaveTheme(next); err != nil {
		return "", err
	}
	return next, nil
}
