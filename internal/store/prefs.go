package store

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"path/filepath"
	"strings"

	_ "modernc.org/sqlite"
)

const (
	prefsFileName = "prefs.sqlite"

	keyDarkMode    = "darkMode"
	keyLastBoardID = "lastBoardId"
)

// Prefs is the small local key/value store: the light/dark flag and the last selected board.
// Board data is never cached here.
type Prefs struct {
	db *sql.DB
}

func PrefsPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, prefsFileName), nil
}

// OpenPrefs opens (creating if needed) the prefs database at path. An empty path means
// PrefsPath().
func OpenPrefs(ctx context.Context, path string) (*Prefs, error) {
	if strings.TrimSpace(path) == "" {
		p, err := PrefsPath()
		if err != nil {
			return nil, err
		}
		path = p
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	// modernc.org/sqlite driver name is "sqlite".
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)
	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
		"PRAGMA busy_timeout=5000;",
	}
	for _, p := range pragmas {
		if _, err := db.ExecContext(ctx, p); err != nil {
			_ = db.Close()
			return nil, err
		}
	}
	if _, err := db.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS prefs (
		k TEXT PRIMARY KEY,
		v TEXT NOT NULL
	);`); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &Prefs{db: db}, nil
}

func (p *Prefs) Close() error {
	if p == nil || p.db == nil {
		return nil
	}
	return p.db.Close()
}

// Get returns the stored value and whether the key exists.
func (p *Prefs) Get(ctx context.Context, key string) (string, bool, error) {
	var v string
	err := p.db.QueryRowContext(ctx, `SELECT v FROM prefs WHERE k = ?`, key).Scan(&v)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return v, true, nil
}

func (p *Prefs) Set(ctx context.Context, key, value string) error {
	_, err := p.db.ExecContext(ctx, `INSERT OR REPLACE INTO prefs(k, v) VALUES(?, ?)`, key, value)
	return err
}

// DarkMode reports the stored theme flag; false (light) when never written.
func (p *Prefs) DarkMode(ctx context.Context) (bool, error) {
	v, ok, err := p.Get(ctx, keyDarkMode)
	if err != nil || !ok {
		return false, err
	}
	return v == "true", nil
}

func (p *Prefs) SetDarkMode(ctx context.Context, dark bool) error {
	v := "false"
	if dark {
		v = "true"
	}
	return p.Set(ctx, keyDarkMode, v)
}

func (p *Prefs) LastBoardID(ctx context.Context) (string, error) {
	v, _, err := p.Get(ctx, keyLastBoardID)
	return v, err
}

func (p *Prefs) SetLastBoardID(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		_, err := p.db.ExecContext(ctx, `DELETE FROM prefs WHERE k = ?`, keyLastBoardID)
		return err
	}
	return p.Set(ctx, keyLastBoardID, id)
}
