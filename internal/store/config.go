package store

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
)

const (
	EnvConfigDir = "KANBAN_CONFIG_DIR"
	EnvAPIURL    = "KANBAN_API_URL"
	EnvLog       = "KANBAN_LOG"
	EnvTUITheme  = "KANBAN_TUI_THEME"

	DefaultFetchConcurrency = 4
)

// Config is the user-level config file (~/.kanban/config.json).
type Config struct {
	// APIURL is the REST backend root. Flags and KANBAN_API_URL take precedence.
	APIURL string `json:"apiUrl,omitempty"`

	// CascadeDeletes deletes children client-side before their parent. Unset means true.
	CascadeDeletes *bool `json:"cascadeDeletes,omitempty"`

	// FetchConcurrency bounds same-level fetches when loading a board.
	FetchConcurrency int `json:"fetchConcurrency,omitempty"`

	// LogPath is where the TUI writes its log. KANBAN_LOG takes precedence.
	LogPath string `json:"logPath,omitempty"`
}

func (c *Config) Cascade() bool {
	if c == nil || c.CascadeDeletes == nil {
		return true
	}
	return *c.CascadeDeletes
}

func (c *Config) Concurrency() int {
	if c == nil || c.FetchConcurrency < 1 {
		return DefaultFetchConcurrency
	}
	return c.FetchConcurrency
}

func ConfigDir() (string, error) {
	// Test/advanced override (keeps unit tests from touching ~/.kanban).
	if v := strings.TrimSpace(os.Getenv(EnvConfigDir)); v != "" {
		return v, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".kanban"), nil
}

func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

func LoadConfig() (*Config, error) {
	path, err := ConfigPath()
	if err != nil {
		return nil, err
	}
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &Config{}, nil
		}
		return nil, err
	}
	var cfg Config
	if err := json.Unmarshal(b, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func atomicWriteFile(dir, tmpPattern, path string, b []byte, perm os.FileMode) error {
	f, err := os.CreateTemp(dir, tmpPattern)
	if err != nil {
		return err
	}
	tmp := f.Name()
	defer func() { _ = os.Remove(tmp) }()
	if _, err := f.Write(b); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	_ = os.Chmod(tmp, perm)
	return os.Rename(tmp, path)
}

func SaveConfig(cfg *Config) error {
	if cfg == nil {
		return errors.New("nil config")
	}
	path, err := ConfigPath()
	if err != nil {
		return err
	}
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	b, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}
	// CLI and TUI may write concurrently; a unique temp name keeps writers from clobbering.
	return atomicWriteFile(dir, "config.json.*.tmp", path, b, 0o600)
}
