package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func TestConfigRoundTrip(t *testing.T) {
	dir := t.TempDir()
	t.Setenv(EnvConfigDir, dir)

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig (missing file): %v", err)
	}
	if !cfg.Cascade() || cfg.Concurrency() != DefaultFetchConcurrency {
		t.Fatalf("expected defaults, got cascade=%v concurrency=%d", cfg.Cascade(), cfg.Concurrency())
	}

	off := false
	cfg.APIURL = "http://api.local:9000"
	cfg.CascadeDeletes = &off
	cfg.FetchConcurrency = 8
	if err := SaveConfig(cfg); err != nil {
		t.Fatalf("SaveConfig: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "config.json")); err != nil {
		t.Fatalf("expected config.json written: %v", err)
	}

	got, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if got.APIURL != "http://api.local:9000" || got.Cascade() || got.Concurrency() != 8 {
		t.Fatalf("unexpected config after reload: %#v", got)
	}

	ents, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("ReadDir: %v", err)
	}
	for _, e := range ents {
		if filepath.Ext(e.Name()) == ".tmp" {
			t.Fatalf("expected no leftover temp files, found %s", e.Name())
		}
	}
}

func TestLoadConfigInvalidJSON(t *testing.T) {
	dir := t.TempDir()
	t.Setenv(EnvConfigDir, dir)
	if err := os.WriteFile(filepath.Join(dir, "config.json"), []byte("{nope"), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := LoadConfig(); err == nil {
		t.Fatalf("expected parse error")
	}
}

func TestLoadDotEnvDoesNotOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	if err := os.WriteFile(path, []byte("KANBAN_TEST_A=from-file\nKANBAN_TEST_B=from-file\n"), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	t.Setenv("KANBAN_TEST_A", "from-env")
	t.Setenv("KANBAN_TEST_B", "")
	os.Unsetenv("KANBAN_TEST_B")
	t.Cleanup(func() { os.Unsetenv("KANBAN_TEST_B") })

	if err := LoadDotEnv(path, filepath.Join(dir, "missing.env")); err != nil {
		t.Fatalf("LoadDotEnv: %v", err)
	}
	if got := Getenv("KANBAN_TEST_A", ""); got != "from-env" {
		t.Fatalf("expected existing env to win, got=%q", got)
	}
	if got := Getenv("KANBAN_TEST_B", ""); got != "from-file" {
		t.Fatalf("expected value from .env, got=%q", got)
	}
	if got := Getenv("KANBAN_TEST_UNSET", "def"); got != "def" {
		t.Fatalf("expected default, got=%q", got)
	}
}

func TestPrefs(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "nested", "prefs.sqlite")
	p, err := OpenPrefs(ctx, path)
	if err != nil {
		t.Fatalf("OpenPrefs: %v", err)
	}

	dark, err := p.DarkMode(ctx)
	if err != nil || dark {
		t.Fatalf("expected light by default, got dark=%v err=%v", dark, err)
	}
	if err := p.SetDarkMode(ctx, true); err != nil {
		t.Fatalf("SetDarkMode: %v", err)
	}
	if err := p.SetLastBoardID(ctx, " b7 "); err != nil {
		t.Fatalf("SetLastBoardID: %v", err)
	}
	if err := p.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	p, err = OpenPrefs(ctx, path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer p.Close()
	if dark, _ := p.DarkMode(ctx); !dark {
		t.Fatalf("expected dark mode persisted")
	}
	if id, _ := p.LastBoardID(ctx); id != "b7" {
		t.Fatalf("expected last board b7, got=%q", id)
	}
	if err := p.SetLastBoardID(ctx, ""); err != nil {
		t.Fatalf("clear last board: %v", err)
	}
	if id, _ := p.LastBoardID(ctx); id != "" {
		t.Fatalf("expected cleared last board, got=%q", id)
	}
}
