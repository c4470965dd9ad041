package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"radar/internal/config"
)

func TestLoadDefaultsAndEnvOverrides(t *testing.T) {
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)
	t.Setenv("GITHUB_TOKEN", "gh-test")
	t.Setenv("NOTION_TOKEN", "notion-test")
	t.Setenv("NOTION_DB_ID", "db-test")

	cfg, resolved, exists, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if resolved == "" {
		t.Fatal("expected resolved path")
	}
	if exists {
		t.Fatal("expected config file to be absent in temp HOME")
	}

	wantState := filepath.Join(tempHome, ".local", "share", "radar", "state")
	if cfg.Paths.StateDir != wantState {
		t.Fatalf("unexpected state dir: got %q want %q", cfg.Paths.StateDir, wantState)
	}
	if cfg.Monitor.GitHubToken != "gh-test" {
		t.Fatalf("expected GITHUB_TOKEN fallback, got %q", cfg.Monitor.GitHubToken)
	}
	if cfg.Notion.Token != "notion-test" || cfg.Notion.DatabaseID != "db-test" {
		t.Fatalf("expected notion env fallbacks, got %+v", cfg.Notion)
	}
	if cfg.Monitor.LookbackDays != 7 {
		t.Fatalf("unexpected lookback: %d", cfg.Monitor.LookbackDays)
	}
	if got := cfg.RawDigestPath(); filepath.Base(got) != "digest_raw.txt" {
		t.Fatalf("unexpected raw digest path: %q", got)
	}
}

func TestLoadParsesFileValues(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	content := strings.Join([]string{
		"[monitor]",
		"lookback_days = 3",
		"min_repo_stars = 42",
		"[logging]",
		"format = \"json\"",
	}, "\n")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, _, exists, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !exists {
		t.Fatal("expected config file to exist")
	}
	if cfg.Monitor.LookbackDays != 3 {
		t.Fatalf("lookback not applied: %d", cfg.Monitor.LookbackDays)
	}
	if cfg.Monitor.MinRepoStars != 42 {
		t.Fatalf("min stars not applied: %d", cfg.Monitor.MinRepoStars)
	}
	if cfg.Logging.Format != "json" {
		t.Fatalf("log format not applied: %q", cfg.Logging.Format)
	}
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	if err := os.WriteFile(path, []byte("[monitor]\nlookback_days = -1\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	if _, _, _, err := config.Load(path); err == nil {
		t.Fatal("expected validation error for negative lookback")
	}
}

func TestRequireNotion(t *testing.T) {
	cfg := config.Default()
	cfg.Notion.Token = ""
	cfg.Notion.DatabaseID = ""
	if err := cfg.RequireNotion(); err == nil {
		t.Fatal("expected error when token missing")
	}

	cfg.Notion.Token = "secret"
	if err := cfg.RequireNotion(); err == nil {
		t.Fatal("expected error when database id missing")
	}

	cfg.Notion.DatabaseID = "db"
	if err := cfg.RequireNotion(); err != nil {
		t.Fatalf("expected credentials to satisfy RequireNotion: %v", err)
	}
}

func TestCreateSampleWritesParsableConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sub", "config.toml")
	if err := config.CreateSample(path); err != nil {
		t.Fatalf("CreateSample: %v", err)
	}
	if _, _, _, err := config.Load(path); err != nil {
		t.Fatalf("sample config failed to load: %v", err)
	}
}
