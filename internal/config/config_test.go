package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("SHELFMARK_BASE_URL", "")
	t.Setenv("SHELFMARK_SESSION", "")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.BaseURL != defaultBaseURL {
		t.Fatalf("BaseURL = %q, want %q", cfg.BaseURL, defaultBaseURL)
	}
	if cfg.PageSize != defaultPageSize || cfg.CatalogPageSize != defaultCatalogSize {
		t.Fatalf("page sizes = %d/%d, want %d/%d", cfg.PageSize, cfg.CatalogPageSize, defaultPageSize, defaultCatalogSize)
	}
	if cfg.Debounce() != 500*time.Millisecond {
		t.Fatalf("Debounce = %v, want 500ms", cfg.Debounce())
	}
}

func TestLoad_ReadsFileAndExpandsLogPath(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("SHELFMARK_BASE_URL", "")
	t.Setenv("SHELFMARK_SESSION", "")

	dir := filepath.Join(home, ".config", "shelfmark")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("MkdirAll: %v", err)
	}
	content := "base_url = \"https://books.example.com\"\n" +
		"session = \"abc123\"\n" +
		"page_size = 20\n" +
		"debounce_ms = 250\n" +
		"log_file = \"~/logs/shelfmark.log\"\n"
	if err := os.WriteFile(filepath.Join(dir, "config.toml"), []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.BaseURL != "https://books.example.com" || cfg.Session != "abc123" {
		t.Fatalf("cfg = %#v, want file values", cfg)
	}
	if cfg.PageSize != 20 || cfg.Debounce() != 250*time.Millisecond {
		t.Fatalf("cfg = %#v, want page_size=20 debounce=250ms", cfg)
	}
	if cfg.LogFile != filepath.Join(home, "logs", "shelfmark.log") {
		t.Fatalf("LogFile = %q, want expanded under home", cfg.LogFile)
	}
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	dir := filepath.Join(home, ".config", "shelfmark")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("MkdirAll: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "config.toml"), []byte("base_url = \"http://file\"\nsession = \"file\"\n"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	t.Setenv("SHELFMARK_BASE_URL", "http://env")
	t.Setenv("SHELFMARK_SESSION", "env-token")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.BaseURL != "http://env" || cfg.Session != "env-token" {
		t.Fatalf("cfg = %#v, want env overrides", cfg)
	}
}

func TestLoad_ParseErrorSurfaces(t *testing.T) {
	tmp := t.TempDir()
	path := filepath.Join(tmp, "broken.toml")
	if err := os.WriteFile(path, []byte("base_url = [not toml"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Fatalf("Load returned nil error, want parse error")
	}
}
