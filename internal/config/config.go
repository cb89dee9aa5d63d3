package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	toml "github.com/pelletier/go-toml/v2"
)

// Config captures everything shelfmark needs to talk to the tracker
// service and drive the UI.
type Config struct {
	BaseURL         string
	Session         string
	PageSize        int
	CatalogPageSize int
	DebounceMS      int
	Sort            string
	LogFile         string
}

const (
	defaultConfigPath  = "~/.config/shelfmark/config.toml"
	defaultLogFile     = "~/.local/state/shelfmark/shelfmark.log"
	defaultBaseURL     = "http://localhost:8080"
	defaultPageSize    = 10
	defaultCatalogSize = 9
	defaultDebounceMS  = 500
	defaultSort        = "createDate,desc"
)

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		BaseURL:         defaultBaseURL,
		PageSize:        defaultPageSize,
		CatalogPageSize: defaultCatalogSize,
		DebounceMS:      defaultDebounceMS,
		Sort:            defaultSort,
		LogFile:         mustExpand(defaultLogFile),
	}
}

// Load locates and parses the shelfmark config, falling back to defaults
// when missing. A .env file and SHELFMARK_* environment variables
// override the file so the session cookie never has to live on disk.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	cfg := Default()

	file, err := os.Open(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			applyEnv(&cfg)
			return cfg, nil
		}
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer func() { _ = file.Close() }()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var raw struct {
		BaseURL         string `toml:"base_url"`
		Session         string `toml:"session"`
		PageSize        int    `toml:"page_size"`
		CatalogPageSize int    `toml:"catalog_page_size"`
		DebounceMS      int    `toml:"debounce_ms"`
		Sort            string `toml:"sort"`
		LogFile         string `toml:"log_file"`
	}
	if err := toml.Unmarshal(bytes, &raw); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	if v := strings.TrimSpace(raw.BaseURL); v != "" {
		cfg.BaseURL = v
	}
	if v := strings.TrimSpace(raw.Session); v != "" {
		cfg.Session = v
	}
	if raw.PageSize > 0 {
		cfg.PageSize = raw.PageSize
	}
	if raw.CatalogPageSize > 0 {
		cfg.CatalogPageSize = raw.CatalogPageSize
	}
	if raw.DebounceMS > 0 {
		cfg.DebounceMS = raw.DebounceMS
	}
	if v := strings.TrimSpace(raw.Sort); v != "" {
		cfg.Sort = v
	}
	if v := strings.TrimSpace(raw.LogFile); v != "" {
		cfg.LogFile = mustExpand(v)
	}

	applyEnv(&cfg)
	return cfg, nil
}

// Debounce returns the search quiet period.
func (c Config) Debounce() time.Duration {
	ms := c.DebounceMS
	if ms <= 0 {
		ms = defaultDebounceMS
	}
	return time.Duration(ms) * time.Millisecond
}

func applyEnv(cfg *Config) {
	_ = godotenv.Load()
	if v := strings.TrimSpace(os.Getenv("SHELFMARK_BASE_URL")); v != "" {
		cfg.BaseURL = v
	}
	if v := strings.TrimSpace(os.Getenv("SHELFMARK_SESSION")); v != "" {
		cfg.Session = v
	}
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultConfigPath)
	}
	return expandPath(path)
}

func mustExpand(path string) string {
	expanded, err := expandPath(path)
	if err != nil {
		return path
	}
	return expanded
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
