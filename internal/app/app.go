// Package app boots the shelfmark TUI from configuration.
package app

import (
	"context"
	"fmt"

	"shelfmark/internal/api"
	"shelfmark/internal/config"
	"shelfmark/internal/logging"
	"shelfmark/internal/prefs"
	"shelfmark/internal/ui"
)

// Options configure the shelfmark application.
type Options struct {
	ConfigPath string
	PrefsPath  string // empty uses default ~/.config/shelfmark/prefs.toml
	Verbose    bool
}

// Run boots the shelfmark TUI until the context is cancelled.
func Run(ctx context.Context, opts Options) error {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	prefsPath := opts.PrefsPath
	if prefsPath == "" {
		prefsPath = prefs.DefaultPath()
	}
	userPrefs := prefs.Load(prefsPath)

	logger, err := logging.New(cfg.LogFile, opts.Verbose)
	if err != nil {
		return fmt.Errorf("init logging: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	client, err := api.NewClient(cfg.BaseURL, cfg.Session)
	if err != nil {
		return fmt.Errorf("init tracker client: %w", err)
	}

	uiOpts := ui.Options{
		Context:   ctx,
		Client:    client,
		Config:    cfg,
		Logger:    logger,
		ThemeName: userPrefs.Theme,
		PrefsPath: prefsPath,
	}
	return ui.Run(uiOpts)
}

// NewClient builds an API client from the resolved configuration. The
// scripting subcommands use it without starting the UI.
func NewClient(opts Options) (*api.Client, config.Config, error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return nil, config.Config{}, fmt.Errorf("load config: %w", err)
	}
	client, err := api.NewClient(cfg.BaseURL, cfg.Session)
	if err != nil {
		return nil, config.Config{}, fmt.Errorf("init tracker client: %w", err)
	}
	return client, cfg, nil
}
