package main

import (
	"context"
	"fmt"

	"github.com/mark3labs/listwiz/internal/backend"
	"github.com/mark3labs/listwiz/internal/config"
	"github.com/mark3labs/listwiz/internal/draft"
	"github.com/mark3labs/listwiz/internal/logger"
	"github.com/mark3labs/listwiz/internal/wizard"
)

// loadConfig reads configuration and applies the persistent flags on top.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	applyFlags(cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := logger.Default.Configure(cfg.LogLevel, cfg.LogFile); err != nil {
		return nil, fmt.Errorf("configuring logger: %w", err)
	}
	return cfg, nil
}

// applyFlags gives CLI flags the highest precedence.
func applyFlags(cfg *config.Config) {
	if rootFlags.backend != "" {
		cfg.Backend = rootFlags.backend
	}
	if rootFlags.profile != "" {
		cfg.Profile = rootFlags.profile
	}
	if rootFlags.dataDir != "" {
		cfg.DataDir = rootFlags.dataDir
	}
	if rootFlags.draftKey != "" {
		cfg.DraftKeyName = rootFlags.draftKey
	}
}

// openWizard opens the configured backend and restores the draft. The
// returned cleanup flushes pending changes, then closes wizard and store.
func openWizard(ctx context.Context, onStatus func(draft.Status)) (*wizard.Wizard, *config.Config, func(), error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, nil, err
	}

	store, err := backend.Open(ctx, cfg)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("opening %s backend: %w", cfg.Backend, err)
	}

	w, err := wizard.New(ctx, wizard.Options{
		Store:    store,
		Key:      cfg.DraftKey(),
		Quiet:    cfg.Debounce(),
		OnStatus: onStatus,
	})
	if err != nil {
		_ = store.Close()
		return nil, nil, nil, err
	}

	cleanup := func() {
		w.Flush(context.Background())
		w.Close()
		if err := store.Close(); err != nil {
			logger.Warn("Closing draft backend: %v", err)
		}
	}
	return w, cfg, cleanup, nil
}
