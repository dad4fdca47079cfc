package main

import (
	"context"
	"fmt"
	"log/slog"

	"graphbox/internal/config"
	"graphbox/internal/graph"
	"graphbox/internal/graph/auth"
	"graphbox/pkg/models"
)

// loadConfig returns the on-disk config, falling back to defaults when no
// config file exists yet.
func loadConfig() *models.Config {
	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Debug("using default config", "reason", err)

		return config.GetDefaultConfig()
	}

	if err := config.ValidateConfig(cfg); err != nil {
		slog.Warn("config validation failed, using defaults", "error", err)

		return config.GetDefaultConfig()
	}

	return cfg
}

// newGraphClient builds an authenticated Graph client for the configured app
// registration, running the device-code sign-in if no cached token exists.
func newGraphClient(ctx context.Context, cfg *models.Config) (*graph.Client, error) {
	if cfg.Auth.ClientID == "" {
		return nil, fmt.Errorf("auth.client_id is not set: run 'graphbox config init --client-id <id>' first")
	}

	source, err := auth.NewTokenSource(ctx, cfg.Auth)
	if err != nil {
		return nil, fmt.Errorf("failed to authenticate: %w", err)
	}

	return graph.NewClient(source), nil
}
