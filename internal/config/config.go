package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"graphbox/pkg/models"

	"gopkg.in/yaml.v3"
)

const ConfigFileName = "config.yaml"

// LoadConfig loads configuration from the standard search paths.
func LoadConfig() (*models.Config, error) {
	// Search order:
	// 1. Custom config dir (if set)
	// 2. User config directory
	// 3. Current directory
	configPaths := getConfigSearchPaths()

	for _, configPath := range configPaths {
		if _, err := os.Stat(configPath); err == nil {
			return loadConfigFromFile(configPath)
		}
	}

	return nil, fmt.Errorf("no config file found in search paths: %v", configPaths)
}

// SaveConfig saves configuration to the appropriate location.
func SaveConfig(cfg *models.Config) error {
	configPath, err := GetConfigFilePath()
	if err != nil {
		return fmt.Errorf("failed to get config file path: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(configPath), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// GetDefaultConfig returns the default configuration. The client ID is
// deliberately empty: it identifies the caller's own app registration and
// has no sensible default.
func GetDefaultConfig() *models.Config {
	return &models.Config{
		Auth: models.AuthConfig{
			TenantID: "common",
			Scopes:   []string{},
		},
		Drive: models.DriveConfig{
			DriveID:            "",
			SkipFailedSubtrees: false,
		},
		Mail: models.MailConfig{
			DefaultSince: "7d",
			DefaultLimit: 25,
		},
		IPWatch: models.IPWatchConfig{
			LookupURL: "https://api.ipify.org?format=json",
			Interval:  5 * time.Minute,
		},
	}
}

// getConfigSearchPaths returns the list of paths to search for config files.
func getConfigSearchPaths() []string {
	var paths []string

	if customConfigDir != "" {
		paths = append(paths, filepath.Join(customConfigDir, ConfigFileName))
	}

	if globalConfigDir, err := GetConfigDir(); err == nil {
		paths = append(paths, filepath.Join(globalConfigDir, ConfigFileName))
	}

	paths = append(paths, ConfigFileName)

	return paths
}

// loadConfigFromFile loads configuration from a specific file.
func loadConfigFromFile(configPath string) (*models.Config, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", configPath, err)
	}

	var cfg models.Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", configPath, err)
	}

	return &cfg, nil
}

// ValidateConfig checks the configuration for values that would fail later
// in less obvious ways.
func ValidateConfig(cfg *models.Config) error {
	if cfg == nil {
		return fmt.Errorf("configuration is nil")
	}

	if cfg.Mail.DefaultLimit < 0 {
		return fmt.Errorf("mail.default_limit must not be negative, got %d", cfg.Mail.DefaultLimit)
	}

	if cfg.IPWatch.Interval < 0 {
		return fmt.Errorf("ipwatch.interval must not be negative, got %v", cfg.IPWatch.Interval)
	}

	if cfg.IPWatch.LookupURL == "" {
		return fmt.Errorf("ipwatch.lookup_url is required")
	}

	return nil
}
