package config

import (
	"fmt"
	"os"
	"path/filepath"
)

const (
	appDirName    = "graphbox"
	tokenFileName = "token.json"
	ipStateName   = "last_ip"
)

var customConfigDir string

// SetCustomConfigDir overrides the config directory (the --config-dir flag).
func SetCustomConfigDir(dir string) {
	customConfigDir = dir
}

// GetConfigDir returns the directory holding the config file, the token
// cache and the ipwatch state.
func GetConfigDir() (string, error) {
	if customConfigDir != "" {
		return customConfigDir, nil
	}

	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to determine user config directory: %w", err)
	}

	return filepath.Join(base, appDirName), nil
}

// GetConfigFilePath returns the path where config should be saved.
func GetConfigFilePath() (string, error) {
	dir, err := GetConfigDir()
	if err != nil {
		return "", err
	}

	return filepath.Join(dir, ConfigFileName), nil
}

// GetTokenPath returns the token cache location.
func GetTokenPath() (string, error) {
	dir, err := GetConfigDir()
	if err != nil {
		return "", err
	}

	return filepath.Join(dir, tokenFileName), nil
}

// GetIPStatePath returns the default location of the ipwatch state file.
func GetIPStatePath() (string, error) {
	dir, err := GetConfigDir()
	if err != nil {
		return "", err
	}

	return filepath.Join(dir, ipStateName), nil
}
