package config

import (
	"fmt"
	"os"
	"path/filepath"
)

const (
	configDirName  = ".uxgate"
	configFileName = "config.json"
)

// UserConfigDir returns the per-user config directory (~/.uxgate).
func UserConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolving home directory: %w", err)
	}
	return filepath.Join(home, configDirName), nil
}

// UserConfigPath returns the global config file path (~/.uxgate/config.json).
func UserConfigPath() (string, error) {
	dir, err := UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, configFileName), nil
}

// ProjectConfigPath returns the project-local config path (.uxgate/config.json).
func ProjectConfigPath() string {
	return filepath.Join(configDirName, configFileName)
}
