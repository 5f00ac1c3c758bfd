package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/viper"

	"draftsman/internal/config"
)

var defaultConfigPath = filepath.Join(".draftsman", "config.yml")

func resolveConfigPath(repoRoot, path string) string {
	if path == "" {
		path = defaultConfigPath
	}
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(repoRoot, path)
}

// loadConfig reads and validates the config file. It returns both the typed
// config and the raw settings map the shape normalizer consumes.
func loadConfig(repoRoot string) (config.Config, map[string]any, error) {
	path := resolveConfigPath(repoRoot, viper.GetString("config"))
	viper.SetConfigFile(path)
	viper.SetConfigType("yaml")
	if err := viper.ReadInConfig(); err != nil {
		return config.Config{}, nil, fmt.Errorf("read config: %w", err)
	}
	raw := viper.AllSettings()
	if err := config.ValidateSettings(raw); err != nil {
		return config.Config{}, nil, err
	}
	if err := config.ValidateRequiredFields(raw, filepath.Base(path)); err != nil {
		return config.Config{}, nil, err
	}
	var cfg config.Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return config.Config{}, nil, fmt.Errorf("parse config: %w", err)
	}
	return cfg, raw, nil
}
