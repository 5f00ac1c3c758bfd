package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

func TestDefaultConfig_IsLoadable(t *testing.T) {
	repoRoot := t.TempDir()
	out, err := yaml.Marshal(defaultConfig())
	if err != nil {
		t.Fatalf("marshal default config: %v", err)
	}
	if err := writeTestFile(filepath.Join(repoRoot, defaultConfigPath), string(out)); err != nil {
		t.Fatalf("write default config: %v", err)
	}

	viper.Reset()
	t.Cleanup(viper.Reset)
	viper.Set("config", defaultConfigPath)

	cfg, _, err := loadConfig(repoRoot)
	if err != nil {
		t.Fatalf("load default config: %v", err)
	}
	if cfg.Patterns.Directive == "" || cfg.Patterns.Layer == "" {
		t.Fatalf("default config has empty patterns: %+v", cfg.Patterns)
	}
}

func TestSeedTemplates_WritesEveryCombination(t *testing.T) {
	t.Parallel()

	promptDir := t.TempDir()
	if err := seedTemplates(promptDir); err != nil {
		t.Fatalf("seed templates: %v", err)
	}

	for _, directive := range []string{"to", "summary", "defect"} {
		for _, layer := range []string{"project", "issue", "task"} {
			path := filepath.Join(promptDir, directive, layer, "f_default.md")
			if _, err := os.Stat(path); err != nil {
				t.Fatalf("starter template missing: %s", path)
			}
		}
	}
}
