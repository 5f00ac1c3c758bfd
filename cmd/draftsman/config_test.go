package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"

	"draftsman/internal/config"
)

const testConfigYAML = `working_dir: .
app_prompt:
  base_dir: .draftsman/prompts
app_schema:
  base_dir: .draftsman/schema
patterns:
  directive: to|summary|defect
  layer: project|issue|task
`

func TestResolveConfigPath_RelativeJoinsRoot(t *testing.T) {
	t.Parallel()

	got := resolveConfigPath("/repo", "")
	want := filepath.Join("/repo", defaultConfigPath)
	if got != want {
		t.Fatalf("resolve config path = %q, want %q", got, want)
	}

	if got := resolveConfigPath("/repo", "/abs/config.yml"); got != "/abs/config.yml" {
		t.Fatalf("absolute path rewritten: %q", got)
	}
}

func TestLoadConfig_ValidYAML(t *testing.T) {
	repoRoot := t.TempDir()
	if err := writeTestFile(filepath.Join(repoRoot, defaultConfigPath), testConfigYAML); err != nil {
		t.Fatalf("write config: %v", err)
	}

	viper.Reset()
	t.Cleanup(viper.Reset)
	viper.Set("config", defaultConfigPath)

	cfg, raw, err := loadConfig(repoRoot)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.Patterns.Directive != "to|summary|defect" {
		t.Fatalf("patterns.directive = %q", cfg.Patterns.Directive)
	}
	if cfg.AppPrompt.BaseDir != ".draftsman/prompts" {
		t.Fatalf("app_prompt.base_dir = %q", cfg.AppPrompt.BaseDir)
	}

	if _, ok := config.Normalize(raw).(config.PromptConfig); !ok {
		t.Fatalf("raw settings normalized to %T, want PromptConfig", config.Normalize(raw))
	}
}

func TestLoadConfig_RejectsMissingPatterns(t *testing.T) {
	repoRoot := t.TempDir()
	if err := writeTestFile(filepath.Join(repoRoot, defaultConfigPath), "working_dir: .\n"); err != nil {
		t.Fatalf("write config: %v", err)
	}

	viper.Reset()
	t.Cleanup(viper.Reset)
	viper.Set("config", defaultConfigPath)

	if _, _, err := loadConfig(repoRoot); err == nil {
		t.Fatal("loadConfig accepted config without patterns")
	}
}

func writeTestFile(path, content string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, []byte(content), 0o644)
}
