package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"draftsman/internal/config"
	"draftsman/internal/pattern"
	"draftsman/internal/resolver"
)

var defaultPatterns = config.PatternsConfig{
	Directive: "to|summary|defect",
	Layer:     "project|issue|task",
}

const starterTemplate = `Input file: {input_text_file}
Destination: {destination_path}

{input_text}
`

func initCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Initialize a new draftsman project",
		Long:  "Initialize a new draftsman project by creating the .draftsman directory, installing a default config, and seeding starter templates for every directive and layer.",
		RunE: func(cmd *cobra.Command, args []string) error {
			repoRoot, err := os.Getwd()
			if err != nil {
				return err
			}

			draftsmanDir := filepath.Join(repoRoot, ".draftsman")
			log.Info().Str("dir", draftsmanDir).Msg("creating draftsman directory")
			promptDir := filepath.Join(draftsmanDir, "prompts")
			schemaDir := filepath.Join(draftsmanDir, "schema")
			for _, dir := range []string{promptDir, schemaDir} {
				if err := os.MkdirAll(dir, 0o755); err != nil {
					return fmt.Errorf("create template dir: %w", err)
				}
			}

			configPath := filepath.Join(draftsmanDir, "config.yml")
			if _, err := os.Stat(configPath); err == nil {
				log.Info().Msg("config.yml already exists, skipping")
			} else {
				log.Info().Str("path", configPath).Msg("installing default config")
				out, err := yaml.Marshal(defaultConfig())
				if err != nil {
					return fmt.Errorf("marshal default config: %w", err)
				}
				if err := os.WriteFile(configPath, out, 0o644); err != nil {
					return fmt.Errorf("write default config: %w", err)
				}
			}

			if err := seedTemplates(promptDir); err != nil {
				return err
			}
			log.Info().Msg("draftsman project initialized")
			return nil
		},
	}
}

func defaultConfig() map[string]any {
	return map[string]any{
		"working_dir": ".",
		"app_prompt": map[string]any{
			"base_dir": filepath.Join(".draftsman", "prompts"),
		},
		"app_schema": map[string]any{
			"base_dir": filepath.Join(".draftsman", "schema"),
		},
		"patterns": map[string]any{
			"directive": defaultPatterns.Directive,
			"layer":     defaultPatterns.Layer,
		},
	}
}

// seedTemplates writes an unqualified starter template for every directive
// and layer combination, skipping files that already exist.
func seedTemplates(promptDir string) error {
	provider, err := pattern.New(defaultPatterns)
	if err != nil {
		return err
	}
	for _, directive := range provider.Directive().ValidValues() {
		for _, layer := range provider.Layer().ValidValues() {
			dir := resolver.ComputeDirectory(promptDir, directive, layer)
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return fmt.Errorf("create prompt dir: %w", err)
			}
			path := filepath.Join(dir, fmt.Sprintf("f_%s.md", resolver.DefaultFromLayer))
			if _, err := os.Stat(path); err == nil {
				continue
			}
			body := fmt.Sprintf("<!-- %s/%s -->\n%s", directive, layer, starterTemplate)
			if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
				return fmt.Errorf("write starter template: %w", err)
			}
		}
	}
	return nil
}
