package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"draftsman/internal/config"
	"draftsman/internal/db"
	"draftsman/internal/input"
	"draftsman/internal/pattern"
	"draftsman/internal/processor"
	"draftsman/internal/render"
	"draftsman/internal/resolver"
	"draftsman/internal/vars"
)

func generateCmd() *cobra.Command {
	var fromFile string
	var destination string
	var fromLayer string
	var adaptation string
	var noFallback bool
	var withSchema bool
	var userVars []string
	cmd := &cobra.Command{
		Use:          "generate <directive> <layer>",
		Short:        "Generate content from the template matching a directive and layer",
		Long:         "Generate content by resolving the template for the given directive and layer, assembling substitution variables from flags and stdin, and rendering the result.",
		SilenceUsage: true,
		Args:         cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			storeDB, repoRoot, closeFn, err := openDB()
			if err != nil {
				return err
			}
			defer closeFn()

			cfg, raw, err := loadConfig(repoRoot)
			if err != nil {
				return err
			}
			provider, err := pattern.New(cfg.Patterns)
			if err != nil {
				return err
			}
			variant := anchorVariant(config.Normalize(raw), repoRoot)

			stdinContent, err := input.ReadStdin()
			if err != nil {
				return err
			}
			if stdinContent == "" && fromFile != "" {
				stdinContent, err = input.ReadFile(fromFile)
				if err != nil {
					return err
				}
			}

			options, err := buildOptions(fromFile, destination, userVars)
			if err != nil {
				return err
			}

			inv := processor.Invocation{
				Kind:         processor.KindTwoParams,
				Directive:    args[0],
				Layer:        args[1],
				Params:       args,
				Options:      options,
				StdinContent: stdinContent,
			}
			opts := resolver.Options{
				Adaptation:        adaptation,
				FromLayerOverride: fromLayer,
				FromFile:          fromFile,
				NoFallback:        noFallback,
			}

			proc := processor.New(provider, resolver.New(provider, log.Logger), log.Logger)
			out, perr := proc.Process(inv, variant, opts, withSchema)

			store := db.NewStore(storeDB)
			rec := db.GenerationRecord{
				Directive:   args[0],
				Layer:       args[1],
				Destination: destination,
			}
			if perr != nil {
				rec.Status = "error"
				rec.ErrorKind = perr.Kind.String()
				if err := store.RecordGeneration(cmd.Context(), rec); err != nil {
					log.Warn().Err(err).Msg("record generation")
				}
				return perr
			}
			rec.Status = "ok"
			rec.TemplatePath = out.TemplatePath
			if err := store.RecordGeneration(cmd.Context(), rec); err != nil {
				log.Warn().Err(err).Msg("record generation")
			}

			rendered, err := render.File(out.TemplatePath, out.Variables)
			if err != nil {
				return err
			}
			return writeOutput(cmd, out.Variables[vars.NameDestinationPath], rendered)
		},
	}
	cmd.Flags().StringVarP(&fromFile, "from", "f", "", "input file path")
	cmd.Flags().StringVarP(&destination, "destination", "o", "", "destination file path (default stdout)")
	cmd.Flags().StringVarP(&fromLayer, "input", "i", "", "override the from-layer token")
	cmd.Flags().StringVarP(&adaptation, "adaptation", "a", "", "template adaptation tag")
	cmd.Flags().BoolVar(&noFallback, "no-fallback", false, "fail when the adaptation template is absent instead of falling back")
	cmd.Flags().BoolVar(&withSchema, "schema", false, "resolve the schema template as well")
	cmd.Flags().StringArrayVar(&userVars, "uv", nil, "user variable as name=value (repeatable)")
	return cmd
}

// buildOptions converts flags into the invocation option map the variable
// assembler consumes.
func buildOptions(fromFile, destination string, userVars []string) (map[string]any, error) {
	options := map[string]any{}
	if fromFile != "" {
		options["from"] = fromFile
	}
	if destination != "" {
		options["destination"] = destination
	}
	for _, kv := range userVars {
		name, value, found := strings.Cut(kv, "=")
		if !found {
			return nil, fmt.Errorf("user variable %q must be name=value", kv)
		}
		options[vars.UserPrefix+name] = value
	}
	return options, nil
}

// anchorVariant roots a relative or absent working directory at repoRoot so
// relative base dirs resolve against the project, not the process CWD.
func anchorVariant(variant config.Variant, repoRoot string) config.Variant {
	switch v := variant.(type) {
	case config.PromptConfig:
		v.WorkingDir = anchorDir(v.WorkingDir, repoRoot)
		return v
	case config.SchemaConfig:
		v.WorkingDir = anchorDir(v.WorkingDir, repoRoot)
		return v
	default:
		return variant
	}
}

func anchorDir(workingDir, repoRoot string) string {
	if workingDir == "" {
		return repoRoot
	}
	if filepath.IsAbs(workingDir) {
		return workingDir
	}
	return filepath.Join(repoRoot, workingDir)
}

func writeOutput(cmd *cobra.Command, destination, content string) error {
	if destination == "" || destination == "stdout" {
		_, err := fmt.Fprint(cmd.OutOrStdout(), content)
		return err
	}
	if err := os.WriteFile(destination, []byte(content), 0o644); err != nil {
		return fmt.Errorf("write destination: %w", err)
	}
	log.Info().Str("path", destination).Msg("content written")
	return nil
}
