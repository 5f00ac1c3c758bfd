package config

import (
	"strings"

	"github.com/go-viper/mapstructure/v2"
)

// Variant is the normalized shape of a raw configuration map. Exactly one of
// PromptConfig, SchemaConfig, or NoConfig implements it.
type Variant interface {
	isVariant()
}

// PromptConfig is a configuration that locates a prompt template tree, with an
// optional schema tree alongside it.
type PromptConfig struct {
	PromptBaseDir string
	SchemaBaseDir string
	WorkingDir    string
}

// SchemaConfig is a configuration that locates a schema template tree only.
type SchemaConfig struct {
	SchemaBaseDir string
	WorkingDir    string
}

// NoConfig is the degenerate shape: no template tree is configured.
type NoConfig struct{}

func (PromptConfig) isVariant() {}
func (SchemaConfig) isVariant() {}
func (NoConfig) isVariant()     {}

type rawDirSection struct {
	BaseDir string `mapstructure:"base_dir"`
}

// Normalize maps a raw configuration map to exactly one Variant. It is total:
// any input, including nil and {}, yields a variant and never an error.
// Sections that fail to decode are treated as absent.
func Normalize(raw map[string]any) Variant {
	prompt := decodeDirSection(raw["app_prompt"])
	schema := decodeDirSection(raw["app_schema"])
	workingDir := decodeString(raw["working_dir"])

	switch {
	case prompt != "":
		return PromptConfig{
			PromptBaseDir: prompt,
			SchemaBaseDir: schema,
			WorkingDir:    workingDir,
		}
	case schema != "":
		return SchemaConfig{
			SchemaBaseDir: schema,
			WorkingDir:    workingDir,
		}
	default:
		return NoConfig{}
	}
}

func decodeDirSection(v any) string {
	if v == nil {
		return ""
	}
	var section rawDirSection
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &section,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return ""
	}
	if err := decoder.Decode(v); err != nil {
		return ""
	}
	return strings.TrimSpace(section.BaseDir)
}

func decodeString(v any) string {
	if v == nil {
		return ""
	}
	var s string
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &s,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return ""
	}
	if err := decoder.Decode(v); err != nil {
		return ""
	}
	return strings.TrimSpace(s)
}
