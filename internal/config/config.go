// Package config provides configuration types, shape normalization, and
// validation for draftsman.
package config

// Config is the root configuration.
type Config struct {
	WorkingDir string         `json:"working_dir,omitempty" mapstructure:"working_dir"`
	AppPrompt  AppPromptConf  `json:"app_prompt,omitempty"  mapstructure:"app_prompt"`
	AppSchema  AppSchemaConf  `json:"app_schema,omitempty"  mapstructure:"app_schema"`
	Patterns   PatternsConfig `json:"patterns"              mapstructure:"patterns"`
}

// AppPromptConf locates the prompt template tree.
type AppPromptConf struct {
	BaseDir string `json:"base_dir,omitempty" mapstructure:"base_dir"`
}

// AppSchemaConf locates the schema template tree.
type AppSchemaConf struct {
	BaseDir string `json:"base_dir,omitempty" mapstructure:"base_dir"`
}

// PatternsConfig carries the allow-list alternations for directive and layer
// values, e.g. "to|summary|defect".
type PatternsConfig struct {
	Directive string `json:"directive" mapstructure:"directive"`
	Layer     string `json:"layer"     mapstructure:"layer"`
}
