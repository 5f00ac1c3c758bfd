package config

import (
	"errors"
	"testing"
)

func validSettings() map[string]any {
	return map[string]any{
		"working_dir": ".",
		"app_prompt":  map[string]any{"base_dir": "prompts"},
		"app_schema":  map[string]any{"base_dir": "schema"},
		"patterns": map[string]any{
			"directive": "to|summary|defect",
			"layer":     "project|issue|task",
		},
	}
}

func TestValidateRequiredFields_ValidSettings(t *testing.T) {
	t.Parallel()

	if err := ValidateRequiredFields(validSettings(), "config.yml"); err != nil {
		t.Fatalf("ValidateRequiredFields returned error: %v", err)
	}
}

func TestValidateRequiredFields_CollectsAllMissingFields(t *testing.T) {
	t.Parallel()

	err := ValidateRequiredFields(map[string]any{}, "config.yml")
	var cfgErr *ConfigError
	if !errors.As(err, &cfgErr) {
		t.Fatalf("error type = %T, want *ConfigError", err)
	}
	if len(cfgErr.MissingFields) != 2 {
		t.Fatalf("missing fields = %v, want both patterns fields", cfgErr.MissingFields)
	}
	if len(cfgErr.Failures) != 0 {
		t.Fatalf("failures = %v, want none alongside missing fields", cfgErr.Failures)
	}
}

func TestValidateRequiredFields_MistypedFieldReportedAsMissing(t *testing.T) {
	t.Parallel()

	raw := validSettings()
	raw["patterns"].(map[string]any)["directive"] = 42

	err := ValidateRequiredFields(raw, "config.yml")
	var cfgErr *ConfigError
	if !errors.As(err, &cfgErr) {
		t.Fatalf("error type = %T, want *ConfigError", err)
	}
	if len(cfgErr.MissingFields) != 1 || cfgErr.MissingFields[0] != "patterns.directive" {
		t.Fatalf("missing fields = %v, want [patterns.directive]", cfgErr.MissingFields)
	}
}

func TestValidateRequiredFields_MissingMasksStructural(t *testing.T) {
	t.Parallel()

	raw := validSettings()
	delete(raw, "patterns")
	raw["patterns"] = map[string]any{"directive": "to||to"}

	err := ValidateRequiredFields(raw, "config.yml")
	var cfgErr *ConfigError
	if !errors.As(err, &cfgErr) {
		t.Fatalf("error type = %T, want *ConfigError", err)
	}
	if len(cfgErr.MissingFields) == 0 {
		t.Fatalf("want missing-field report for patterns.layer, got %v", cfgErr)
	}
	if len(cfgErr.Failures) != 0 {
		t.Fatalf("structural failures reported alongside missing fields: %v", cfgErr.Failures)
	}
}

func TestValidateRequiredFields_AllowListStructuralChecks(t *testing.T) {
	t.Parallel()

	raw := validSettings()
	raw["patterns"].(map[string]any)["directive"] = "to|to"
	raw["patterns"].(map[string]any)["layer"] = "project||task"

	err := ValidateRequiredFields(raw, "config.yml")
	var cfgErr *ConfigError
	if !errors.As(err, &cfgErr) {
		t.Fatalf("error type = %T, want *ConfigError", err)
	}
	if len(cfgErr.Failures) != 2 {
		t.Fatalf("failures = %v, want duplicate + empty member", cfgErr.Failures)
	}
}

func TestValidateRequiredFields_PatternViolation(t *testing.T) {
	t.Parallel()

	raw := validSettings()
	raw["patterns"].(map[string]any)["directive"] = "To|Summary"

	err := ValidateRequiredFields(raw, "config.yml")
	var cfgErr *ConfigError
	if !errors.As(err, &cfgErr) {
		t.Fatalf("error type = %T, want *ConfigError", err)
	}
	if len(cfgErr.Failures) != 1 || cfgErr.Failures[0].Field != "patterns.directive" {
		t.Fatalf("failures = %v, want one for patterns.directive", cfgErr.Failures)
	}
}

func TestValidateSettings_Schema(t *testing.T) {
	t.Parallel()

	if err := ValidateSettings(validSettings()); err != nil {
		t.Fatalf("ValidateSettings returned error: %v", err)
	}
	if err := ValidateSettings(map[string]any{"working_dir": "."}); err == nil {
		t.Fatal("ValidateSettings accepted settings without patterns")
	}
}
