package config

import (
	_ "embed"
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

//go:embed schema.json
var schemaJSON string

// ValidateSettings validates raw config settings against the JSON schema.
func ValidateSettings(settings map[string]any) error {
	schemaLoader := gojsonschema.NewStringLoader(schemaJSON)
	documentLoader := gojsonschema.NewGoLoader(settings)

	result, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		return fmt.Errorf("validate config schema: %w", err)
	}
	if result.Valid() {
		return nil
	}

	errs := make([]string, 0, len(result.Errors()))
	for _, schemaErr := range result.Errors() {
		errs = append(errs, schemaErr.String())
	}
	sort.Strings(errs)

	return fmt.Errorf("config schema validation failed: %s", strings.Join(errs, "; "))
}

// FieldFailure describes a single pattern or structural violation.
type FieldFailure struct {
	Field  string
	Reason string
}

// ConfigError reports rule-table validation failures for one config file.
// Exactly one of MissingFields and Failures is populated: missing/type errors
// mask pattern and structural errors for the same file.
type ConfigError struct {
	FileLabel     string
	MissingFields []string
	Failures      []FieldFailure
}

func (e *ConfigError) Error() string {
	if len(e.MissingFields) > 0 {
		return fmt.Sprintf("%s: missing or mistyped fields: %s", e.FileLabel, strings.Join(e.MissingFields, ", "))
	}
	reasons := make([]string, 0, len(e.Failures))
	for _, f := range e.Failures {
		reasons = append(reasons, fmt.Sprintf("%s (%s)", f.Field, f.Reason))
	}
	return fmt.Sprintf("%s: invalid fields: %s", e.FileLabel, strings.Join(reasons, ", "))
}

type fieldRule struct {
	field     string
	required  bool
	pattern   *regexp.Regexp
	maxLen    int
	allowList bool
}

// Alternation members are short lowercase tokens; the full field is members
// joined by "|".
var alternationRe = regexp.MustCompile(`^[a-z0-9_-]*(\|[a-z0-9_-]*)*$`)

var fieldRules = []fieldRule{
	{field: "working_dir", maxLen: 4096},
	{field: "app_prompt.base_dir", maxLen: 4096},
	{field: "app_schema.base_dir", maxLen: 4096},
	{field: "patterns.directive", required: true, pattern: alternationRe, maxLen: 256, allowList: true},
	{field: "patterns.layer", required: true, pattern: alternationRe, maxLen: 256, allowList: true},
}

// ValidateRequiredFields checks raw settings against the fixed rule table.
// Required and type checks run first and are collected in full; only when all
// of them pass do pattern and structural checks run, also collected in full.
// The returned error is always a *ConfigError; nil means the file is valid.
func ValidateRequiredFields(raw map[string]any, fileLabel string) error {
	var missing []string
	values := make(map[string]string, len(fieldRules))
	for _, rule := range fieldRules {
		v, ok := lookupPath(raw, rule.field)
		if !ok {
			if rule.required {
				missing = append(missing, rule.field)
			}
			continue
		}
		s, ok := v.(string)
		if !ok {
			missing = append(missing, rule.field)
			continue
		}
		values[rule.field] = s
	}
	if len(missing) > 0 {
		return &ConfigError{FileLabel: fileLabel, MissingFields: missing}
	}

	var failures []FieldFailure
	for _, rule := range fieldRules {
		s, ok := values[rule.field]
		if !ok {
			continue
		}
		if rule.maxLen > 0 && len(s) > rule.maxLen {
			failures = append(failures, FieldFailure{Field: rule.field, Reason: fmt.Sprintf("longer than %d characters", rule.maxLen)})
			continue
		}
		if rule.pattern != nil && !rule.pattern.MatchString(s) {
			failures = append(failures, FieldFailure{Field: rule.field, Reason: fmt.Sprintf("does not match %s", rule.pattern)})
			continue
		}
		if rule.allowList {
			failures = append(failures, checkAllowList(rule.field, s)...)
		}
	}
	if len(failures) > 0 {
		return &ConfigError{FileLabel: fileLabel, Failures: failures}
	}
	return nil
}

func checkAllowList(field, alternation string) []FieldFailure {
	var failures []FieldFailure
	seen := make(map[string]bool)
	for _, member := range strings.Split(alternation, "|") {
		if member == "" {
			failures = append(failures, FieldFailure{Field: field, Reason: "empty allow-list member"})
			continue
		}
		if seen[member] {
			failures = append(failures, FieldFailure{Field: field, Reason: fmt.Sprintf("duplicate allow-list member %q", member)})
		}
		seen[member] = true
	}
	return failures
}

func lookupPath(raw map[string]any, dotted string) (any, bool) {
	parts := strings.Split(dotted, ".")
	var cur any = raw
	for _, part := range parts {
		m, ok := cur.(map[string]any)
		if !ok {
			return nil, false
		}
		cur, ok = m[part]
		if !ok {
			return nil, false
		}
	}
	return cur, true
}
