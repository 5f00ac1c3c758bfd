package vars

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
)

// aliasGroup maps a set of recognized option keys onto one standard variable.
// The first alias present in the options wins; later aliases in the same
// group are ignored.
type aliasGroup struct {
	name    string
	kind    Kind
	aliases []string
}

var aliasGroups = []aliasGroup{
	{name: NameInputTextFile, kind: KindStandard, aliases: []string{"from", "fromFile"}},
	{name: NameDestinationPath, kind: KindStandard, aliases: []string{"destination", "destinationFile", "output"}},
	{name: NameSchemaFile, kind: KindFilePath, aliases: []string{"schemaFile", "schema"}},
}

// Assemble extracts user and standard variables from options, validates them,
// and merges everything into one VariableSet. stdinContent, when non-empty,
// fills the input_text slot; when empty the slot is omitted entirely.
//
// Validation accumulates: every reserved-name collision and every empty value
// is reported in one pass, and any error at all means no set is returned.
func Assemble(options map[string]any, stdinContent string) (*VariableSet, []VariableError) {
	if options == nil {
		return nil, []VariableError{{Kind: ErrInvalidOptions}}
	}

	keys := make([]string, 0, len(options))
	for k := range options {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var errs []VariableError
	var userVars []Variable
	for _, key := range keys {
		if !strings.HasPrefix(key, UserPrefix) {
			continue
		}
		value := coerceValue(options[key])
		if IsReservedName(strings.TrimPrefix(key, UserPrefix)) {
			errs = append(errs, VariableError{Kind: ErrReservedVariableName, Name: key})
		}
		if strings.TrimSpace(value) == "" {
			errs = append(errs, VariableError{Kind: ErrEmptyVariableValue, Name: key})
		}
		userVars = append(userVars, Variable{Kind: KindUser, Name: key, Value: value})
	}

	var standardVars []Variable
	for _, group := range aliasGroups {
		for _, alias := range group.aliases {
			raw, ok := options[alias]
			if !ok {
				continue
			}
			value := strings.TrimSpace(coerceValue(raw))
			if value == "" {
				break
			}
			standardVars = append(standardVars, Variable{Kind: group.kind, Name: group.name, Value: value})
			break
		}
	}

	if len(errs) > 0 {
		return nil, errs
	}

	merged := make([]Variable, 0, len(userVars)+len(standardVars)+2)
	merged = append(merged, standardVars...)
	if stdinContent != "" {
		merged = append(merged, Variable{Kind: KindStdin, Name: NameInputText, Value: stdinContent})
	}
	merged = applyDefaults(merged)
	merged = append(merged, userVars...)

	return newVariableSet(merged), nil
}

// AssembleWithoutStdin is Assemble with no stdin content.
func AssembleWithoutStdin(options map[string]any) (*VariableSet, []VariableError) {
	return Assemble(options, "")
}

func applyDefaults(merged []Variable) []Variable {
	present := make(map[string]bool, len(merged))
	for _, v := range merged {
		present[v.Name] = true
	}
	if !present[NameInputTextFile] {
		merged = append(merged, Variable{Kind: KindStandard, Name: NameInputTextFile, Value: "stdin"})
	}
	if !present[NameDestinationPath] {
		merged = append(merged, Variable{Kind: KindStandard, Name: NameDestinationPath, Value: "stdout"})
	}
	return merged
}

func newVariableSet(merged []Variable) *VariableSet {
	set := &VariableSet{
		ordered:  merged,
		custom:   make(map[string]string),
		standard: make(map[string]string),
		all:      make(map[string]string, len(merged)),
	}
	for _, v := range merged {
		if v.Kind == KindUser {
			set.custom[v.Name] = v.Value
		} else {
			set.standard[v.Name] = v.Value
		}
		set.all[v.Name] = v.Value
	}
	return set
}

// coerceValue renders an option value as its substitution text: strings pass
// through, composite values become JSON, everything else uses its literal
// string form.
func coerceValue(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case map[string]any, []any:
		b, err := json.Marshal(t)
		if err != nil {
			return fmt.Sprintf("%v", t)
		}
		return string(b)
	default:
		return fmt.Sprintf("%v", t)
	}
}
