package config

import (
	"math/rand"
	"testing"
)

func TestNormalize_EmptyMapIsNoConfig(t *testing.T) {
	t.Parallel()

	if _, ok := Normalize(map[string]any{}).(NoConfig); !ok {
		t.Fatalf("Normalize({}) = %T, want NoConfig", Normalize(map[string]any{}))
	}
	if _, ok := Normalize(nil).(NoConfig); !ok {
		t.Fatalf("Normalize(nil) != NoConfig")
	}
}

func TestNormalize_PromptConfig(t *testing.T) {
	t.Parallel()

	raw := map[string]any{
		"working_dir": "/work",
		"app_prompt":  map[string]any{"base_dir": "prompts"},
		"app_schema":  map[string]any{"base_dir": "schema"},
		"extra":       []any{1, 2, 3},
	}
	v, ok := Normalize(raw).(PromptConfig)
	if !ok {
		t.Fatalf("Normalize = %T, want PromptConfig", Normalize(raw))
	}
	if v.PromptBaseDir != "prompts" {
		t.Fatalf("PromptBaseDir = %q, want %q", v.PromptBaseDir, "prompts")
	}
	if v.SchemaBaseDir != "schema" {
		t.Fatalf("SchemaBaseDir = %q, want %q", v.SchemaBaseDir, "schema")
	}
	if v.WorkingDir != "/work" {
		t.Fatalf("WorkingDir = %q, want %q", v.WorkingDir, "/work")
	}
}

func TestNormalize_SchemaConfig(t *testing.T) {
	t.Parallel()

	raw := map[string]any{
		"app_schema": map[string]any{"base_dir": "schema"},
	}
	v, ok := Normalize(raw).(SchemaConfig)
	if !ok {
		t.Fatalf("Normalize = %T, want SchemaConfig", Normalize(raw))
	}
	if v.SchemaBaseDir != "schema" {
		t.Fatalf("SchemaBaseDir = %q, want %q", v.SchemaBaseDir, "schema")
	}
}

func TestNormalize_MalformedSectionsDegrade(t *testing.T) {
	t.Parallel()

	cases := []map[string]any{
		{"app_prompt": 42},
		{"app_prompt": "not a section"},
		{"app_prompt": map[string]any{"base_dir": map[string]any{"deep": true}}},
		{"app_prompt": map[string]any{"base_dir": "   "}},
		{"working_dir": map[string]any{}},
	}
	for _, raw := range cases {
		if _, ok := Normalize(raw).(NoConfig); !ok {
			t.Fatalf("Normalize(%v) = %T, want NoConfig", raw, Normalize(raw))
		}
	}
}

// Normalize must be total: any finite map shape yields exactly one variant.
func TestNormalize_TotalOverRandomShapes(t *testing.T) {
	t.Parallel()

	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 500; i++ {
		raw, ok := randomValue(rng, 4).(map[string]any)
		if !ok {
			raw = map[string]any{"app_prompt": randomValue(rng, 3)}
		}
		switch Normalize(raw).(type) {
		case PromptConfig, SchemaConfig, NoConfig:
		default:
			t.Fatalf("Normalize(%v) returned unknown variant", raw)
		}
	}
}

func randomValue(rng *rand.Rand, depth int) any {
	keys := []string{"app_prompt", "app_schema", "working_dir", "base_dir", "other"}
	switch rng.Intn(6) {
	case 0:
		return rng.Intn(100)
	case 1:
		return rng.Float64()
	case 2:
		return rng.Intn(2) == 0
	case 3:
		return "dir-" + keys[rng.Intn(len(keys))]
	case 4:
		if depth == 0 {
			return nil
		}
		n := rng.Intn(3)
		out := make([]any, n)
		for i := range out {
			out[i] = randomValue(rng, depth-1)
		}
		return out
	default:
		if depth == 0 {
			return nil
		}
		out := make(map[string]any)
		for i := 0; i < rng.Intn(4); i++ {
			out[keys[rng.Intn(len(keys))]] = randomValue(rng, depth-1)
		}
		return out
	}
}
