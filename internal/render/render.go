// Package render performs placeholder substitution over resolved template
// bodies. Placeholders are variable names in braces, e.g. {input_text}.
package render

import (
	"fmt"
	"os"
	"strings"
)

// Text substitutes every {name} placeholder with its variable value. Unknown
// placeholders are left untouched.
func Text(body string, variables map[string]string) string {
	if len(variables) == 0 {
		return body
	}
	pairs := make([]string, 0, len(variables)*2)
	for name, value := range variables {
		pairs = append(pairs, "{"+name+"}", value)
	}
	return strings.NewReplacer(pairs...).Replace(body)
}

// File reads the template at path and renders it with variables.
func File(path string, variables map[string]string) (string, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read template: %w", err)
	}
	return Text(string(b), variables), nil
}
