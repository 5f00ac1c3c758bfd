// Package pattern compiles the configured allow-list alternations for
// directive and layer values and answers membership queries against them.
package pattern

import (
	"fmt"
	"regexp"
	"strings"

	"draftsman/internal/config"
)

// Matcher wraps one compiled alternation pattern.
type Matcher struct {
	source string
	re     *regexp.Regexp
	values []string
}

// Provider validates directive and layer values against the configured
// patterns. Patterns are compiled once at construction.
type Provider struct {
	directive Matcher
	layer     Matcher
}

// ErrNoPatternSection is returned by New when the configuration carries no
// pattern section at all.
var ErrNoPatternSection = fmt.Errorf("configuration has no patterns section")

// New builds a Provider from the configured patterns. It fails only when the
// pattern section is absent (both alternations empty).
func New(cfg config.PatternsConfig) (*Provider, error) {
	if cfg.Directive == "" && cfg.Layer == "" {
		return nil, ErrNoPatternSection
	}
	directive, err := compile(cfg.Directive)
	if err != nil {
		return nil, fmt.Errorf("compile directive pattern: %w", err)
	}
	layer, err := compile(cfg.Layer)
	if err != nil {
		return nil, fmt.Errorf("compile layer pattern: %w", err)
	}
	return &Provider{directive: directive, layer: layer}, nil
}

func compile(alternation string) (Matcher, error) {
	re, err := regexp.Compile("^(" + alternation + ")$")
	if err != nil {
		return Matcher{}, err
	}
	return Matcher{
		source: alternation,
		re:     re,
		values: strings.Split(alternation, "|"),
	}, nil
}

// Matches reports whether s is an exact member of the alternation.
func (m Matcher) Matches(s string) bool {
	return m.re.MatchString(s)
}

// ValidValues enumerates the alternation members in their configured order.
// The returned slice is a copy.
func (m Matcher) ValidValues() []string {
	out := make([]string, len(m.values))
	copy(out, m.values)
	return out
}

// SourcePattern returns the configured alternation text, for diagnostics.
func (m Matcher) SourcePattern() string {
	return m.source
}

// ValidDirective reports whether s is an allowed directive value.
func (p *Provider) ValidDirective(s string) bool {
	return p.directive.Matches(s)
}

// ValidLayer reports whether s is an allowed layer value.
func (p *Provider) ValidLayer(s string) bool {
	return p.layer.Matches(s)
}

// Directive returns the compiled directive matcher.
func (p *Provider) Directive() Matcher {
	return p.directive
}

// Layer returns the compiled layer matcher.
func (p *Provider) Layer() Matcher {
	return p.layer
}
