// Package processor validates a parsed invocation, assembles its variable
// set, resolves template paths, and produces the output handed to the
// renderer.
package processor

import (
	"strings"

	"github.com/rs/zerolog"

	"draftsman/internal/config"
	"draftsman/internal/pattern"
	"draftsman/internal/resolver"
	"draftsman/internal/vars"
)

// KindTwoParams is the invocation discriminator for a directive plus layer
// invocation, the only kind this processor handles.
const KindTwoParams = "two"

// Invocation is the parsed CLI invocation. It is treated as immutable.
type Invocation struct {
	Kind         string
	Directive    string
	Layer        string
	Params       []string
	Options      map[string]any
	StdinContent string
}

// Output is the assembled result handed to the template renderer.
type Output struct {
	TemplatePath string
	Variables    map[string]string
	Prompt       *resolver.ResolvedPath
	Schema       *resolver.ResolvedPath
}

// Processor orchestrates invocation validation, variable assembly, and
// template path resolution.
type Processor struct {
	provider *pattern.Provider
	resolver *resolver.Resolver
	logger   zerolog.Logger
}

// New creates a Processor.
func New(provider *pattern.Provider, res *resolver.Resolver, logger zerolog.Logger) *Processor {
	return &Processor{provider: provider, resolver: res, logger: logger}
}

// Process validates the invocation structurally (fail-fast, first violation
// wins), assembles the variable set (accumulate-all), resolves the prompt
// template, and optionally resolves the schema template, attaching its path
// as the schema_file variable. Downstream failures are wrapped as
// ConversionFailed with sub-errors preserved.
func (p *Processor) Process(inv Invocation, cfg config.Variant, opts resolver.Options, withSchema bool) (*Output, *Error) {
	if perr := p.validate(inv); perr != nil {
		return nil, perr
	}

	set, verrs := vars.Assemble(inv.Options, inv.StdinContent)
	if len(verrs) > 0 {
		causes := make([]error, 0, len(verrs))
		for _, ve := range verrs {
			causes = append(causes, ve)
		}
		return nil, &Error{Kind: ErrConversionFailed, Field: "options", Causes: causes}
	}

	prompt, rerr := p.resolver.Resolve(cfg, resolver.KindPrompt, inv.Directive, inv.Layer, opts)
	if rerr != nil {
		return nil, &Error{Kind: ErrConversionFailed, Field: "template", Causes: []error{rerr}}
	}

	out := &Output{
		TemplatePath: prompt.Value,
		Variables:    set.AllVariables(),
		Prompt:       prompt,
	}

	if withSchema {
		schema, rerr := p.resolver.Resolve(cfg, resolver.KindSchema, inv.Directive, inv.Layer, opts)
		if rerr != nil {
			return nil, &Error{Kind: ErrConversionFailed, Field: "schema", Causes: []error{rerr}}
		}
		out.Schema = schema
		if _, ok := out.Variables[vars.NameSchemaFile]; !ok {
			out.Variables[vars.NameSchemaFile] = schema.Value
		}
	}

	p.logger.Debug().
		Str("directive", inv.Directive).
		Str("layer", inv.Layer).
		Str("template", out.TemplatePath).
		Int("variables", len(out.Variables)).
		Msg("invocation processed")
	return out, nil
}

// validate applies the structural checks in fixed order, returning on the
// first violation.
func (p *Processor) validate(inv Invocation) *Error {
	if inv.Kind != KindTwoParams {
		return &Error{Kind: ErrInvalidParams, Field: "kind", Value: inv.Kind}
	}
	if strings.TrimSpace(inv.Directive) == "" {
		return &Error{Kind: ErrMissingRequiredField, Field: "directive"}
	}
	if strings.TrimSpace(inv.Layer) == "" {
		return &Error{Kind: ErrMissingRequiredField, Field: "layer"}
	}
	if len(inv.Params) < 2 {
		return &Error{Kind: ErrInvalidParams, Field: "params"}
	}
	if inv.Options == nil {
		return &Error{Kind: ErrMissingRequiredField, Field: "options"}
	}
	if !p.provider.ValidDirective(inv.Directive) {
		return &Error{Kind: ErrValidationFailed, Field: "directive", Value: inv.Directive}
	}
	if !p.provider.ValidLayer(inv.Layer) {
		return &Error{Kind: ErrValidationFailed, Field: "layer", Value: inv.Layer}
	}
	return nil
}
