// Package resolver locates template files on disk for a directive and layer,
// probing an ordered candidate list with adaptation and fallback semantics.
package resolver

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"

	"draftsman/internal/config"
	"draftsman/internal/pattern"
)

// TemplateKind selects which template tree and file extension to resolve
// against.
type TemplateKind int

// Template kinds.
const (
	KindPrompt TemplateKind = iota
	KindSchema
)

// Status reports how the winning candidate was reached.
type Status string

// Resolution statuses. Fallback means the adaptation-qualified candidate was
// absent and the unqualified one won.
const (
	StatusFound    Status = "Found"
	StatusFallback Status = "Fallback"
)

// DefaultFromLayer is the template suffix token used when neither an explicit
// override nor a from-file inference applies.
const DefaultFromLayer = "default"

// Metadata records the inputs and probe history of one resolution.
type Metadata struct {
	BaseDir        string
	Directive      string
	Layer          string
	Adaptation     string
	FromLayer      string
	AttemptedPaths []string
}

// ResolvedPath is the successful result of one resolution call.
type ResolvedPath struct {
	Value    string
	Status   Status
	Metadata Metadata
}

// Options tune one resolution call.
type Options struct {
	// Adaptation selects a variant template file for the directive/layer pair.
	Adaptation string
	// FromLayerOverride forces the from-layer token, taking priority over
	// inference from FromFile.
	FromLayerOverride string
	// FromFile, when set, has its basename matched against the known layer
	// keywords to infer the from-layer token.
	FromFile string
	// NoFallback suppresses the unqualified candidate when an adaptation is
	// given: its absence then fails with NoValidFallback.
	NoFallback bool
}

// Resolver computes candidate template paths and probes them in order.
// Resolution is pure over its inputs apart from reading the process working
// directory and checking file existence.
type Resolver struct {
	provider *pattern.Provider
	logger   zerolog.Logger
	getwd    func() (string, error)
}

// New creates a Resolver. The pattern provider supplies the layer keywords
// used for from-layer inference.
func New(provider *pattern.Provider, logger zerolog.Logger) *Resolver {
	return &Resolver{provider: provider, logger: logger, getwd: os.Getwd}
}

// ComputeDirectory joins the base directory with the directive and layer
// components. It performs no existence checks.
func ComputeDirectory(base, directive, layer string) string {
	return filepath.Join(base, directive, layer)
}

// Resolve locates the template file for directive and layer under the
// configured tree for kind. It returns the first existing candidate, or a
// PathError carrying every attempted path.
func (r *Resolver) Resolve(cfg config.Variant, kind TemplateKind, directive, layer string, opts Options) (*ResolvedPath, *PathError) {
	ext, ok := kindExtension(kind)
	if !ok {
		return nil, &PathError{Kind: ErrInvalidStrategy, Detail: fmt.Sprintf("unknown template kind %d", kind)}
	}

	baseDir, perr := r.effectiveBaseDir(cfg, kind)
	if perr != nil {
		return nil, perr
	}
	info, err := os.Stat(baseDir)
	if err != nil || !info.IsDir() {
		return nil, &PathError{Kind: ErrBaseDirectoryNotFound, Path: baseDir}
	}

	directive = strings.TrimSpace(directive)
	layer = strings.TrimSpace(layer)
	if directive == "" || layer == "" {
		return nil, &PathError{Kind: ErrInvalidParameterCombination, Detail: "directive and layer must be non-empty"}
	}
	for _, component := range []string{directive, layer, opts.Adaptation} {
		if !validComponent(component) {
			return nil, &PathError{Kind: ErrInvalidPath, Path: component}
		}
	}

	fromLayer := r.fromLayerToken(opts)
	meta := Metadata{
		BaseDir:    baseDir,
		Directive:  directive,
		Layer:      layer,
		Adaptation: opts.Adaptation,
		FromLayer:  fromLayer,
	}

	dir := ComputeDirectory(baseDir, directive, layer)
	var candidates []string
	if opts.Adaptation != "" {
		candidates = append(candidates, filepath.Join(dir, fmt.Sprintf("f_%s_%s%s", fromLayer, opts.Adaptation, ext)))
	}
	if opts.Adaptation == "" || !opts.NoFallback {
		candidates = append(candidates, filepath.Join(dir, fmt.Sprintf("f_%s%s", fromLayer, ext)))
	}

	for i, candidate := range candidates {
		meta.AttemptedPaths = append(meta.AttemptedPaths, candidate)
		r.logger.Debug().Str("path", candidate).Msg("probing template candidate")
		if !fileExists(candidate) {
			continue
		}
		if !withinBase(baseDir, candidate) {
			return nil, &PathError{Kind: ErrPathValidationFailed, Path: candidate, Attempted: meta.AttemptedPaths}
		}
		status := StatusFound
		if opts.Adaptation != "" && i > 0 {
			status = StatusFallback
		}
		return &ResolvedPath{Value: candidate, Status: status, Metadata: meta}, nil
	}

	if opts.Adaptation != "" && opts.NoFallback {
		return nil, &PathError{
			Kind:      ErrNoValidFallback,
			Detail:    fmt.Sprintf("adaptation %q not found and fallback disabled", opts.Adaptation),
			Attempted: meta.AttemptedPaths,
		}
	}
	return nil, &PathError{
		Kind:      ErrTemplateNotFound,
		Detail:    fmt.Sprintf("no template for directive %q layer %q (from-layer %q)", directive, layer, fromLayer),
		Attempted: meta.AttemptedPaths,
	}
}

// effectiveBaseDir picks the tree for kind from the config variant and
// anchors a relative base against the working directory.
func (r *Resolver) effectiveBaseDir(cfg config.Variant, kind TemplateKind) (string, *PathError) {
	var baseDir, workingDir string
	switch c := cfg.(type) {
	case config.PromptConfig:
		workingDir = c.WorkingDir
		if kind == KindPrompt {
			baseDir = c.PromptBaseDir
		} else {
			baseDir = c.SchemaBaseDir
		}
	case config.SchemaConfig:
		workingDir = c.WorkingDir
		if kind == KindPrompt {
			return "", &PathError{Kind: ErrInvalidConfiguration, Detail: "no prompt tree configured"}
		}
		baseDir = c.SchemaBaseDir
	case config.NoConfig:
		return "", &PathError{Kind: ErrInvalidConfiguration, Detail: "no template tree configured"}
	default:
		return "", &PathError{Kind: ErrInvalidConfiguration, Detail: fmt.Sprintf("unknown config variant %T", cfg)}
	}

	if strings.TrimSpace(baseDir) == "" {
		return "", &PathError{Kind: ErrEmptyBaseDir, Detail: "base directory is empty"}
	}
	if filepath.IsAbs(baseDir) {
		return filepath.Clean(baseDir), nil
	}
	if workingDir == "" {
		cwd, err := r.getwd()
		if err != nil {
			return "", &PathError{Kind: ErrInvalidConfiguration, Detail: fmt.Sprintf("resolve working directory: %v", err)}
		}
		workingDir = cwd
	}
	return filepath.Join(workingDir, baseDir), nil
}

// fromLayerToken picks the template suffix token: explicit override first,
// then inference from the from-file basename, then the default.
func (r *Resolver) fromLayerToken(opts Options) string {
	if token := strings.TrimSpace(opts.FromLayerOverride); token != "" {
		return token
	}
	if opts.FromFile != "" && r.provider != nil {
		base := strings.ToLower(filepath.Base(opts.FromFile))
		for _, keyword := range r.provider.Layer().ValidValues() {
			if keyword != "" && strings.Contains(base, keyword) {
				return keyword
			}
		}
	}
	return DefaultFromLayer
}

func kindExtension(kind TemplateKind) (string, bool) {
	switch kind {
	case KindPrompt:
		return ".md", true
	case KindSchema:
		return ".json", true
	default:
		return "", false
	}
}

func validComponent(s string) bool {
	if s == "" {
		return true
	}
	if s == "." || s == ".." {
		return false
	}
	return !strings.ContainsAny(s, `/\`)
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}

func withinBase(baseDir, candidate string) bool {
	rel, err := filepath.Rel(baseDir, filepath.Clean(candidate))
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}
