package resolver

import (
	"fmt"
	"strings"
)

// ErrorKind discriminates resolution failures. The set is closed: every
// branch of Resolve maps to exactly one kind.
type ErrorKind int

// Resolution error kinds.
const (
	ErrInvalidConfiguration ErrorKind = iota
	ErrBaseDirectoryNotFound
	ErrInvalidParameterCombination
	ErrTemplateNotFound
	ErrInvalidStrategy
	ErrEmptyBaseDir
	ErrInvalidPath
	ErrNoValidFallback
	ErrPathValidationFailed
)

func (k ErrorKind) String() string {
	switch k {
	case ErrInvalidConfiguration:
		return "InvalidConfiguration"
	case ErrBaseDirectoryNotFound:
		return "BaseDirectoryNotFound"
	case ErrInvalidParameterCombination:
		return "InvalidParameterCombination"
	case ErrTemplateNotFound:
		return "TemplateNotFound"
	case ErrInvalidStrategy:
		return "InvalidStrategy"
	case ErrEmptyBaseDir:
		return "EmptyBaseDir"
	case ErrInvalidPath:
		return "InvalidPath"
	case ErrNoValidFallback:
		return "NoValidFallback"
	case ErrPathValidationFailed:
		return "PathValidationFailed"
	default:
		return "Unknown"
	}
}

// PathError is the structured failure result of a resolution call. Attempted
// carries every probed candidate so a caller can see why nothing matched
// without re-running with verbose logging.
type PathError struct {
	Kind      ErrorKind
	Path      string
	Detail    string
	Attempted []string
}

func (e *PathError) Error() string {
	var b strings.Builder
	b.WriteString(e.Kind.String())
	if e.Path != "" {
		fmt.Fprintf(&b, ": %s", e.Path)
	}
	if e.Detail != "" {
		fmt.Fprintf(&b, ": %s", e.Detail)
	}
	if len(e.Attempted) > 0 {
		fmt.Fprintf(&b, " (attempted: %s)", strings.Join(e.Attempted, ", "))
	}
	return b.String()
}
