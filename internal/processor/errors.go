package processor

import (
	"fmt"
	"strings"
)

// ErrorKind discriminates processor failures.
type ErrorKind int

// Processor error kinds.
const (
	ErrInvalidParams ErrorKind = iota
	ErrMissingRequiredField
	ErrConversionFailed
	ErrValidationFailed
)

func (k ErrorKind) String() string {
	switch k {
	case ErrInvalidParams:
		return "InvalidParams"
	case ErrMissingRequiredField:
		return "MissingRequiredField"
	case ErrConversionFailed:
		return "ConversionFailed"
	case ErrValidationFailed:
		return "ValidationFailed"
	default:
		return "Unknown"
	}
}

// Error carries enough context to build a user-facing message without
// re-inspecting the invocation. ConversionFailed keeps the downstream
// sub-errors intact in Causes.
type Error struct {
	Kind   ErrorKind
	Field  string
	Value  string
	Causes []error
}

func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString(e.Kind.String())
	if e.Field != "" {
		fmt.Fprintf(&b, ": field %q", e.Field)
	}
	if e.Value != "" {
		fmt.Fprintf(&b, " (value %q)", e.Value)
	}
	if len(e.Causes) > 0 {
		msgs := make([]string, 0, len(e.Causes))
		for _, cause := range e.Causes {
			msgs = append(msgs, cause.Error())
		}
		fmt.Fprintf(&b, ": %s", strings.Join(msgs, "; "))
	}
	return b.String()
}

// Unwrap exposes the preserved sub-errors for errors.Is and errors.As.
func (e *Error) Unwrap() []error {
	return e.Causes
}
