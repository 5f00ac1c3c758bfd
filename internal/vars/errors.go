package vars

import "fmt"

// ErrorKind discriminates assembly failures.
type ErrorKind int

// Assembly error kinds.
const (
	ErrInvalidOptions ErrorKind = iota
	ErrReservedVariableName
	ErrEmptyVariableValue
)

func (k ErrorKind) String() string {
	switch k {
	case ErrInvalidOptions:
		return "InvalidOptions"
	case ErrReservedVariableName:
		return "ReservedVariableName"
	case ErrEmptyVariableValue:
		return "EmptyVariableValue"
	default:
		return "Unknown"
	}
}

// VariableError describes one assembly violation. Assembly accumulates every
// violation before failing, so a single call can surface many of these.
type VariableError struct {
	Kind ErrorKind
	Name string
}

func (e VariableError) Error() string {
	switch e.Kind {
	case ErrInvalidOptions:
		return "options must be a map"
	case ErrReservedVariableName:
		return fmt.Sprintf("variable %q reuses a reserved standard name", e.Name)
	case ErrEmptyVariableValue:
		return fmt.Sprintf("variable %q has an empty value", e.Name)
	default:
		return fmt.Sprintf("invalid variable %q", e.Name)
	}
}
