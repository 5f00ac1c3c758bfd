// Package vars extracts and validates substitution variables from invocation
// options and merges them into one conflict-free set.
package vars

// Kind discriminates the variable union.
type Kind int

// Variable kinds.
const (
	KindStandard Kind = iota
	KindFilePath
	KindStdin
	KindUser
)

func (k Kind) String() string {
	switch k {
	case KindStandard:
		return "standard"
	case KindFilePath:
		return "file_path"
	case KindStdin:
		return "stdin"
	case KindUser:
		return "user"
	default:
		return "unknown"
	}
}

// Variable is one named substitution value. User variables keep the marker
// prefix in their name; all other kinds use a reserved standard name.
type Variable struct {
	Kind  Kind
	Name  string
	Value string
}

// Reserved standard variable names.
const (
	NameInputText       = "input_text"
	NameInputTextFile   = "input_text_file"
	NameDestinationPath = "destination_path"
	NameSchemaFile      = "schema_file"
)

// UserPrefix marks an option key as a caller-supplied, unconstrained variable.
const UserPrefix = "uv-"

var reservedNames = map[string]bool{
	NameInputText:       true,
	NameInputTextFile:   true,
	NameDestinationPath: true,
	NameSchemaFile:      true,
}

// ReservedNames lists the closed set of standard variable names that user
// variables may never reuse, in stable order.
func ReservedNames() []string {
	return []string{NameInputText, NameInputTextFile, NameDestinationPath, NameSchemaFile}
}

// IsReservedName reports whether name belongs to the reserved standard set.
func IsReservedName(name string) bool {
	return reservedNames[name]
}

// VariableSet is the merged, conflict-free result of one assembly pass. It is
// immutable after construction; all accessors return copies.
type VariableSet struct {
	ordered  []Variable
	custom   map[string]string
	standard map[string]string
	all      map[string]string
}

// Variables returns the variables in assembly order.
func (s *VariableSet) Variables() []Variable {
	out := make([]Variable, len(s.ordered))
	copy(out, s.ordered)
	return out
}

// AllVariables returns the flat name to value mapping across all kinds.
func (s *VariableSet) AllVariables() map[string]string {
	return copyMap(s.all)
}

// CustomVariables returns the user-kind variables only.
func (s *VariableSet) CustomVariables() map[string]string {
	return copyMap(s.custom)
}

// StandardVariables returns the standard, file-path, and stdin variables.
func (s *VariableSet) StandardVariables() map[string]string {
	return copyMap(s.standard)
}

func copyMap(m map[string]string) map[string]string {
	out := make(map[string]string, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
