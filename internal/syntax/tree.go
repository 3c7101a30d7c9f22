package syntax

// ValueKind classifies a parameter default value.
type ValueKind int

const (
	// ValueOther is any default that is not a mutable container literal.
	ValueOther ValueKind = iota
	// ValueList is a list literal, e.g. [] or [1, 2].
	ValueList
	// ValueDict is a dict literal, e.g. {} or {"a": 1}.
	ValueDict
	// ValueSet is a set literal, e.g. {1, 2}.
	ValueSet
)

// String returns the literal kind name.
func (k ValueKind) String() string {
	switch k {
	case ValueList:
		return "list"
	case ValueDict:
		return "dict"
	case ValueSet:
		return "set"
	default:
		return "other"
	}
}

// Mutable reports whether a value of this kind is shared and modifiable
// in place when used as a default.
func (k ValueKind) Mutable() bool {
	return k == ValueList || k == ValueDict || k == ValueSet
}

// Default describes a parameter's default value.
type Default struct {
	Kind ValueKind
	Text string // Source text of the value
}

// Param is a single function parameter.
type Param struct {
	Name    string
	Line    int      // 0-based line of the parameter name
	Default *Default // nil when the parameter has no default
}

// Assignment is a simple (bare identifier) assignment target.
type Assignment struct {
	Name string
	Line int // 0-based line of the target
}

// Function is a function definition with the data naming and
// mutability checks need.
type Function struct {
	Name        string
	Line        int // 0-based line of the def keyword
	Params      []Param
	Assignments []Assignment // Simple targets assigned directly in the body
}

// Tree is the structural view of one parsed file.
// Functions are listed in source order, nested definitions included.
type Tree struct {
	Functions []Function
}
