package core

import (
	"fmt"

	"github.com/DevSymphony/pepcheck/internal/syntax"
)

// Diagnostic is a single style violation bound to a source line.
type Diagnostic struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Line    int    `json:"line"` // 0-based
}

// Position returns the 1-based line number used when presenting the diagnostic.
func (d Diagnostic) Position() int {
	return d.Line + 1
}

// String returns a human-readable description.
// Format: "Line 3: S001 Too long"
func (d Diagnostic) String() string {
	return fmt.Sprintf("Line %d: %s %s", d.Position(), d.Code, d.Message)
}

// Kind is the evaluation scope of a rule.
type Kind int

const (
	// KindLine rules see one line of text at a time.
	KindLine Kind = iota
	// KindFile rules see every line of the file as text.
	KindFile
	// KindSyntax rules see the parsed syntax tree of the file.
	KindSyntax
)

// String returns the scope name.
func (k Kind) String() string {
	switch k {
	case KindLine:
		return "line"
	case KindFile:
		return "file"
	case KindSyntax:
		return "syntax"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Finding is a rule hit that has not been bound to a line yet.
// Args fill the verbs of the rule's message template.
type Finding struct {
	Args []any
}

// Hit returns a single finding with the given message arguments.
func Hit(args ...any) []Finding {
	return []Finding{{Args: args}}
}

// LineCheck evaluates one line of text (newline stripped).
type LineCheck func(text string) []Finding

// FileCheck evaluates all lines of a file. The result must have one slot
// per input line; a slot may be empty.
type FileCheck func(lines []string) [][]Finding

// SyntaxCheck evaluates a parsed file. The result must have lineCount slots.
type SyntaxCheck func(tree *syntax.Tree, lineCount int) [][]Finding

// Rule is one unit of the style policy.
// Exactly one of Line, File or Syntax is set, matching Kind.
type Rule struct {
	Code    string // Stable identifier, e.g. "S001"
	Name    string // e.g. "line-too-long"
	Kind    Kind
	Message string // Message template; fmt verbs are filled from Finding.Args

	Line   LineCheck
	File   FileCheck
	Syntax SyntaxCheck
}

// NewLineRule creates a line-scoped rule.
func NewLineRule(code, name, message string, check LineCheck) *Rule {
	return &Rule{Code: code, Name: name, Kind: KindLine, Message: message, Line: check}
}

// NewFileRule creates a file-scoped text rule.
func NewFileRule(code, name, message string, check FileCheck) *Rule {
	return &Rule{Code: code, Name: name, Kind: KindFile, Message: message, File: check}
}

// NewSyntaxRule creates a file-scoped syntax tree rule.
func NewSyntaxRule(code, name, message string, check SyntaxCheck) *Rule {
	return &Rule{Code: code, Name: name, Kind: KindSyntax, Message: message, Syntax: check}
}

// Validate checks that the rule is well formed.
func (r *Rule) Validate() error {
	if r == nil {
		return fmt.Errorf("%w: nil rule", ErrInvalidRule)
	}
	if r.Code == "" {
		return fmt.Errorf("%w: rule %q has no code", ErrInvalidRule, r.Name)
	}

	set := 0
	for _, ok := range []bool{r.Line != nil, r.File != nil, r.Syntax != nil} {
		if ok {
			set++
		}
	}
	if set != 1 {
		return fmt.Errorf("%w: rule %s must have exactly one check function, has %d", ErrInvalidRule, r.Code, set)
	}

	var ok bool
	switch r.Kind {
	case KindLine:
		ok = r.Line != nil
	case KindFile:
		ok = r.File != nil
	case KindSyntax:
		ok = r.Syntax != nil
	}
	if !ok {
		return fmt.Errorf("%w: rule %s has %s kind but no matching check", ErrInvalidRule, r.Code, r.Kind)
	}
	return nil
}

// EvaluateLine runs a line rule against the text of line index.
func (r *Rule) EvaluateLine(index int, text string) ([]Diagnostic, error) {
	if r.Kind != KindLine || r.Line == nil {
		return nil, r.scopeError(KindLine)
	}
	findings := r.Line(text)
	if len(findings) == 0 {
		return nil, nil
	}
	out := make([]Diagnostic, 0, len(findings))
	for _, f := range findings {
		out = append(out, r.diagnose(index, f))
	}
	return out, nil
}

// EvaluateFile runs a file rule over all lines.
// The result has exactly one slot per line.
func (r *Rule) EvaluateFile(lines []string) ([][]Diagnostic, error) {
	if r.Kind != KindFile || r.File == nil {
		return nil, r.scopeError(KindFile)
	}
	return r.bind(r.File(lines), len(lines))
}

// EvaluateSyntax runs a syntax rule over a parsed file of lineCount lines.
func (r *Rule) EvaluateSyntax(tree *syntax.Tree, lineCount int) ([][]Diagnostic, error) {
	if r.Kind != KindSyntax || r.Syntax == nil {
		return nil, r.scopeError(KindSyntax)
	}
	return r.bind(r.Syntax(tree, lineCount), lineCount)
}

func (r *Rule) bind(slots [][]Finding, lineCount int) ([][]Diagnostic, error) {
	if len(slots) != lineCount {
		return nil, fmt.Errorf("%w: rule %s returned %d slots for %d lines", ErrSlotCount, r.Code, len(slots), lineCount)
	}
	out := make([][]Diagnostic, lineCount)
	for i, findings := range slots {
		for _, f := range findings {
			out[i] = append(out[i], r.diagnose(i, f))
		}
	}
	return out, nil
}

func (r *Rule) diagnose(line int, f Finding) Diagnostic {
	msg := r.Message
	if len(f.Args) > 0 {
		msg = fmt.Sprintf(r.Message, f.Args...)
	}
	return Diagnostic{Code: r.Code, Message: msg, Line: line}
}

func (r *Rule) scopeError(want Kind) error {
	return fmt.Errorf("%w: rule %s is a %s rule, evaluated as %s", ErrScopeMismatch, r.Code, r.Kind, want)
}
