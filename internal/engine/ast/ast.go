// Package ast holds the naming and mutability rules that need a parsed
// syntax tree. None of them look at raw text.
package ast

import (
	"regexp"

	"github.com/DevSymphony/pepcheck/internal/engine/core"
	"github.com/DevSymphony/pepcheck/internal/syntax"
)

// Stable rule codes.
const (
	CodeFunctionName   = "S009"
	CodeArgumentName   = "S010"
	CodeVariableName   = "S011"
	CodeMutableDefault = "S012"
)

var snakeCaseRe = regexp.MustCompile(`^[a-z0-9_]+$`)

// IsSnakeCase reports whether name uses only lowercase letters, digits and underscores.
func IsSnakeCase(name string) bool {
	return snakeCaseRe.MatchString(name)
}

// FunctionName flags function names that are not snake_case.
func FunctionName() *core.Rule {
	return core.NewSyntaxRule(CodeFunctionName, "function-naming",
		"Function name '%s' should use snake_case", checkFunctionNames)
}

// ArgumentName flags parameter names that are not snake_case.
func ArgumentName() *core.Rule {
	return core.NewSyntaxRule(CodeArgumentName, "argument-naming",
		"Argument name '%s' should be snake_case", checkArgumentNames)
}

// VariableName flags simple assignment targets inside functions that are not snake_case.
func VariableName() *core.Rule {
	return core.NewSyntaxRule(CodeVariableName, "variable-naming",
		"Variable '%s' in function should be snake_case", checkVariableNames)
}

// MutableDefault flags list, dict and set literals used as parameter defaults.
func MutableDefault() *core.Rule {
	return core.NewSyntaxRule(CodeMutableDefault, "mutable-default",
		"Default argument value is mutable", checkMutableDefaults)
}

// Rules returns the rules of this package in declared order.
func Rules() []*core.Rule {
	return []*core.Rule{
		FunctionName(),
		ArgumentName(),
		VariableName(),
		MutableDefault(),
	}
}

// slots collects findings per line and drops positions outside the file.
type slots [][]core.Finding

func newSlots(lineCount int) slots {
	return make(slots, lineCount)
}

func (s slots) add(line int, args ...any) {
	if line < 0 || line >= len(s) {
		return
	}
	s[line] = append(s[line], core.Finding{Args: args})
}

func checkFunctionNames(tree *syntax.Tree, lineCount int) [][]core.Finding {
	out := newSlots(lineCount)
	for _, fn := range tree.Functions {
		if !IsSnakeCase(fn.Name) {
			out.add(fn.Line, fn.Name)
		}
	}
	return out
}

func checkArgumentNames(tree *syntax.Tree, lineCount int) [][]core.Finding {
	out := newSlots(lineCount)
	for _, fn := range tree.Functions {
		for _, p := range fn.Params {
			if !IsSnakeCase(p.Name) {
				out.add(p.Line, p.Name)
			}
		}
	}
	return out
}

func checkVariableNames(tree *syntax.Tree, lineCount int) [][]core.Finding {
	out := newSlots(lineCount)
	for _, fn := range tree.Functions {
		for _, a := range fn.Assignments {
			if !IsSnakeCase(a.Name) {
				out.add(a.Line, a.Name)
			}
		}
	}
	return out
}

func checkMutableDefaults(tree *syntax.Tree, lineCount int) [][]core.Finding {
	out := newSlots(lineCount)
	for _, fn := range tree.Functions {
		for _, p := range fn.Params {
			if p.Default != nil && p.Default.Kind.Mutable() {
				out.add(fn.Line)
			}
		}
	}
	return out
}
