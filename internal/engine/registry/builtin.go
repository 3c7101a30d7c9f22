package registry

import (
	"github.com/DevSymphony/pepcheck/internal/engine/ast"
	"github.com/DevSymphony/pepcheck/internal/engine/core"
	"github.com/DevSymphony/pepcheck/internal/engine/length"
	"github.com/DevSymphony/pepcheck/internal/engine/pattern"
	"github.com/DevSymphony/pepcheck/internal/engine/style"
	"github.com/DevSymphony/pepcheck/internal/syntax"
)

// init registers all built-in rules in declared order.
// Codes are part of the public contract; new rules get new codes.
func init() {
	// Line rules
	MustRegister(length.Rules()...)
	MustRegister(style.LineRules()...)
	MustRegister(pattern.Rules()...)

	// File rules
	MustRegister(style.FileRules()...)

	// Syntax tree rules
	MustRegister(ast.Rules()...)
}

// NewDefaultEngine builds the engine for the built-in rule set, parsing
// files with the tree-sitter provider.
func NewDefaultEngine() (*core.Engine, error) {
	return Global().NewEngine(syntax.NewParser())
}
