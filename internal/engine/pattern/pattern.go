// Package pattern holds lexical naming rules matched with regular expressions.
package pattern

import (
	"regexp"

	"github.com/DevSymphony/pepcheck/internal/engine/core"
)

// CodeClassName is the stable code of the class naming rule.
const CodeClassName = "S008"

var (
	// classRe captures the name of a class statement; the name must be
	// followed by '(' or ':'.
	classRe = regexp.MustCompile(`(?:^|[;:])\s*class\s+(\w+)\s*[(:]`)

	// camelCaseRe accepts an uppercase start followed by anything but underscores.
	camelCaseRe = regexp.MustCompile(`^[A-Z][^_]*$`)
)

// ClassName flags class names that are not CamelCase.
func ClassName() *core.Rule {
	return core.NewLineRule(CodeClassName, "class-naming",
		"Class name '%s' should use CamelCase", checkClassName)
}

// Rules returns the rules of this package in declared order.
func Rules() []*core.Rule {
	return []*core.Rule{ClassName()}
}

// IsCamelCase reports whether name is a CamelCase class name.
func IsCamelCase(name string) bool {
	return camelCaseRe.MatchString(name)
}

func checkClassName(text string) []core.Finding {
	var findings []core.Finding
	for _, m := range classRe.FindAllStringSubmatch(core.CodeText(text), -1) {
		if !IsCamelCase(m[1]) {
			findings = append(findings, core.Finding{Args: []any{m[1]}})
		}
	}
	return findings
}
