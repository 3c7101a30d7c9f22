// Package length holds the line length rule.
package length

import (
	"unicode/utf8"

	"github.com/DevSymphony/pepcheck/internal/engine/core"
)

// CodeLineTooLong is the stable code of the line length rule.
const CodeLineTooLong = "S001"

// MaxLineLength is the longest allowed line, in characters, excluding the newline.
const MaxLineLength = 79

// LineTooLong flags lines longer than MaxLineLength characters.
func LineTooLong() *core.Rule {
	return core.NewLineRule(CodeLineTooLong, "line-too-long", "Too long", checkLength)
}

// Rules returns the rules of this package in declared order.
func Rules() []*core.Rule {
	return []*core.Rule{LineTooLong()}
}

func checkLength(text string) []core.Finding {
	if utf8.RuneCountInString(text) > MaxLineLength {
		return core.Hit()
	}
	return nil
}
