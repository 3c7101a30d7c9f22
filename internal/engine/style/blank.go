package style

import (
	"github.com/DevSymphony/pepcheck/internal/engine/core"
)

// MaxBlankLines is the longest allowed run of blank lines before a code line.
const MaxBlankLines = 2

// BlankLines flags the first code line after a run of more than
// MaxBlankLines blank lines.
//
// A blank line has no characters at all; a line holding only spaces is a
// code line here. Runs at end of file have no following line and are
// never reported.
func BlankLines() *core.Rule {
	return core.NewFileRule(CodeBlankLines, "blank-run",
		"More than two blank lines preceding a code line.", checkBlankLines)
}

// FileRules returns the file rules of this package in declared order.
func FileRules() []*core.Rule {
	return []*core.Rule{BlankLines()}
}

func checkBlankLines(lines []string) [][]core.Finding {
	out := make([][]core.Finding, len(lines))
	blank := 0
	for i, line := range lines {
		if line == "" {
			blank++
			continue
		}
		if blank > MaxBlankLines {
			out[i] = core.Hit()
		}
		blank = 0
	}
	return out
}
