// Package style holds the whitespace, punctuation and comment rules.
//
// All rules here are lexical: they look at raw line text and never at the
// structure of the program, so they keep working on files that do not parse.
package style

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/DevSymphony/pepcheck/internal/engine/core"
)

// Stable rule codes.
const (
	CodeIndentation         = "S002"
	CodeSemicolon           = "S003"
	CodeCommentSpacing      = "S004"
	CodeTodo                = "S005"
	CodeBlankLines          = "S006"
	CodeConstructionSpacing = "S007"
)

// IndentWidth is the required indentation step.
const IndentWidth = 4

// Indentation flags lines whose leading space count is not a multiple of IndentWidth.
func Indentation() *core.Rule {
	return core.NewLineRule(CodeIndentation, "bad-indentation",
		"Indentation is not a multiple of four", checkIndentation)
}

// Semicolon flags statements ending in a semicolon.
func Semicolon() *core.Rule {
	return core.NewLineRule(CodeSemicolon, "stray-semicolon",
		"Unnecessary semicolon after a statement", checkSemicolon)
}

// CommentSpacing flags inline comments preceded by fewer than two spaces.
func CommentSpacing() *core.Rule {
	return core.NewLineRule(CodeCommentSpacing, "comment-spacing",
		"Less than two spaces before inline comments", checkCommentSpacing)
}

// Todo flags TODO markers inside comments.
func Todo() *core.Rule {
	return core.NewLineRule(CodeTodo, "todo-marker", "TODO found", checkTodo)
}

// ConstructionSpacing flags more than one space after 'class' or 'def'.
func ConstructionSpacing() *core.Rule {
	return core.NewLineRule(CodeConstructionSpacing, "construction-spacing",
		"Too many spaces after '%s'", checkConstructionSpacing)
}

// LineRules returns the line rules of this package in declared order.
func LineRules() []*core.Rule {
	return []*core.Rule{
		Indentation(),
		Semicolon(),
		CommentSpacing(),
		Todo(),
		ConstructionSpacing(),
	}
}

func checkIndentation(text string) []core.Finding {
	indent := len(text) - len(strings.TrimLeft(text, " "))
	if indent == len(text) {
		// Blank or spaces only: nothing is being indented.
		return nil
	}
	if indent%IndentWidth != 0 {
		return core.Hit()
	}
	return nil
}

func checkSemicolon(text string) []core.Finding {
	code := text
	if i := strings.IndexByte(code, '#'); i >= 0 {
		code = code[:i]
	}
	code = strings.ReplaceAll(code, " ", "")
	code = strings.ReplaceAll(code, "\n", "")
	if strings.HasSuffix(code, ";") {
		return core.Hit()
	}
	return nil
}

func checkCommentSpacing(text string) []core.Finding {
	hash := strings.IndexByte(text, '#')
	if hash < 0 {
		return nil
	}
	first := strings.IndexFunc(text, func(r rune) bool { return !unicode.IsSpace(r) })
	if hash <= first {
		// The whole line is a comment.
		return nil
	}
	if hash >= 2 && text[hash-2:hash] == "  " {
		return nil
	}
	return core.Hit()
}

func checkTodo(text string) []core.Finding {
	hash := strings.IndexByte(text, '#')
	if hash < 0 {
		return nil
	}
	if strings.Contains(strings.ToLower(text[hash+1:]), "todo") {
		return core.Hit()
	}
	return nil
}

// constructionRe matches a class or def keyword at the start of a
// statement followed by two or more spaces and a name.
var constructionRe = regexp.MustCompile(`(?:^|[;:])\s*(?:async\s+)?(class|def) {2,}[A-Za-z_]`)

func checkConstructionSpacing(text string) []core.Finding {
	var findings []core.Finding
	for _, m := range constructionRe.FindAllStringSubmatch(core.CodeText(text), -1) {
		findings = append(findings, core.Finding{Args: []any{m[1]}})
	}
	return findings
}
