package core

import (
	"context"
	"fmt"
	"strings"

	"github.com/DevSymphony/pepcheck/internal/syntax"
)

// SyntaxProvider parses the text of a whole file into a syntax tree.
// Implementations must be safe for concurrent use.
type SyntaxProvider interface {
	Parse(ctx context.Context, src []byte) (*syntax.Tree, error)
}

// Engine runs an ordered rule set over the lines of one file.
//
// An Engine is immutable once built and holds no per-file state, so one
// instance can serve any number of concurrent Analyze calls.
type Engine struct {
	lineRules   []*Rule
	fileRules   []*Rule
	syntaxRules []*Rule
	provider    SyntaxProvider
}

// NewEngine builds an engine from rules in declared order.
// Rules are grouped by kind; within a kind the given order is kept.
// provider may be nil only when no syntax rules are given.
func NewEngine(provider SyntaxProvider, rules ...*Rule) (*Engine, error) {
	e := &Engine{provider: provider}
	seen := make(map[string]string, len(rules))

	for _, r := range rules {
		if err := r.Validate(); err != nil {
			return nil, err
		}
		if prev, ok := seen[r.Code]; ok {
			return nil, fmt.Errorf("%w: %s used by %s and %s", ErrDuplicateCode, r.Code, prev, r.Name)
		}
		seen[r.Code] = r.Name

		switch r.Kind {
		case KindLine:
			e.lineRules = append(e.lineRules, r)
		case KindFile:
			e.fileRules = append(e.fileRules, r)
		case KindSyntax:
			e.syntaxRules = append(e.syntaxRules, r)
		}
	}

	if len(e.syntaxRules) > 0 && provider == nil {
		return nil, fmt.Errorf("%w: syntax rules require a syntax provider", ErrInvalidRule)
	}

	return e, nil
}

// Rules returns the rules in evaluation order: line rules, then file
// rules, then syntax rules.
func (e *Engine) Rules() []*Rule {
	out := make([]*Rule, 0, len(e.lineRules)+len(e.fileRules)+len(e.syntaxRules))
	out = append(out, e.lineRules...)
	out = append(out, e.fileRules...)
	out = append(out, e.syntaxRules...)
	return out
}

// Analyze evaluates every rule against lines (newlines already stripped)
// and returns the per-line report.
//
// A file the syntax provider cannot parse is not an error: syntax rules
// are skipped and the failure is available from FileReport.SyntaxError.
// Errors are returned only for context cancellation and engine misuse.
func (e *Engine) Analyze(ctx context.Context, lines []string) (*FileReport, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	slots := make([][]Diagnostic, len(lines))

	for i, text := range lines {
		for _, r := range e.lineRules {
			diags, err := r.EvaluateLine(i, text)
			if err != nil {
				return nil, err
			}
			slots[i] = append(slots[i], diags...)
		}
	}

	for _, r := range e.fileRules {
		perLine, err := r.EvaluateFile(lines)
		if err != nil {
			return nil, err
		}
		merge(slots, perLine)
	}

	report := &FileReport{lines: slots}
	if len(e.syntaxRules) == 0 {
		return report, nil
	}

	tree, err := e.provider.Parse(ctx, joinLines(lines))
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		report.syntaxErr = err
		return report, nil
	}

	for _, r := range e.syntaxRules {
		perLine, err := r.EvaluateSyntax(tree, len(lines))
		if err != nil {
			return nil, err
		}
		merge(slots, perLine)
	}

	return report, nil
}

func merge(dst, src [][]Diagnostic) {
	for i, diags := range src {
		dst[i] = append(dst[i], diags...)
	}
}

func joinLines(lines []string) []byte {
	if len(lines) == 0 {
		return nil
	}
	return []byte(strings.Join(lines, "\n") + "\n")
}
