// Package report prints checker results for people and for tools.
package report

import (
	"fmt"

	"github.com/DevSymphony/pepcheck/internal/checker"
)

// Printer writes a set of results.
type Printer interface {
	Print(results []checker.Result) error
}

// Summary counts what a check run found.
type Summary struct {
	Files         int // files examined
	Flagged       int // files with at least one diagnostic
	Diagnostics   int
	SyntaxSkipped int // files whose syntax rules were skipped
	Errors        int // files that could not be checked
}

// Summarize tallies results.
func Summarize(results []checker.Result) Summary {
	var s Summary
	for _, r := range results {
		s.Files++
		if r.Err != nil {
			s.Errors++
			continue
		}
		if n := r.Report.Count(); n > 0 {
			s.Flagged++
			s.Diagnostics += n
		}
		if r.Report.SyntaxSkipped() {
			s.SyntaxSkipped++
		}
	}
	return s
}

// Failed reports whether the run should exit non-zero.
func (s Summary) Failed() bool {
	return s.Diagnostics > 0 || s.Errors > 0
}

func (s Summary) String() string {
	msg := fmt.Sprintf("%s, %s in %s",
		plural(s.Files, "file"), plural(s.Diagnostics, "problem"), plural(s.Flagged, "file"))
	if s.SyntaxSkipped > 0 {
		msg += fmt.Sprintf(", syntax rules skipped for %s", plural(s.SyntaxSkipped, "file"))
	}
	if s.Errors > 0 {
		msg += fmt.Sprintf(", %s", plural(s.Errors, "error"))
	}
	return msg
}

func plural(n int, noun string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, noun)
	}
	return fmt.Sprintf("%d %ss", n, noun)
}
