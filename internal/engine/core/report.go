package core

import (
	"encoding/json"
	"iter"
	"slices"
)

// FileReport is the ordered diagnostic table for one file: exactly one
// list per source line, each list in rule evaluation order.
type FileReport struct {
	lines     [][]Diagnostic
	syntaxErr error
}

// Len returns the number of source lines covered by the report.
func (r *FileReport) Len() int {
	return len(r.lines)
}

// At returns the diagnostics of 0-based line i.
// It panics if i is out of range, like a slice index.
func (r *FileReport) At(i int) []Diagnostic {
	return slices.Clone(r.lines[i])
}

// All iterates over every line, including lines without diagnostics.
func (r *FileReport) All() iter.Seq2[int, []Diagnostic] {
	return func(yield func(int, []Diagnostic) bool) {
		for i, diags := range r.lines {
			if !yield(i, slices.Clone(diags)) {
				return
			}
		}
	}
}

// Diagnostics returns all diagnostics flattened in line order.
func (r *FileReport) Diagnostics() []Diagnostic {
	out := make([]Diagnostic, 0, r.Count())
	for _, diags := range r.lines {
		out = append(out, diags...)
	}
	return out
}

// Count returns the total number of diagnostics.
func (r *FileReport) Count() int {
	n := 0
	for _, diags := range r.lines {
		n += len(diags)
	}
	return n
}

// Clean reports whether the file has no diagnostics.
func (r *FileReport) Clean() bool {
	return r.Count() == 0
}

// Codes returns the distinct rule codes present, in first-seen order.
func (r *FileReport) Codes() []string {
	var codes []string
	for _, diags := range r.lines {
		for _, d := range diags {
			if !slices.Contains(codes, d.Code) {
				codes = append(codes, d.Code)
			}
		}
	}
	return codes
}

// SyntaxSkipped reports whether syntax rules were skipped because the
// file could not be parsed.
func (r *FileReport) SyntaxSkipped() bool {
	return r.syntaxErr != nil
}

// SyntaxError returns the parse failure that caused syntax rules to be
// skipped, or nil.
func (r *FileReport) SyntaxError() error {
	return r.syntaxErr
}

// MarshalJSON serialises the report as its flattened diagnostics.
func (r *FileReport) MarshalJSON() ([]byte, error) {
	out := struct {
		Lines       int          `json:"lines"`
		Diagnostics []Diagnostic `json:"diagnostics"`
		SyntaxError string       `json:"syntax_error,omitempty"`
	}{
		Lines:       r.Len(),
		Diagnostics: r.Diagnostics(),
	}
	if r.syntaxErr != nil {
		out.SyntaxError = r.syntaxErr.Error()
	}
	return json.Marshal(out)
}
