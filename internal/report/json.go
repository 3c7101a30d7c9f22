package report

import (
	"encoding/json"
	"io"

	"github.com/DevSymphony/pepcheck/internal/checker"
)

// JSONPrinter writes every result as one JSON array.
type JSONPrinter struct {
	out io.Writer
}

func NewJSON(out io.Writer) *JSONPrinter {
	return &JSONPrinter{out: out}
}

type fileEntry struct {
	File        string           `json:"file"`
	Diagnostics []jsonDiagnostic `json:"diagnostics"`
	SyntaxError string           `json:"syntax_error,omitempty"`
	Error       string           `json:"error,omitempty"`
}

type jsonDiagnostic struct {
	Line    int    `json:"line"` // 1-based
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (p *JSONPrinter) Print(results []checker.Result) error {
	entries := make([]fileEntry, 0, len(results))
	for _, r := range results {
		entry := fileEntry{File: r.Path, Diagnostics: []jsonDiagnostic{}}
		if r.Err != nil {
			entry.Error = r.Err.Error()
			entries = append(entries, entry)
			continue
		}
		for _, d := range r.Report.Diagnostics() {
			entry.Diagnostics = append(entry.Diagnostics, jsonDiagnostic{
				Line:    d.Position(),
				Code:    d.Code,
				Message: d.Message,
			})
		}
		if err := r.Report.SyntaxError(); err != nil {
			entry.SyntaxError = err.Error()
		}
		entries = append(entries, entry)
	}

	enc := json.NewEncoder(p.out)
	enc.SetIndent("", "  ")
	return enc.Encode(entries)
}
