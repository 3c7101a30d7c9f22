package report

import (
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/DevSymphony/pepcheck/internal/checker"
)

// TextPrinter writes one line per diagnostic:
//
//	path/to/file.py: Line 3: S001 Too long
//
// Files that could not be checked, and files whose syntax rules were
// skipped, get a note on the error stream instead.
type TextPrinter struct {
	out    io.Writer
	errOut io.Writer

	pathColor *color.Color
	codeColor *color.Color
	noteColor *color.Color
	errColor  *color.Color
}

// NewText creates a text printer. Colour is applied only when colored is set.
func NewText(out, errOut io.Writer, colored bool) *TextPrinter {
	p := &TextPrinter{
		out:       out,
		errOut:    errOut,
		pathColor: color.New(color.Bold),
		codeColor: color.New(color.FgYellow),
		noteColor: color.New(color.FgCyan),
		errColor:  color.New(color.FgRed, color.Bold),
	}
	for _, c := range []*color.Color{p.pathColor, p.codeColor, p.noteColor, p.errColor} {
		if colored {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

func (p *TextPrinter) Print(results []checker.Result) error {
	for _, r := range results {
		if r.Err != nil {
			if _, err := fmt.Fprintf(p.errOut, "%s: %s %v\n",
				p.pathColor.Sprint(r.Path), p.errColor.Sprint("error:"), r.Err); err != nil {
				return err
			}
			continue
		}

		for _, d := range r.Report.Diagnostics() {
			if _, err := fmt.Fprintf(p.out, "%s: Line %d: %s %s\n",
				p.pathColor.Sprint(r.Path), d.Position(), p.codeColor.Sprint(d.Code), d.Message); err != nil {
				return err
			}
		}

		if r.Report.SyntaxSkipped() {
			if _, err := fmt.Fprintf(p.errOut, "%s: %s %v\n",
				p.pathColor.Sprint(r.Path), p.noteColor.Sprint("note: syntax rules skipped:"), r.Report.SyntaxError()); err != nil {
				return err
			}
		}
	}
	return nil
}
