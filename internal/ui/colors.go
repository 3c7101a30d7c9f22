// Package ui formats user-facing status lines and interactive prompts.
package ui

import (
	"fmt"
	"io"
	"os"
	"sync"

	"golang.org/x/term"
)

// ANSI color codes
const (
	Reset  = "\033[0m"
	Red    = "\033[31m"
	Green  = "\033[32m"
	Yellow = "\033[33m"
	Blue   = "\033[34m"
	Cyan   = "\033[36m"
	Bold   = "\033[1m"
)

// Colour modes accepted by ColorEnabled.
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

var (
	mu      sync.Mutex
	out     io.Writer = os.Stdout
	colored bool      = IsTerminal(os.Stdout)
)

// IsTerminal reports whether f is attached to a terminal.
func IsTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// ColorEnabled resolves a colour mode for output written to f.
// In auto mode NO_COLOR disables colour and otherwise f must be a terminal.
func ColorEnabled(mode string, f *os.File) bool {
	switch mode {
	case ColorAlways:
		return true
	case ColorNever:
		return false
	}
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	return IsTerminal(f)
}

// SetOutput redirects status lines and sets whether they are coloured.
func SetOutput(w io.Writer, color bool) {
	mu.Lock()
	defer mu.Unlock()
	out = w
	colored = color
}

func colorize(color, msg string) string {
	mu.Lock()
	on := colored
	mu.Unlock()
	if !on {
		return msg
	}
	return color + msg + Reset
}

func label(color, tag, msg string) string {
	return fmt.Sprintf("%s %s", colorize(color, tag), msg)
}

// OK formats a success message with [OK] prefix in green
func OK(msg string) string { return label(Green, "[OK]", msg) }

// Error formats an error message with [ERROR] prefix in red
func Error(msg string) string { return label(Red, "[ERROR]", msg) }

// Warn formats a warning message with [WARN] prefix in yellow
func Warn(msg string) string { return label(Yellow, "[WARN]", msg) }

// Info formats an info message with [INFO] prefix in blue
func Info(msg string) string { return label(Blue, "[INFO]", msg) }

// Done formats a completion message with [DONE] prefix in green
func Done(msg string) string { return label(Green+Bold, "[DONE]", msg) }

// Title formats a section title with description
func Title(title, desc string) string {
	return label(Bold+Cyan, fmt.Sprintf("[%s]", title), desc)
}

// Indent returns the message with indentation
func Indent(msg string) string {
	return "     " + msg
}

func emit(s string) {
	mu.Lock()
	w := out
	mu.Unlock()
	fmt.Fprintln(w, s)
}

func PrintOK(msg string) { emit(OK(msg)) }
func PrintError(msg string) { emit(Error(msg)) }
func PrintWarn(msg string) { emit(Warn(msg)) }
func PrintInfo(msg string) { emit(Info(msg)) }
func PrintDone(msg string) { emit(Done(msg)) }
func PrintTitle(title, desc string) { emit(Title(title, desc)) }
func PrintIndent(msg string) { emit(Indent(msg)) }
