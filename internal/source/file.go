// Package source loads source files and discovers which files to check.
package source

import (
	"fmt"
	"os"
	"strings"
)

// File is the loaded text of one source file.
// Lines have their line terminators removed and are never modified.
type File struct {
	Path  string
	Lines []string
}

// Load reads path and splits it into lines.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return &File{Path: path, Lines: SplitLines(string(data))}, nil
}

// SplitLines splits text into lines without their "\n" or "\r\n"
// terminators. A final terminator does not start a new line, and a
// leading UTF-8 byte order mark is dropped.
func SplitLines(text string) []string {
	text = strings.TrimPrefix(text, "\ufeff")
	if text == "" {
		return nil
	}

	lines := strings.Split(text, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}
	return lines
}
