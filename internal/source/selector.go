package source

import (
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// DefaultExclude skips test modules, which follow their own conventions.
var DefaultExclude = []string{
	"**/test_*.py",
	"**/*_test.py",
	"**/tests.py",
}

// Selector filters discovered files by glob patterns.
type Selector struct {
	Include []string // ["src/**/*.py"]; empty means everything
	Exclude []string // ["**/test_*.py"]

	// Root is the directory patterns are relative to; empty means the
	// working directory.
	Root string
}

// BaseDir returns Root as an absolute path.
func (s *Selector) BaseDir() (string, error) {
	root := "."
	if s != nil && s.Root != "" {
		root = s.Root
	}
	return filepath.Abs(root)
}

// MatchGlob checks if a file path matches a glob pattern.
// Supports doublestar patterns (e.g., "**/*.py", "src/**/test_*.py").
func MatchGlob(filePath, pattern string) (bool, error) {
	// Normalize paths for consistent matching
	filePath = filepath.ToSlash(filepath.Clean(filePath))
	pattern = filepath.ToSlash(pattern)

	return doublestar.Match(pattern, filePath)
}

// Validate reports the first malformed pattern.
func (s *Selector) Validate() error {
	if s == nil {
		return nil
	}
	for _, pattern := range append(append([]string{}, s.Include...), s.Exclude...) {
		if !doublestar.ValidatePattern(filepath.ToSlash(pattern)) {
			return &PatternError{Pattern: pattern}
		}
	}
	return nil
}

// Matches checks if a file passes the selector.
// A nil selector matches everything.
func (s *Selector) Matches(filePath string) bool {
	if s == nil {
		return true
	}

	// Include filter (if specified, file must match at least one pattern)
	if len(s.Include) > 0 {
		matched := false
		for _, pattern := range s.Include {
			if m, err := MatchGlob(filePath, pattern); err == nil && m {
				matched = true
				break
			}
		}
		if !matched {
			return false
		}
	}

	// Exclude filter (if file matches any pattern, exclude it)
	for _, pattern := range s.Exclude {
		if m, err := MatchGlob(filePath, pattern); err == nil && m {
			return false
		}
	}

	return true
}

// MatchesUnder checks path relative to root. Paths outside root are
// matched as given.
func (s *Selector) MatchesUnder(root, path string) bool {
	if rel, err := filepath.Rel(root, path); err == nil && rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		path = rel
	}
	return s.Matches(path)
}

// PatternError reports an invalid glob pattern.
type PatternError struct {
	Pattern string
}

func (e *PatternError) Error() string {
	return "invalid glob pattern: " + e.Pattern
}
