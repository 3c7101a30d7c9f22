package source

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Extension is the file extension of checked source files.
const Extension = ".py"

// skipDirs are never descended into.
var skipDirs = map[string]bool{
	"__pycache__":  true,
	"node_modules": true,
	"venv":         true,
}

// Discover expands paths into the sorted, de-duplicated list of files to
// check. Files named explicitly are always kept; files found by walking a
// directory must have the source extension and pass the selector.
func Discover(paths []string, selector *Selector) ([]string, error) {
	if err := selector.Validate(); err != nil {
		return nil, err
	}
	base, err := selector.BaseDir()
	if err != nil {
		return nil, fmt.Errorf("failed to resolve selector root: %w", err)
	}

	seen := make(map[string]bool)
	var files []string
	add := func(path string) {
		path = filepath.Clean(path)
		if !seen[path] {
			seen[path] = true
			files = append(files, path)
		}
	}

	for _, root := range paths {
		info, err := os.Stat(root)
		if err != nil {
			return nil, fmt.Errorf("failed to stat %s: %w", root, err)
		}

		if !info.IsDir() {
			add(root)
			continue
		}

		err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				if path != root && skipDir(d.Name()) {
					return filepath.SkipDir
				}
				return nil
			}
			if filepath.Ext(path) != Extension {
				return nil
			}
			abs, err := filepath.Abs(path)
			if err != nil {
				return err
			}
			if selector.MatchesUnder(base, abs) {
				add(path)
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("failed to walk %s: %w", root, err)
		}
	}

	// Sort for deterministic report order
	sort.Strings(files)
	return files, nil
}

func skipDir(name string) bool {
	return strings.HasPrefix(name, ".") || skipDirs[name]
}
