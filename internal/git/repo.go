// Package git reads repository state through the git binary.
package git

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"path/filepath"
	"slices"
	"strings"
)

// ErrNotRepository is returned outside a git work tree.
var ErrNotRepository = errors.New("not a git repository")

// Repo runs git commands in Dir (the current directory when empty).
type Repo struct {
	Dir string
}

// RepoRoot returns the root directory of the git repository
func (r Repo) RepoRoot(ctx context.Context) (string, error) {
	output, err := r.run(ctx, "rev-parse", "--show-toplevel")
	if err != nil {
		return "", ErrNotRepository
	}
	return strings.TrimSpace(output), nil
}

// ChangedFiles returns the absolute paths of files that are staged,
// modified in the work tree, or untracked. Deleted files are omitted.
func (r Repo) ChangedFiles(ctx context.Context) ([]string, error) {
	root, err := r.RepoRoot(ctx)
	if err != nil {
		return nil, err
	}

	queries := [][]string{
		{"diff", "--name-only", "--diff-filter=d", "--cached"},
		{"diff", "--name-only", "--diff-filter=d"},
		{"ls-files", "--others", "--exclude-standard", "--full-name"},
	}

	seen := make(map[string]bool)
	var files []string
	for _, args := range queries {
		output, err := r.run(ctx, args...)
		if err != nil {
			return nil, fmt.Errorf("git %s: %w", args[0], err)
		}
		for _, line := range strings.Split(output, "\n") {
			line = strings.TrimSpace(line)
			if line == "" {
				continue
			}
			path := filepath.Join(root, filepath.FromSlash(line))
			if !seen[path] {
				seen[path] = true
				files = append(files, path)
			}
		}
	}

	slices.Sort(files)
	return files, nil
}

func (r Repo) run(ctx context.Context, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = r.Dir
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	output, err := cmd.Output()
	if err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return "", fmt.Errorf("%w: %s", err, msg)
		}
		return "", err
	}
	return string(output), nil
}
