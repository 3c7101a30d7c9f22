package mcp

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DevSymphony/pepcheck/internal/checker"
	"github.com/DevSymphony/pepcheck/internal/engine/registry"
	"github.com/DevSymphony/pepcheck/internal/source"
)

type fakeChanges struct {
	files []string
	err   error
}

func (f fakeChanges) ChangedFiles(context.Context) ([]string, error) {
	return f.files, f.err
}

func newTestServer(t *testing.T, opts Options) *Server {
	t.Helper()
	engine, err := registry.NewDefaultEngine()
	require.NoError(t, err)
	return NewServer(checker.New(engine), engine.Rules(), opts)
}

func TestHandleCheckCode(t *testing.T) {
	s := newTestServer(t, Options{})
	ctx := context.Background()

	t.Run("source text", func(t *testing.T) {
		out, err := s.handleCheckCode(ctx, CheckCodeInput{Source: "def Foo():\n    pass\n"})
		require.NoError(t, err)
		require.Len(t, out.Files, 1)
		assert.Equal(t, "<source>", out.Files[0].File)
		assert.Equal(t, []DiagnosticItem{
			{Line: 1, Code: "S009", Message: "Function name 'Foo' should use snake_case"},
		}, out.Files[0].Diagnostics)
		assert.False(t, out.Clean)
	})

	t.Run("named clean source", func(t *testing.T) {
		out, err := s.handleCheckCode(ctx, CheckCodeInput{Source: "x = 1\n", Name: "snippet.py"})
		require.NoError(t, err)
		assert.Equal(t, "snippet.py", out.Files[0].File)
		assert.Empty(t, out.Files[0].Diagnostics)
		assert.True(t, out.Clean)
	})

	t.Run("path", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "m.py")
		require.NoError(t, os.WriteFile(path, []byte("x = 1;\n"), 0o644))

		out, err := s.handleCheckCode(ctx, CheckCodeInput{Path: path})
		require.NoError(t, err)
		require.Len(t, out.Files[0].Diagnostics, 1)
		assert.Equal(t, "S003", out.Files[0].Diagnostics[0].Code)
	})

	t.Run("missing path is reported on the file", func(t *testing.T) {
		out, err := s.handleCheckCode(ctx, CheckCodeInput{Path: filepath.Join(t.TempDir(), "none.py")})
		require.NoError(t, err)
		assert.NotEmpty(t, out.Files[0].Error)
		assert.False(t, out.Clean)
	})

	t.Run("syntax error", func(t *testing.T) {
		out, err := s.handleCheckCode(ctx, CheckCodeInput{Source: "def f(:\n"})
		require.NoError(t, err)
		assert.NotEmpty(t, out.Files[0].SyntaxError)
	})

	t.Run("no input", func(t *testing.T) {
		_, err := s.handleCheckCode(ctx, CheckCodeInput{})
		assert.ErrorIs(t, err, errNoInput)
	})
}

func TestHandleCheckChanges(t *testing.T) {
	dir := t.TempDir()
	write := func(name, content string) string {
		path := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
		return path
	}
	bad := write("bad.py", "x = 1;\n")
	good := write("good.py", "x = 1\n")
	skipped := write("test_bad.py", "x = 1;\n")
	notes := write("notes.txt", "x = 1;\n")

	s := newTestServer(t, Options{
		Changes:  fakeChanges{files: []string{notes, skipped, good, bad}},
		Selector: &source.Selector{Exclude: source.DefaultExclude, Root: dir},
	})

	out, err := s.handleCheckChanges(context.Background())
	require.NoError(t, err)
	require.Len(t, out.Files, 2)
	assert.Equal(t, bad, out.Files[0].File)
	assert.Equal(t, good, out.Files[1].File)
	assert.Equal(t, "2 files, 1 problem in 1 file", out.Summary)
}

func TestHandleCheckChanges_GitError(t *testing.T) {
	s := newTestServer(t, Options{Changes: fakeChanges{err: errors.New("not a git repository")}})
	_, err := s.handleCheckChanges(context.Background())
	assert.ErrorContains(t, err, "failed to get git changes")
}

func TestHandleListRules(t *testing.T) {
	s := newTestServer(t, Options{})
	out := s.handleListRules()

	var codes []string
	for _, r := range out.Rules {
		codes = append(codes, r.Code)
	}
	assert.Equal(t, []string{
		"S001", "S002", "S003", "S004", "S005", "S007", "S008",
		"S006", "S009", "S010", "S011", "S012",
	}, codes)
	assert.Equal(t, "line", out.Rules[0].Kind)
	assert.Equal(t, "file", out.Rules[7].Kind)
	assert.Equal(t, "syntax", out.Rules[8].Kind)
}

func TestFormatCheck(t *testing.T) {
	out := CheckOutput{
		Files: []FileItem{
			{File: "a.py", Diagnostics: []DiagnosticItem{{Line: 2, Code: "S005", Message: "TODO found"}}},
			{File: "b.py", Error: "permission denied"},
		},
		Summary: "2 files",
	}
	assert.Equal(t, "a.py: Line 2: S005 TODO found\nb.py: error: permission denied\n2 files", formatCheck(out))
	assert.Equal(t, "No Python files to check.\n0 files", formatCheck(CheckOutput{Summary: "0 files"}))
}

func TestSDKServer(t *testing.T) {
	assert.NotNil(t, newTestServer(t, Options{Version: "1.2.3"}).SDKServer())
}
