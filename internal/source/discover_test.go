package source

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFiles(t *testing.T, root string, names ...string) {
	t.Helper()
	for _, name := range names {
		path := filepath.Join(root, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte("pass\n"), 0644))
	}
}

func rel(t *testing.T, root string, files []string) []string {
	t.Helper()
	out := make([]string, 0, len(files))
	for _, f := range files {
		r, err := filepath.Rel(root, f)
		require.NoError(t, err)
		out = append(out, filepath.ToSlash(r))
	}
	return out
}

func TestDiscover_Directory(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root,
		"b.py",
		"a.py",
		"notes.txt",
		"pkg/c.py",
		"pkg/test_c.py",
		"pkg/tests.py",
		"pkg/__pycache__/c.py",
		".venv/lib/site.py",
	)

	files, err := Discover([]string{root}, &Selector{Exclude: DefaultExclude, Root: root})
	require.NoError(t, err)
	assert.Equal(t, []string{"a.py", "b.py", "pkg/c.py"}, rel(t, root, files))
}

func TestDiscover_PatternsRelativeToRoot(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root, "src/a.py", "src/gen/b.py", "lib/c.py")
	sel := &Selector{Include: []string{"src/**"}, Exclude: []string{"src/gen/**"}, Root: root}

	t.Run("walk root", func(t *testing.T) {
		files, err := Discover([]string{root}, sel)
		require.NoError(t, err)
		assert.Equal(t, []string{"src/a.py"}, rel(t, root, files))
	})

	t.Run("walk subdirectory", func(t *testing.T) {
		files, err := Discover([]string{filepath.Join(root, "src")}, sel)
		require.NoError(t, err)
		assert.Equal(t, []string{"src/a.py"}, rel(t, root, files))
	})

	t.Run("working directory as root", func(t *testing.T) {
		t.Chdir(root)
		files, err := Discover([]string{"."}, &Selector{Include: []string{"lib/**"}})
		require.NoError(t, err)
		assert.Equal(t, []string{filepath.Join("lib", "c.py")}, files)
	})
}

func TestDiscover_ExplicitFileAlwaysKept(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root, "test_x.py", "script")

	files, err := Discover([]string{
		filepath.Join(root, "test_x.py"),
		filepath.Join(root, "script"),
	}, &Selector{Exclude: DefaultExclude, Root: root})
	require.NoError(t, err)
	assert.Equal(t, []string{"script", "test_x.py"}, rel(t, root, files))
}

func TestDiscover_Deduplicates(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root, "a.py")

	files, err := Discover([]string{root, filepath.Join(root, "a.py")}, nil)
	require.NoError(t, err)
	assert.Len(t, files, 1)
}

func TestDiscover_MissingPath(t *testing.T) {
	_, err := Discover([]string{filepath.Join(t.TempDir(), "nope")}, nil)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestDiscover_InvalidPattern(t *testing.T) {
	_, err := Discover([]string{t.TempDir()}, &Selector{Exclude: []string{"["}})
	var patErr *PatternError
	assert.ErrorAs(t, err, &patErr)
}
