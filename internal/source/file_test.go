package source

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitLines(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{"empty", "", nil},
		{"single without newline", "x = 1", []string{"x = 1"}},
		{"single with newline", "x = 1\n", []string{"x = 1"}},
		{"blank lines kept", "a\n\n\nb\n", []string{"a", "", "", "b"}},
		{"trailing blank lines kept", "a\n\n\n", []string{"a", "", ""}},
		{"crlf", "a\r\nb\r\n", []string{"a", "b"}},
		{"bom", "\ufeffa\n", []string{"a"}},
		{"only newline", "\n", []string{""}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SplitLines(tt.text))
		})
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "mod.py")
	require.NoError(t, os.WriteFile(path, []byte("import os\n\nprint(os.name)\n"), 0644))

	f, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, path, f.Path)
	assert.Equal(t, []string{"import os", "", "print(os.name)"}, f.Lines)
}

func TestLoad_Missing(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.py"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}
