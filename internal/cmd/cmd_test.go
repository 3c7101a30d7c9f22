package cmd

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DevSymphony/pepcheck/internal/config"
)

// runCLI executes the root command with fresh flag values.
func runCLI(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	resetFlags(rootCmd)

	var stdout, stderr bytes.Buffer
	rootCmd.SetArgs(args)
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	t.Cleanup(func() {
		rootCmd.SetIn(nil)
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
	})

	err := rootCmd.Execute()
	return stdout.String(), stderr.String(), err
}

func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, sub := range cmd.Commands() {
		resetFlags(sub)
	}
}

// projectDir copies testdata/project into a temp dir and makes it the
// working directory.
func projectDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	src := filepath.Join("testdata", "project")
	err := filepath.WalkDir(src, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}
		target := filepath.Join(dir, rel)
		if d.IsDir() {
			return os.MkdirAll(target, 0o755)
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		return os.WriteFile(target, data, 0o644)
	})
	require.NoError(t, err)
	t.Chdir(dir)
	return dir
}

func exitCode(t *testing.T, err error) int {
	t.Helper()
	var exitErr *exitError
	require.ErrorAs(t, err, &exitErr)
	return exitErr.code
}

const badReport = `pkg/bad.py: Line 2: S008 Class name 'my_class' should use CamelCase
pkg/bad.py: Line 3: S009 Function name 'DoThing' should use snake_case
pkg/bad.py: Line 3: S010 Argument name 'BadArg' should be snake_case
pkg/bad.py: Line 3: S012 Default argument value is mutable
pkg/bad.py: Line 4: S003 Unnecessary semicolon after a statement
pkg/bad.py: Line 4: S005 TODO found
pkg/bad.py: Line 4: S011 Variable 'Total' in function should be snake_case
`

func TestCheck_Text(t *testing.T) {
	projectDir(t)

	stdout, _, err := runCLI(t, "", "check", "pkg")
	assert.Equal(t, exitFindings, exitCode(t, err))
	assert.Equal(t, badReport, stdout)
}

func TestCheck_CleanFile(t *testing.T) {
	projectDir(t)

	stdout, stderr, err := runCLI(t, "", "check", filepath.Join("pkg", "good.py"))
	require.NoError(t, err)
	assert.Empty(t, stdout)
	assert.Empty(t, stderr)
}

func TestCheck_VerboseSummary(t *testing.T) {
	projectDir(t)

	t.Run("clean run", func(t *testing.T) {
		_, stderr, err := runCLI(t, "", "check", "--verbose", filepath.Join("pkg", "good.py"))
		require.NoError(t, err)
		assert.Contains(t, stderr, "[DONE] 1 file, 0 problems in 0 files")
	})

	t.Run("run with problems", func(t *testing.T) {
		_, stderr, err := runCLI(t, "", "check", "--verbose", "pkg")
		assert.Equal(t, exitFindings, exitCode(t, err))
		assert.Contains(t, stderr, "[INFO] 2 files, 7 problems in 1 file")
	})
}

func TestCheck_ExplicitTestFileIsChecked(t *testing.T) {
	projectDir(t)

	stdout, _, err := runCLI(t, "", "check", filepath.Join("pkg", "test_helpers.py"))
	assert.Equal(t, exitFindings, exitCode(t, err))
	assert.Contains(t, stdout, "S009 Function name 'TestHelper' should use snake_case")
}

func TestCheck_JSON(t *testing.T) {
	projectDir(t)

	stdout, _, err := runCLI(t, "", "check", "--format", "json", "pkg")
	assert.Equal(t, exitFindings, exitCode(t, err))

	var entries []struct {
		File        string `json:"file"`
		Diagnostics []struct {
			Line int    `json:"line"`
			Code string `json:"code"`
		} `json:"diagnostics"`
	}
	require.NoError(t, json.Unmarshal([]byte(stdout), &entries))
	require.Len(t, entries, 2)
	assert.Equal(t, filepath.Join("pkg", "bad.py"), entries[0].File)
	assert.Len(t, entries[0].Diagnostics, 7)
	assert.Equal(t, filepath.Join("pkg", "good.py"), entries[1].File)
	assert.Empty(t, entries[1].Diagnostics)
}

func TestCheck_Stdin(t *testing.T) {
	projectDir(t)

	stdout, _, err := runCLI(t, "x = 1;\n", "check", "--stdin-name", "snippet.py", "-")
	assert.Equal(t, exitFindings, exitCode(t, err))
	assert.Equal(t, "snippet.py: Line 1: S003 Unnecessary semicolon after a statement\n", stdout)
}

func TestCheck_ConfigFile(t *testing.T) {
	dir := projectDir(t)
	cfg := config.Default()
	cfg.Check.Exclude = append(cfg.Check.Exclude, "pkg/bad.py")
	require.NoError(t, config.Save(filepath.Join(dir, config.FileName), cfg))

	stdout, _, err := runCLI(t, "", "check")
	require.NoError(t, err)
	assert.Empty(t, stdout)
}

func TestCheck_FlagOverridesConfig(t *testing.T) {
	dir := projectDir(t)
	cfg := config.Default()
	cfg.Check.Format = config.FormatJSON
	require.NoError(t, config.Save(filepath.Join(dir, config.FileName), cfg))

	stdout, _, err := runCLI(t, "", "check", "--format", "text", "pkg")
	assert.Equal(t, exitFindings, exitCode(t, err))
	assert.Equal(t, badReport, stdout)
}

func TestCheck_InvalidFormat(t *testing.T) {
	projectDir(t)

	_, _, err := runCLI(t, "", "check", "--format", "xml")
	assert.ErrorIs(t, err, config.ErrInvalid)
}

func TestCheck_ChangedRejectsPaths(t *testing.T) {
	projectDir(t)

	_, _, err := runCLI(t, "", "check", "--changed", "pkg")
	assert.ErrorContains(t, err, "--changed does not take paths")
}

func TestRules(t *testing.T) {
	stdout, _, err := runCLI(t, "", "rules")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(stdout), "\n")
	require.Len(t, lines, 13)
	assert.True(t, strings.HasPrefix(lines[0], "CODE"))
	var codes []string
	for _, line := range lines[1:] {
		codes = append(codes, strings.Fields(line)[0])
	}
	assert.Equal(t, []string{
		"S001", "S002", "S003", "S004", "S005", "S007", "S008",
		"S006", "S009", "S010", "S011", "S012",
	}, codes)
}

func TestRules_JSON(t *testing.T) {
	stdout, _, err := runCLI(t, "", "rules", "--json")
	require.NoError(t, err)

	var items []map[string]string
	require.NoError(t, json.Unmarshal([]byte(stdout), &items))
	require.Len(t, items, 12)
	assert.Equal(t, "S006", items[7]["code"])
	assert.Equal(t, "file", items[7]["kind"])
}

func TestVersion(t *testing.T) {
	SetVersion("1.2.3")
	t.Cleanup(func() { SetVersion("dev") })

	stdout, _, err := runCLI(t, "", "version")
	require.NoError(t, err)
	assert.Equal(t, "pepcheck version 1.2.3\n", stdout)
}

func TestInit(t *testing.T) {
	t.Setenv("GIT_CEILING_DIRECTORIES", os.TempDir())
	dir := projectDir(t)
	path := filepath.Join(".", config.FileName)

	_, _, err := runCLI(t, "", "init", "--yes")
	require.NoError(t, err)

	cfg, err := config.Load(filepath.Join(dir, config.FileName))
	require.NoError(t, err)
	assert.Empty(t, cfg.Check.Include)
	assert.Equal(t, config.Default().Check.Exclude, cfg.Check.Exclude)
	assert.Equal(t, config.FormatText, cfg.Check.Format)
	assert.Equal(t, config.ColorAuto, cfg.Check.Color)

	t.Run("existing file without force", func(t *testing.T) {
		_, _, err := runCLI(t, "", "init", "--yes")
		assert.Equal(t, exitFindings, exitCode(t, err))
	})

	t.Run("force overwrites", func(t *testing.T) {
		require.NoError(t, os.WriteFile(path, []byte("[check]\nformat = \"json\"\n"), 0o644))
		_, _, err := runCLI(t, "", "init", "--yes", "--force")
		require.NoError(t, err)
		cfg, err := config.Load(path)
		require.NoError(t, err)
		assert.Equal(t, config.FormatText, cfg.Check.Format)
	})
}

func TestSplitList(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"", nil},
		{"src/**", []string{"src/**"}},
		{" src/** , lib/**,, ", []string{"src/**", "lib/**"}},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, splitList(tt.in))
		})
	}
}
