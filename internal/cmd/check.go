package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/DevSymphony/pepcheck/internal/checker"
	"github.com/DevSymphony/pepcheck/internal/config"
	"github.com/DevSymphony/pepcheck/internal/engine/registry"
	"github.com/DevSymphony/pepcheck/internal/git"
	"github.com/DevSymphony/pepcheck/internal/report"
	"github.com/DevSymphony/pepcheck/internal/source"
	"github.com/DevSymphony/pepcheck/internal/ui"
)

var checkCmd = &cobra.Command{
	Use:   "check [paths...]",
	Short: "Check Python files against the style rules",
	Long: `Check Python files and directories (default: the current directory).

Directories are searched recursively for .py files, filtered by the include
and exclude globs of .pepcheck.toml. A single "-" reads source from stdin.

Exit status is 0 when every file is clean, 1 when any diagnostic or
unreadable file is reported, and 2 when the command itself fails.`,
	Example: `  pepcheck check
  pepcheck check src/ tools/build.py
  pepcheck check --changed --format json
  cat app.py | pepcheck check -`,
	RunE: runCheck,
}

var (
	checkFormat    string
	checkJobs      int
	checkChanged   bool
	checkNoColor   bool
	checkConfig    string
	checkStdinName string
)

func init() {
	checkCmd.Flags().StringVarP(&checkFormat, "format", "f", "", "output format (text|json); overrides the config file")
	checkCmd.Flags().IntVarP(&checkJobs, "jobs", "j", 0, "files checked in parallel (default from config, then CPU/2)")
	checkCmd.Flags().BoolVar(&checkChanged, "changed", false, "check only Python files with uncommitted git changes")
	checkCmd.Flags().BoolVar(&checkNoColor, "no-color", false, "disable coloured output")
	checkCmd.Flags().StringVarP(&checkConfig, "config", "c", "", "config file path (default: nearest "+config.FileName+")")
	checkCmd.Flags().StringVar(&checkStdinName, "stdin-name", "<stdin>", "file name reported for source read from stdin")
}

func runCheck(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	cfg, err := loadConfig(ctx, checkConfig)
	if err != nil {
		return err
	}
	if err := applyCheckFlags(cmd, cfg); err != nil {
		return err
	}

	stdout, stderr := cmd.OutOrStdout(), cmd.ErrOrStderr()
	colored := colorFor(cfg.Check.Color, stdout)
	ui.SetOutput(stderr, colorFor(cfg.Check.Color, stderr))

	engine, err := registry.NewDefaultEngine()
	if err != nil {
		return err
	}
	c := checker.New(engine, checker.WithJobs(cfg.Check.Jobs), checker.WithLogger(logger))

	var results []checker.Result
	if len(args) == 1 && args[0] == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return fmt.Errorf("failed to read stdin: %w", err)
		}
		results = []checker.Result{c.CheckLines(ctx, checkStdinName, source.SplitLines(string(data)))}
	} else {
		files, err := collectFiles(ctx, cfg, args)
		if err != nil {
			return err
		}
		if len(files) == 0 {
			ui.PrintWarn("No Python files to check")
			return nil
		}
		logger.Debug("files selected", "count", len(files), "config", cfg.Path)

		results, err = c.Check(ctx, files)
		if err != nil {
			return err
		}
	}

	var printer report.Printer
	switch cfg.Check.Format {
	case config.FormatJSON:
		printer = report.NewJSON(stdout)
	default:
		printer = report.NewText(stdout, stderr, colored)
	}
	if err := printer.Print(results); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}

	summary := report.Summarize(results)
	if verbose {
		if summary.Failed() {
			ui.PrintInfo(summary.String())
		} else {
			ui.PrintDone(summary.String())
		}
	}
	if summary.Failed() {
		return &exitError{code: exitFindings}
	}
	return nil
}

// loadConfig reads an explicit config file, or the nearest one between the
// working directory and the repository root.
func loadConfig(ctx context.Context, path string) (*config.Config, error) {
	if path != "" {
		return config.Load(path)
	}
	root, err := git.Repo{}.RepoRoot(ctx)
	if err != nil {
		// Outside a repository the walk goes up to the filesystem root
		root = ""
	}
	return config.Resolve(".", root)
}

// applyCheckFlags lets explicitly set flags override the config file.
func applyCheckFlags(cmd *cobra.Command, cfg *config.Config) error {
	flags := cmd.Flags()
	if flags.Changed("format") {
		cfg.Check.Format = checkFormat
	}
	if flags.Changed("jobs") {
		cfg.Check.Jobs = checkJobs
	}
	if checkNoColor {
		cfg.Check.Color = config.ColorNever
	}
	return cfg.Validate()
}

func colorFor(mode string, w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return mode == config.ColorAlways
	}
	return ui.ColorEnabled(mode, f)
}

// collectFiles expands args, or the changed files when --changed is set.
func collectFiles(ctx context.Context, cfg *config.Config, args []string) ([]string, error) {
	selector := cfg.Selector()

	if !checkChanged {
		if len(args) == 0 {
			args = []string{"."}
		}
		return source.Discover(args, selector)
	}

	if len(args) > 0 {
		return nil, fmt.Errorf("--changed does not take paths")
	}
	changed, err := git.Repo{}.ChangedFiles(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get git changes: %w", err)
	}

	base, err := selector.BaseDir()
	if err != nil {
		return nil, err
	}

	var files []string
	for _, path := range changed {
		if filepath.Ext(path) == source.Extension && selector.MatchesUnder(base, path) {
			files = append(files, path)
		}
	}
	return files, nil
}
