package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/DevSymphony/pepcheck/internal/config"
	"github.com/DevSymphony/pepcheck/internal/git"
	"github.com/DevSymphony/pepcheck/internal/ui"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a .pepcheck.toml for the current project",
	Long: `Create .pepcheck.toml at the repository root (or the current directory
outside a repository).

The file sets the include and exclude globs, output format, colour mode and
parallelism used by 'pepcheck check'. Without --yes the values are asked
for interactively.`,
	Args: cobra.NoArgs,
	RunE: runInit,
}

var (
	initForce bool
	initYes   bool
)

func init() {
	initCmd.Flags().BoolVarP(&initForce, "force", "f", false, "overwrite an existing config file")
	initCmd.Flags().BoolVarP(&initYes, "yes", "y", false, "accept defaults without prompting")
}

var errInitCancelled = errors.New("init cancelled")

func runInit(cmd *cobra.Command, args []string) error {
	ui.SetOutput(cmd.OutOrStdout(), colorFor(config.ColorAuto, cmd.OutOrStdout()))

	dir, err := git.Repo{}.RepoRoot(cmd.Context())
	if err != nil {
		dir = "."
	}
	path := filepath.Join(dir, config.FileName)

	if _, err := os.Stat(path); err == nil && !initForce {
		if initYes || !ui.Confirm(fmt.Sprintf("%s already exists. Overwrite", path)) {
			ui.PrintWarn(fmt.Sprintf("%s already exists", path))
			ui.PrintIndent("Use --force flag to overwrite")
			return &exitError{code: exitFindings}
		}
	}

	cfg := config.Default()
	if !initYes {
		if err := promptConfig(cfg); err != nil {
			if errors.Is(err, errInitCancelled) {
				ui.PrintWarn("Setup cancelled")
				return nil
			}
			return err
		}
	}

	if err := config.Save(path, cfg); err != nil {
		return err
	}
	ui.PrintOK(fmt.Sprintf("Created %s", path))
	ui.PrintIndent("Run 'pepcheck check' to check your project")
	return nil
}

// promptConfig fills cfg from interactive answers.
func promptConfig(cfg *config.Config) error {
	ui.PrintTitle("init", "Configure pepcheck")

	formats := []string{config.FormatText, config.FormatJSON}
	index, err := ui.Select("Output format", formats)
	if err != nil {
		return errInitCancelled
	}
	cfg.Check.Format = formats[index]

	colorMode, err := ui.Choose("Coloured output:", []string{config.ColorAuto, config.ColorAlways, config.ColorNever}, cfg.Check.Color)
	if err != nil {
		return errInitCancelled
	}
	cfg.Check.Color = colorMode

	include, err := ui.Input("Include globs (comma separated, empty for all files):", "")
	if err != nil {
		return errInitCancelled
	}
	cfg.Check.Include = splitList(include)

	return cfg.Validate()
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
