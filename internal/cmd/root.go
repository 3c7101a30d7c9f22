package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
)

// verbose is a global flag for verbose output
var verbose bool

// logger is configured from --verbose before any command runs.
var logger = slog.New(slog.DiscardHandler)

var rootCmd = &cobra.Command{
	Use:   "pepcheck",
	Short: "pepcheck - Python style checker",
	Long: `pepcheck checks Python source files against a fixed set of style rules.

Rules:
  - Line rules: line length, indentation, semicolons, comment spacing,
    TODO markers, keyword spacing and class naming
  - File rules: runs of blank lines
  - Syntax rules: function, argument and variable naming, mutable defaults

Syntax rules need a parseable file; when parsing fails they are skipped
and the other rules still report.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logger = newLogger(verbose)
		slog.SetDefault(logger)
	},
}

// exitError carries a process exit code without an error message.
type exitError struct {
	code int
}

func (e *exitError) Error() string {
	return fmt.Sprintf("exit status %d", e.code)
}

// Exit codes
const (
	exitFindings = 1 // diagnostics or unreadable files were reported
	exitFailure  = 2 // the command itself failed
)

func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		var exitErr *exitError
		if errors.As(err, &exitErr) {
			os.Exit(exitErr.code)
		}
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(exitFailure)
	}
}

func newLogger(verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")

	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(rulesCmd)
	rootCmd.AddCommand(initCmd)
	// Note: mcpCmd and versionCmd are registered in their own init()
}
