package cmd

import (
	"github.com/spf13/cobra"

	"github.com/DevSymphony/pepcheck/internal/checker"
	"github.com/DevSymphony/pepcheck/internal/engine/registry"
	"github.com/DevSymphony/pepcheck/internal/mcp"
)

var mcpConfig string

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start MCP server to integrate with LLM tools",
	Long: `Start Model Context Protocol (MCP) server.
LLM-based coding tools can check Python code through stdio.

Tools provided by MCP server:
- check_code: Check Python source text or a file path
- check_changes: Check Python files with uncommitted git changes
- list_rules: List the style rules

Logs go to stderr; stdout carries only protocol messages.`,
	Example: `  pepcheck mcp
  pepcheck mcp --config .pepcheck.toml`,
	Args: cobra.NoArgs,
	RunE: runMCP,
}

func init() {
	rootCmd.AddCommand(mcpCmd)

	mcpCmd.Flags().StringVarP(&mcpConfig, "config", "c", "", "config file path (default: nearest .pepcheck.toml)")
}

func runMCP(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	cfg, err := loadConfig(ctx, mcpConfig)
	if err != nil {
		return err
	}

	engine, err := registry.NewDefaultEngine()
	if err != nil {
		return err
	}

	server := mcp.NewServer(
		checker.New(engine, checker.WithJobs(cfg.Check.Jobs), checker.WithLogger(logger)),
		engine.Rules(),
		mcp.Options{
			Selector: cfg.Selector(),
			Version:  version,
			Logger:   logger,
		},
	)
	return server.Run(ctx)
}
