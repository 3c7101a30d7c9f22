// Package mcp exposes the checker as Model Context Protocol tools over stdio.
package mcp

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/DevSymphony/pepcheck/internal/checker"
	"github.com/DevSymphony/pepcheck/internal/engine/core"
	"github.com/DevSymphony/pepcheck/internal/git"
	"github.com/DevSymphony/pepcheck/internal/report"
	"github.com/DevSymphony/pepcheck/internal/source"
)

// ChangeLister reports the files with uncommitted changes.
type ChangeLister interface {
	ChangedFiles(ctx context.Context) ([]string, error)
}

// Server is a MCP (Model Context Protocol) server.
// It communicates via JSON-RPC over stdio.
type Server struct {
	checker  *checker.Checker
	rules    []*core.Rule
	changes  ChangeLister
	selector *source.Selector
	version  string
	logger   *slog.Logger
}

// Options configures optional Server collaborators.
type Options struct {
	Changes  ChangeLister     // defaults to the git repository in the working directory
	Selector *source.Selector // filters changed files
	Version  string
	Logger   *slog.Logger
}

// NewServer creates a new MCP server instance.
func NewServer(c *checker.Checker, rules []*core.Rule, opts Options) *Server {
	s := &Server{
		checker:  c,
		rules:    rules,
		changes:  opts.Changes,
		selector: opts.Selector,
		version:  opts.Version,
		logger:   opts.Logger,
	}
	if s.changes == nil {
		s.changes = git.Repo{}
	}
	if s.version == "" {
		s.version = "dev"
	}
	if s.logger == nil {
		s.logger = slog.New(slog.DiscardHandler)
	}
	return s
}

// Run serves requests on stdin/stdout until ctx is done or the client
// disconnects.
func (s *Server) Run(ctx context.Context) error {
	s.logger.Info("mcp server starting", "rules", len(s.rules), "version", s.version)
	return s.SDKServer().Run(ctx, &sdkmcp.StdioTransport{})
}

// CheckCodeInput represents the input schema for the check_code tool.
type CheckCodeInput struct {
	Source string `json:"source,omitempty" jsonschema:"Python source text to check. Takes precedence over path."`
	Path   string `json:"path,omitempty" jsonschema:"Path of a Python file to check when source is empty."`
	Name   string `json:"name,omitempty" jsonschema:"Display name for source text (default <source>)."`
}

// CheckChangesInput represents the input schema for the check_changes tool.
type CheckChangesInput struct{}

// ListRulesInput represents the input schema for the list_rules tool.
type ListRulesInput struct{}

// DiagnosticItem is one reported problem.
type DiagnosticItem struct {
	Line    int    `json:"line"` // 1-based
	Code    string `json:"code"`
	Message string `json:"message"`
}

// FileItem is the outcome for one file.
type FileItem struct {
	File        string           `json:"file"`
	Diagnostics []DiagnosticItem `json:"diagnostics"`
	SyntaxError string           `json:"syntax_error,omitempty"`
	Error       string           `json:"error,omitempty"`
}

// CheckOutput is returned by check_code and check_changes.
type CheckOutput struct {
	Files   []FileItem `json:"files"`
	Summary string     `json:"summary"`
	Clean   bool       `json:"clean"`
}

// RuleItem describes one rule.
type RuleItem struct {
	Code    string `json:"code"`
	Name    string `json:"name"`
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

// ListRulesOutput is returned by list_rules.
type ListRulesOutput struct {
	Rules []RuleItem `json:"rules"`
}

// SDKServer builds the go-sdk server with every tool registered.
func (s *Server) SDKServer() *sdkmcp.Server {
	server := sdkmcp.NewServer(&sdkmcp.Implementation{
		Name:    "pepcheck",
		Version: s.version,
	}, nil)

	// Tool: check_code
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "check_code",
		Description: "Check Python source text, or a Python file by path, against the style rules. Returns one entry per diagnostic with its 1-based line.",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, input CheckCodeInput) (*sdkmcp.CallToolResult, CheckOutput, error) {
		out, err := s.handleCheckCode(ctx, input)
		if err != nil {
			return nil, CheckOutput{}, err
		}
		return textResult(formatCheck(out)), out, nil
	})

	// Tool: check_changes
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "check_changes",
		Description: "Check every Python file with uncommitted git changes (staged, unstaged and untracked).",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, input CheckChangesInput) (*sdkmcp.CallToolResult, CheckOutput, error) {
		out, err := s.handleCheckChanges(ctx)
		if err != nil {
			return nil, CheckOutput{}, err
		}
		return textResult(formatCheck(out)), out, nil
	})

	// Tool: list_rules
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "list_rules",
		Description: "List the style rules in the order they are evaluated.",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, input ListRulesInput) (*sdkmcp.CallToolResult, ListRulesOutput, error) {
		out := s.handleListRules()
		return textResult(formatRules(out)), out, nil
	})

	return server
}

func textResult(text string) *sdkmcp.CallToolResult {
	return &sdkmcp.CallToolResult{
		Content: []sdkmcp.Content{&sdkmcp.TextContent{Text: text}},
	}
}

var errNoInput = errors.New("either source or path is required")

func (s *Server) handleCheckCode(ctx context.Context, input CheckCodeInput) (CheckOutput, error) {
	var res checker.Result
	switch {
	case input.Source != "":
		name := input.Name
		if name == "" {
			name = "<source>"
		}
		res = s.checker.CheckLines(ctx, name, source.SplitLines(input.Source))
	case input.Path != "":
		res = s.checker.CheckFile(ctx, input.Path)
	default:
		return CheckOutput{}, errNoInput
	}
	if res.Err != nil && ctx.Err() != nil {
		return CheckOutput{}, ctx.Err()
	}
	return buildOutput([]checker.Result{res}), nil
}

func (s *Server) handleCheckChanges(ctx context.Context) (CheckOutput, error) {
	changed, err := s.changes.ChangedFiles(ctx)
	if err != nil {
		return CheckOutput{}, fmt.Errorf("failed to get git changes: %w", err)
	}

	base, err := s.selector.BaseDir()
	if err != nil {
		return CheckOutput{}, err
	}

	var files []string
	for _, path := range changed {
		if filepath.Ext(path) == source.Extension && s.selector.MatchesUnder(base, path) {
			files = append(files, path)
		}
	}
	s.logger.Debug("checking changed files", "changed", len(changed), "python", len(files))

	results, err := s.checker.Check(ctx, files)
	if err != nil {
		return CheckOutput{}, err
	}
	return buildOutput(results), nil
}

func (s *Server) handleListRules() ListRulesOutput {
	out := ListRulesOutput{Rules: make([]RuleItem, 0, len(s.rules))}
	for _, r := range s.rules {
		out.Rules = append(out.Rules, RuleItem{
			Code:    r.Code,
			Name:    r.Name,
			Kind:    r.Kind.String(),
			Message: r.Message,
		})
	}
	return out
}

func buildOutput(results []checker.Result) CheckOutput {
	summary := report.Summarize(results)
	out := CheckOutput{
		Files:   make([]FileItem, 0, len(results)),
		Summary: summary.String(),
		Clean:   !summary.Failed(),
	}
	for _, r := range results {
		item := FileItem{File: r.Path, Diagnostics: []DiagnosticItem{}}
		if r.Err != nil {
			item.Error = r.Err.Error()
			out.Files = append(out.Files, item)
			continue
		}
		for _, d := range r.Report.Diagnostics() {
			item.Diagnostics = append(item.Diagnostics, DiagnosticItem{
				Line:    d.Position(),
				Code:    d.Code,
				Message: d.Message,
			})
		}
		if err := r.Report.SyntaxError(); err != nil {
			item.SyntaxError = err.Error()
		}
		out.Files = append(out.Files, item)
	}
	return out
}

func formatCheck(out CheckOutput) string {
	var b strings.Builder
	if len(out.Files) == 0 {
		b.WriteString("No Python files to check.\n")
	}
	for _, f := range out.Files {
		if f.Error != "" {
			fmt.Fprintf(&b, "%s: error: %s\n", f.File, f.Error)
			continue
		}
		for _, d := range f.Diagnostics {
			fmt.Fprintf(&b, "%s: Line %d: %s %s\n", f.File, d.Line, d.Code, d.Message)
		}
		if f.SyntaxError != "" {
			fmt.Fprintf(&b, "%s: syntax rules skipped: %s\n", f.File, f.SyntaxError)
		}
	}
	b.WriteString(out.Summary)
	return b.String()
}

func formatRules(out ListRulesOutput) string {
	var b strings.Builder
	for _, r := range out.Rules {
		fmt.Fprintf(&b, "%s %-22s %-6s %s\n", r.Code, r.Name, r.Kind, r.Message)
	}
	return b.String()
}
