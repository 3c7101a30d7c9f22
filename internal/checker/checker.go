// Package checker runs the rule engine over many files concurrently.
package checker

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"
	"slices"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/DevSymphony/pepcheck/internal/engine/core"
	"github.com/DevSymphony/pepcheck/internal/source"
)

// Analyzer produces the report for one file's lines.
// *core.Engine implements it.
type Analyzer interface {
	Analyze(ctx context.Context, lines []string) (*core.FileReport, error)
}

// Result is the outcome of checking one file.
// Exactly one of Report and Err is set.
type Result struct {
	Path     string
	Report   *core.FileReport
	Err      error
	Duration time.Duration
}

// Failed reports whether the file has diagnostics or could not be checked.
func (r Result) Failed() bool {
	return r.Err != nil || !r.Report.Clean()
}

// Checker checks files with a shared Analyzer.
type Checker struct {
	analyzer Analyzer
	jobs     int
	logger   *slog.Logger
}

// Option configures a Checker.
type Option func(*Checker)

// WithJobs sets the number of files analysed concurrently.
// Values below 1 select DefaultConcurrency.
func WithJobs(jobs int) Option {
	return func(c *Checker) {
		if jobs > 0 {
			c.jobs = jobs
		}
	}
}

// WithLogger sets the logger used for per-file progress.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Checker) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// New creates a checker.
func New(analyzer Analyzer, opts ...Option) *Checker {
	c := &Checker{
		analyzer: analyzer,
		jobs:     DefaultConcurrency(),
		logger:   slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// DefaultConcurrency returns the default concurrency level (CPU/2, min 1, max 8)
func DefaultConcurrency() int {
	concurrency := runtime.NumCPU() / 2
	if concurrency < 1 {
		concurrency = 1
	}
	if concurrency > 8 {
		concurrency = 8
	}
	return concurrency
}

// Check loads and analyses every file and returns one Result per file,
// sorted by path. A failure in one file is recorded on its Result and never
// stops the others; the returned error is non-nil only when ctx ends
// before all files are done.
func (c *Checker) Check(ctx context.Context, files []string) ([]Result, error) {
	results := make([]Result, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(c.jobs, max(len(files), 1)))

	for i, path := range files {
		g.Go(func() error {
			// Each goroutine owns results[i]; no lock needed.
			if err := gctx.Err(); err != nil {
				results[i] = Result{Path: path, Err: err}
				return nil
			}
			results[i] = c.checkFile(gctx, path)
			return nil
		})
	}

	_ = g.Wait()

	slices.SortStableFunc(results, func(a, b Result) int {
		return strings.Compare(a.Path, b.Path)
	})

	c.logger.Debug("check finished", "files", len(files), "jobs", c.jobs)
	return results, ctx.Err()
}

// CheckFile loads and analyses a single file.
func (c *Checker) CheckFile(ctx context.Context, path string) Result {
	return c.checkFile(ctx, path)
}

// CheckLines analyses already-loaded lines under a display name.
func (c *Checker) CheckLines(ctx context.Context, name string, lines []string) Result {
	start := time.Now()
	report, err := c.analyze(ctx, lines)
	return Result{Path: name, Report: report, Err: err, Duration: time.Since(start)}
}

func (c *Checker) checkFile(ctx context.Context, path string) Result {
	start := time.Now()

	f, err := source.Load(path)
	if err != nil {
		c.logger.Warn("cannot read file", "path", path, "error", err)
		return Result{Path: path, Err: err, Duration: time.Since(start)}
	}

	report, err := c.analyze(ctx, f.Lines)
	res := Result{Path: path, Report: report, Err: err, Duration: time.Since(start)}

	switch {
	case err != nil:
		c.logger.Warn("analysis failed", "path", path, "error", err)
	case report.SyntaxSkipped():
		c.logger.Info("syntax rules skipped", "path", path, "reason", report.SyntaxError())
	default:
		c.logger.Debug("checked file", "path", path, "lines", report.Len(),
			"diagnostics", report.Count(), "duration", res.Duration)
	}
	return res
}

// analyze isolates a panicking rule to the file being analysed.
func (c *Checker) analyze(ctx context.Context, lines []string) (report *core.FileReport, err error) {
	defer func() {
		if r := recover(); r != nil {
			report = nil
			err = fmt.Errorf("analysis panicked: %v", r)
		}
	}()
	return c.analyzer.Analyze(ctx, lines)
}
