// Package config loads the project configuration file.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"github.com/BurntSushi/toml"

	"github.com/DevSymphony/pepcheck/internal/source"
)

// FileName is the project configuration file name.
const FileName = ".pepcheck.toml"

// Output formats
const (
	FormatText = "text"
	FormatJSON = "json"
)

// Colour modes
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// ErrInvalid is returned for a configuration value outside its allowed set.
var ErrInvalid = errors.New("invalid configuration")

type Config struct {
	Check CheckConfig `toml:"check"`

	// Path is the file the configuration was read from, empty for defaults
	Path string `toml:"-"`
}

type CheckConfig struct {
	Include []string `toml:"include"`
	Exclude []string `toml:"exclude"`
	Jobs    int      `toml:"jobs,omitempty"` // 0 selects the checker default
	Format  string   `toml:"format"`
	Color   string   `toml:"color"`
}

// Default returns the configuration used when no file is found.
func Default() *Config {
	return &Config{
		Check: CheckConfig{
			Exclude: slices.Clone(source.DefaultExclude),
			Format:  FormatText,
			Color:   ColorAuto,
		},
	}
}

// Selector returns the file selector described by the configuration.
// Patterns are relative to the directory holding the config file.
func (c *Config) Selector() *source.Selector {
	sel := &source.Selector{
		Include: slices.Clone(c.Check.Include),
		Exclude: slices.Clone(c.Check.Exclude),
	}
	if c.Path != "" {
		sel.Root = filepath.Dir(c.Path)
	}
	return sel
}

// Validate checks enumerated values and glob syntax.
func (c *Config) Validate() error {
	switch c.Check.Format {
	case FormatText, FormatJSON:
	default:
		return fmt.Errorf("%w: format %q (want %s or %s)", ErrInvalid, c.Check.Format, FormatText, FormatJSON)
	}
	switch c.Check.Color {
	case ColorAuto, ColorAlways, ColorNever:
	default:
		return fmt.Errorf("%w: color %q (want %s, %s or %s)", ErrInvalid, c.Check.Color, ColorAuto, ColorAlways, ColorNever)
	}
	if c.Check.Jobs < 0 {
		return fmt.Errorf("%w: jobs must not be negative, got %d", ErrInvalid, c.Check.Jobs)
	}
	if err := c.Selector().Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	return nil
}

// Load reads a configuration file. Keys the file does not define keep
// their default values.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	meta, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("%s: %w: unknown key %q", path, ErrInvalid, undecoded[0].String())
	}

	def := Default()
	if !meta.IsDefined("check", "exclude") {
		cfg.Check.Exclude = def.Check.Exclude
	}
	if !meta.IsDefined("check", "format") {
		cfg.Check.Format = def.Check.Format
	}
	if !meta.IsDefined("check", "color") {
		cfg.Check.Color = def.Check.Color
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	cfg.Path = path
	return cfg, nil
}

// Find walks up from startDir looking for FileName. The walk does not go
// above stopDir when stopDir is non-empty.
func Find(startDir, stopDir string) (path string, ok bool, err error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	if stopDir != "" {
		if stopDir, err = filepath.Abs(stopDir); err != nil {
			return "", false, fmt.Errorf("failed to resolve stop directory: %w", err)
		}
	}
	for {
		candidate := filepath.Join(dir, FileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir || dir == stopDir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

// Resolve returns the configuration found from startDir, or Default.
func Resolve(startDir, stopDir string) (*Config, error) {
	path, ok, err := Find(startDir, stopDir)
	if err != nil {
		return nil, err
	}
	if !ok {
		return Default(), nil
	}
	return Load(path)
}

// Save writes cfg to path.
func Save(path string, cfg *Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
