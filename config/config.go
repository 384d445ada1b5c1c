/*
Package config holds the settings of a conversion run: syntaxes, the
transformations to apply and their options, and settings of the HTTP server.

Configuration files are YAML:

	input: markdown
	output: xhtml
	transformations: [macro, linkcheck]
	macros:
	  enabled: [toc, footnote]
	  strict: false
	toc:
	  depth: 3
	linkcheck:
	  strict: true
	trace: info

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/npillmayer/blockdom/syntax"
	"gopkg.in/yaml.v3"
)

// ErrInvalid is the error class of all validation errors.
var ErrInvalid = errors.New("invalid configuration")

// Names of transformations and macros known to the engine.
var (
	Transformations = []string{"macro", "linkcheck"}
	Macros          = []string{"toc", "footnote"}
	TraceLevels     = []string{"debug", "info", "error"}
)

// Config is the complete configuration.
type Config struct {
	Input           string          `yaml:"input"`
	Output          string          `yaml:"output"`
	Transformations []string        `yaml:"transformations"`
	Macros          MacroConfig     `yaml:"macros"`
	Toc             TocConfig       `yaml:"toc"`
	LinkCheck       LinkCheckConfig `yaml:"linkcheck"`
	Render          RenderConfig    `yaml:"render"`
	Server          ServerConfig    `yaml:"server"`
	Trace           string          `yaml:"trace"`
}

// MacroConfig configures macro execution.
type MacroConfig struct {
	Enabled []string `yaml:"enabled"`
	Strict  bool     `yaml:"strict"`
}

// TocConfig configures the toc macro.
type TocConfig struct {
	Depth int `yaml:"depth"`
}

// LinkCheckConfig configures link checking.
type LinkCheckConfig struct {
	Strict  bool     `yaml:"strict"`
	Schemes []string `yaml:"schemes"`
}

// RenderConfig holds options of renderers.
type RenderConfig struct {
	Width  int    `yaml:"width"`  // plain text line width, 0 for no wrapping
	Indent string `yaml:"indent"` // XML indentation
}

// ServerConfig configures the HTTP server.
type ServerConfig struct {
	Addr    string `yaml:"addr"`
	MaxBody int64  `yaml:"max_body"` // bytes
}

// Default returns a configuration converting Markdown to XHTML, with all
// macros enabled.
func Default() *Config {
	return &Config{
		Input:           syntax.Markdown,
		Output:          syntax.XHTML,
		Transformations: []string{"macro", "linkcheck"},
		Macros:          MacroConfig{Enabled: []string{"toc", "footnote"}},
		Toc:             TocConfig{Depth: 6},
		Render:          RenderConfig{Indent: "  "},
		Server:          ServerConfig{Addr: ":8080", MaxBody: 4 << 20},
		Trace:           "error",
	}
}

// Load reads a configuration file. Settings missing from the file keep their
// default values.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	return Parse(data)
}

// Parse reads a configuration from YAML, on top of the defaults, and
// validates it.
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the configuration and normalizes syntax names.
func (cfg *Config) Validate() error {
	cfg.Input = syntax.Normalize(cfg.Input)
	cfg.Output = syntax.Normalize(cfg.Output)
	if !oneOf(cfg.Input, syntax.Markdown, syntax.XHTML, syntax.XML) {
		return fmt.Errorf("%w: no parser for input syntax %q", ErrInvalid, cfg.Input)
	}
	if !oneOf(cfg.Output, syntax.Markdown, syntax.XHTML, syntax.XML, syntax.Plain) {
		return fmt.Errorf("%w: no renderer for output syntax %q", ErrInvalid, cfg.Output)
	}
	for _, t := range cfg.Transformations {
		if !oneOf(t, Transformations...) {
			return fmt.Errorf("%w: unknown transformation %q", ErrInvalid, t)
		}
	}
	for _, m := range cfg.Macros.Enabled {
		if !oneOf(m, Macros...) {
			return fmt.Errorf("%w: unknown macro %q", ErrInvalid, m)
		}
	}
	if cfg.Toc.Depth < 0 {
		return fmt.Errorf("%w: toc depth must not be negative", ErrInvalid)
	}
	if cfg.Render.Width < 0 {
		return fmt.Errorf("%w: render width must not be negative", ErrInvalid)
	}
	cfg.Trace = strings.ToLower(cfg.Trace)
	if cfg.Trace != "" && !oneOf(cfg.Trace, TraceLevels...) {
		return fmt.Errorf("%w: unknown trace level %q", ErrInvalid, cfg.Trace)
	}
	return nil
}

// Enabled tells if a transformation is switched on.
func (cfg *Config) Enabled(transformation string) bool {
	return oneOf(transformation, cfg.Transformations...)
}

func oneOf(s string, set ...string) bool {
	for _, x := range set {
		if s == x {
			return true
		}
	}
	return false
}
