// Package config loads rift project configuration from TOML or YAML files
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// ErrInvalidConfig is returned for configuration that fails to decode or validate
var ErrInvalidConfig = errors.New("invalid configuration")

// FileNames are the configuration file names Discover looks for, in order
var FileNames = []string{"rift.toml", "rift.yaml", "rift.yml"}

// Format represents the configuration file format
type Format int

const (
	FormatTOML Format = iota
	FormatYAML
)

func (f Format) String() string {
	switch f {
	case FormatTOML:
		return "toml"
	case FormatYAML:
		return "yaml"
	default:
		return "unknown"
	}
}

// Color modes for diagnostics output
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// Config is the complete rift configuration
type Config struct {
	Parser ParserConfig `toml:"parser" yaml:"parser"`
	Output OutputConfig `toml:"output" yaml:"output"`
}

// ParserConfig holds parser limits
type ParserConfig struct {
	MaxDepth  int `toml:"max_depth" yaml:"max_depth"`   // 0 = parser default, <0 = unlimited
	MaxErrors int `toml:"max_errors" yaml:"max_errors"` // 0 = unlimited
}

// OutputConfig controls how diagnostics are rendered
type OutputConfig struct {
	Color   string `toml:"color" yaml:"color"`
	Context int    `toml:"context" yaml:"context"` // source lines shown around an error
}

// Default returns the built-in configuration
func Default() Config {
	return Config{
		Output: OutputConfig{
			Color:   ColorAuto,
			Context: 1,
		},
	}
}

// DetectFormat determines the configuration format from file extension
func DetectFormat(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatTOML
	}
}

// Load reads the file at path on top of Default. Unknown keys are rejected.
func Load(path string) (Config, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}
	cfg, err := Parse(content, DetectFormat(path))
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes content on top of Default and validates the result
func Parse(content []byte, format Format) (Config, error) {
	cfg := Default()

	switch format {
	case FormatTOML:
		md, err := toml.Decode(string(content), &cfg)
		if err != nil {
			return Config{}, fmt.Errorf("%w: TOML parse error: %v", ErrInvalidConfig, err)
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return Config{}, fmt.Errorf("%w: unknown key %q", ErrInvalidConfig, undecoded[0].String())
		}
	case FormatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(content))
		dec.KnownFields(true)
		if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
			return Config{}, fmt.Errorf("%w: YAML parse error: %v", ErrInvalidConfig, err)
		}
	default:
		return Config{}, fmt.Errorf("%w: unsupported format %s", ErrInvalidConfig, format)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks field values
func (c Config) Validate() error {
	switch c.Output.Color {
	case ColorAuto, ColorAlways, ColorNever:
	default:
		return fmt.Errorf("%w: output.color must be auto, always or never, got %q", ErrInvalidConfig, c.Output.Color)
	}
	if c.Parser.MaxErrors < 0 {
		return fmt.Errorf("%w: parser.max_errors must not be negative", ErrInvalidConfig)
	}
	if c.Output.Context < 0 {
		return fmt.Errorf("%w: output.context must not be negative", ErrInvalidConfig)
	}
	return nil
}

// Discover walks from dir up to the filesystem root and returns the first
// configuration file found.
func Discover(dir string) (string, bool) {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return "", false
	}
	for {
		for _, name := range FileNames {
			candidate := filepath.Join(dir, name)
			if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
				return candidate, true
			}
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false
		}
		dir = parent
	}
}

// ApplyEnv overrides fields from RIFT_* environment variables. NO_COLOR
// forces color off.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	if v, ok := lookup("RIFT_MAX_DEPTH"); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%w: RIFT_MAX_DEPTH: %v", ErrInvalidConfig, err)
		}
		c.Parser.MaxDepth = n
	}
	if v, ok := lookup("RIFT_MAX_ERRORS"); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%w: RIFT_MAX_ERRORS: %v", ErrInvalidConfig, err)
		}
		c.Parser.MaxErrors = n
	}
	if v, ok := lookup("RIFT_COLOR"); ok {
		c.Output.Color = v
	}
	if _, ok := lookup("NO_COLOR"); ok {
		c.Output.Color = ColorNever
	}
	return c.Validate()
}
