// Package config manages application configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// HomeEnv names the environment variable overriding the base directory that
// relative input and output paths are resolved against.
const HomeEnv = "PLAY2HTML_HOME"

// Config represents the application configuration.
type Config struct {
	Input   InputConfig   `yaml:"input"`
	Output  OutputConfig  `yaml:"output"`
	Render  RenderConfig  `yaml:"render"`
	Workers int           `yaml:"workers"`
	Catalog CatalogConfig `yaml:"catalog"`
	Logging LoggingConfig `yaml:"logging"`
}

// InputConfig selects the source plays.
type InputConfig struct {
	Pattern string `yaml:"pattern"` // glob or directory
	Strict  bool   `yaml:"strict"`  // fail on elements with missing text
}

// OutputConfig controls where and how plays are written.
type OutputConfig struct {
	Dir    string `yaml:"dir"`
	Format string `yaml:"format"` // renderer name
	Index  bool   `yaml:"index"`  // write index.html next to the plays
}

// RenderConfig contains renderer options.
type RenderConfig struct {
	Stylesheet string `yaml:"stylesheet,omitempty"`
	PageSize   string `yaml:"page_size"`
	IndexTitle string `yaml:"index_title"`
}

// CatalogConfig configures the SQLite catalog of converted plays.
type CatalogConfig struct {
	Path string `yaml:"path,omitempty"` // empty disables the catalog
}

// LoggingConfig configures log output.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"` // console or json
	File   string `yaml:"file,omitempty"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Input: InputConfig{
			Pattern: "src/preprocessed/*.xml",
		},
		Output: OutputConfig{
			Dir:    "public",
			Format: "html",
			Index:  true,
		},
		Render: RenderConfig{
			PageSize:   "A4",
			IndexTitle: "Plays",
		},
		Workers: 4,
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// Keys lists the keys accepted by Set.
var Keys = []string{
	"input.pattern",
	"input.strict",
	"output.dir",
	"output.format",
	"output.index",
	"render.stylesheet",
	"render.page_size",
	"render.index_title",
	"workers",
	"catalog.path",
	"logging.level",
	"logging.format",
	"logging.file",
}

// Set updates a single configuration value addressed by a dotted key.
func (c *Config) Set(key, value string) error {
	switch key {
	case "input.pattern":
		c.Input.Pattern = value
	case "input.strict":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid boolean for %s: %s", key, value)
		}
		c.Input.Strict = b
	case "output.dir":
		c.Output.Dir = value
	case "output.format":
		c.Output.Format = strings.ToLower(value)
	case "output.index":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid boolean for %s: %s", key, value)
		}
		c.Output.Index = b
	case "render.stylesheet":
		c.Render.Stylesheet = value
	case "render.page_size":
		c.Render.PageSize = value
	case "render.index_title":
		c.Render.IndexTitle = value
	case "workers":
		n, err := strconv.Atoi(value)
		if err != nil || n < 1 {
			return fmt.Errorf("workers must be a positive integer: %s", value)
		}
		c.Workers = n
	case "catalog.path":
		c.Catalog.Path = value
	case "logging.level":
		c.Logging.Level = strings.ToLower(value)
	case "logging.format":
		v := strings.ToLower(value)
		if v != "console" && v != "json" {
			return fmt.Errorf("logging format must be console or json: %s", value)
		}
		c.Logging.Format = v
	case "logging.file":
		c.Logging.File = value
	default:
		return fmt.Errorf("unknown config key: %s", key)
	}
	return nil
}

// ApplyEnv overrides configuration values from PLAY2HTML_* environment variables.
func (c *Config) ApplyEnv() {
	c.Input.Pattern = GetEnvOrDefault("PLAY2HTML_INPUT", c.Input.Pattern)
	c.Output.Dir = GetEnvOrDefault("PLAY2HTML_OUTPUT_DIR", c.Output.Dir)
	c.Output.Format = GetEnvOrDefault("PLAY2HTML_FORMAT", c.Output.Format)
	c.Workers = GetEnvInt("PLAY2HTML_WORKERS", c.Workers)
	c.Catalog.Path = GetEnvOrDefault("PLAY2HTML_CATALOG", c.Catalog.Path)
	c.Logging.Level = GetEnvOrDefault("PLAY2HTML_LOG_LEVEL", c.Logging.Level)
	c.Logging.Format = GetEnvOrDefault("PLAY2HTML_LOG_FORMAT", c.Logging.Format)
	c.Logging.File = GetEnvOrDefault("PLAY2HTML_LOG_FILE", c.Logging.File)
	if GetEnvBool("PLAY2HTML_STRICT") {
		c.Input.Strict = true
	}
}

// ResolvePaths makes the relative input, output and catalog paths absolute
// against base.
func (c *Config) ResolvePaths(base string) {
	c.Input.Pattern = resolve(base, c.Input.Pattern)
	c.Output.Dir = resolve(base, c.Output.Dir)
	c.Catalog.Path = resolve(base, c.Catalog.Path)
}

func resolve(base, path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(base, path)
}

// BaseDir returns PLAY2HTML_HOME when set, otherwise the working directory.
func BaseDir() (string, error) {
	if home := os.Getenv(HomeEnv); home != "" {
		return filepath.Abs(home)
	}
	wd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("failed to get working directory: %w", err)
	}
	return wd, nil
}
