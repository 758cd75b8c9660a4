// Package config loads settings for the EPS tools from .env, a YAML or HJSON
// file, and environment overrides, in that order.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	hjson "github.com/hjson/hjson-go/v4"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v2"
)

// ErrInvalidConfig wraps every validation and parse failure.
var ErrInvalidConfig = errors.New("invalid config")

// Supported export formats
const (
	FormatCSV  = "csv"
	FormatXLSX = "xlsx"
	FormatJSON = "json"
	FormatMD   = "md"
)

var knownFormats = map[string]bool{
	FormatCSV:  true,
	FormatXLSX: true,
	FormatJSON: true,
	FormatMD:   true,
}

// Config holds everything the CLI and batch driver need.
type Config struct {
	Verbose     bool         `yaml:"verbose" json:"verbose"`
	Workers     int          `yaml:"workers" json:"workers"`
	Extensions  []string     `yaml:"extensions" json:"extensions"`
	Output      OutputConfig `yaml:"output" json:"output"`
	DatabaseURL string       `yaml:"database_url" json:"database_url"`
}

// OutputConfig controls where and how batch results are exported.
type OutputConfig struct {
	Dir      string   `yaml:"dir" json:"dir"`
	Basename string   `yaml:"basename" json:"basename"`
	Formats  []string `yaml:"formats" json:"formats"`
}

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		Workers:    4,
		Extensions: []string{".html"},
		Output: OutputConfig{
			Dir:      ".",
			Basename: "eps_results",
			Formats:  []string{FormatCSV},
		},
	}
}

// Load builds a Config. path may be empty, in which case only defaults,
// .env and the environment apply.
func Load(path string) (*Config, error) {
	// Missing .env is fine
	_ = godotenv.Load()

	cfg := Default()
	if path != "" {
		if err := cfg.readFile(path); err != nil {
			return nil, err
		}
	}
	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) readFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config %s: %w", path, err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, c)
	case ".hjson", ".json":
		err = hjson.Unmarshal(data, c)
	default:
		return fmt.Errorf("%w: unsupported config file type %q", ErrInvalidConfig, filepath.Ext(path))
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrInvalidConfig, path, err)
	}
	return nil
}

func (c *Config) applyEnv() error {
	if v := os.Getenv("EPS_VERBOSE"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%w: EPS_VERBOSE=%q", ErrInvalidConfig, v)
		}
		c.Verbose = b
	}
	if v := os.Getenv("EPS_WORKERS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%w: EPS_WORKERS=%q", ErrInvalidConfig, v)
		}
		c.Workers = n
	}
	if v := os.Getenv("EPS_OUTPUT_DIR"); v != "" {
		c.Output.Dir = v
	}
	if v := os.Getenv("DATABASE_URL"); v != "" {
		c.DatabaseURL = v
	}
	return nil
}

// Validate checks ranges and normalizes extensions and formats to lowercase.
func (c *Config) Validate() error {
	if c.Workers < 1 {
		return fmt.Errorf("%w: workers must be at least 1, got %d", ErrInvalidConfig, c.Workers)
	}
	if len(c.Extensions) == 0 {
		return fmt.Errorf("%w: no file extensions configured", ErrInvalidConfig)
	}
	for i, ext := range c.Extensions {
		ext = strings.ToLower(strings.TrimSpace(ext))
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		c.Extensions[i] = ext
	}
	for i, f := range c.Output.Formats {
		f = strings.ToLower(strings.TrimSpace(f))
		if !knownFormats[f] {
			return fmt.Errorf("%w: unknown output format %q", ErrInvalidConfig, f)
		}
		c.Output.Formats[i] = f
	}
	if c.Output.Basename == "" {
		c.Output.Basename = "eps_results"
	}
	return nil
}
