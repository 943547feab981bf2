// Package config provides configuration management for mdc.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/open-cli-collective/md-compiler/internal/view"
	"github.com/open-cli-collective/md-compiler/pkg/md"
)

// DefaultExtension is the file extension used for compiled output when none
// is configured.
const DefaultExtension = ".html"

// EnvVars lists every environment variable LoadFromEnv reads.
var EnvVars = []string{"MDC_ENGINE", "MDC_OUTPUT_FORMAT", "MDC_EXTENSION", "MDC_DOCUMENT_TITLE"}

// Config holds the mdc configuration.
type Config struct {
	Engine        string `yaml:"engine,omitempty"`
	OutputFormat  string `yaml:"output_format,omitempty"`
	Extension     string `yaml:"extension,omitempty"`
	DocumentTitle string `yaml:"document_title,omitempty"`
}

// Validate checks that all set fields hold supported values.
func (c *Config) Validate() error {
	if c.Engine != "" && !slices.Contains(md.Engines(), c.Engine) {
		return fmt.Errorf("engine must be one of: %s", strings.Join(md.Engines(), ", "))
	}
	if err := view.ValidateFormat(c.OutputFormat); err != nil {
		return err
	}
	if c.Extension != "" && !strings.HasPrefix(c.Extension, ".") {
		return errors.New("extension must start with a dot")
	}
	return nil
}

// ApplyDefaults fills unset fields with their defaults.
func (c *Config) ApplyDefaults() {
	if c.Engine == "" {
		c.Engine = string(md.EngineNative)
	}
	if c.OutputFormat == "" {
		c.OutputFormat = string(view.FormatTable)
	}
	if c.Extension == "" {
		c.Extension = DefaultExtension
	}
}

// LoadFromEnv loads configuration from environment variables.
// Environment variables override existing values only if set and non-empty.
func (c *Config) LoadFromEnv() {
	if engine := os.Getenv("MDC_ENGINE"); engine != "" {
		c.Engine = engine
	}
	if format := os.Getenv("MDC_OUTPUT_FORMAT"); format != "" {
		c.OutputFormat = format
	}
	if ext := os.Getenv("MDC_EXTENSION"); ext != "" {
		c.Extension = ext
	}
	if title := os.Getenv("MDC_DOCUMENT_TITLE"); title != "" {
		c.DocumentTitle = title
	}
}

// DefaultConfigPath returns the default configuration file path.
func DefaultConfigPath() string {
	// Try XDG config directory first
	if xdgConfig := os.Getenv("XDG_CONFIG_HOME"); xdgConfig != "" {
		return filepath.Join(xdgConfig, "mdc", "config.yml")
	}

	// Fall back to ~/.config/mdc/config.yml
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", ".mdc", "config.yml")
	}

	return filepath.Join(home, ".config", "mdc", "config.yml")
}

// Save writes the configuration to the specified path.
func (c *Config) Save(path string) error {
	// Create directory if it doesn't exist
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Load reads the configuration from the specified path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return &cfg, nil
}

// LoadWithEnv loads configuration from file and overrides with environment
// variables. A missing file is not an error; an unreadable or malformed one is.
func LoadWithEnv(path string) (*Config, error) {
	cfg, err := Load(path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return nil, err
		}
		cfg = &Config{}
	}

	cfg.LoadFromEnv()
	return cfg, nil
}

// Resolve loads the configuration for a command run: the file at path (or
// the default path when empty), environment overrides, validation and
// defaults, in that order.
func Resolve(path string) (*Config, error) {
	if path == "" {
		path = DefaultConfigPath()
	}

	cfg, err := LoadWithEnv(path)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w (run 'mdc init' to configure)", err)
	}

	cfg.ApplyDefaults()
	return cfg, nil
}
