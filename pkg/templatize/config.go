package templatize

import (
	"errors"
	"path/filepath"
)

// Default locations, relative to the working directory
const (
	DefaultInputPath = "test.docx"
)

// DefaultOutputPath is where the template is written when no output is configured
var DefaultOutputPath = filepath.Join("convex", "assets", "resume-template.docx")

// Config contains all configuration options for a template build
type Config struct {
	// InputPath is the source résumé package
	InputPath string `mapstructure:"input"`
	// OutputPath is where the template package is written; parent directories are created
	OutputPath string `mapstructure:"output"`
	// PlanFile optionally replaces the built-in plan with a YAML plan
	PlanFile string `mapstructure:"plan"`
	// Lenient skips plan steps that address paragraphs the document does not have
	// instead of failing before any change is made
	Lenient bool `mapstructure:"lenient"`
	// LogLevel controls the verbosity of logging (debug, info, warn, error, off)
	LogLevel string `mapstructure:"log-level"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		InputPath:  DefaultInputPath,
		OutputPath: DefaultOutputPath,
		Lenient:    false,
		LogLevel:   "info",
	}
}

// NewConfigWithDefaults creates a new configuration with defaults applied to unset fields
func NewConfigWithDefaults(overrides *Config) *Config {
	defaults := DefaultConfig()

	if overrides == nil {
		return defaults
	}

	config := *overrides

	if config.InputPath == "" {
		config.InputPath = defaults.InputPath
	}

	if config.OutputPath == "" {
		config.OutputPath = defaults.OutputPath
	}

	if config.LogLevel == "" {
		config.LogLevel = defaults.LogLevel
	}

	return &config
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.InputPath == "" {
		return errors.New("input path is required")
	}

	if c.OutputPath == "" {
		return errors.New("output path is required")
	}

	if filepath.Clean(c.InputPath) == filepath.Clean(c.OutputPath) {
		return errors.New("output path must differ from input path")
	}

	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
		"off":   true,
	}

	if !validLogLevels[c.LogLevel] {
		return errors.New("invalid log level: " + c.LogLevel)
	}

	return nil
}
