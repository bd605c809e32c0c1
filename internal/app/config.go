package app

import (
	"errors"
	"fmt"
	"slices"
)

// Output formats accepted by Config.OutputFormat.
const (
	OutputText = "text"
	OutputJSON = "json"
	OutputYAML = "yaml"
	OutputHCL  = "hcl"
	OutputCBOR = "cbor"
)

var (
	logLevels     = []string{"debug", "info", "warn", "error"}
	logFormats    = []string{"text", "json"}
	outputFormats = []string{OutputText, OutputJSON, OutputYAML, OutputHCL, OutputCBOR}
)

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	DeclarationPath string // .hcl file or directory holding one root parser

	LogFormat    string
	LogLevel     string
	OutputFormat string
}

// NewConfig fills the defaults and validates cfg.
func NewConfig(cfg Config) (*Config, error) {
	if cfg.DeclarationPath == "" {
		return nil, errors.New("DeclarationPath is a required configuration field and cannot be empty")
	}
	if cfg.LogFormat == "" {
		cfg.LogFormat = "text"
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "warn"
	}
	if cfg.OutputFormat == "" {
		cfg.OutputFormat = OutputText
	}

	if !slices.Contains(logLevels, cfg.LogLevel) {
		return nil, fmt.Errorf("invalid log-level %q: must be one of %v", cfg.LogLevel, logLevels)
	}
	if !slices.Contains(logFormats, cfg.LogFormat) {
		return nil, fmt.Errorf("invalid log-format %q: must be one of %v", cfg.LogFormat, logFormats)
	}
	if !slices.Contains(outputFormats, cfg.OutputFormat) {
		return nil, fmt.Errorf("invalid output %q: must be one of %v", cfg.OutputFormat, outputFormats)
	}
	return &cfg, nil
}
