package app

import (
	"errors"
	"fmt"
	"slices"
)

// Report formats accepted by Config.ReportFormat.
const (
	ReportText = "text"
	ReportJSON = "json"
	ReportYAML = "yaml"
)

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	ModelPaths []string // hcl files or directories
	// Classpath lists additional locations searched for model files, after
	// ModelPaths.
	Classpath []string

	LogFormat    string
	LogLevel     string
	WorkerCount  int
	ReportFormat string
	// Describe, when set, prints the property schema of the named type
	// instead of running any rule.
	Describe string
}

func NewConfig(cfg Config) (*Config, error) {
	if len(cfg.ModelPaths) == 0 {
		return nil, errors.New("at least one model path is required")
	}
	if cfg.WorkerCount < 1 {
		return nil, fmt.Errorf("worker count must be at least 1, got %d", cfg.WorkerCount)
	}
	if cfg.ReportFormat == "" {
		cfg.ReportFormat = ReportText
	}
	if !slices.Contains([]string{ReportText, ReportJSON, ReportYAML}, cfg.ReportFormat) {
		return nil, fmt.Errorf("invalid report format %q: must be 'text', 'json' or 'yaml'", cfg.ReportFormat)
	}
	return &cfg, nil
}

// searchPaths returns every location the loader should read.
func (c *Config) searchPaths() []string {
	return append(slices.Clone(c.ModelPaths), c.Classpath...)
}
