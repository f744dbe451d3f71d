package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
)

// Error definitions for the config package
var (
	// ErrEmptyConfigPath is returned when Load is called with an empty path.
	ErrEmptyConfigPath = errors.New("config file path is empty")

	// ErrInvalidColorMode is returned for color values other than auto,
	// always and never.
	ErrInvalidColorMode = errors.New("invalid color mode")

	// ErrInvalidJobs is returned for a negative worker count.
	ErrInvalidJobs = errors.New("jobs must not be negative")

	// ErrInvalidMaxFileSize is returned for a negative size limit.
	ErrInvalidMaxFileSize = errors.New("max_file_size must not be negative")
)

// Loader loads and validates configuration files.
type Loader struct{}

// NewLoader creates a new config loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Load reads, parses and validates the configuration at path. Values absent
// from the file keep their defaults.
func (l *Loader) Load(path string) (*Config, error) {
	if path == "" {
		return nil, ErrEmptyConfigPath
	}
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	return l.Parse(content)
}

// Parse parses and validates raw TOML configuration content.
func (l *Loader) Parse(content []byte) (*Config, error) {
	cfg := Default()
	if err := toml.Unmarshal(content, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks field values that the TOML decoder cannot.
func (c *Config) Validate() error {
	switch c.Output.Color {
	case ColorAuto, ColorAlways, ColorNever:
	default:
		return fmt.Errorf("%w: %q", ErrInvalidColorMode, c.Output.Color)
	}
	if c.Scan.Jobs < 0 {
		return fmt.Errorf("%w: %d", ErrInvalidJobs, c.Scan.Jobs)
	}
	if c.Scan.MaxFileSize < 0 {
		return fmt.Errorf("%w: %d", ErrInvalidMaxFileSize, c.Scan.MaxFileSize)
	}
	return nil
}
