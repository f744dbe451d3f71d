// Package config provides loading and validation of the elfmeta
// configuration file. The file is TOML; command-line flags override anything
// set here, and every field has a working default so the tool runs with no
// config file at all.
package config

import "log/slog"

// ColorMode controls whether the text report uses ANSI color.
type ColorMode string

const (
	// ColorAuto enables color when stdout is an interactive color-capable
	// terminal.
	ColorAuto ColorMode = "auto"

	// ColorAlways forces color on.
	ColorAlways ColorMode = "always"

	// ColorNever forces color off.
	ColorNever ColorMode = "never"
)

// Config is the root of the configuration file.
type Config struct {
	Scan   ScanConfig   `toml:"scan"`
	Output OutputConfig `toml:"output"`
	Log    LogConfig    `toml:"log"`
}

// ScanConfig controls traversal and the worker pool.
type ScanConfig struct {
	// Recursive descends into subdirectories of directory arguments.
	Recursive bool `toml:"recursive"`

	// Jobs bounds the number of files processed concurrently; zero means one
	// worker per CPU.
	Jobs int `toml:"jobs"`

	// MaxFileSize bounds the size of files accepted for analysis, in bytes.
	// Zero means the built-in default (1 GB).
	MaxFileSize int64 `toml:"max_file_size"`
}

// OutputConfig controls the report renderer.
type OutputConfig struct {
	// Format selects the renderer: "text" or "json".
	Format string `toml:"format"`

	// Color is "auto", "always" or "never".
	Color ColorMode `toml:"color"`

	// Verbose lists individual symbol names and includes unparseable files.
	Verbose bool `toml:"verbose"`
}

// LogConfig controls diagnostic logging.
type LogConfig struct {
	// Level is "debug", "info", "warn" or "error".
	Level string `toml:"level"`

	// Dir, when set, additionally writes a per-run JSON log file into this
	// directory.
	Dir string `toml:"dir"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Scan: ScanConfig{},
		Output: OutputConfig{
			Format: "text",
			Color:  ColorAuto,
		},
		Log: LogConfig{
			Level: slog.LevelInfo.String(),
		},
	}
}
