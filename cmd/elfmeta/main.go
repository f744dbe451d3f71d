// Package main provides the entry point for the elfmeta scanner. It handles
// command-line arguments and configuration loading, runs the scan over the
// given paths, and renders the per-file ABI metadata report.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/serpent-os/elfmeta/internal/cmdcommon"
	"github.com/serpent-os/elfmeta/internal/config"
	"github.com/serpent-os/elfmeta/internal/logging"
	"github.com/serpent-os/elfmeta/internal/report"
	"github.com/serpent-os/elfmeta/internal/scanner"
	"github.com/serpent-os/elfmeta/internal/terminal"
)

// Error definitions
var (
	ErrNoInputPaths = errors.New("no input paths given")
)

var (
	configPath  = flag.String("config", "", "path to config file (default: "+cmdcommon.DefaultConfigPath+")")
	recursive   = flag.Bool("recursive", false, "descend into subdirectories of directory arguments")
	jobs        = flag.Int("jobs", 0, "number of files to process concurrently (0 = one per CPU)")
	format      = flag.String("format", "", "output format (text, json)")
	colorMode   = flag.String("color", "", "color mode for text output (auto, always, never)")
	verbose     = flag.Bool("verbose", false, "list individual symbol names and unparseable files")
	logLevel    = flag.String("log-level", "", "log level (debug, info, warn, error)")
	logDir      = flag.String("log-dir", "", "directory to place a per-run JSON log (auto-named)")
	showVersion = flag.Bool("version", false, "print version and exit")
)

func main() {
	// Generate the run ID before anything else so even setup failures can be
	// correlated.
	runID := logging.GenerateRunID()

	if err := run(runID); err != nil {
		fmt.Fprintf(os.Stderr, "elfmeta: %v\n", err)
		os.Exit(cmdcommon.ExitFailure)
	}
}

func run(runID string) error {
	flag.Parse()

	if *showVersion {
		fmt.Printf("elfmeta %s (%s)\n", cmdcommon.Version, cmdcommon.GitCommit)
		return nil
	}

	paths := flag.Args()
	if len(paths) == 0 {
		return ErrNoInputPaths
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	applyFlagOverrides(cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}

	level, err := logging.ParseLevel(cfg.Log.Level)
	if err != nil {
		return err
	}
	cleanup, err := logging.Setup(logging.Options{
		Level:  level,
		RunID:  runID,
		LogDir: cfg.Log.Dir,
	})
	if err != nil {
		return err
	}
	defer func() {
		if err := cleanup(); err != nil {
			fmt.Fprintf(os.Stderr, "elfmeta: closing log file: %v\n", err)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	slog.Info("starting scan",
		"paths", len(paths),
		"recursive", cfg.Scan.Recursive,
		"jobs", cfg.Scan.Jobs)

	s := scanner.New(scanner.Options{
		Recursive:   cfg.Scan.Recursive,
		Jobs:        cfg.Scan.Jobs,
		MaxFileSize: cfg.Scan.MaxFileSize,
	})
	results, err := s.Scan(ctx, paths)
	if err != nil {
		return err
	}

	renderer, err := buildRenderer(cfg, os.Stdout)
	if err != nil {
		return err
	}
	return renderer.Render(results)
}

// loadConfig loads the file named by -config, or the default path if present.
// An explicitly named file must exist; the default one is optional.
func loadConfig() (*config.Config, error) {
	if *configPath != "" {
		return config.NewLoader().Load(*configPath)
	}
	if _, err := os.Stat(cmdcommon.DefaultConfigPath); err == nil {
		return config.NewLoader().Load(cmdcommon.DefaultConfigPath)
	}
	return config.Default(), nil
}

// applyFlagOverrides lets explicitly set command-line flags win over the
// config file.
func applyFlagOverrides(cfg *config.Config) {
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "recursive":
			cfg.Scan.Recursive = *recursive
		case "jobs":
			cfg.Scan.Jobs = *jobs
		case "format":
			cfg.Output.Format = *format
		case "color":
			cfg.Output.Color = config.ColorMode(*colorMode)
		case "verbose":
			cfg.Output.Verbose = *verbose
		case "log-level":
			cfg.Log.Level = *logLevel
		case "log-dir":
			cfg.Log.Dir = *logDir
		}
	})
}

func buildRenderer(cfg *config.Config, w io.Writer) (report.Renderer, error) {
	outputFormat, err := report.ParseOutputFormat(cfg.Output.Format)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", err, cfg.Output.Format)
	}
	switch outputFormat {
	case report.OutputFormatJSON:
		return report.NewJSONRenderer(w, cfg.Output.Verbose), nil
	default:
		color := terminal.SupportsColor(terminal.ColorOptions{
			ForceColor:   cfg.Output.Color == config.ColorAlways,
			DisableColor: cfg.Output.Color == config.ColorNever,
		}, terminal.DetectorOptions{})
		return report.NewTextRenderer(w, color, cfg.Output.Verbose), nil
	}
}
