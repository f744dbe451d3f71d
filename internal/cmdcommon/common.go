// Package cmdcommon provides common functionality for command-line tools.
package cmdcommon

// Build-time variables (set via ldflags)
var (
	// Version is the release version of the tool.
	Version = "dev"

	// GitCommit is the commit the binary was built from.
	GitCommit = "unknown"
)

// DefaultConfigPath is consulted when no -config flag is given; a missing
// file there is not an error.
const DefaultConfigPath = "/etc/elfmeta/elfmeta.toml"

// Exit codes
const (
	// ExitOK means the scan completed, even if individual files degraded.
	ExitOK = 0

	// ExitFailure means the scan could not run at all (bad flags, bad
	// config, unreadable top-level path).
	ExitFailure = 1
)
