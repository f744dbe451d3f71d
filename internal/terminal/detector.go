// Package terminal decides whether report output should use ANSI color. It
// combines TTY detection, CI environment detection and the conventional user
// preference variables (NO_COLOR, CLICOLOR, CLICOLOR_FORCE), and provides a
// small Styler used by the text report renderer.
package terminal

import (
	"os"
	"strings"

	"golang.org/x/term"
)

// ciEnvVars contains common CI environment variables.
var ciEnvVars = []string{
	"CI",
	"CONTINUOUS_INTEGRATION",
	"GITHUB_ACTIONS",
	"TRAVIS",
	"CIRCLECI",
	"JENKINS_URL",
	"BUILD_NUMBER",
	"GITLAB_CI",
	"BUILDKITE",
	"DRONE",
	"TF_BUILD",
}

// DetectorOptions force the interactivity decision from the command line.
type DetectorOptions struct {
	ForceInteractive    bool
	ForceNonInteractive bool
}

// IsInteractive reports whether the process should be treated as attached to
// a human: command-line overrides first, then CI detection, then a TTY check
// on stdout.
func IsInteractive(opts DetectorOptions) bool {
	if opts.ForceInteractive {
		return true
	}
	if opts.ForceNonInteractive {
		return false
	}
	if isCIEnvironment() {
		return false
	}
	return term.IsTerminal(int(os.Stdout.Fd()))
}

func isCIEnvironment() bool {
	for _, envVar := range ciEnvVars {
		value := os.Getenv(envVar)
		if value == "" {
			continue
		}
		// CI=false / CI=0 must not count as a CI environment.
		if envVar == "CI" {
			return isTruthy(value)
		}
		return true
	}
	return false
}

// isTruthy accepts the usual spellings of an enabled boolean env variable.
func isTruthy(value string) bool {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "1", "true", "yes":
		return true
	default:
		return false
	}
}
