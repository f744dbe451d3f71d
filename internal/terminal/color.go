package terminal

import (
	"os"
	"strings"
)

// colorTerminals lists TERM values (or prefixes) known to support basic ANSI
// colors.
var colorTerminals = []string{
	"xterm",
	"screen",
	"tmux",
	"rxvt",
	"vt100",
	"vt220",
	"ansi",
	"linux",
	"cygwin",
	"putty",
}

// ColorOptions force the color decision from the command line.
type ColorOptions struct {
	ForceColor   bool
	DisableColor bool
}

// SupportsColor decides whether output should be colored, in priority order:
// command-line overrides, CLICOLOR_FORCE, NO_COLOR, interactivity, TERM
// capability, CLICOLOR.
func SupportsColor(copts ColorOptions, dopts DetectorOptions) bool {
	if copts.ForceColor {
		return true
	}
	if copts.DisableColor {
		return false
	}
	if isTruthy(os.Getenv("CLICOLOR_FORCE")) {
		return true
	}
	// Any setting of NO_COLOR disables color, even an empty one.
	if _, exists := os.LookupEnv("NO_COLOR"); exists {
		return false
	}
	if !IsInteractive(dopts) || !termSupportsColor() {
		return false
	}
	if cliColor := os.Getenv("CLICOLOR"); cliColor != "" {
		return isTruthy(cliColor)
	}
	return true
}

// termSupportsColor checks the TERM variable against the known-good list.
// Unknown terminals default to no color: better to miss color support than to
// write escape sequences a terminal cannot interpret.
func termSupportsColor() bool {
	termEnv := strings.ToLower(strings.TrimSpace(os.Getenv("TERM")))
	if termEnv == "" || termEnv == "dumb" {
		return false
	}
	for _, known := range colorTerminals {
		if termEnv == known || strings.HasPrefix(termEnv, known+"-") {
			return true
		}
	}
	return false
}
