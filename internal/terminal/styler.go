package terminal

// ANSI escape sequences
const (
	resetCode  = "\033[0m"
	boldCode   = "\033[1m"
	cyanCode   = "\033[36m"
	yellowCode = "\033[33m"
)

// Styler wraps report fragments in ANSI sequences, or passes them through
// unchanged when color is disabled.
type Styler struct {
	enabled bool
}

// NewStyler creates a Styler; pass the result of SupportsColor.
func NewStyler(enabled bool) Styler {
	return Styler{enabled: enabled}
}

// Header styles a per-file heading.
func (s Styler) Header(text string) string {
	return s.wrap(boldCode, text)
}

// Label styles a field label.
func (s Styler) Label(text string) string {
	return s.wrap(cyanCode, text)
}

// Warn styles a diagnostic value.
func (s Styler) Warn(text string) string {
	return s.wrap(yellowCode, text)
}

func (s Styler) wrap(code, text string) string {
	if !s.enabled {
		return text
	}
	return code + text + resetCode
}
