package terminal

import (
	"os"
	"strings"
)

// colorTerminals lists TERM values (or prefixes followed by "-") known to
// render ANSI colors.
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

// PreferenceOptions carries explicit color choices from the command line.
type PreferenceOptions struct {
	ForceColor   bool
	DisableColor bool
}

// explicitColorPreference resolves command line options, CLICOLOR_FORCE and
// NO_COLOR in that order. ok is false when none of them is set.
func explicitColorPreference(options PreferenceOptions) (enabled, ok bool) {
	if options.ForceColor {
		return true, true
	}
	if options.DisableColor {
		return false, true
	}
	if isTruthy(os.Getenv("CLICOLOR_FORCE")) {
		return true, true
	}
	// NO_COLOR applies even when set to an empty string
	if _, exists := os.LookupEnv("NO_COLOR"); exists {
		return false, true
	}
	return false, false
}

// termSupportsColor inspects TERM. Unknown terminals get no color.
func termSupportsColor() bool {
	value := strings.ToLower(strings.TrimSpace(os.Getenv("TERM")))
	if value == "" || value == "dumb" {
		return false
	}
	for _, colorTerm := range colorTerminals {
		if value == colorTerm || strings.HasPrefix(value, colorTerm+"-") {
			return true
		}
	}
	return false
}
