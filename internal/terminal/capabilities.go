package terminal

import "os"

// Options groups all terminal related command line overrides.
type Options struct {
	PreferenceOptions PreferenceOptions
	DetectorOptions   DetectorOptions
}

// Capabilities answers the two questions the logging setup asks.
type Capabilities interface {
	IsInteractive() bool
	SupportsColor() bool
}

// DefaultCapabilities combines interactive detection with color preferences.
type DefaultCapabilities struct {
	detector    InteractiveDetector
	preferences PreferenceOptions
}

// NewCapabilities creates Capabilities from command line options and the environment.
func NewCapabilities(options Options) *DefaultCapabilities {
	return &DefaultCapabilities{
		detector:    NewInteractiveDetector(options.DetectorOptions),
		preferences: options.PreferenceOptions,
	}
}

// IsInteractive reports whether output is meant for a human at a terminal.
func (c *DefaultCapabilities) IsInteractive() bool {
	return c.detector.IsInteractive()
}

// SupportsColor reports whether ANSI colors may be written. Priority:
//  1. command line options
//  2. CLICOLOR_FORCE
//  3. NO_COLOR
//  4. CLICOLOR, interactive runs only
//  5. TERM, interactive runs only
func (c *DefaultCapabilities) SupportsColor() bool {
	if enabled, ok := explicitColorPreference(c.preferences); ok {
		return enabled
	}
	if !c.IsInteractive() || !termSupportsColor() {
		return false
	}
	if cliColor := os.Getenv("CLICOLOR"); cliColor != "" {
		return isTruthy(cliColor)
	}
	return true
}
