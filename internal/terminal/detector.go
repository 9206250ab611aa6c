// Package terminal decides whether diagnostics are written for a human at a
// terminal or for a build log, and whether they may carry ANSI colors.
package terminal

import (
	"os"
	"strings"

	"golang.org/x/term"
)

// ciEnvVars are set by CI systems; their presence marks a non-interactive run.
var ciEnvVars = []string{
	"CI",
	"CONTINUOUS_INTEGRATION",
	"GITHUB_ACTIONS",
	"GITLAB_CI",
	"JENKINS_URL",
	"BUILD_NUMBER",
	"BUILDKITE",
	"CIRCLECI",
	"TRAVIS",
	"TF_BUILD",
}

// DetectorOptions overrides automatic interactive detection.
type DetectorOptions struct {
	ForceInteractive    bool
	ForceNonInteractive bool
}

// InteractiveDetector reports whether output goes to a human.
type InteractiveDetector interface {
	IsInteractive() bool
}

type defaultDetector struct {
	options    DetectorOptions
	isTerminal func() bool
}

// NewInteractiveDetector creates a detector that consults options, CI
// environment variables and finally whether stderr is a terminal.
func NewInteractiveDetector(options DetectorOptions) InteractiveDetector {
	return &defaultDetector{
		options:    options,
		isTerminal: stderrIsTerminal,
	}
}

func (d *defaultDetector) IsInteractive() bool {
	if d.options.ForceInteractive {
		return true
	}
	if d.options.ForceNonInteractive {
		return false
	}
	if isCIEnvironment() {
		return false
	}
	return d.isTerminal()
}

// stderrIsTerminal checks stderr only: stdout usually carries the generated
// header and is redirected to a file.
func stderrIsTerminal() bool {
	return term.IsTerminal(int(os.Stderr.Fd()))
}

func isCIEnvironment() bool {
	for _, envVar := range ciEnvVars {
		value := os.Getenv(envVar)
		if value == "" {
			continue
		}
		// CI=false is used to opt out explicitly
		if envVar == "CI" {
			return !isFalsy(value)
		}
		return true
	}
	return false
}

func isTruthy(value string) bool {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "1", "true", "yes":
		return true
	default:
		return false
	}
}

func isFalsy(value string) bool {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "0", "false", "no":
		return true
	default:
		return false
	}
}
