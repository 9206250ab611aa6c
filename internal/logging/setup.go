// Package logging builds the slog logger used by the bin2c commands.
// Console output is either a compact colored format for terminals or the
// standard slog text format for build logs; a per-run JSON log file can be
// added on top.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/isseis/go-bin2c/internal/safefileio"
	"github.com/isseis/go-bin2c/internal/terminal"
)

const logFilePerm = 0o600

// Config holds all configuration for logger setup.
type Config struct {
	// Level is the minimum level written to every destination
	Level slog.Level

	// ConsoleWriter receives human oriented output, os.Stderr when nil
	ConsoleWriter io.Writer

	// LogFile, when set, receives JSON records
	LogFile string

	// RunID is attached to every JSON record
	RunID string

	// Terminal carries the command line overrides for interactivity and color
	Terminal terminal.Options
}

// ParseLevel converts a level name (debug, info, warn, error) into a slog.Level.
func ParseLevel(name string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(name))); err != nil {
		return slog.LevelInfo, fmt.Errorf("invalid log level %q: %w", name, err)
	}
	return level, nil
}

// Setup builds a logger from config. The returned close function releases the
// log file, if any, and must be called once logging is finished.
func Setup(config Config) (*slog.Logger, func() error, error) {
	return setupWithCapabilities(config, terminal.NewCapabilities(config.Terminal))
}

func setupWithCapabilities(config Config, capabilities terminal.Capabilities) (*slog.Logger, func() error, error) {
	consoleWriter := config.ConsoleWriter
	if consoleWriter == nil {
		consoleWriter = os.Stderr
	}

	var handlers []slog.Handler

	if capabilities.IsInteractive() {
		interactive, err := NewInteractiveHandler(InteractiveHandlerOptions{
			Level:  config.Level,
			Writer: consoleWriter,
			Color:  capabilities.SupportsColor(),
		})
		if err != nil {
			return nil, nil, fmt.Errorf("failed to create interactive handler: %w", err)
		}
		handlers = append(handlers, interactive)
	} else {
		handlers = append(handlers, slog.NewTextHandler(consoleWriter, &slog.HandlerOptions{
			Level: config.Level,
		}))
	}

	closeFn := func() error { return nil }
	if config.LogFile != "" {
		logF, err := safefileio.SafeCreateFile(config.LogFile, logFilePerm)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open log file: %w", err)
		}
		closeFn = logF.Close

		hostname, err := os.Hostname()
		if err != nil {
			hostname = "unknown"
		}
		jsonHandler := slog.NewJSONHandler(logF, &slog.HandlerOptions{
			Level: config.Level,
		}).WithAttrs([]slog.Attr{
			slog.String("hostname", hostname),
			slog.Int("pid", os.Getpid()),
			slog.String("run_id", config.RunID),
		})
		handlers = append(handlers, jsonHandler)
	}

	return slog.New(NewMultiHandler(handlers...)), closeFn, nil
}
