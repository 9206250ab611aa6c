package logging

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"sync"

	"github.com/fatih/color"
)

// ErrInteractiveHandlerWriterRequired is returned when no writer is configured.
var ErrInteractiveHandlerWriterRequired = errors.New("InteractiveHandler: Writer is required")

// InteractiveHandler writes compact, optionally colored lines meant for a
// human watching a terminal:
//
//	WARN  up-to-date asset=index_html output=src/index_html.h
type InteractiveHandler struct {
	writer io.Writer
	level  slog.Leveler
	tags   map[slog.Level]string
	mu     *sync.Mutex
	attrs  []slog.Attr
	prefix string
}

// InteractiveHandlerOptions configures the InteractiveHandler.
type InteractiveHandlerOptions struct {
	// Level is the minimum log level to handle
	Level slog.Leveler

	// Writer is the output destination, typically os.Stderr
	Writer io.Writer

	// Color enables ANSI colors on the level tag
	Color bool
}

// NewInteractiveHandler creates a new InteractiveHandler.
func NewInteractiveHandler(opts InteractiveHandlerOptions) (*InteractiveHandler, error) {
	if opts.Writer == nil {
		return nil, ErrInteractiveHandlerWriterRequired
	}
	level := opts.Level
	if level == nil {
		level = slog.LevelInfo
	}

	return &InteractiveHandler{
		writer: opts.Writer,
		level:  level,
		tags:   levelTags(opts.Color),
		mu:     &sync.Mutex{},
	}, nil
}

func levelTags(useColor bool) map[slog.Level]string {
	styles := map[slog.Level]*color.Color{
		slog.LevelDebug: color.New(color.FgHiBlack),
		slog.LevelInfo:  color.New(color.FgCyan),
		slog.LevelWarn:  color.New(color.FgYellow),
		slog.LevelError: color.New(color.FgRed, color.Bold),
	}
	tags := make(map[slog.Level]string, len(styles))
	for level, style := range styles {
		if useColor {
			style.EnableColor()
		} else {
			style.DisableColor()
		}
		tags[level] = style.Sprintf("%-5s", level.String())
	}
	return tags
}

// Enabled reports whether the handler handles records at the given level.
func (h *InteractiveHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level.Level()
}

// Handle writes one line per record.
func (h *InteractiveHandler) Handle(_ context.Context, r slog.Record) error {
	var b strings.Builder
	b.WriteString(h.tag(r.Level))
	b.WriteByte(' ')
	b.WriteString(r.Message)

	for _, attr := range h.attrs {
		writeAttr(&b, "", attr)
	}
	r.Attrs(func(attr slog.Attr) bool {
		writeAttr(&b, h.prefix, attr)
		return true
	})
	b.WriteByte('\n')

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := io.WriteString(h.writer, b.String())
	return err
}

func (h *InteractiveHandler) tag(level slog.Level) string {
	switch {
	case level >= slog.LevelError:
		return h.tags[slog.LevelError]
	case level >= slog.LevelWarn:
		return h.tags[slog.LevelWarn]
	case level >= slog.LevelInfo:
		return h.tags[slog.LevelInfo]
	default:
		return h.tags[slog.LevelDebug]
	}
}

func writeAttr(b *strings.Builder, prefix string, attr slog.Attr) {
	attr.Value = attr.Value.Resolve()
	if attr.Equal(slog.Attr{}) {
		return
	}
	if attr.Value.Kind() == slog.KindGroup {
		groupPrefix := prefix
		if attr.Key != "" {
			groupPrefix = prefix + attr.Key + "."
		}
		for _, child := range attr.Value.Group() {
			writeAttr(b, groupPrefix, child)
		}
		return
	}

	value := attr.Value.String()
	if value == "" || strings.ContainsAny(value, " \t\n\"=") {
		value = strconv.Quote(value)
	}
	b.WriteByte(' ')
	b.WriteString(prefix)
	b.WriteString(attr.Key)
	b.WriteByte('=')
	b.WriteString(value)
}

// WithAttrs returns a new handler with additional attributes.
func (h *InteractiveHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	if len(attrs) == 0 {
		return h
	}
	clone := *h
	clone.attrs = make([]slog.Attr, 0, len(h.attrs)+len(attrs))
	clone.attrs = append(clone.attrs, h.attrs...)
	for _, attr := range attrs {
		if h.prefix != "" {
			attr.Key = h.prefix + attr.Key
		}
		clone.attrs = append(clone.attrs, attr)
	}
	return &clone
}

// WithGroup returns a new handler whose subsequent attributes are qualified by name.
func (h *InteractiveHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	clone := *h
	clone.prefix = h.prefix + name + "."
	return &clone
}
