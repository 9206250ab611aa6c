package encoder

import (
	"compress/gzip"
	"fmt"
	"regexp"
)

const (
	// DefaultVariableName is used by callers that do not derive a name.
	DefaultVariableName = "data"
	// DefaultLineWidth is the default maximum line width in columns.
	DefaultLineWidth = 80
	// MinLineWidth is the floor applied to the line width.
	MinLineWidth = 40
	// DefaultIndent is the default number of spaces prefixed to each line.
	DefaultIndent = 4
	// DefaultCompressionLevel is the gzip level used unless overridden.
	DefaultCompressionLevel = gzip.DefaultCompression
)

var identifierPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// Request describes one encoding job. It is immutable and always valid:
// the only way to obtain one is NewRequest.
type Request struct {
	sourcePath       string
	variableName     string
	lineWidth        int
	indent           int
	compress         bool
	compressionLevel int
	mode             Mode
}

// RequestOption customizes a Request under construction.
type RequestOption func(*Request)

// WithLineWidth sets the maximum line width. Values below MinLineWidth are raised to it.
func WithLineWidth(width int) RequestOption {
	return func(r *Request) {
		r.lineWidth = width
	}
}

// WithIndent sets the number of spaces prefixed to each array line.
func WithIndent(indent int) RequestOption {
	return func(r *Request) {
		r.indent = indent
	}
}

// WithCompression enables gzip compression of the payload before rendering.
func WithCompression(enabled bool) RequestOption {
	return func(r *Request) {
		r.compress = enabled
	}
}

// WithCompressionLevel sets the gzip level used when compression is enabled.
func WithCompressionLevel(level int) RequestOption {
	return func(r *Request) {
		r.compressionLevel = level
	}
}

// WithMode sets the element width.
func WithMode(mode Mode) RequestOption {
	return func(r *Request) {
		r.mode = mode
	}
}

// NewRequest validates its arguments and returns a Request.
func NewRequest(sourcePath, variableName string, opts ...RequestOption) (Request, error) {
	r := Request{
		sourcePath:       sourcePath,
		variableName:     variableName,
		lineWidth:        DefaultLineWidth,
		indent:           DefaultIndent,
		compressionLevel: DefaultCompressionLevel,
		mode:             ModeByte,
	}
	for _, opt := range opts {
		opt(&r)
	}

	if !IsValidIdentifier(r.variableName) {
		return Request{}, fmt.Errorf("%w: %q", ErrInvalidIdentifier, r.variableName)
	}
	if r.indent < 0 {
		return Request{}, fmt.Errorf("%w: %d (must be >= 0)", ErrInvalidIndent, r.indent)
	}
	if !r.mode.valid() {
		return Request{}, fmt.Errorf("%w: %s", ErrInvalidMode, r.mode)
	}
	if r.compressionLevel < gzip.HuffmanOnly || r.compressionLevel > gzip.BestCompression {
		return Request{}, fmt.Errorf("%w: %d", ErrInvalidCompressionLevel, r.compressionLevel)
	}
	if r.lineWidth < MinLineWidth {
		r.lineWidth = MinLineWidth
	}

	return r, nil
}

// IsValidIdentifier reports whether name can be used as a C identifier.
func IsValidIdentifier(name string) bool {
	return identifierPattern.MatchString(name)
}

func (r Request) SourcePath() string    { return r.sourcePath }
func (r Request) VariableName() string  { return r.variableName }
func (r Request) LineWidth() int        { return r.lineWidth }
func (r Request) Indent() int           { return r.indent }
func (r Request) Compress() bool        { return r.compress }
func (r Request) CompressionLevel() int { return r.compressionLevel }
func (r Request) Mode() Mode            { return r.mode }
