// Package encoder renders the content of a binary file as a C array
// declaration followed by a companion length constant, for embedding assets
// into firmware images.
//
// The output has the form:
//
//	const uint8_t <name>[<N>] = {
//	    0x.., 0x.., ...
//	};
//
//	const size_t <name>_length = <N>;
//
// or the uint16_t variant with four hex digits per element in word16 mode.
package encoder

import (
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"github.com/isseis/go-bin2c/internal/safefileio"
)

// Output is the result of a successful Encode.
type Output struct {
	// Text is the complete array declaration and length constant.
	Text string
	// ElementCount is the number of array elements.
	ElementCount int
	// VariableName is the array identifier.
	VariableName string
	// ByteCount is the payload size after optional compression.
	ByteCount int
	// SourceSize is the number of bytes read from the source file.
	SourceSize int
}

// Encoder reads source files and renders them. An Encoder holds no state
// between calls and may be shared between goroutines.
type Encoder struct {
	fs safefileio.FileSystem
}

// Option configures an Encoder.
type Option func(*Encoder)

// WithFileSystem sets the file system the source is read from.
func WithFileSystem(fs safefileio.FileSystem) Option {
	return func(e *Encoder) {
		e.fs = fs
	}
}

// New creates an Encoder reading from the local disk unless overridden.
func New(opts ...Option) *Encoder {
	e := &Encoder{fs: safefileio.NewFileSystem()}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

var defaultEncoder = New()

// Encode renders req using an Encoder backed by the local disk.
func Encode(req Request) (*Output, error) {
	return defaultEncoder.Encode(req)
}

// Encode reads the source file named by req, optionally compresses it and
// renders it. Either a complete Output or an error is returned, never both.
func (e *Encoder) Encode(req Request) (*Output, error) {
	data, err := e.fs.SafeReadFile(req.sourcePath)
	if err != nil {
		if errors.Is(err, safefileio.ErrFileTooLarge) {
			return nil, fmt.Errorf("%s: %w", req.sourcePath, err)
		}
		return nil, fmt.Errorf("%w: %s: %w", ErrNotFound, req.sourcePath, err)
	}
	sourceSize := len(data)

	if req.compress {
		data, err = gzipBytes(data, req.compressionLevel)
		if err != nil {
			return nil, err
		}
	}

	out, err := render(data, req)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", req.sourcePath, err)
	}
	out.SourceSize = sourceSize
	return out, nil
}

// render formats data as an array declaration.
//
// Tokens are packed greedily: after each token the line is flushed once
// indent + len(line) + tokenWidth reaches the line width. The trailing partial
// line is emitted only if it is still below that estimate.
func render(data []byte, req Request) (*Output, error) {
	mode := req.mode
	step := mode.bytesPerElement()
	if len(data)%step != 0 {
		return nil, fmt.Errorf("%w: %d bytes", ErrOddLengthForWordMode, len(data))
	}
	count := len(data) / step

	pad := strings.Repeat(" ", req.indent)
	reserved := req.indent + mode.tokenWidth()

	var b strings.Builder
	b.Grow(len(data)*(mode.tokenWidth()/step+1) + 128)
	fmt.Fprintf(&b, "const %s %s[%d] = {\n", mode.elementType(), req.variableName, count)

	line := make([]byte, 0, req.lineWidth)
	flush := func() {
		b.WriteString(pad)
		b.Write(line)
		b.WriteByte('\n')
		line = line[:0]
	}

	for i := 0; i < len(data); i += step {
		line = append(line, "0x"...)
		line = hex.AppendEncode(line, data[i:i+step])
		line = append(line, ", "...)
		if len(line)+reserved >= req.lineWidth {
			flush()
		}
	}
	if len(line)+reserved < req.lineWidth {
		flush()
	}

	text := strings.TrimRight(b.String(), ", \n") + "\n};\n\n" +
		fmt.Sprintf("const size_t %s_length = %d;\n", req.variableName, count)

	return &Output{
		Text:         text,
		ElementCount: count,
		VariableName: req.variableName,
		ByteCount:    len(data),
	}, nil
}
