package encoder

import "errors"

var (
	// ErrNotFound indicates that the source path does not reference a
	// readable regular file.
	ErrNotFound = errors.New("source file not found")

	// ErrInvalidIdentifier indicates that the variable name does not match
	// [A-Za-z_][A-Za-z0-9_]*.
	ErrInvalidIdentifier = errors.New("invalid identifier")

	// ErrOddLengthForWordMode indicates that word16 mode was requested for a
	// payload with an odd number of bytes.
	ErrOddLengthForWordMode = errors.New("odd payload length for word16 mode")

	// ErrInvalidIndent indicates a negative indent width.
	ErrInvalidIndent = errors.New("invalid indent")

	// ErrInvalidMode indicates an unknown element mode.
	ErrInvalidMode = errors.New("invalid element mode")

	// ErrInvalidCompressionLevel indicates a gzip level outside -2..9.
	ErrInvalidCompressionLevel = errors.New("invalid compression level")
)
