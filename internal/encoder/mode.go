package encoder

import (
	"fmt"
	"strings"
)

// Mode selects the element width of the generated array.
type Mode int

const (
	// ModeByte emits one uint8_t element per payload byte.
	ModeByte Mode = iota
	// ModeWord16 emits one uint16_t element per pair of payload bytes,
	// the first byte of the pair being the high-order byte.
	ModeWord16
)

// String returns the canonical name of the mode.
func (m Mode) String() string {
	switch m {
	case ModeByte:
		return "byte"
	case ModeWord16:
		return "word16"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// ParseMode converts a mode name into a Mode. An empty name selects ModeByte.
func ParseMode(name string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "byte", "uint8":
		return ModeByte, nil
	case "word16", "uint16":
		return ModeWord16, nil
	default:
		return ModeByte, fmt.Errorf("%w: %q (expected byte or word16)", ErrInvalidMode, name)
	}
}

func (m Mode) valid() bool {
	return m == ModeByte || m == ModeWord16
}

// elementType is the C type of one array element.
func (m Mode) elementType() string {
	if m == ModeWord16 {
		return "uint16_t"
	}
	return "uint8_t"
}

// tokenWidth is the reserved width of one rendered token, "0x00, " or "0x0000, ".
// Line flushing is decided against this fixed estimate.
func (m Mode) tokenWidth() int {
	if m == ModeWord16 {
		return 8
	}
	return 6
}

// bytesPerElement is the number of payload bytes consumed per token.
func (m Mode) bytesPerElement() int {
	if m == ModeWord16 {
		return 2
	}
	return 1
}
