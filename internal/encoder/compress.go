package encoder

import (
	"bytes"
	"fmt"

	"github.com/mholt/archiver"
)

// gzipBytes returns data wrapped in a gzip container at the given level.
// The header carries no file name and a zero modification time, so the
// result depends only on data and level.
func gzipBytes(data []byte, level int) ([]byte, error) {
	gz := &archiver.Gz{CompressionLevel: level}
	var buf bytes.Buffer
	if err := gz.Compress(bytes.NewReader(data), &buf); err != nil {
		return nil, fmt.Errorf("gzip compression failed: %w", err)
	}
	return buf.Bytes(), nil
}
