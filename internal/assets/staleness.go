package assets

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/isseis/go-bin2c/internal/encoder"
	"github.com/isseis/go-bin2c/internal/safefileio"
)

// IsStale reports whether output must be regenerated from source: either
// output does not exist or its modification time is strictly older than the
// source's. Equal timestamps count as up to date.
func IsStale(fsys safefileio.FileSystem, source, output string) (bool, error) {
	srcInfo, err := fsys.Stat(source)
	if err != nil {
		return false, fmt.Errorf("%w: %s: %w", encoder.ErrNotFound, source, err)
	}

	outInfo, err := fsys.Stat(output)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return true, nil
		}
		return false, fmt.Errorf("failed to stat %s: %w", output, err)
	}

	return outInfo.ModTime().Before(srcInfo.ModTime()), nil
}
