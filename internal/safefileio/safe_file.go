package safefileio

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"syscall"
)

// MaxFileSize is the maximum allowed file size for SafeReadFile (128 MB).
// Sources are held in memory as a whole, so this bounds the encoder's footprint.
const MaxFileSize = 128 * 1024 * 1024

// FileSystem abstracts the file operations used by the encoder and the asset
// generator so tests can substitute a fake.
type FileSystem interface {
	SafeReadFile(filePath string) ([]byte, error)
	SafeWriteFile(filePath string, content []byte, perm os.FileMode) error
	Stat(filePath string) (os.FileInfo, error)
}

type osFS struct{}

var defaultFS FileSystem = osFS{}

// NewFileSystem returns a FileSystem backed by the local disk.
func NewFileSystem() FileSystem {
	return osFS{}
}

// SafeReadFile reads a file from the local disk. See FileSystem.SafeReadFile.
func SafeReadFile(filePath string) ([]byte, error) {
	return defaultFS.SafeReadFile(filePath)
}

// SafeWriteFile writes a file on the local disk. See FileSystem.SafeWriteFile.
func SafeWriteFile(filePath string, content []byte, perm os.FileMode) error {
	return defaultFS.SafeWriteFile(filePath, content, perm)
}

// Stat returns the FileInfo of filePath without following a final symlink.
func (osFS) Stat(filePath string) (os.FileInfo, error) {
	return os.Lstat(filePath)
}

// SafeReadFile reads the whole content of a regular file.
// It opens with O_NOFOLLOW, rejects symlinked directory components after the
// open, and enforces MaxFileSize.
func (osFS) SafeReadFile(filePath string) ([]byte, error) {
	absPath, err := filepath.Abs(filePath)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidFilePath, err)
	}

	// #nosec G304 - absPath is cleaned above and O_NOFOLLOW rejects a final symlink
	file, err := os.OpenFile(absPath, os.O_RDONLY|syscall.O_NOFOLLOW, 0)
	if err != nil {
		if isNoFollowError(err) {
			return nil, ErrIsSymlink
		}
		return nil, err
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil {
			slog.Warn("error closing file", slog.String("path", absPath), slog.Any("error", closeErr))
		}
	}()

	// Components are checked after the open so a swap between check and use is caught
	if err := verifyPathComponents(absPath); err != nil {
		return nil, err
	}

	return readFileContent(file, absPath)
}

// SafeWriteFile replaces filePath with content.
// The data is written to a temporary file in the same directory and renamed
// over the destination, so readers never observe a partially written file.
// An existing destination must be a regular file and not a symlink.
func (osFS) SafeWriteFile(filePath string, content []byte, perm os.FileMode) (err error) {
	absPath, err := filepath.Abs(filePath)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidFilePath, err)
	}

	if err := verifyPathComponents(absPath); err != nil {
		return err
	}

	fi, err := os.Lstat(absPath)
	switch {
	case err == nil:
		if fi.Mode()&os.ModeSymlink != 0 {
			return fmt.Errorf("%w: %s", ErrIsSymlink, absPath)
		}
		if !fi.Mode().IsRegular() {
			return fmt.Errorf("%w: not a regular file: %s", ErrInvalidFilePath, absPath)
		}
	case !os.IsNotExist(err):
		return fmt.Errorf("failed to stat %s: %w", absPath, err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(absPath), "."+filepath.Base(absPath)+".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temporary file: %w", err)
	}
	tmpPath := tmp.Name()
	defer func() {
		if err != nil {
			_ = tmp.Close()
			_ = os.Remove(tmpPath)
		}
	}()

	if _, err = tmp.Write(content); err != nil {
		return fmt.Errorf("failed to write to %s: %w", tmpPath, err)
	}
	if err = tmp.Chmod(perm); err != nil {
		return fmt.Errorf("failed to set permissions on %s: %w", tmpPath, err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("failed to close file: %w", err)
	}
	if err = os.Rename(tmpPath, absPath); err != nil {
		return fmt.Errorf("failed to move %s to %s: %w", tmpPath, absPath, err)
	}

	return nil
}

// SafeCreateFile opens filePath for writing, creating or truncating it.
// It is used for log files that stay open for the lifetime of a run.
func SafeCreateFile(filePath string, perm os.FileMode) (*os.File, error) {
	absPath, err := filepath.Abs(filePath)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidFilePath, err)
	}

	// #nosec G304 - absPath is cleaned above and O_NOFOLLOW rejects a final symlink
	file, err := os.OpenFile(absPath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC|syscall.O_NOFOLLOW, perm)
	if err != nil {
		if isNoFollowError(err) {
			return nil, ErrIsSymlink
		}
		return nil, fmt.Errorf("failed to open file: %w", err)
	}

	if err := verifyPathComponents(absPath); err != nil {
		_ = file.Close()
		return nil, err
	}

	fi, err := file.Stat()
	if err != nil {
		_ = file.Close()
		return nil, fmt.Errorf("failed to get file info: %w", err)
	}
	if !fi.Mode().IsRegular() {
		_ = file.Close()
		return nil, fmt.Errorf("%w: not a regular file: %s", ErrInvalidFilePath, absPath)
	}

	return file, nil
}

// verifyPathComponents checks if any directory component of the path is a symlink.
func verifyPathComponents(absPath string) error {
	current := filepath.Dir(absPath)
	for {
		parent := filepath.Dir(current)
		if parent == current {
			break // Reached root directory
		}

		fi, err := os.Lstat(current)
		if err != nil {
			if os.IsNotExist(err) {
				return nil
			}
			return fmt.Errorf("failed to stat %s: %w", current, err)
		}

		if fi.Mode()&os.ModeSymlink != 0 {
			return fmt.Errorf("%w: %s", ErrIsSymlink, current)
		}

		current = parent
	}

	return nil
}

// readFileContent reads and validates the content of an already opened file
func readFileContent(file *os.File, filePath string) ([]byte, error) {
	fileInfo, err := file.Stat()
	if err != nil {
		return nil, fmt.Errorf("failed to get file info: %w", err)
	}

	if !fileInfo.Mode().IsRegular() {
		return nil, fmt.Errorf("%w: not a regular file: %s", ErrInvalidFilePath, filePath)
	}

	if fileInfo.Size() > MaxFileSize {
		return nil, ErrFileTooLarge
	}

	content, err := io.ReadAll(io.LimitReader(file, MaxFileSize+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	if int64(len(content)) > MaxFileSize {
		return nil, ErrFileTooLarge
	}

	return content, nil
}
