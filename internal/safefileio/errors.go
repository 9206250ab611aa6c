// Package safefileio provides file I/O helpers that refuse to follow symbolic
// links and only operate on regular files. Asset sources are read and
// generated headers are written through this package.
package safefileio

import "errors"

var (
	// ErrInvalidFilePath indicates that the specified file path is invalid
	// or does not name a regular file.
	ErrInvalidFilePath = errors.New("invalid file path")

	// ErrIsSymlink indicates that the specified path is a symbolic link, which is not allowed.
	ErrIsSymlink = errors.New("path is a symbolic link")

	// ErrFileTooLarge indicates that the file exceeds MaxFileSize.
	ErrFileTooLarge = errors.New("file too large")
)
