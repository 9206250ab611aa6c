package safefileio

import (
	"errors"
	"os"
	"slices"
	"syscall"
)

// isNoFollowError reports whether err is what open(2) returns for a final
// symlink under O_NOFOLLOW on this platform.
func isNoFollowError(err error) bool {
	var pathErr *os.PathError
	if !errors.As(err, &pathErr) {
		return false
	}
	var errno syscall.Errno
	if !errors.As(pathErr.Err, &errno) {
		return false
	}
	return slices.Contains(noFollowErrnos, errno)
}
