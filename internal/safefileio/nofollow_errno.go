//go:build !netbsd

package safefileio

import "syscall"

// ELOOP on Linux and macOS, EMLINK on FreeBSD.
var noFollowErrnos = []syscall.Errno{syscall.ELOOP, syscall.EMLINK}
