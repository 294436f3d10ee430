//go:build unix

package ioerr

import (
	"syscall"

	"golang.org/x/sys/unix"

	"github.com/kbukum/faultline/errors"
)

var errnoTable = map[syscall.Errno]errors.IOCode{
	unix.ENOENT:        errors.IONotFound,
	unix.EACCES:        errors.IOPermissionDenied,
	unix.EPERM:         errors.IOPermissionDenied,
	unix.ECONNREFUSED:  errors.IOConnectionRefused,
	unix.ECONNRESET:    errors.IOConnectionReset,
	unix.ENOTCONN:      errors.IONotConnected,
	unix.ECONNABORTED:  errors.IOConnectionAborted,
	unix.EADDRINUSE:    errors.IOAddrInUse,
	unix.EADDRNOTAVAIL: errors.IOAddrNotAvailable,
	unix.EEXIST:        errors.IOAlreadyExists,
	unix.EAGAIN:        errors.IOWouldBlock,
	unix.EINPROGRESS:   errors.IOWouldBlock,
	unix.EINVAL:        errors.IOInvalidInput,
	unix.EPIPE:         errors.IOBrokenPipe,
	unix.ETIMEDOUT:     errors.IOTimedOut,
	unix.EINTR:         errors.IOInterrupted,
	unix.ENOSYS:        errors.IOUnsupported,
	unix.EOPNOTSUPP:    errors.IOUnsupported,
	unix.ENOMEM:        errors.IOOutOfMemory,
	unix.EIO:           errors.IOOther,
}

func errnoCode(errno syscall.Errno) (errors.IOCode, bool) {
	code, ok := errnoTable[errno]
	return code, ok
}
