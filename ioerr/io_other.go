//go:build !unix

package ioerr

import (
	"syscall"

	"github.com/kbukum/faultline/errors"
)

// errnoCode has no table off unix; the io/fs sentinels still apply because
// syscall.Errno implements Is for them.
func errnoCode(syscall.Errno) (errors.IOCode, bool) { return 0, false }
