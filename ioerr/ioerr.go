// Package ioerr translates Go I/O failures into the unified error type.
//
// Classification keys off the symbolic reason of the failure: the platform
// errno when one is in the chain, then the io/fs sentinels, then timeouts.
// Anything unrecognised becomes an Unspecified I/O kind carrying the
// rendered diagnostic.
package ioerr

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"io/fs"
	"net"
	"os"
	"syscall"

	"github.com/kbukum/faultline/errors"
)

// Translate converts err into a KindIO error. nil yields nil, and an
// *errors.Error already in the chain is returned unchanged.
func Translate(err error) *errors.Error {
	if err == nil {
		return nil
	}
	if e, ok := errors.As(err); ok {
		return e
	}
	return errors.FromIO(Kind(err))
}

// Kind classifies err into the I/O leaf category.
func Kind(err error) errors.IOKind {
	if code, ok := Code(err); ok {
		return errors.IO(code)
	}
	return errors.IOUnspecifiedKind(Render(err))
}

// Code returns the I/O code for err if its reason is recognised.
//
// Mapping, first match wins:
//   - syscall.Errno → platform errno table
//   - io.EOF, io.ErrUnexpectedEOF → UnexpectedEof
//   - io.ErrShortWrite → WriteZero
//   - io.ErrClosedPipe → BrokenPipe
//   - net.ErrClosed → NotConnected
//   - fs.ErrNotExist → NotFound
//   - fs.ErrPermission → PermissionDenied
//   - fs.ErrExist → AlreadyExists
//   - fs.ErrInvalid → InvalidInput
//   - errors.ErrUnsupported, os.ErrNoDeadline → Unsupported
//   - deadline exceeded or Timeout() == true → TimedOut
//   - context.Canceled → Interrupted
func Code(err error) (errors.IOCode, bool) {
	if err == nil {
		return 0, false
	}
	var errno syscall.Errno
	if stderrors.As(err, &errno) {
		if code, ok := errnoCode(errno); ok {
			return code, true
		}
	}
	for _, s := range sentinels {
		if stderrors.Is(err, s.err) {
			return s.code, true
		}
	}
	if isTimeout(err) {
		return errors.IOTimedOut, true
	}
	if stderrors.Is(err, context.Canceled) {
		return errors.IOInterrupted, true
	}
	return 0, false
}

// Render formats err as "<type> - `message`", the diagnostic carried by
// unrecognised failures.
func Render(err error) string {
	return fmt.Sprintf("<%T> - `%s`", err, err.Error())
}

var sentinels = []struct {
	err  error
	code errors.IOCode
}{
	{io.EOF, errors.IOUnexpectedEOF},
	{io.ErrUnexpectedEOF, errors.IOUnexpectedEOF},
	{io.ErrShortWrite, errors.IOWriteZero},
	{io.ErrClosedPipe, errors.IOBrokenPipe},
	{net.ErrClosed, errors.IONotConnected},
	{fs.ErrNotExist, errors.IONotFound},
	{fs.ErrPermission, errors.IOPermissionDenied},
	{fs.ErrExist, errors.IOAlreadyExists},
	{fs.ErrInvalid, errors.IOInvalidInput},
	{stderrors.ErrUnsupported, errors.IOUnsupported},
	{os.ErrNoDeadline, errors.IOUnsupported},
	{os.ErrDeadlineExceeded, errors.IOTimedOut},
	{context.DeadlineExceeded, errors.IOTimedOut},
}

func isTimeout(err error) bool {
	var t interface{ Timeout() bool }
	return stderrors.As(err, &t) && t.Timeout()
}
