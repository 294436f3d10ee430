package errors

import "fmt"

// IOCode enumerates OS-level I/O failure reasons.
type IOCode uint32

const (
	IONotFound IOCode = iota
	IOPermissionDenied
	IOConnectionRefused
	IOConnectionReset
	IONotConnected
	IOConnectionAborted
	IOAddrInUse
	IOAddrNotAvailable
	IOAlreadyExists
	IOWouldBlock
	IOInvalidInput
	IOInvalidData
	IOBrokenPipe
	IOTimedOut
	IOWriteZero
	IOInterrupted
	IOUnsupported
	IOUnexpectedEOF
	IOOutOfMemory
	IOOther
	// IOUnspecified carries a rendered diagnostic in IOKind.Detail.
	IOUnspecified

	ioCodeCount
)

var ioCodeNames = [...]string{
	IONotFound:          "NotFound",
	IOPermissionDenied:  "PermissionDenied",
	IOConnectionRefused: "ConnectionRefused",
	IOConnectionReset:   "ConnectionReset",
	IONotConnected:      "NotConnected",
	IOConnectionAborted: "ConnectionAborted",
	IOAddrInUse:         "AddrInUse",
	IOAddrNotAvailable:  "AddrNotAvailable",
	IOAlreadyExists:     "AlreadyExists",
	IOWouldBlock:        "WouldBlock",
	IOInvalidInput:      "InvalidInput",
	IOInvalidData:       "InvalidData",
	IOBrokenPipe:        "BrokenPipe",
	IOTimedOut:          "TimedOut",
	IOWriteZero:         "WriteZero",
	IOInterrupted:       "Interrupted",
	IOUnsupported:       "Unsupported",
	IOUnexpectedEOF:     "UnexpectedEof",
	IOOutOfMemory:       "OutOfMemory",
	IOOther:             "Other",
	IOUnspecified:       "Unspecified",
}

func (c IOCode) String() string { return enumName(ioCodeNames[:], uint32(c), "IOCode") }

// Valid reports whether c is a declared code.
func (c IOCode) Valid() bool { return c < ioCodeCount }

// IOKind is the I/O leaf category.
type IOKind struct {
	Code IOCode
	// Detail is only set for IOUnspecified.
	Detail string
}

// IO returns the payload-free I/O kind for code.
func IO(code IOCode) IOKind { return IOKind{Code: code} }

// IOUnspecifiedKind returns an IOUnspecified kind carrying detail.
func IOUnspecifiedKind(detail string) IOKind {
	return IOKind{Code: IOUnspecified, Detail: detail}
}

func (k IOKind) String() string {
	if k.Code == IOUnspecified {
		return fmt.Sprintf("%s(%s)", k.Code, k.Detail)
	}
	return k.Code.String()
}

// Compare orders I/O kinds by code, then by detail.
func (k IOKind) Compare(o IOKind) int {
	if c := cmpUint(uint32(k.Code), uint32(o.Code)); c != 0 {
		return c
	}
	if k.Code == IOUnspecified {
		return cmpString(k.Detail, o.Detail)
	}
	return 0
}

func parseIOCode(tag string) (IOCode, bool) {
	v, ok := enumIndex(ioCodeNames[:], tag)
	return IOCode(v), ok
}
