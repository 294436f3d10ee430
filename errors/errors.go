package errors

import (
	"fmt"
	"slices"
)

// Error is the unified error type. Build it with the constructors in this
// file or with one of the translator packages; read it through accessors.
type Error struct {
	kind    Kind
	message string
	char    string
	index   uint64
	code    int16
	io      IOKind
	store   StoreError
	tls     TLSError
	http    HTTPError
}

// Error returns a compact human-readable rendering. Callers should branch on
// Kind and the accessors, never on this text.
func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	head := e.kind.String()
	if e.kind.Valid() {
		head = kindMessages[e.kind]
	}
	switch e.kind {
	case KindIO:
		return head + ": " + e.io.String()
	case KindStore:
		return head + ": " + e.store.String()
	case KindTLS:
		return head + ": " + e.tls.String()
	case KindHTTP:
		return head + ": " + e.http.String()
	case KindInvalidHexCharacter:
		return fmt.Sprintf("%s %q at index %d", head, e.char, e.index)
	case KindJSONRPC:
		return fmt.Sprintf("%s %d: %s", head, e.code, e.message)
	}
	if e.kind.carriesMessage() {
		return head + ": " + e.message
	}
	return head
}

// Is reports structural equality with another *Error so errors.Is works with
// values built by the constructors.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return Compare(e, t) == 0
}

// Equal reports structural equality.
func (e *Error) Equal(o *Error) bool { return Compare(e, o) == 0 }

// Kind returns the discriminant. A nil *Error reports KindUnspecified.
func (e *Error) Kind() Kind {
	if e == nil {
		return KindUnspecified
	}
	return e.kind
}

// Message returns the string payload of InvalidUTF8, Transaction, JSONRPC,
// Serialization and Unspecified errors, and "" otherwise.
func (e *Error) Message() string {
	if e == nil {
		return ""
	}
	return e.message
}

// HexChar returns the offending character and its byte index for
// KindInvalidHexCharacter.
func (e *Error) HexChar() (char string, index uint64, ok bool) {
	if e == nil || e.kind != KindInvalidHexCharacter {
		return "", 0, false
	}
	return e.char, e.index, true
}

// JSONRPC returns the remote error code and message for KindJSONRPC.
func (e *Error) JSONRPC() (code int16, message string, ok bool) {
	if e == nil || e.kind != KindJSONRPC {
		return 0, "", false
	}
	return e.code, e.message, true
}

// IO returns the nested I/O category.
func (e *Error) IO() (IOKind, bool) {
	if e == nil || e.kind != KindIO {
		return IOKind{}, false
	}
	return e.io, true
}

// Store returns the nested embedded-store category.
func (e *Error) Store() (StoreError, bool) {
	if e == nil || e.kind != KindStore {
		return StoreError{}, false
	}
	return e.store, true
}

// HTTP returns the nested transport category.
func (e *Error) HTTP() (HTTPError, bool) {
	if e == nil || e.kind != KindHTTP {
		return HTTPError{}, false
	}
	return e.http, true
}

// TLS returns a copy of the nested secure-channel category.
func (e *Error) TLS() (TLSError, bool) {
	if e == nil || e.kind != KindTLS {
		return TLSError{}, false
	}
	t := e.tls
	t.ExpectedContent = slices.Clone(t.ExpectedContent)
	t.ExpectedHandshake = slices.Clone(t.ExpectedHandshake)
	return t, true
}

func (k Kind) carriesMessage() bool {
	switch k {
	case KindInvalidUTF8, KindTransaction, KindJSONRPC, KindSerialization, KindUnspecified:
		return true
	}
	return false
}

// --- Constructors ---

// New creates an error of a unit kind. Payload-carrying kinds get their zero
// payload; use the dedicated constructors for those.
func New(kind Kind) *Error { return &Error{kind: kind} }

// InvalidUTF8 reports text that failed UTF-8 validation, with the raw
// diagnostic of the decoder.
func InvalidUTF8(diag string) *Error { return &Error{kind: KindInvalidUTF8, message: diag} }

// FromIO wraps an I/O category value.
func FromIO(k IOKind) *Error { return &Error{kind: KindIO, io: k} }

// InvalidHexCharacter reports an invalid hex digit and its byte index.
func InvalidHexCharacter(char string, index uint64) *Error {
	return &Error{kind: KindInvalidHexCharacter, char: char, index: index}
}

// FromStore wraps an embedded-store category value.
func FromStore(s StoreError) *Error { return &Error{kind: KindStore, store: s} }

// FromTLS wraps a secure-channel category value. Expected-type lists are
// copied so the caller keeps ownership of its slices.
func FromTLS(t TLSError) *Error {
	t.ExpectedContent = slices.Clone(t.ExpectedContent)
	t.ExpectedHandshake = slices.Clone(t.ExpectedHandshake)
	return &Error{kind: KindTLS, tls: t}
}

// FromHTTP wraps a transport category value.
func FromHTTP(h HTTPError) *Error { return &Error{kind: KindHTTP, http: h} }

// Transaction reports a transaction-layer failure.
func Transaction(msg string) *Error { return &Error{kind: KindTransaction, message: msg} }

// JSONRPC reports an error object returned by a JSON-RPC peer.
func JSONRPC(code int16, msg string) *Error {
	return &Error{kind: KindJSONRPC, code: code, message: msg}
}

// Serialization reports a failure to encode or decode a document.
func Serialization(msg string) *Error { return &Error{kind: KindSerialization, message: msg} }

// Unspecified is the escape hatch for conditions with no dedicated kind.
func Unspecified(msg string) *Error { return &Error{kind: KindUnspecified, message: msg} }

// Unspecifiedf is Unspecified with fmt.Sprintf formatting.
func Unspecifiedf(format string, args ...any) *Error {
	return Unspecified(fmt.Sprintf(format, args...))
}
