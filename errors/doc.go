// Package errors provides the unified error taxonomy of the toolkit.
//
// Every failure, whatever library produced it, is reported as one *Error: a
// closed sum type discriminated by Kind. Payload-carrying kinds nest one of
// the leaf categories (IOKind, HTTPError, TLSError, StoreError) or carry
// their own small payload. Values are immutable once built.
//
// Translation from native errors lives in capability-gated packages so a
// binary only links the libraries it uses:
//
//	ioerr     os, io, syscall errno
//	hexerr    encoding/hex
//	jsonerr   JSON decoding
//	tlserr    crypto/tls, crypto/x509, SCT checks
//	httperr   net/http and the toolkit's HTTP client
//	kvstore   badger-backed embedded store
//
// Two encodings are provided. MarshalBinary writes XDR (RFC 4506): a uint32
// discriminant followed by the payload in declaration order. MarshalJSON and
// MarshalYAML write a named-field document whose "kind" tag is Kind.String().
// Declared kinds and codes are append-only.
package errors
