package errors

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"math"

	xdr "github.com/rasky/go-xdr/xdr2"
)

// Limits applied while decoding untrusted input.
const (
	maxStringLength = 1 << 20
	maxListLength   = 1 << 10
)

// MarshalBinary encodes e as XDR: the uint32 Kind followed by its payload in
// declaration order. Nested categories use the same layout recursively and
// lists are a uint32 count followed by the elements.
func (e *Error) MarshalBinary() ([]byte, error) {
	var buf bytes.Buffer
	if err := e.EncodeXDR(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// UnmarshalBinary decodes a value written by MarshalBinary. Trailing bytes
// are rejected.
func (e *Error) UnmarshalBinary(data []byte) error {
	r := bytes.NewReader(data)
	d, err := DecodeXDR(r)
	if err != nil {
		return err
	}
	if r.Len() != 0 {
		return fmt.Errorf("errors: %d trailing bytes after XDR value", r.Len())
	}
	*e = *d
	return nil
}

// EncodeXDR writes e to w.
func (e *Error) EncodeXDR(w io.Writer) error {
	if e == nil {
		return fmt.Errorf("errors: cannot encode nil *Error")
	}
	x := &xdrWriter{enc: xdr.NewEncoder(w)}
	x.error(e)
	return x.err
}

// DecodeXDR reads one *Error from r.
func DecodeXDR(r io.Reader) (*Error, error) {
	x := &xdrReader{r: r, dec: xdr.NewDecoder(r)}
	e := x.error()
	if x.err != nil {
		return nil, x.err
	}
	return e, nil
}

// --- encoding ---

type xdrWriter struct {
	enc *xdr.Encoder
	err error
}

func (w *xdrWriter) uint(v uint32) {
	if w.err == nil {
		_, w.err = w.enc.EncodeUint(v)
	}
}

func (w *xdrWriter) int(v int32) {
	if w.err == nil {
		_, w.err = w.enc.EncodeInt(v)
	}
}

func (w *xdrWriter) uhyper(v uint64) {
	if w.err == nil {
		_, w.err = w.enc.EncodeUhyper(v)
	}
}

func (w *xdrWriter) string(s string) {
	if w.err == nil {
		_, w.err = w.enc.EncodeString(s)
	}
}

func (w *xdrWriter) error(e *Error) {
	w.uint(uint32(e.kind))
	switch e.kind {
	case KindIO:
		w.ioKind(e.io)
	case KindInvalidHexCharacter:
		w.string(e.char)
		w.uhyper(e.index)
	case KindStore:
		w.uint(uint32(e.store.Code))
		w.string(e.store.Message)
	case KindTLS:
		w.tlsError(e.tls)
	case KindHTTP:
		w.uint(uint32(e.http.Code))
		if e.http.Code == HTTPOther {
			w.string(e.http.Message)
		}
	case KindJSONRPC:
		w.int(int32(e.code))
		w.string(e.message)
	default:
		if e.kind.carriesMessage() {
			w.string(e.message)
		}
	}
}

func (w *xdrWriter) ioKind(k IOKind) {
	w.uint(uint32(k.Code))
	if k.Code == IOUnspecified {
		w.string(k.Detail)
	}
}

func (w *xdrWriter) coded(code uint32, unknown bool, raw uint8) {
	w.uint(code)
	if unknown {
		w.uint(uint32(raw))
	}
}

func (w *xdrWriter) contentType(t ContentType) {
	w.coded(uint32(t.Code), t.Code == ContentUnknown, t.Raw)
}

func (w *xdrWriter) handshakeType(t HandshakeType) {
	w.coded(uint32(t.Code), t.Code == HandshakeUnknown, t.Raw)
}

func (w *xdrWriter) tlsError(t TLSError) {
	w.uint(uint32(t.Code))
	switch t.Code {
	case TLSInappropriateMessage:
		w.uint(uint32(len(t.ExpectedContent)))
		for _, ct := range t.ExpectedContent {
			w.contentType(ct)
		}
		w.contentType(t.Content)
	case TLSInappropriateHandshakeMessage:
		w.uint(uint32(len(t.ExpectedHandshake)))
		for _, ht := range t.ExpectedHandshake {
			w.handshakeType(ht)
		}
		w.handshakeType(t.Handshake)
	case TLSCorruptMessagePayload:
		w.contentType(t.Content)
	case TLSAlertReceived:
		w.coded(uint32(t.Alert.Code), t.Alert.Code == AlertUnknown, t.Alert.Raw)
	case TLSInvalidSCT:
		w.uint(uint32(t.SCT))
	default:
		if t.Code.carriesMessage() {
			w.string(t.Message)
		}
	}
}

// --- decoding ---

type xdrReader struct {
	r   io.Reader
	dec *xdr.Decoder
	err error
}

func (r *xdrReader) fail(format string, args ...any) {
	if r.err == nil {
		r.err = fmt.Errorf("errors: "+format, args...)
	}
}

func (r *xdrReader) uint() uint32 {
	if r.err != nil {
		return 0
	}
	v, _, err := r.dec.DecodeUint()
	if err != nil {
		r.fail("read uint32: %v", err)
	}
	return v
}

func (r *xdrReader) int() int32 {
	if r.err != nil {
		return 0
	}
	v, _, err := r.dec.DecodeInt()
	if err != nil {
		r.fail("read int32: %v", err)
	}
	return v
}

func (r *xdrReader) uhyper() uint64 {
	if r.err != nil {
		return 0
	}
	v, _, err := r.dec.DecodeUhyper()
	if err != nil {
		r.fail("read uint64: %v", err)
	}
	return v
}

// string reads XDR string data directly so the declared length can be
// checked before allocating.
func (r *xdrReader) string() string {
	if r.err != nil {
		return ""
	}
	var length uint32
	if err := binary.Read(r.r, binary.BigEndian, &length); err != nil {
		r.fail("read string length: %v", err)
		return ""
	}
	if length > maxStringLength {
		r.fail("string length %d exceeds maximum %d", length, maxStringLength)
		return ""
	}
	data := make([]byte, length)
	if _, err := io.ReadFull(r.r, data); err != nil {
		r.fail("read string data: %v", err)
		return ""
	}
	if padding := (4 - (length % 4)) % 4; padding > 0 {
		var pad [3]byte
		if _, err := io.ReadFull(r.r, pad[:padding]); err != nil {
			r.fail("skip string padding: %v", err)
			return ""
		}
	}
	return string(data)
}

func (r *xdrReader) raw() uint8 {
	v := r.uint()
	if v > math.MaxUint8 {
		r.fail("raw wire value %d does not fit in a byte", v)
	}
	return uint8(v)
}

func (r *xdrReader) listLength() int {
	n := r.uint()
	if n > maxListLength {
		r.fail("list length %d exceeds maximum %d", n, maxListLength)
		return 0
	}
	return int(n)
}

func (r *xdrReader) error() *Error {
	kind := Kind(r.uint())
	if r.err != nil {
		return nil
	}
	if !kind.Valid() {
		r.fail("unknown kind %d", uint32(kind))
		return nil
	}
	e := &Error{kind: kind}
	switch kind {
	case KindIO:
		e.io = r.ioKind()
	case KindInvalidHexCharacter:
		e.char = r.string()
		e.index = r.uhyper()
	case KindStore:
		code := StoreCode(r.uint())
		if r.err == nil && !code.Valid() {
			r.fail("unknown store code %d", uint32(code))
		}
		e.store = StoreError{Code: code, Message: r.string()}
	case KindTLS:
		e.tls = r.tlsError()
	case KindHTTP:
		code := HTTPCode(r.uint())
		if r.err == nil && !code.Valid() {
			r.fail("unknown http code %d", uint32(code))
		}
		e.http = HTTPError{Code: code}
		if code == HTTPOther {
			e.http.Message = r.string()
		}
	case KindJSONRPC:
		v := r.int()
		if v < math.MinInt16 || v > math.MaxInt16 {
			r.fail("json-rpc code %d out of range", v)
		}
		e.code = int16(v)
		e.message = r.string()
	default:
		if kind.carriesMessage() {
			e.message = r.string()
		}
	}
	return e
}

func (r *xdrReader) ioKind() IOKind {
	code := IOCode(r.uint())
	if r.err == nil && !code.Valid() {
		r.fail("unknown io code %d", uint32(code))
	}
	k := IOKind{Code: code}
	if code == IOUnspecified {
		k.Detail = r.string()
	}
	return k
}

func (r *xdrReader) contentType() ContentType {
	code := ContentTypeCode(r.uint())
	if r.err == nil && code >= contentTypeCount {
		r.fail("unknown content type %d", uint32(code))
	}
	t := ContentType{Code: code}
	if code == ContentUnknown {
		t.Raw = r.raw()
	}
	return t
}

func (r *xdrReader) handshakeType() HandshakeType {
	code := HandshakeTypeCode(r.uint())
	if r.err == nil && code >= handshakeTypeCount {
		r.fail("unknown handshake type %d", uint32(code))
	}
	t := HandshakeType{Code: code}
	if code == HandshakeUnknown {
		t.Raw = r.raw()
	}
	return t
}

func (r *xdrReader) tlsError() TLSError {
	code := TLSCode(r.uint())
	if r.err == nil && !code.Valid() {
		r.fail("unknown tls code %d", uint32(code))
	}
	t := TLSError{Code: code}
	switch code {
	case TLSInappropriateMessage:
		n := r.listLength()
		t.ExpectedContent = make([]ContentType, 0, n)
		for i := 0; i < n && r.err == nil; i++ {
			t.ExpectedContent = append(t.ExpectedContent, r.contentType())
		}
		t.Content = r.contentType()
	case TLSInappropriateHandshakeMessage:
		n := r.listLength()
		t.ExpectedHandshake = make([]HandshakeType, 0, n)
		for i := 0; i < n && r.err == nil; i++ {
			t.ExpectedHandshake = append(t.ExpectedHandshake, r.handshakeType())
		}
		t.Handshake = r.handshakeType()
	case TLSCorruptMessagePayload:
		t.Content = r.contentType()
	case TLSAlertReceived:
		ac := AlertCode(r.uint())
		if r.err == nil && ac >= alertCodeCount {
			r.fail("unknown alert %d", uint32(ac))
		}
		t.Alert = AlertDescription{Code: ac}
		if ac == AlertUnknown {
			t.Alert.Raw = r.raw()
		}
	case TLSInvalidSCT:
		t.SCT = SCTError(r.uint())
		if r.err == nil && !t.SCT.Valid() {
			r.fail("unknown sct error %d", uint32(t.SCT))
		}
	default:
		if code.carriesMessage() {
			t.Message = r.string()
		}
	}
	return t
}
