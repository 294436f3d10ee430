// Package httperr translates net/http client failures into the transport
// category of the unified error type.
//
// Failures raised by the client policy in httpclient (redirect handling,
// IDNA conversion, feature switches, proxy configuration) are reported
// through the sentinels declared here. Failures raised by net/http itself
// are recognised by type first and by message fragment second. Nested TLS
// failures recurse into tlserr and nested I/O failures into ioerr.
package httperr

import (
	stderrors "errors"
	"fmt"
	"net"
	"net/url"
	"strings"
	"unicode/utf8"

	"github.com/kbukum/faultline/errors"
	"github.com/kbukum/faultline/ioerr"
	"github.com/kbukum/faultline/tlserr"
)

// Client policy failures.
var (
	ErrRedirectLocationMissing   = stderrors.New("redirect response has no Location header")
	ErrInfiniteRedirectionLoop   = stderrors.New("redirect loop detected")
	ErrTooManyRedirections       = stderrors.New("too many redirects")
	ErrInvalidUTF8InResponse     = stderrors.New("response head is not valid utf-8")
	ErrPunycodeConversionFailed  = stderrors.New("punycode conversion failed")
	ErrHTTPSNotEnabled           = stderrors.New("https is disabled")
	ErrPunycodeNotEnabled        = stderrors.New("internationalized domain names are disabled")
	ErrBadProxy                  = stderrors.New("malformed proxy url")
	ErrBadProxyCreds             = stderrors.New("malformed proxy credentials")
	ErrHeadersOverflow           = stderrors.New("response headers too large")
	ErrStatusLineOverflow        = stderrors.New("response status line too large")
	ErrMalformedChunkLength      = stderrors.New("malformed chunk length")
	ErrMalformedChunkEnd         = stderrors.New("malformed chunk end")
	ErrMalformedContentLength    = stderrors.New("malformed content length")
	ErrProxyAuthenticationFailed = stderrors.New("proxy rejected credentials")
)

var sentinels = []struct {
	err  error
	code errors.HTTPCode
}{
	{ErrRedirectLocationMissing, errors.HTTPRedirectLocationMissing},
	{ErrInfiniteRedirectionLoop, errors.HTTPInfiniteRedirectionLoop},
	{ErrTooManyRedirections, errors.HTTPTooManyRedirections},
	{ErrInvalidUTF8InResponse, errors.HTTPInvalidUTF8InResponse},
	{ErrPunycodeConversionFailed, errors.HTTPPunycodeConversionFailed},
	{ErrHTTPSNotEnabled, errors.HTTPSFeatureNotEnabled},
	{ErrPunycodeNotEnabled, errors.HTTPPunycodeFeatureNotEnabled},
	{ErrBadProxy, errors.HTTPBadProxy},
	{ErrBadProxyCreds, errors.HTTPBadProxyCreds},
	{ErrHeadersOverflow, errors.HTTPHeadersOverflow},
	{ErrStatusLineOverflow, errors.HTTPStatusLineOverflow},
	{ErrMalformedChunkLength, errors.HTTPMalformedChunkLength},
	{ErrMalformedChunkEnd, errors.HTTPMalformedChunkEnd},
	{ErrMalformedContentLength, errors.HTTPMalformedContentLength},
	{ErrProxyAuthenticationFailed, errors.HTTPInvalidProxyCreds},
}

// Message fragments of net/http errors, checked in order.
var messageRules = []struct {
	fragment string
	code     errors.HTTPCode
}{
	{"invalid byte in chunk length", errors.HTTPMalformedChunkLength},
	{"chunk length too large", errors.HTTPMalformedChunkLength},
	{"empty hex number for chunk length", errors.HTTPMalformedChunkLength},
	{"malformed chunked encoding", errors.HTTPMalformedChunkEnd},
	{"chunked encoding contains too much non-data", errors.HTTPMalformedChunkEnd},
	{"bad Content-Length", errors.HTTPMalformedContentLength},
	{"multiple Content-Length headers", errors.HTTPMalformedContentLength},
	{"response headers exceeded", errors.HTTPHeadersOverflow},
	{"invalid proxy address", errors.HTTPBadProxy},
}

// BodyUTF8Error reports a response body that is not valid UTF-8.
type BodyUTF8Error struct {
	// Offset is the byte index of the first invalid sequence.
	Offset int
	// Length is the length of the invalid sequence.
	Length int
}

func (e *BodyUTF8Error) Error() string {
	return fmt.Sprintf("invalid utf-8 sequence of %d bytes from index %d", e.Length, e.Offset)
}

// CheckUTF8 returns a *BodyUTF8Error locating the first invalid sequence
// in body, or nil.
func CheckUTF8(body []byte) error {
	for i := 0; i < len(body); {
		r, size := utf8.DecodeRune(body[i:])
		if r == utf8.RuneError && size <= 1 {
			return &BodyUTF8Error{Offset: i, Length: 1}
		}
		i += size
	}
	return nil
}

// Translate converts an HTTP client failure into a unified error. nil
// yields nil, and an *errors.Error already in the chain is returned
// unchanged.
//
// Mapping, first match wins:
//   - client policy sentinels → their transport code
//   - *BodyUTF8Error → InvalidUTF8
//   - IDNA failures → PunycodeConversionFailed
//   - "stopped after N redirects" → TooManyRedirections
//   - unsupported "https" scheme → HttpsFeatureNotEnabled
//   - proxyconnect failures → InvalidProxyCreds, tlserr, ioerr or ProxyConnect
//   - unresolvable host → AddressNotFound
//   - crypto/tls and crypto/x509 failures → tlserr
//   - net/http framing messages → their transport code
//   - recognised I/O reasons → ioerr
//   - anything else → Other carrying the innermost message
func Translate(err error) *errors.Error {
	if err == nil {
		return nil
	}
	if e, ok := errors.As(err); ok {
		return e
	}
	for _, s := range sentinels {
		if stderrors.Is(err, s.err) {
			return errors.FromHTTP(errors.HTTP(s.code))
		}
	}

	var utf8Err *BodyUTF8Error
	if stderrors.As(err, &utf8Err) {
		return errors.InvalidUTF8(utf8Err.Error())
	}

	msg := err.Error()
	if strings.Contains(msg, "idna: ") {
		return errors.FromHTTP(errors.HTTP(errors.HTTPPunycodeConversionFailed))
	}
	if strings.Contains(msg, "stopped after ") && strings.Contains(msg, " redirects") {
		return errors.FromHTTP(errors.HTTP(errors.HTTPTooManyRedirections))
	}
	if strings.Contains(msg, `unsupported protocol scheme "https"`) {
		return errors.FromHTTP(errors.HTTP(errors.HTTPSFeatureNotEnabled))
	}

	var opErr *net.OpError
	if stderrors.As(err, &opErr) && opErr.Op == "proxyconnect" {
		return proxyConnect(opErr)
	}

	var dnsErr *net.DNSError
	if stderrors.As(err, &dnsErr) && dnsErr.IsNotFound {
		return errors.FromHTTP(errors.HTTP(errors.HTTPAddressNotFound))
	}

	if t, ok := tlserr.Classify(err); ok {
		return errors.FromTLS(t)
	}

	for _, r := range messageRules {
		if strings.Contains(msg, r.fragment) {
			return errors.FromHTTP(errors.HTTP(r.code))
		}
	}

	if _, ok := ioerr.Code(err); ok {
		return ioerr.Translate(err)
	}
	return errors.FromHTTP(errors.HTTPOtherError(innermost(err)))
}

// proxyConnect classifies a failure to establish the proxy tunnel. A TLS or
// I/O failure on the way to the proxy keeps its own category.
func proxyConnect(opErr *net.OpError) *errors.Error {
	if opErr.Err != nil && strings.Contains(opErr.Err.Error(), "Proxy Authentication Required") {
		return errors.FromHTTP(errors.HTTP(errors.HTTPInvalidProxyCreds))
	}
	if t, ok := tlserr.Classify(opErr); ok {
		return errors.FromTLS(t)
	}
	if _, ok := ioerr.Code(opErr.Err); ok {
		return ioerr.Translate(opErr.Err)
	}
	return errors.FromHTTP(errors.HTTP(errors.HTTPProxyConnect))
}

// innermost drops the url.Error operation prefix ("Get \"...\": ").
func innermost(err error) string {
	var urlErr *url.Error
	if stderrors.As(err, &urlErr) && urlErr.Err != nil {
		return urlErr.Err.Error()
	}
	return err.Error()
}
