package errors

import "fmt"

// HTTPCode enumerates transport failures.
type HTTPCode uint32

const (
	HTTPMalformedChunkLength HTTPCode = iota
	HTTPMalformedChunkEnd
	HTTPMalformedContentLength
	HTTPHeadersOverflow
	HTTPStatusLineOverflow
	HTTPAddressNotFound
	HTTPRedirectLocationMissing
	HTTPInfiniteRedirectionLoop
	HTTPTooManyRedirections
	HTTPInvalidUTF8InResponse
	HTTPPunycodeConversionFailed
	HTTPSFeatureNotEnabled
	HTTPPunycodeFeatureNotEnabled
	HTTPBadProxy
	HTTPBadProxyCreds
	HTTPProxyConnect
	HTTPInvalidProxyCreds
	// HTTPOther carries the transport's own message in HTTPError.Message.
	HTTPOther

	httpCodeCount
)

var httpCodeNames = [...]string{
	HTTPMalformedChunkLength:      "MalformedChunkLength",
	HTTPMalformedChunkEnd:         "MalformedChunkEnd",
	HTTPMalformedContentLength:    "MalformedContentLength",
	HTTPHeadersOverflow:           "HeadersOverflow",
	HTTPStatusLineOverflow:        "StatusLineOverflow",
	HTTPAddressNotFound:           "AddressNotFound",
	HTTPRedirectLocationMissing:   "RedirectLocationMissing",
	HTTPInfiniteRedirectionLoop:   "InfiniteRedirectionLoop",
	HTTPTooManyRedirections:       "TooManyRedirections",
	HTTPInvalidUTF8InResponse:     "InvalidUtf8InResponse",
	HTTPPunycodeConversionFailed:  "PunycodeConversionFailed",
	HTTPSFeatureNotEnabled:        "HttpsFeatureNotEnabled",
	HTTPPunycodeFeatureNotEnabled: "PunycodeFeatureNotEnabled",
	HTTPBadProxy:                  "BadProxy",
	HTTPBadProxyCreds:             "BadProxyCreds",
	HTTPProxyConnect:              "ProxyConnect",
	HTTPInvalidProxyCreds:         "InvalidProxyCreds",
	HTTPOther:                     "Other",
}

func (c HTTPCode) String() string { return enumName(httpCodeNames[:], uint32(c), "HTTPCode") }

// Valid reports whether c is a declared code.
func (c HTTPCode) Valid() bool { return c < httpCodeCount }

// HTTPError is the transport leaf category.
type HTTPError struct {
	Code HTTPCode
	// Message is only set for HTTPOther.
	Message string
}

// HTTP returns the payload-free transport error for code.
func HTTP(code HTTPCode) HTTPError { return HTTPError{Code: code} }

// HTTPOtherError returns an HTTPOther error carrying msg.
func HTTPOtherError(msg string) HTTPError { return HTTPError{Code: HTTPOther, Message: msg} }

func (e HTTPError) String() string {
	if e.Code == HTTPOther {
		return fmt.Sprintf("%s(%s)", e.Code, e.Message)
	}
	return e.Code.String()
}

// Compare orders transport errors by code, then by message.
func (e HTTPError) Compare(o HTTPError) int {
	if c := cmpUint(uint32(e.Code), uint32(o.Code)); c != 0 {
		return c
	}
	if e.Code == HTTPOther {
		return cmpString(e.Message, o.Message)
	}
	return 0
}

func parseHTTPCode(tag string) (HTTPCode, bool) {
	v, ok := enumIndex(httpCodeNames[:], tag)
	return HTTPCode(v), ok
}
