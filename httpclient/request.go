package httpclient

import (
	"github.com/kbukum/faultline/errors"
	"github.com/kbukum/faultline/httperr"
	"github.com/kbukum/faultline/jsonerr"
)

// Request describes an outbound HTTP request.
type Request struct {
	// Method is the HTTP method (GET, POST, PUT, PATCH, DELETE, etc).
	Method string
	// Path is appended to the client's BaseURL. Can be a full URL if BaseURL is empty.
	Path string
	// Headers are request-specific headers (merged with client defaults).
	Headers map[string]string
	// Query are URL query parameters.
	Query map[string]string
	// Body is the request body. Accepts io.Reader, []byte, string, or any value
	// that will be JSON-encoded.
	Body any
	// Auth overrides the client-level auth for this request.
	Auth Auth
}

// Response is the result of an HTTP request.
type Response struct {
	// StatusCode is the HTTP status code.
	StatusCode int
	// Headers are the response headers.
	Headers map[string]string
	// Body is the raw response body.
	Body []byte
}

// IsSuccess returns true if the status code is 2xx.
func (r *Response) IsSuccess() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// IsError returns true if the status code is 4xx or 5xx.
func (r *Response) IsError() bool {
	return r.StatusCode >= 400
}

// Text returns the body as a string, or InvalidUtf8 locating the first
// invalid sequence.
func (r *Response) Text() (string, *errors.Error) {
	if err := httperr.CheckUTF8(r.Body); err != nil {
		return "", httperr.Translate(err)
	}
	return string(r.Body), nil
}

// JSON decodes the body into v.
func (r *Response) JSON(v any) *errors.Error {
	return jsonerr.Unmarshal(r.Body, v)
}
