// Package jsonerr wraps goccy/go-json so document failures surface as
// Serialization errors and stream read failures as I/O errors.
package jsonerr

import (
	stderrors "errors"
	"io"

	json "github.com/goccy/go-json"

	"github.com/kbukum/faultline/errors"
	"github.com/kbukum/faultline/ioerr"
)

// Translate maps an encoding failure. Codec errors become Serialization
// carrying the codec's message; errors from the underlying reader are
// delegated to ioerr.
func Translate(err error) *errors.Error {
	if err == nil {
		return nil
	}
	if e, ok := errors.As(err); ok {
		return e
	}
	if isCodecError(err) {
		return errors.Serialization(err.Error())
	}
	if _, ok := ioerr.Code(err); ok {
		return ioerr.Translate(err)
	}
	return errors.Serialization(err.Error())
}

// Unmarshal decodes data into v.
func Unmarshal(data []byte, v any) *errors.Error {
	return Translate(json.Unmarshal(data, v))
}

// Marshal encodes v.
func Marshal(v any) ([]byte, *errors.Error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, Translate(err)
	}
	return data, nil
}

// Decode reads one document from r into v.
func Decode(r io.Reader, v any) *errors.Error {
	return Translate(json.NewDecoder(r).Decode(v))
}

func isCodecError(err error) bool {
	var (
		syntax      *json.SyntaxError
		typ         *json.UnmarshalTypeError
		invalid     *json.InvalidUnmarshalError
		unsupported *json.UnsupportedTypeError
		value       *json.UnsupportedValueError
		marshaler   *json.MarshalerError
	)
	return stderrors.As(err, &syntax) ||
		stderrors.As(err, &typ) ||
		stderrors.As(err, &invalid) ||
		stderrors.As(err, &unsupported) ||
		stderrors.As(err, &value) ||
		stderrors.As(err, &marshaler)
}
