package errors

import (
	stderrors "errors"
)

// As extracts the first *Error in err's chain.
func As(err error) (*Error, bool) {
	var e *Error
	if stderrors.As(err, &e) {
		return e, true
	}
	return nil, false
}

// HasKind reports whether err's chain holds an *Error of the given kind.
func HasKind(err error, kind Kind) bool {
	e, ok := As(err)
	return ok && e.kind == kind
}

// Ensure converts any error to *Error.
//
//   - nil yields nil
//   - an *Error anywhere in the chain is returned as-is
//   - anything else becomes Unspecified carrying err.Error()
//
// Translator packages should be preferred; Ensure is the last line for
// errors whose origin is unknown.
func Ensure(err error) *Error {
	if err == nil {
		return nil
	}
	if e, ok := As(err); ok {
		return e
	}
	return Unspecified(err.Error())
}
