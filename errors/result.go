package errors

// Result pairs a success value with a unified error. It is the return
// contract of fallible toolkit operations that hand values across package
// boundaries; inside a package the (T, *Error) pair is used directly.
type Result[T any] struct {
	value T
	err   *Error
}

// Ok wraps a success value.
func Ok[T any](v T) Result[T] { return Result[T]{value: v} }

// Fail wraps a failure. A nil err is recorded as Unspecified so a failed
// Result can never look successful.
func Fail[T any](err *Error) Result[T] {
	if err == nil {
		err = Unspecified("failure without error")
	}
	return Result[T]{err: err}
}

// From builds a Result from a conventional (value, error) pair, translating
// err with translate. A nil translate falls back to Ensure.
func From[T any](v T, err error, translate func(error) *Error) Result[T] {
	if err == nil {
		return Ok(v)
	}
	if translate == nil {
		translate = Ensure
	}
	return Fail[T](translate(err))
}

// IsOk reports whether r holds a value.
func (r Result[T]) IsOk() bool { return r.err == nil }

// Err returns the failure, or nil.
func (r Result[T]) Err() *Error { return r.err }

// Value returns the success value, or the zero value on failure.
func (r Result[T]) Value() T { return r.value }

// Get unpacks r into Go's conventional pair. The error is an untyped nil on
// success.
func (r Result[T]) Get() (T, error) {
	if r.err != nil {
		var zero T
		return zero, r.err
	}
	return r.value, nil
}

// Outcome records whether an operation that produces no value succeeded.
type Outcome struct {
	failure *Error
}

// Success is the successful Outcome.
func Success() Outcome { return Outcome{} }

// Failure builds a failed Outcome.
func Failure(err *Error) Outcome {
	if err == nil {
		err = Unspecified("failure without error")
	}
	return Outcome{failure: err}
}

// Failed returns the failure and true, or nil and false on success.
func (o Outcome) Failed() (*Error, bool) { return o.failure, o.failure != nil }

// Compare orders outcomes: Success first, then failures by Compare.
func (o Outcome) Compare(p Outcome) int {
	switch {
	case o.failure == nil && p.failure == nil:
		return 0
	case o.failure == nil:
		return -1
	case p.failure == nil:
		return 1
	}
	return Compare(o.failure, p.failure)
}
