// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package corosig

// Result is every fallible operation's return value in this package: one of
// empty (zero value), a T, or a [CoroError]. There is no exception-style
// control flow — a Result is an ordinary value a caller inspects, never a
// panic that unwinds a signal handler's stack.
type Result[T any] struct {
	value T
	err   error
	ok    bool
}

// Ok wraps a successful value.
func Ok[T any](v T) Result[T] {
	return Result[T]{value: v, ok: true}
}

// Fail wraps a failure. err should normally be a [CoroError], but any error
// is accepted so Result composes with ordinary Go error-returning code.
func Fail[T any](err error) Result[T] {
	return Result[T]{err: err}
}

// IsOk reports whether r holds a value.
func (r Result[T]) IsOk() bool { return r.ok }

// IsErr reports whether r holds an error.
func (r Result[T]) IsErr() bool { return !r.ok && r.err != nil }

// Value returns the wrapped value and true, or the zero value and false.
func (r Result[T]) Value() (T, bool) { return r.value, r.ok }

// Err returns the wrapped error, or nil if r holds a value.
func (r Result[T]) Err() error { return r.err }

// MapResult transforms the wrapped value, passing an error through unchanged.
func MapResult[T, U any](r Result[T], f func(T) U) Result[U] {
	if !r.ok {
		return Result[U]{err: r.err}
	}
	return Ok(f(r.value))
}

// Try returns r's value and true, or the zero value and false — the
// expression-position stand-in for a try(expr, return-verb) short-circuit:
//
//	v, ok := Try(r)
//	if !ok {
//	    return Fail[Out](r.Err())
//	}
func Try[T any](r Result[T]) (T, bool) {
	return r.value, r.ok
}
