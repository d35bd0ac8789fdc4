// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package corosig

import "fmt"

// CoroError wraps exactly one alternative of this package's closed error
// algebra — [AllocError], [SyscallError], or a caller-defined type — behind
// a single concrete type that satisfies Go's error interface.
//
// A variadic Error<A, B, ...> sum type has no compile-time Go expression;
// CoroError is the idiomatic substitute: any holds the one live alternative,
// and [Holds] / [As] recover it by type assertion.
type CoroError struct {
	alt any
}

// NewError wraps alt as the live alternative of a CoroError.
func NewError(alt any) CoroError {
	return CoroError{alt: alt}
}

// Error implements the standard error interface.
func (e CoroError) Error() string {
	return e.Describe()
}

// Describe renders the live alternative for logging or diagnostics.
func (e CoroError) Describe() string {
	switch v := e.alt.(type) {
	case AllocError:
		return v.Error()
	case SyscallError:
		return v.Error()
	case fmt.Stringer:
		return v.String()
	case error:
		return v.Error()
	default:
		return fmt.Sprintf("corosig: error %v", v)
	}
}

// Holds reports whether e's live alternative has type T.
func Holds[T any](e CoroError) bool {
	_, ok := e.alt.(T)
	return ok
}

// As recovers e's live alternative as T, or returns the zero value and
// false when e holds a different alternative.
func As[T any](e CoroError) (T, bool) {
	v, ok := e.alt.(T)
	return v, ok
}

// ExtendError widens a CoroError from one caller-assumed alternative set to
// a larger one. Since CoroError already erases its alternative behind any,
// widening carries no cost and loses no information — it exists so call
// sites that accumulate error alternatives across composed operations read
// the widening as an explicit step rather than an implicit one.
func ExtendError(e CoroError) CoroError {
	return e
}

// AllocError reports that an [Allocator] had no block large enough to
// satisfy a request.
type AllocError struct {
	Size      uintptr
	Alignment uintptr
}

func (e AllocError) Error() string {
	return fmt.Sprintf("corosig: allocation of %d bytes (align %d) failed: buffer exhausted", e.Size, e.Alignment)
}

// SyscallError reports a failing call to one of this package's restricted,
// async-signal-safe syscalls (poll, and read, write, fcntl and close in the
// x/io facade).
type SyscallError struct {
	Name string
	Code int
}

func (e SyscallError) Error() string {
	return fmt.Sprintf("corosig: syscall %s failed: errno %d", e.Name, e.Code)
}
