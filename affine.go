// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package corosig

import (
	"sync/atomic"
)

// Affine wraps a continuation with one-shot enforcement: it can be resumed
// at most once, panicking (Resume) or returning false (TryResume) on any
// further attempt. [Holder] is built on Affine so a repeated Release can
// never return its semaphore units twice.
type Affine[R, A any] struct {
	used   atomic.Uintptr
	resume func(A) R
}

// Once creates an affine continuation from a regular continuation.
// The returned Affine can be resumed at most once.
func Once[R, A any](k func(A) R) *Affine[R, A] {
	return &Affine[R, A]{resume: k}
}

// Resume invokes the continuation with the given value.
// Panics if the continuation has already been used.
func (a *Affine[R, A]) Resume(v A) R {
	if a.used.Add(1) != 1 {
		panic("corosig: affine continuation resumed twice")
	}
	return a.resume(v)
}

// TryResume attempts to invoke the continuation.
// Returns (result, true) on success, or (zero, false) if already used.
func (a *Affine[R, A]) TryResume(v A) (R, bool) {
	if a.used.Add(1) != 1 {
		var zero R
		return zero, false
	}
	return a.resume(v), true
}

// Discard marks the continuation as used without invoking it: a later
// Resume panics and a later TryResume returns false.
func (a *Affine[R, A]) Discard() {
	a.used.Store(1)
}
