// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package corosig

// Cont is a continuation-passing computation: given "the rest of the
// computation" k, applying k to the eventual A produces the final result R.
//
// Coroutine bodies in this package are built from Cont[Resumed, A] — alias
// [Eff] — rather than Go func bodies with native suspension, because Go has
// no compiler-synthesized coroutines: an await is encoded as an explicit
// suspension value threaded through k (see [Perform] and [Suspension]).
type Cont[R, A any] func(k func(A) R) R

// Return lifts a pure value into the continuation monad: the resulting
// computation passes v to its continuation immediately, without suspending.
func Return[R, A any](v A) Cont[R, A] {
	return func(k func(A) R) R {
		return k(v)
	}
}

// Resumed is the type flowing through coroutine suspension and resumption:
// either a final A (boxed), or a pending *Suspension[A] awaiting an
// awaitable's result.
type Resumed = any

// Eff is the continuation type of a corosig coroutine step, answering with
// Resumed so suspension can be threaded transparently through [Bind].
type Eff[A any] = Cont[Resumed, A]

// Pure lifts a value into an effect-free coroutine step.
func Pure[A any](v A) Eff[A] {
	return Return[Resumed](v)
}

// Suspend builds a Cont directly from its CPS function. It is the primitive
// constructor used by [Perform] and the awaitables in awaitables.go.
func Suspend[R, A any](f func(k func(A) R) R) Cont[R, A] {
	return Cont[R, A](f)
}
