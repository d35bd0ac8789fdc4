// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package corosig

// Operation is the interface for awaitable operations: [Yield], [Sleep],
// [PollEvent], a [Future] await, or a [Semaphore.Hold]. A suspended
// [Suspension]'s Op() returns one of these for the [Reactor] to install
// into its ready queue, poll queue, or timer set.
type Operation any

// Op is the F-bounded interface an awaitable operation type satisfies.
// The self-referencing constraint lets the compiler know both the concrete
// operation type and the type it resumes with.
//
// Example:
//
//	type yieldOp struct{ corosig.Phantom[struct{}] }
type Op[O Op[O, A], A any] interface {
	OpResult() A // phantom marker; never actually called
}

// Phantom is an embeddable zero-size type providing the [Op] result marker,
// so an operation struct doesn't need to write its own OpResult method.
type Phantom[A any] struct{}

// OpResult implements the phantom marker for [Op].
func (Phantom[A]) OpResult() A { panic("corosig: phantom marker invoked") }

// effectSuspension is the type-erased view of a suspended coroutine step,
// implemented by genericMarker. A single interface dispatch lets [Step]
// resume any awaitable without knowing its concrete operation type.
type effectSuspension interface {
	Op() Operation
	Resume(Resumed) Resumed
	release()
}

// effectMarkerResume resumes a suspended operation by invoking the
// continuation captured in Perform, recovering the statically-typed
// signature via a one-shot type assertion.
func effectMarkerResume[A any](m *genericMarker, v Resumed) Resumed {
	k := m.k.(func(A) Resumed)
	releaseMarker(m)
	return k(v.(A))
}

// Perform suspends the current coroutine step on op. The [Reactor] observes
// the operation via the [Suspension] returned by [Step], schedules it into
// whichever of its structures matches the operation's kind, and later calls
// [Suspension.Resume] with the awaited value.
func Perform[O Op[O, A], A any](op O) Cont[Resumed, A] {
	return func(k func(A) Resumed) Resumed {
		m := acquireMarker()
		m.op = op
		m.k = k
		m.resume = effectMarkerResume[A]
		return m
	}
}

// toResumed is the identity continuation used at CPS entry points ([Step]).
// A named generic function produces one static function value per type
// instantiation, avoiding the heap allocation an anonymous closure would add.
func toResumed[A any](a A) Resumed { return a }
