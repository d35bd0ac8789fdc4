// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package corosig

import "fmt"

// frameSize is the fixed bookkeeping block [Launch] reserves from the
// reactor's [Allocator] for the lifetime of a coroutine body. The block
// itself carries no payload — the coroutine's closures still live on the
// Go heap, since Go gives no way to place an arbitrary closure into a
// caller-supplied buffer — but reserving and releasing it here means a
// runaway Launch loop is visible in [Allocator.UsedBytes] and eventually
// reported as [AllocError], rather than only ever showing up as Go heap
// growth invisible to this package's accounting.
const frameSize = 16

// idleError reports that [Future.BlockOn] was asked to drive a reactor
// that has nothing left to run, while the future it's waiting on still
// hasn't completed — a coroutine dropped a suspension without resuming it.
type idleError struct{}

func (idleError) Error() string {
	return "corosig: reactor is idle but the awaited future has not completed"
}

// Future is the handle to a coroutine launched with [Launch]. Its body runs
// eagerly up to its first suspension point before Launch returns; from
// there the owning [Reactor] drives it to completion one [Reactor.RunOnce]
// turn at a time.
type Future[T any] struct {
	reactor *Reactor
	frame   []byte
	done    bool
	result  Result[T]
	waiters []func(Result[T])
}

// Launch starts body on r, running it up to its first suspension before
// returning. body reports its own outcome as a [Result] rather than
// panicking, matching this package's no-exceptions error model.
//
// If the reactor's allocator has no room left for the coroutine's frame
// bookkeeping, Launch never runs body at all: the returned Future is
// already done, holding Fail([AllocError]).
func Launch[T any](r *Reactor, body Eff[Result[T]]) *Future[T] {
	f := &Future[T]{reactor: r}
	block, ok := r.alloc.Allocate(frameSize, MinAlignment)
	if !ok {
		f.complete(Fail[T](NewError(AllocError{Size: frameSize, Alignment: MinAlignment})))
		return f
	}
	f.frame = block
	f.run(body)
	return f
}

func (f *Future[T]) run(body Eff[Result[T]]) {
	v, susp := Step(body)
	if susp == nil {
		f.complete(v)
		return
	}
	driveStep(f.reactor, susp, f.complete)
}

func (f *Future[T]) complete(v Result[T]) {
	f.done = true
	f.result = v
	if f.frame != nil {
		f.reactor.alloc.Deallocate(f.frame)
		f.frame = nil
	}
	waiters := f.waiters
	f.waiters = nil
	for _, w := range waiters {
		w(v)
	}
}

// onComplete invokes cb with the future's result once it completes, or
// immediately if it already has.
func (f *Future[T]) onComplete(cb func(Result[T])) {
	if f.done {
		cb(f.result)
		return
	}
	f.waiters = append(f.waiters, cb)
}

// Done reports whether the coroutine has run to completion.
func (f *Future[T]) Done() bool { return f.done }

// Await suspends the current coroutine step until f completes, resuming
// with its Result.
func (f *Future[T]) Await() Eff[Result[T]] {
	return Perform[awaitOp[T], Result[T]](awaitOp[T]{fut: f})
}

// BlockOn drives f's reactor with RunOnce until f completes, returning its
// Result. It is the non-coroutine entry point — the bridge from ordinary Go
// code into the reactor.
func (f *Future[T]) BlockOn() Result[T] {
	for !f.done {
		if err := f.reactor.RunOnce(); err != nil {
			return Fail[T](err)
		}
		if !f.done && !f.reactor.HasActiveTasks() {
			return Fail[T](NewError(idleError{}))
		}
	}
	return f.result
}

// awaitOp is the operation [Future.Await] performs. Its registerResume
// method — detected structurally by driveStep, independent of T — lets one
// non-generic dispatch path drive an await on a future of any type.
type awaitOp[T any] struct {
	Phantom[Result[T]]
	fut *Future[T]
}

func (o awaitOp[T]) registerResume(resume func(Resumed)) {
	o.fut.onComplete(func(r Result[T]) { resume(r) })
}

// driveStep installs a suspended coroutine step into the reactor according
// to the kind of [Operation] it suspended on, resuming it (and recursing on
// whatever it suspends on next) once the reactor satisfies that operation.
func driveStep[A any](r *Reactor, susp *Suspension[A], onDone func(A)) {
	op := susp.Op()
	switch o := op.(type) {
	case yieldOp:
		r.Schedule(func() {
			v, next := susp.Resume(struct{}{})
			if next == nil {
				onDone(v)
				return
			}
			driveStep(r, next, onDone)
		})
	case sleepOp:
		deadline := r.Now() + o.d.Nanoseconds()
		r.ScheduleWhenTimePasses(deadline, func() {
			v, next := susp.Resume(struct{}{})
			if next == nil {
				onDone(v)
				return
			}
			driveStep(r, next, onDone)
		})
	case pollOp:
		r.ScheduleWhenReady(o.fd, o.events, func(revents int16) {
			v, next := susp.Resume(revents)
			if next == nil {
				onDone(v)
				return
			}
			driveStep(r, next, onDone)
		})
	default:
		if aw, ok := op.(interface{ registerResume(func(Resumed)) }); ok {
			aw.registerResume(func(val Resumed) {
				v, next := susp.Resume(val)
				if next == nil {
					onDone(v)
					return
				}
				driveStep(r, next, onDone)
			})
			return
		}
		panic(fmt.Sprintf("corosig: unhandled awaitable operation %T", op))
	}
}
