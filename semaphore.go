// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package corosig

// Semaphore bounds concurrency across coroutines sharing one [Reactor] by
// n-unit holds, with waiters granted a [Holder] strictly in FIFO order: a
// later waiter whose request could be satisfied immediately still waits
// behind an earlier waiter whose larger request cannot yet be, rather than
// jumping the queue.
type Semaphore struct {
	reactor  *Reactor
	capacity int
	inUse    int
	waiters  []semWaiter
}

type semWaiter struct {
	n  int
	cb func(*Holder)
}

// NewSemaphore creates a Semaphore that admits up to capacity concurrent
// units on r.
func NewSemaphore(r *Reactor, capacity int) *Semaphore {
	return &Semaphore{reactor: r, capacity: capacity}
}

// WouldBlock reports whether holding n units right now would suspend rather
// than resolve immediately.
func (s *Semaphore) WouldBlock(n int) bool {
	return len(s.waiters) > 0 || s.inUse+n > s.capacity
}

// TryHold acquires n units without suspending, returning (nil, false) if
// doing so would block.
func (s *Semaphore) TryHold(n int) (*Holder, bool) {
	if s.WouldBlock(n) {
		return nil, false
	}
	s.inUse += n
	return s.newHolder(n), true
}

// Hold suspends the current coroutine step until n units are free, resuming
// with a [Holder] that must eventually be released.
func (s *Semaphore) Hold(n int) Eff[*Holder] {
	return Perform[semaphoreHoldOp, *Holder](semaphoreHoldOp{sem: s, n: n})
}

// Use acquires n units, runs body with the resulting [Holder], and releases
// the units afterward regardless of whether body succeeded — the exception-
// safe pairing [Bracket] exists for, specialized to a semaphore hold.
func Use[A any](s *Semaphore, n int, body func(*Holder) Eff[Result[A]]) Eff[Result[A]] {
	return Bracket(
		s.Hold(n),
		func(h *Holder) Eff[struct{}] {
			h.Release()
			return Pure(struct{}{})
		},
		body,
	)
}

func (s *Semaphore) acquire(n int, cb func(*Holder)) {
	if len(s.waiters) == 0 && s.inUse+n <= s.capacity {
		s.inUse += n
		cb(s.newHolder(n))
		return
	}
	s.waiters = append(s.waiters, semWaiter{n: n, cb: cb})
}

func (s *Semaphore) release(n int) {
	s.inUse -= n
	for len(s.waiters) > 0 {
		w := s.waiters[0]
		if s.inUse+w.n > s.capacity {
			// Strict FIFO: never skip ahead to a smaller later waiter just
			// because the head of the queue can't yet be satisfied.
			break
		}
		s.waiters = s.waiters[1:]
		s.inUse += w.n
		w.cb(s.newHolder(w.n))
	}
}

func (s *Semaphore) newHolder(n int) *Holder {
	h := &Holder{sem: s, units: n}
	h.release = Once(func(struct{}) struct{} {
		s.release(n)
		return struct{}{}
	})
	return h
}

// Holder is the affine proof of n held semaphore units. Release may be
// called at most once; subsequent calls are no-ops rather than double-
// freeing the units.
type Holder struct {
	sem     *Semaphore
	units   int
	release *Affine[struct{}, struct{}]
}

// Release returns the held units to the semaphore, waking whichever queued
// waiters that frees up satisfy, in FIFO order.
func (h *Holder) Release() {
	h.release.TryResume(struct{}{})
}

// semaphoreHoldOp is the operation [Semaphore.Hold] performs.
type semaphoreHoldOp struct {
	Phantom[*Holder]
	sem *Semaphore
	n   int
}

func (o semaphoreHoldOp) registerResume(resume func(Resumed)) {
	o.sem.acquire(o.n, func(h *Holder) { resume(h) })
}
