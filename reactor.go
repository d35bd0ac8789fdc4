// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package corosig

// defaultReadyBudget bounds how many ready-queue entries a single RunOnce
// turn drains before moving on to timers and polling. Without a bound, a
// coroutine that keeps rescheduling itself via [Yield] could starve every
// pending timer and I/O wait indefinitely.
const defaultReadyBudget = 256

// Reactor is the single-threaded cooperative event loop this package's
// coroutines run on. It owns an [Allocator] plus a ready queue, a poll
// queue, and a timer set, and its [Reactor.RunOnce] method is the entire
// event loop, one turn at a time.
//
// Reactor is not safe for concurrent use from more than one goroutine —
// exactly like the rest of this package, it is designed to be driven from
// one cooperative, possibly signal-handler, context.
type Reactor struct {
	alloc       *Allocator
	log         Logger
	readyBudget int

	ready  readyList
	poll   pollList
	timers timerSet
	p      poller
}

// NewReactor creates a Reactor backed by alloc for its internal frame and
// suspension bookkeeping. Options configure logging and scheduling tunables.
func NewReactor(alloc *Allocator, opts ...Option) *Reactor {
	r := &Reactor{
		alloc:       alloc,
		log:         nopLogger{},
		readyBudget: defaultReadyBudget,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Schedule enqueues resume to run on a future ready-queue turn. Used by
// [Yield]; a newly-launched coroutine runs directly inside [Launch] instead.
func (r *Reactor) Schedule(resume func()) {
	r.ready.push(resume)
}

// ScheduleWhenReady parks resume until fd becomes ready for events
// (unix.POLLIN and/or unix.POLLOUT). Used by [PollEvent].
func (r *Reactor) ScheduleWhenReady(fd int, events int16, resume func(revents int16)) {
	r.poll.push(fd, events, resume)
}

// ScheduleWhenTimePasses parks resume until deadline (monotonic
// nanoseconds) has passed. Used by [Sleep]. The returned handle can be
// passed to CancelTimer if the coroutine's suspension is discarded first.
func (r *Reactor) ScheduleWhenTimePasses(deadline int64, resume func()) *timerEntry {
	return r.timers.schedule(deadline, resume)
}

// CancelTimer removes a pending timer scheduled with ScheduleWhenTimePasses,
// if it has not already fired.
func (r *Reactor) CancelTimer(e *timerEntry) {
	r.timers.cancel(e)
}

// Now returns the reactor's current monotonic clock reading.
func (r *Reactor) Now() int64 { return monotonicNow() }

// Allocator returns the fixed-buffer allocator backing this reactor.
func (r *Reactor) Allocator() *Allocator { return r.alloc }

// HasActiveTasks reports whether the reactor has any runnable, polling, or
// sleeping coroutine left to drive. [Future.BlockOn] loops RunOnce while
// this is true.
func (r *Reactor) HasActiveTasks() bool {
	return r.ready.len() > 0 || r.poll.len() > 0 || r.timers.len() > 0
}

// RunOnce executes one turn of the event loop in a fixed order: fire every
// timer already due, drain the ready queue up to its budget, then poll for
// I/O with a timeout computed from the nearest pending deadline.
//
// This ordering is deliberate: timers and already-ready work are always
// serviced before the loop blocks in poll(2), so a coroutine woken this
// turn never waits an extra turn behind a long poll timeout.
func (r *Reactor) RunOnce() error {
	r.fireDueTimers()
	r.drainReady()
	return r.pollOnce()
}

func (r *Reactor) fireDueTimers() {
	now := r.Now()
	for _, e := range r.timers.drainDue(now) {
		e.resume()
	}
}

func (r *Reactor) drainReady() {
	budget := r.readyBudget
	for budget > 0 {
		resume, ok := r.ready.pop()
		if !ok {
			return
		}
		resume()
		budget--
	}
}

// pollOnce blocks for up to the computed timeout even when there are no
// registered file descriptors: poll(2) with an empty pollfd set and a
// positive timeout simply sleeps, which lets a reactor with only a pending
// timer (no I/O waiters at all) block efficiently instead of busy-looping.
func (r *Reactor) pollOnce() error {
	timeout := r.pollTimeoutMillis()
	r.p.reset(r.poll.waiters)
	n, err := r.p.wait(timeout)
	if err != nil {
		r.log.Errorf("corosig: poll wait failed: %v", err)
		return err
	}
	if n == 0 || len(r.poll.waiters) == 0 {
		return nil
	}

	for i := len(r.poll.waiters) - 1; i >= 0; i-- {
		revents := r.p.revents(i)
		if revents == 0 {
			continue
		}
		w := r.poll.waiters[i]
		r.poll.removeAt(i)
		w.resume(revents)
	}
	return nil
}

// pollTimeoutMillis computes how long pollOnce may block: 0 if there is
// ready-queue work left, the time to the next timer deadline if one is
// pending, or -1 (block indefinitely) otherwise.
func (r *Reactor) pollTimeoutMillis() int {
	if r.ready.len() > 0 {
		return 0
	}
	deadline, ok := r.timers.nextDeadline()
	if !ok {
		return -1
	}
	remaining := deadline - r.Now()
	if remaining <= 0 {
		return 0
	}
	millis := remaining / int64(1e6)
	if millis <= 0 {
		return 1
	}
	if millis > int64(^uint(0)>>1) {
		millis = int64(^uint(0) >> 1)
	}
	return int(millis)
}
