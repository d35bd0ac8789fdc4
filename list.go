// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package corosig

import "container/heap"

// readyEntry is one coroutine step waiting its turn on the ready queue.
type readyEntry struct {
	resume func()
}

// readyList is a plain FIFO of runnable coroutine steps. Awaitables that
// never block — [Yield] chief among them — reschedule through this queue
// rather than the poll queue or timer set.
type readyList struct {
	entries []readyEntry
	head    int
}

func (q *readyList) push(resume func()) {
	q.entries = append(q.entries, readyEntry{resume: resume})
}

func (q *readyList) len() int { return len(q.entries) - q.head }

// pop removes and returns the oldest entry. ok is false on an empty queue.
func (q *readyList) pop() (resume func(), ok bool) {
	if q.head >= len(q.entries) {
		return nil, false
	}
	e := q.entries[q.head]
	q.entries[q.head] = readyEntry{}
	q.head++
	if q.head == len(q.entries) {
		q.entries = q.entries[:0]
		q.head = 0
	}
	return e.resume, true
}

// pollWaiter describes one coroutine parked on [PollEvent], waiting for a
// file descriptor to become readable or writable.
type pollWaiter struct {
	fd     int
	events int16 // unix.POLLIN / unix.POLLOUT, possibly combined
	resume func(events int16)
}

// pollList is the FIFO of descriptors the reactor must poll(2) for. It is
// walked linearly to build a pollfd slice each turn — the descriptor counts
// this runtime is designed for are small, so linear scans stay cheap and
// avoid a second indexing structure's allocations.
type pollList struct {
	waiters []pollWaiter
}

func (q *pollList) push(fd int, events int16, resume func(events int16)) {
	q.waiters = append(q.waiters, pollWaiter{fd: fd, events: events, resume: resume})
}

func (q *pollList) len() int { return len(q.waiters) }

// removeAt drops the waiter at index i without preserving order — fine,
// since readiness fan-out happens for every matching waiter in one pass.
func (q *pollList) removeAt(i int) {
	last := len(q.waiters) - 1
	q.waiters[i] = q.waiters[last]
	q.waiters = q.waiters[:last]
}

// timerEntry is one pending [Sleep] deadline.
type timerEntry struct {
	deadline int64 // monotonic nanoseconds
	resume   func()
	index    int // heap.Interface bookkeeping
}

// timerHeap is a min-heap on deadline, giving the reactor its next wakeup
// time in O(log n) and its due entries in sorted order.
type timerHeap []*timerEntry

func (h timerHeap) Len() int            { return len(h) }
func (h timerHeap) Less(i, j int) bool  { return h[i].deadline < h[j].deadline }
func (h timerHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i]; h[i].index = i; h[j].index = j }
func (h *timerHeap) Push(x any) {
	e := x.(*timerEntry)
	e.index = len(*h)
	*h = append(*h, e)
}
func (h *timerHeap) Pop() any {
	old := *h
	n := len(old)
	e := old[n-1]
	old[n-1] = nil
	*h = old[:n-1]
	return e
}

// timerSet wraps timerHeap with the operations the reactor actually needs:
// schedule a deadline, peek the next one, and drain everything already due.
type timerSet struct {
	h timerHeap
}

func (t *timerSet) schedule(deadline int64, resume func()) *timerEntry {
	e := &timerEntry{deadline: deadline, resume: resume}
	heap.Push(&t.h, e)
	return e
}

func (t *timerSet) cancel(e *timerEntry) {
	if e.index < 0 || e.index >= len(t.h) || t.h[e.index] != e {
		return
	}
	heap.Remove(&t.h, e.index)
}

func (t *timerSet) len() int { return len(t.h) }

// nextDeadline returns the earliest pending deadline and true, or (0, false)
// if no timers are pending.
func (t *timerSet) nextDeadline() (int64, bool) {
	if len(t.h) == 0 {
		return 0, false
	}
	return t.h[0].deadline, true
}

// drainDue pops and returns every entry whose deadline is <= now, in
// deadline order.
func (t *timerSet) drainDue(now int64) []*timerEntry {
	var due []*timerEntry
	for len(t.h) > 0 && t.h[0].deadline <= now {
		due = append(due, heap.Pop(&t.h).(*timerEntry))
	}
	return due
}
