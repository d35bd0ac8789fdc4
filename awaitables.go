// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package corosig

import "time"

// yieldOp is the operation [Yield] performs: give up the rest of this turn
// and run again on a later ready-queue turn.
type yieldOp struct{ Phantom[struct{}] }

// Yield suspends the current coroutine step, rescheduling it onto the
// reactor's ready queue to run again on a later turn.
func Yield() Eff[struct{}] {
	return Perform[yieldOp, struct{}](yieldOp{})
}

// sleepOp is the operation [Sleep] performs: resume once d has elapsed.
type sleepOp struct {
	Phantom[struct{}]
	d time.Duration
}

// Sleep suspends the current coroutine step until d has elapsed, measured
// against the reactor's monotonic clock.
func Sleep(d time.Duration) Eff[struct{}] {
	return Perform[sleepOp, struct{}](sleepOp{d: d})
}

// pollOp is the operation [PollEvent] performs: resume once fd is ready for
// one of events (a unix.POLLIN/unix.POLLOUT mask).
type pollOp struct {
	Phantom[int16]
	fd     int
	events int16
}

// PollEvent suspends the current coroutine step until fd is ready for one
// of events, returning the observed revents mask.
func PollEvent(fd int, events int16) Eff[int16] {
	return Perform[pollOp, int16](pollOp{fd: fd, events: events})
}
