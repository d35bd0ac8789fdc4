// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package corosig

// Option configures a [Reactor] at construction time.
type Option func(*Reactor)

// WithLogger installs l as the reactor's error logger.
func WithLogger(l Logger) Option {
	return func(r *Reactor) { r.log = l }
}

// WithReadyBudget overrides how many ready-queue entries RunOnce drains per
// turn before yielding to timers and I/O polling. n <= 0 is ignored.
func WithReadyBudget(n int) Option {
	return func(r *Reactor) {
		if n > 0 {
			r.readyBudget = n
		}
	}
}
