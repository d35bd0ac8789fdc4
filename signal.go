// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package corosig

import (
	"os"
	"os/signal"
)

// Install wires a fresh [Allocator], a fresh [Reactor], and a single
// top-level coroutine to sig: each time the process receives sig, body runs
// to completion — driven by BlockOn — on a reactor dedicated to that one
// invocation. When body finishes with an error, a one-line diagnostic is
// written to standard error and the loop waits for the next signal.
//
// Go delivers OS signals to a runtime-managed channel rather than invoking
// a user function directly on the signal-handling stack the way a C
// sigaction handler would, so Install's own goroutine is ordinary Go code;
// what stays async-signal-safe is everything body touches once control
// reaches the reactor — fixed-buffer allocation, restricted syscalls, no
// exceptions — the properties this package exists to guarantee.
//
// Install returns a stop function that deregisters the signal and returns
// once the dispatch goroutine has exited.
func Install(buf []byte, sig os.Signal, body func(*Reactor) Eff[Result[struct{}]], opts ...Option) (stop func(), err error) {
	// Fail fast on a buffer too small for even one invocation, before ever
	// installing the signal handler.
	if _, err := NewAllocator(buf); err != nil {
		return nil, err
	}

	log := resolveLogger(opts)

	c := make(chan os.Signal, 1)
	signal.Notify(c, sig)
	done := make(chan struct{})

	go func() {
		defer close(done)
		for range c {
			// A fresh Allocator on every firing, over the same underlying
			// buf: an invocation that leaks or fails to release an
			// allocation never reduces capacity for the next one.
			alloc, err := NewAllocator(buf)
			if err != nil {
				log.Errorf("corosig: rebuilding allocator for signal delivery: %v", err)
				continue
			}
			r := NewReactor(alloc, opts...)
			f := Launch(r, body(r))
			if res := f.BlockOn(); res.IsErr() {
				_, _ = os.Stderr.WriteString("corosig: handler coroutine failed: " + res.Err().Error() + "\n")
			}
		}
	}()

	stop = func() {
		signal.Stop(c)
		close(c)
		<-done
	}
	return stop, nil
}

// resolveLogger extracts the Logger an Option list would install on a
// Reactor, for use before any Reactor exists — Install needs somewhere to
// report a per-invocation allocator failure that arises inside the signal
// dispatch loop, ahead of the Reactor that failure would otherwise log to.
func resolveLogger(opts []Option) Logger {
	r := &Reactor{log: nopLogger{}}
	for _, opt := range opts {
		opt(r)
	}
	return r.log
}
