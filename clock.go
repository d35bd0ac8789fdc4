// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package corosig

import "golang.org/x/sys/unix"

// monotonicNow reads CLOCK_MONOTONIC directly via clock_gettime(2), one of
// this package's documented async-signal-safe syscalls. Go's time.Now()
// additionally consults the runtime's wall-clock cache and is not specified
// safe to call from inside a signal handler; this bypasses it entirely.
func monotonicNow() int64 {
	var ts unix.Timespec
	if err := unix.ClockGettime(unix.CLOCK_MONOTONIC, &ts); err != nil {
		// CLOCK_MONOTONIC on a running kernel does not fail in practice;
		// a zero reading only ever degrades scheduling order, so we do
		// not propagate an error from every timer computation for it.
		return 0
	}
	return ts.Nano()
}
