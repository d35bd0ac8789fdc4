// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package corosig

import "golang.org/x/sys/unix"

// poller wraps poll(2), the reactor's OS wait primitive. poll was chosen
// over epoll/kqueue for one reason: it is the one of the three specified
// async-signal-safe by POSIX, and it is available unchanged on every
// platform unix.Poll supports — the reactor never needs a build-tag split
// between an epoll backend and a kqueue backend.
type poller struct {
	fds []unix.PollFd
}

// reset rebuilds the pollfd slice from the current waiter list.
func (p *poller) reset(waiters []pollWaiter) {
	p.fds = p.fds[:0]
	for _, w := range waiters {
		p.fds = append(p.fds, unix.PollFd{Fd: int32(w.fd), Events: w.events})
	}
}

// wait blocks for up to timeoutMillis (-1 for indefinitely) until at least
// one descriptor is ready, or the call is interrupted. It returns the
// number of descriptors with a nonzero Revents, or a [SyscallError] wrapped
// in the returned CoroError.
func (p *poller) wait(timeoutMillis int) (int, error) {
	n, err := unix.Poll(p.fds, timeoutMillis)
	if err != nil {
		if err == unix.EINTR {
			return 0, nil
		}
		return 0, NewError(SyscallError{Name: "poll", Code: int(errnoOf(err))})
	}
	return n, nil
}

// revents reports the events observed ready for the i-th descriptor passed
// to the most recent reset/wait pair.
func (p *poller) revents(i int) int16 { return p.fds[i].Revents }

func errnoOf(err error) int {
	if errno, ok := err.(unix.Errno); ok {
		return int(errno)
	}
	return -1
}
