// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package io is the byte-oriented I/O facade collaborator for corosig: a
// thin non-blocking wrapper over a file descriptor, built strictly against
// the [corosig.Reactor] / [corosig.PollEvent] contract. It is a sibling
// package, not part of the core runtime, because its shape follows
// mechanically from that contract once the reactor itself exists.
package io

import (
	"golang.org/x/sys/unix"

	"github.com/corosig/corosig"
)

// File is a non-blocking read/write facade over an OS file descriptor,
// driven by a single [corosig.Reactor].
type File struct {
	reactor *corosig.Reactor
	fd      int
}

// New wraps fd for non-blocking use on r. fd is put into non-blocking mode;
// the caller retains ownership and must still Close it.
func New(r *corosig.Reactor, fd int) (*File, error) {
	if err := unix.SetNonblock(fd, true); err != nil {
		return nil, corosig.NewError(corosig.SyscallError{Name: "fcntl", Code: int(errnoOf(err))})
	}
	return &File{reactor: r, fd: fd}, nil
}

// UnderlyingHandle returns the wrapped file descriptor.
func (f *File) UnderlyingHandle() int { return f.fd }

// Close closes the underlying file descriptor.
func (f *File) Close() error {
	if err := unix.Close(f.fd); err != nil {
		return corosig.NewError(corosig.SyscallError{Name: "close", Code: int(errnoOf(err))})
	}
	return nil
}

// TryReadSome attempts a single non-blocking read into buf without
// suspending. ok is false when the descriptor would block.
func (f *File) TryReadSome(buf []byte) (n int, ok bool, err error) {
	n, readErr := unix.Read(f.fd, buf)
	if readErr != nil {
		if readErr == unix.EAGAIN || readErr == unix.EWOULDBLOCK {
			return 0, false, nil
		}
		return 0, true, corosig.NewError(corosig.SyscallError{Name: "read", Code: int(errnoOf(readErr))})
	}
	return n, true, nil
}

// ReadSome suspends until the descriptor is readable, then performs one
// read into buf, returning the number of bytes read (0 at end of file).
func (f *File) ReadSome(buf []byte) corosig.Eff[corosig.Result[int]] {
	n, ok, err := f.TryReadSome(buf)
	if err != nil {
		return corosig.Pure(corosig.Fail[int](err))
	}
	if ok {
		return corosig.Pure(corosig.Ok(n))
	}
	return corosig.Bind(corosig.PollEvent(f.fd, unix.POLLIN), func(int16) corosig.Eff[corosig.Result[int]] {
		return f.ReadSome(buf)
	})
}

// Read suspends until buf is completely filled or a read returns 0 (EOF) or
// an error, returning the number of bytes actually read. An error is
// returned as a failure only when no byte was read before it.
func (f *File) Read(buf []byte) corosig.Eff[corosig.Result[int]] {
	return f.readFrom(buf, 0)
}

func (f *File) readFrom(buf []byte, filled int) corosig.Eff[corosig.Result[int]] {
	if filled == len(buf) {
		return corosig.Pure(corosig.Ok(filled))
	}
	return corosig.Bind(f.ReadSome(buf[filled:]), func(r corosig.Result[int]) corosig.Eff[corosig.Result[int]] {
		n, ok := corosig.Try(r)
		if !ok {
			if filled > 0 {
				return corosig.Pure(corosig.Ok(filled))
			}
			return corosig.Pure(corosig.Fail[int](r.Err()))
		}
		if n == 0 {
			return corosig.Pure(corosig.Ok(filled))
		}
		return f.readFrom(buf, filled+n)
	})
}

// TryWriteSome attempts a single non-blocking write of buf without
// suspending. ok is false when the descriptor would block.
func (f *File) TryWriteSome(buf []byte) (n int, ok bool, err error) {
	n, writeErr := unix.Write(f.fd, buf)
	if writeErr != nil {
		if writeErr == unix.EAGAIN || writeErr == unix.EWOULDBLOCK {
			return 0, false, nil
		}
		return 0, true, corosig.NewError(corosig.SyscallError{Name: "write", Code: int(errnoOf(writeErr))})
	}
	return n, true, nil
}

// WriteSome suspends until the descriptor is writable, then performs one
// write of buf, returning the number of bytes written.
func (f *File) WriteSome(buf []byte) corosig.Eff[corosig.Result[int]] {
	n, ok, err := f.TryWriteSome(buf)
	if err != nil {
		return corosig.Pure(corosig.Fail[int](err))
	}
	if ok {
		return corosig.Pure(corosig.Ok(n))
	}
	return corosig.Bind(corosig.PollEvent(f.fd, unix.POLLOUT), func(int16) corosig.Eff[corosig.Result[int]] {
		return f.WriteSome(buf)
	})
}

// Write suspends until the whole of buf has been written.
func (f *File) Write(buf []byte) corosig.Eff[corosig.Result[int]] {
	return f.writeFrom(buf, 0)
}

func (f *File) writeFrom(buf []byte, sent int) corosig.Eff[corosig.Result[int]] {
	if sent == len(buf) {
		return corosig.Pure(corosig.Ok(sent))
	}
	return corosig.Bind(f.WriteSome(buf[sent:]), func(r corosig.Result[int]) corosig.Eff[corosig.Result[int]] {
		n, ok := corosig.Try(r)
		if !ok {
			return corosig.Pure(corosig.Fail[int](r.Err()))
		}
		return f.writeFrom(buf, sent+n)
	})
}

func errnoOf(err error) int {
	if errno, ok := err.(unix.Errno); ok {
		return int(errno)
	}
	return -1
}
