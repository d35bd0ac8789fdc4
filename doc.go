// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package corosig is a small, embeddable asynchronous runtime whose
// coroutines are built to run correctly from inside an asynchronous signal
// handler: every allocation comes from a fixed-size caller-supplied buffer,
// every syscall on the hot path is one documented to be async-signal-safe,
// every failure is a value, and the reactor driving everything is strictly
// single-threaded.
//
// # Architecture
//
// An [Allocator] owns a caller-supplied byte buffer and hands out blocks of
// the requested size with a first-fit free-list algorithm — no heap growth,
// ever. A
// [Reactor] owns an Allocator plus a ready queue, a poll queue, and a timer
// set; its [Reactor.RunOnce] method is the entire event loop, one turn at a
// time.
//
// Coroutines are built from [Eff] values with [Bind], [Map], and [Then], and
// suspend at [Yield], [Sleep], [PollEvent], a [Semaphore.Hold], or another
// coroutine's [Future]. [Launch] starts one eagerly — its body runs up to
// its first suspension before Launch returns — and the returned [Future]'s
// [Future.BlockOn] drives the Reactor until that body completes.
//
// # Composition
//
// [WhenAll] and [WhenAllSucceed] await a fixed list of futures strictly left
// to right. [Semaphore] bounds concurrency with FIFO-fair waiters.
//
// # Collaborators
//
// Byte-oriented I/O (files, pipes, sockets) lives in the sibling package
// corosig/x/io, built strictly against the Reactor/PollEvent contract
// described in this package. A signal-handler shim ([Install]) wires a
// fresh Allocator, a fresh Reactor, and a single top-level coroutine to an
// OS signal.
//
// # Non-goals
//
// No multi-threaded reactor — the Reactor is single-threaded cooperative.
// No dynamic memory growth once a buffer is exhausted — allocation failure
// is reported as [AllocError], never retried against a bigger buffer. No
// preemption of a running coroutine — it only yields control at the await
// points named above. No exception-style control flow — every fallible
// operation returns a [Result].
package corosig
