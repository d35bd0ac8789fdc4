// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package corosig

import (
	"fmt"
	"runtime"
	"unsafe"
)

// MinAlignment is the smallest alignment Allocator ever hands out.
const MinAlignment = 8

// freeNode is the header of a free block, written in place at the block's
// base address. It doubles as the free-list link.
type freeNode struct {
	size uintptr
	next *freeNode
}

// allocHeader precedes every live allocation so Deallocate can recover the
// block's base address and original size from the pointer alone.
type allocHeader struct {
	size    uintptr
	padding uintptr
}

var (
	freeNodeSize = unsafe.Sizeof(freeNode{})
	headerSize   = unsafe.Sizeof(allocHeader{})
)

// Allocator is a first-fit free-list allocator over a single caller-owned
// byte buffer. It never grows: once the buffer is exhausted, Allocate
// returns false rather than falling back to the Go heap.
//
// Allocator is not safe for concurrent use — it is owned by exactly one
// [Reactor], whose single-threaded event loop is its only caller.
type Allocator struct {
	buf      []byte
	freeHead *freeNode
	used     uintptr
	peak     uintptr
}

// NewAllocator initializes a free list spanning the whole of buf.
//
// buf's base address must be aligned to at least [MinAlignment], and buf
// must be large enough to hold one free-list node; both are checked and
// reported as an error rather than a panic, since a misconfigured buffer is
// the caller's mistake to recover from, not a programming fault in this
// package.
func NewAllocator(buf []byte) (*Allocator, error) {
	if len(buf) < int(freeNodeSize) {
		return nil, fmt.Errorf("corosig: buffer of %d bytes is smaller than the minimum block size of %d", len(buf), freeNodeSize)
	}
	base := uintptr(unsafe.Pointer(&buf[0]))
	if base%MinAlignment != 0 {
		return nil, fmt.Errorf("corosig: buffer base address is not %d-byte aligned", MinAlignment)
	}
	head := (*freeNode)(unsafe.Pointer(&buf[0]))
	head.size = uintptr(len(buf))
	head.next = nil

	a := &Allocator{buf: buf, freeHead: head}
	runtime.SetFinalizer(a, func(a *Allocator) {
		if a.used != 0 {
			fmt.Printf("corosig: allocator finalized with %d bytes still in use — a frame or container outlived its reactor\n", a.used)
		}
	})
	return a, nil
}

// paddingWithHeader computes the padding, starting at baseAddress, needed so
// that a block header of headerSize bytes fits before the next address
// aligned to alignment. Ported from the original allocator's two-phase
// formula: a naive (alignment - base%alignment) can leave less room than
// headerSize when the next aligned boundary is closer than that.
func paddingWithHeader(baseAddress, alignment, headerSz uintptr) uintptr {
	multiplier := baseAddress/alignment + 1
	alignedAddress := multiplier * alignment
	padding := alignedAddress - baseAddress
	needed := headerSz

	if padding < needed {
		needed -= padding
		if needed%alignment > 0 {
			padding += alignment * (1 + needed/alignment)
		} else {
			padding += alignment * (needed / alignment)
		}
	}
	return padding
}

func isPowerOfTwo(n uintptr) bool {
	return n != 0 && n&(n-1) == 0
}

// Allocate hands out a block of at least size bytes, aligned to alignment
// (raised to at least [MinAlignment]; must otherwise be a power of two).
// Returns (nil, false) when no free block is large enough — exhaustion
// never panics and never grows the buffer. A non-power-of-two alignment
// panics.
func (a *Allocator) Allocate(size, alignment uintptr) ([]byte, bool) {
	if alignment == 0 {
		alignment = MinAlignment
	}
	if alignment < MinAlignment {
		alignment = MinAlignment
	}
	if !isPowerOfTwo(alignment) {
		panic("corosig: alignment must be a power of two")
	}
	if size < freeNodeSize {
		size = freeNodeSize
	}

	padding, prev, node := a.find(size, alignment)
	if node == nil {
		return nil, false
	}

	requiredSize := size + padding
	rest := node.size - requiredSize
	if rest > 0 {
		newFreeAddr := uintptr(unsafe.Pointer(node)) + requiredSize
		newFree := (*freeNode)(unsafe.Pointer(newFreeAddr))
		newFree.size = rest
		insertAfter(node, newFree)
	}
	a.removeNode(prev, node)

	alignmentPadding := padding - headerSize
	headerAddr := uintptr(unsafe.Pointer(node)) + alignmentPadding
	dataAddr := headerAddr + headerSize

	hdr := (*allocHeader)(unsafe.Pointer(headerAddr))
	hdr.size = requiredSize
	hdr.padding = alignmentPadding

	a.used += requiredSize
	if a.used > a.peak {
		a.peak = a.used
	}

	return unsafe.Slice((*byte)(unsafe.Pointer(dataAddr)), int(size)), true
}

// find walks the free list for the first node with room for size bytes plus
// whatever padding is needed to align the data address and fit the header.
func (a *Allocator) find(size, alignment uintptr) (padding uintptr, prev, node *freeNode) {
	node = a.freeHead
	for node != nil {
		p := paddingWithHeader(uintptr(unsafe.Pointer(node)), alignment, headerSize)
		if node.size >= size+p {
			return p, prev, node
		}
		prev = node
		node = node.next
	}
	return 0, nil, nil
}

func insertAfter(anchor, n *freeNode) {
	n.next = anchor.next
	anchor.next = n
}

func (a *Allocator) removeNode(prev, node *freeNode) {
	if prev == nil {
		a.freeHead = node.next
	} else {
		prev.next = node.next
	}
}

// Deallocate returns a block previously returned by Allocate. A nil data is
// a no-op. Adjacent free neighbours are coalesced so fragmentation never
// accumulates across an allocate/deallocate cycle.
func (a *Allocator) Deallocate(data []byte) {
	if data == nil {
		return
	}
	dataAddr := uintptr(unsafe.Pointer(&data[0]))
	headerAddr := dataAddr - headerSize
	hdr := (*allocHeader)(unsafe.Pointer(headerAddr))
	blockSize := hdr.size
	freeAddr := headerAddr - hdr.padding

	fn := (*freeNode)(unsafe.Pointer(freeAddr))
	fn.size = blockSize
	fn.next = nil

	var prev *freeNode
	it := a.freeHead
	for it != nil {
		if freeAddr < uintptr(unsafe.Pointer(it)) {
			break
		}
		prev = it
		it = it.next
	}
	if prev == nil {
		fn.next = a.freeHead
		a.freeHead = fn
	} else {
		fn.next = prev.next
		prev.next = fn
	}

	a.used -= blockSize
	a.coalesce(prev, fn)
}

func (a *Allocator) coalesce(prev, fn *freeNode) {
	if fn.next != nil && uintptr(unsafe.Pointer(fn))+fn.size == uintptr(unsafe.Pointer(fn.next)) {
		fn.size += fn.next.size
		a.removeNode(fn, fn.next)
	}
	if prev != nil && uintptr(unsafe.Pointer(prev))+prev.size == uintptr(unsafe.Pointer(fn)) {
		prev.size += fn.size
		a.removeNode(prev, fn)
	}
}

// UsedBytes returns the number of bytes currently live.
func (a *Allocator) UsedBytes() uintptr { return a.used }

// PeakBytes returns the running maximum of UsedBytes ever observed.
func (a *Allocator) PeakBytes() uintptr { return a.peak }

// Close asserts that the allocator has no outstanding live allocations. A
// non-nil error here means a [Future] or intrusive container outlived the
// [Reactor] that owned this Allocator — a programming fault, matching the
// original implementation's destructor assertion.
func (a *Allocator) Close() error {
	runtime.SetFinalizer(a, nil)
	if a.used != 0 {
		return fmt.Errorf("corosig: allocator closed with %d bytes still in use", a.used)
	}
	return nil
}
