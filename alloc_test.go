// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package corosig_test

import (
	"testing"

	"github.com/corosig/corosig"
)

func newTestAllocator(t *testing.T, size int) *corosig.Allocator {
	t.Helper()
	a, err := corosig.NewAllocator(make([]byte, size))
	if err != nil {
		t.Fatalf("NewAllocator: %v", err)
	}
	return a
}

func TestNewAllocatorRejectsUndersizedBuffer(t *testing.T) {
	if _, err := corosig.NewAllocator(make([]byte, 1)); err == nil {
		t.Fatalf("expected an error for a buffer smaller than one free-list node")
	}
}

func TestAllocateReturnsAlignedUsableBlock(t *testing.T) {
	a := newTestAllocator(t, 4096)
	b, ok := a.Allocate(64, 16)
	if !ok {
		t.Fatalf("expected allocation to succeed")
	}
	if len(b) != 64 {
		t.Fatalf("got len %d, want 64", len(b))
	}
	for i := range b {
		b[i] = byte(i)
	}
	if a.UsedBytes() == 0 {
		t.Fatalf("expected UsedBytes to be nonzero after an allocation")
	}
}

func TestAllocatePanicsOnNonPowerOfTwoAlignment(t *testing.T) {
	a := newTestAllocator(t, 4096)
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic for a non-power-of-two alignment")
		}
	}()
	a.Allocate(8, 3)
}

func TestAllocateReportsExhaustionWithoutGrowing(t *testing.T) {
	a := newTestAllocator(t, 128)
	var blocks [][]byte
	for {
		b, ok := a.Allocate(32, 8)
		if !ok {
			break
		}
		blocks = append(blocks, b)
	}
	if len(blocks) == 0 {
		t.Fatalf("expected at least one successful allocation")
	}
	if _, ok := a.Allocate(32, 8); ok {
		t.Fatalf("expected exhaustion to persist")
	}
}

func TestDeallocateReturnsBlockToFreeList(t *testing.T) {
	a := newTestAllocator(t, 4096)
	b, ok := a.Allocate(128, 8)
	if !ok {
		t.Fatalf("expected allocation to succeed")
	}
	if a.UsedBytes() == 0 {
		t.Fatalf("expected UsedBytes to be nonzero before Deallocate")
	}
	a.Deallocate(b)
	if a.UsedBytes() != 0 {
		t.Fatalf("expected UsedBytes to return to 0, got %d", a.UsedBytes())
	}
}

func TestDeallocateCoalescesAdjacentFreeBlocks(t *testing.T) {
	a := newTestAllocator(t, 4096)
	b1, ok := a.Allocate(64, 8)
	if !ok {
		t.Fatalf("expected allocation 1 to succeed")
	}
	b2, ok := a.Allocate(64, 8)
	if !ok {
		t.Fatalf("expected allocation 2 to succeed")
	}
	a.Deallocate(b1)
	a.Deallocate(b2)

	// A single allocation spanning roughly the whole buffer should now
	// succeed, which is only possible if the two freed blocks coalesced
	// with the large tail free block back into one contiguous span.
	big, ok := a.Allocate(3000, 8)
	if !ok {
		t.Fatalf("expected coalesced free space to satisfy a large allocation")
	}
	_ = big
}

func TestPeakBytesTracksHighWaterMark(t *testing.T) {
	a := newTestAllocator(t, 4096)
	b, ok := a.Allocate(256, 8)
	if !ok {
		t.Fatalf("expected allocation to succeed")
	}
	peakAfterAlloc := a.PeakBytes()
	a.Deallocate(b)
	if a.PeakBytes() != peakAfterAlloc {
		t.Fatalf("expected PeakBytes to remain at the high-water mark after Deallocate")
	}
	if a.UsedBytes() != 0 {
		t.Fatalf("expected UsedBytes to be 0 after Deallocate")
	}
}

func TestCloseReportsOutstandingAllocations(t *testing.T) {
	a := newTestAllocator(t, 4096)
	if _, ok := a.Allocate(64, 8); !ok {
		t.Fatalf("expected allocation to succeed")
	}
	if err := a.Close(); err == nil {
		t.Fatalf("expected Close to report the outstanding allocation")
	}
}

func TestCloseSucceedsWhenFullyDrained(t *testing.T) {
	a := newTestAllocator(t, 4096)
	b, ok := a.Allocate(64, 8)
	if !ok {
		t.Fatalf("expected allocation to succeed")
	}
	a.Deallocate(b)
	if err := a.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
}
