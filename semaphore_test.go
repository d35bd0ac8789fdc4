// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package corosig_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/corosig/corosig"
)

func TestSemaphoreTryHoldRespectsCapacity(t *testing.T) {
	r := newTestReactor(t)
	sem := corosig.NewSemaphore(r, 1)

	h1, ok := sem.TryHold(1)
	require.True(t, ok)
	_, ok = sem.TryHold(1)
	require.False(t, ok)

	h1.Release()
	h2, ok := sem.TryHold(1)
	require.True(t, ok)
	h2.Release()
}

func TestSemaphoreHoldQueuesWaitersFIFO(t *testing.T) {
	r := newTestReactor(t)
	sem := corosig.NewSemaphore(r, 1)

	first, ok := sem.TryHold(1)
	require.True(t, ok)
	require.True(t, sem.WouldBlock(1))

	var order []int
	body := corosig.Bind(sem.Hold(1), func(h *corosig.Holder) corosig.Eff[corosig.Result[struct{}]] {
		order = append(order, 1)
		h.Release()
		return corosig.Pure(corosig.Ok(struct{}{}))
	})
	second := corosig.Bind(sem.Hold(1), func(h *corosig.Holder) corosig.Eff[corosig.Result[struct{}]] {
		order = append(order, 2)
		h.Release()
		return corosig.Pure(corosig.Ok(struct{}{}))
	})
	f := corosig.Launch(r, body)
	f2 := corosig.Launch(r, second)
	require.False(t, f.Done())
	require.False(t, f2.Done())

	first.Release()
	f.BlockOn()
	f2.BlockOn()
	require.Equal(t, []int{1, 2}, order)
}

func TestHolderReleaseIsIdempotent(t *testing.T) {
	r := newTestReactor(t)
	sem := corosig.NewSemaphore(r, 1)
	h, ok := sem.TryHold(1)
	require.True(t, ok)

	h.Release()
	h.Release() // must not panic or double-free the slot

	_, ok = sem.TryHold(1)
	require.True(t, ok)
}

// TestSemaphoreFIFOHoldsEvenWhenLaterWaiterCouldFit proves the FIFO
// invariant that only has teeth once waiters request unequal unit counts: a
// later waiter whose smaller request could be satisfied immediately must
// still wait behind an earlier, not-yet-satisfiable, larger waiter.
func TestSemaphoreFIFOHoldsEvenWhenLaterWaiterCouldFit(t *testing.T) {
	r := newTestReactor(t)
	sem := corosig.NewSemaphore(r, 3)

	holdA, ok := sem.TryHold(2)
	require.True(t, ok)
	holdB, ok := sem.TryHold(1)
	require.True(t, ok)
	require.True(t, sem.WouldBlock(1))

	var order []string

	big := corosig.Bind(sem.Hold(3), func(h *corosig.Holder) corosig.Eff[corosig.Result[struct{}]] {
		order = append(order, "big")
		h.Release()
		return corosig.Pure(corosig.Ok(struct{}{}))
	})
	small := corosig.Bind(sem.Hold(1), func(h *corosig.Holder) corosig.Eff[corosig.Result[struct{}]] {
		order = append(order, "small")
		h.Release()
		return corosig.Pure(corosig.Ok(struct{}{}))
	})

	fBig := corosig.Launch(r, big)
	fSmall := corosig.Launch(r, small)
	require.False(t, fBig.Done())
	require.False(t, fSmall.Done())

	// Freeing 2 units leaves 1 in use, 2 free: "small" (needs 1) could run
	// immediately, but "big" (needs 3, only 2 would be free) is still ahead
	// of it in the queue and must not be skipped.
	holdA.Release()
	require.False(t, fBig.Done())
	require.False(t, fSmall.Done())
	require.Empty(t, order)

	// Freeing the last unit in use makes all 3 free: "big" can now proceed,
	// and only once it releases does "small" get a turn.
	holdB.Release()
	require.Equal(t, []string{"big", "small"}, order)
	require.True(t, fBig.Done())
	require.True(t, fSmall.Done())
}
