// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package corosig_test

import (
	"testing"

	"github.com/corosig/corosig"
)

func TestAffineResumeInvokesOnce(t *testing.T) {
	calls := 0
	a := corosig.Once(func(v int) int {
		calls++
		return v + 1
	})
	if got := a.Resume(41); got != 42 {
		t.Fatalf("got %d, want 42", got)
	}
	if calls != 1 {
		t.Fatalf("expected exactly one call, got %d", calls)
	}
}

func TestAffineResumeTwicePanics(t *testing.T) {
	a := corosig.Once(func(v int) int { return v })
	a.Resume(1)

	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic on second Resume")
		}
	}()
	a.Resume(2)
}

func TestAffineTryResumeReportsExhaustion(t *testing.T) {
	a := corosig.Once(func(v int) int { return v })
	if _, ok := a.TryResume(1); !ok {
		t.Fatalf("expected first TryResume to succeed")
	}
	if _, ok := a.TryResume(2); ok {
		t.Fatalf("expected second TryResume to fail")
	}
}

func TestAffineDiscardPreventsResume(t *testing.T) {
	a := corosig.Once(func(v int) int { return v })
	a.Discard()
	if _, ok := a.TryResume(1); ok {
		t.Fatalf("expected TryResume to fail after Discard")
	}
}
