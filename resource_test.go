// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package corosig_test

import (
	"errors"
	"testing"

	"github.com/corosig/corosig"
)

func TestBracketReleasesOnSuccess(t *testing.T) {
	released := false
	m := corosig.Bracket(
		corosig.Pure("resource"),
		func(string) corosig.Eff[struct{}] {
			released = true
			return corosig.Pure(struct{}{})
		},
		func(r string) corosig.Eff[corosig.Result[int]] {
			return corosig.Pure(corosig.Ok(len(r)))
		},
	)

	v, susp := corosig.Step(m)
	if susp != nil {
		t.Fatalf("expected no suspension")
	}
	if !released {
		t.Fatalf("expected release to run")
	}
	got, ok := corosig.Try(v)
	if !ok || got != 8 {
		t.Fatalf("got (%v, %v), want (8, true)", got, ok)
	}
}

func TestBracketReleasesOnError(t *testing.T) {
	released := false
	m := corosig.Bracket(
		corosig.Pure("resource"),
		func(string) corosig.Eff[struct{}] {
			released = true
			return corosig.Pure(struct{}{})
		},
		func(string) corosig.Eff[corosig.Result[int]] {
			return corosig.Pure(corosig.Fail[int](errors.New("use failed")))
		},
	)

	v, _ := corosig.Step(m)
	if !released {
		t.Fatalf("expected release to run even on failure")
	}
	if !v.IsErr() {
		t.Fatalf("expected the original error to pass through")
	}
}

func TestOnErrorRunsCleanupOnlyOnFailure(t *testing.T) {
	cleaned := false
	m := corosig.OnError(
		corosig.Pure(corosig.Ok(5)),
		func(error) corosig.Eff[struct{}] {
			cleaned = true
			return corosig.Pure(struct{}{})
		},
	)
	corosig.Step(m)
	if cleaned {
		t.Fatalf("expected cleanup to be skipped on success")
	}

	cleaned = false
	m = corosig.OnError(
		corosig.Pure(corosig.Fail[int](errors.New("boom"))),
		func(error) corosig.Eff[struct{}] {
			cleaned = true
			return corosig.Pure(struct{}{})
		},
	)
	corosig.Step(m)
	if !cleaned {
		t.Fatalf("expected cleanup to run on failure")
	}
}
