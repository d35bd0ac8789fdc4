// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package corosig_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/corosig/corosig"
)

func TestWhenAllCollectsEveryResultInOrder(t *testing.T) {
	r := newTestReactor(t)
	futures := []*corosig.Future[int]{
		corosig.Launch(r, corosig.Then(corosig.Yield(), corosig.Pure(corosig.Ok(1)))),
		corosig.Launch(r, corosig.Pure(corosig.Fail[int](errors.New("boom")))),
		corosig.Launch(r, corosig.Pure(corosig.Ok(3))),
	}

	body := corosig.Bind(corosig.WhenAll(futures), func(rs []corosig.Result[int]) corosig.Eff[corosig.Result[[]int]] {
		out := make([]int, len(rs))
		for i, res := range rs {
			v, _ := res.Value()
			out[i] = v
		}
		return corosig.Pure(corosig.Ok(out))
	})

	result := corosig.Launch(r, body).BlockOn()
	got, ok := corosig.Try(result)
	require.True(t, ok)
	require.Equal(t, []int{1, 0, 3}, got)
}

func TestWhenAllSucceedReturnsFirstErrorInArgumentOrder(t *testing.T) {
	r := newTestReactor(t)
	wantErr := errors.New("boom")
	futures := []*corosig.Future[int]{
		corosig.Launch(r, corosig.Pure(corosig.Ok(1))),
		corosig.Launch(r, corosig.Pure(corosig.Fail[int](wantErr))),
		corosig.Launch(r, corosig.Pure(corosig.Fail[int](errors.New("later")))),
		corosig.Launch(r, corosig.Pure(corosig.Ok(3))),
	}

	result := corosig.Launch(r, corosig.WhenAllSucceed(futures)).BlockOn()
	_, ok := corosig.Try(result)
	require.False(t, ok)
	require.ErrorIs(t, result.Err(), wantErr)
}

// TestWhenAllSucceedAwaitsEveryFutureEvenAfterAnEarlierFailure proves
// WhenAllSucceed does not short-circuit: a future after the failing one
// must still run to completion and have its side effect observed.
func TestWhenAllSucceedAwaitsEveryFutureEvenAfterAnEarlierFailure(t *testing.T) {
	r := newTestReactor(t)
	wantErr := errors.New("boom")
	ranAfterFailure := false

	afterFailure := corosig.Bind(corosig.Yield(), func(struct{}) corosig.Eff[corosig.Result[int]] {
		ranAfterFailure = true
		return corosig.Pure(corosig.Ok(3))
	})

	futures := []*corosig.Future[int]{
		corosig.Launch(r, corosig.Pure(corosig.Fail[int](wantErr))),
		corosig.Launch(r, afterFailure),
	}

	result := corosig.Launch(r, corosig.WhenAllSucceed(futures)).BlockOn()
	_, ok := corosig.Try(result)
	require.False(t, ok)
	require.True(t, ranAfterFailure)
}

func TestWhenAllSucceedReturnsAllValuesOnSuccess(t *testing.T) {
	r := newTestReactor(t)
	futures := []*corosig.Future[int]{
		corosig.Launch(r, corosig.Pure(corosig.Ok(1))),
		corosig.Launch(r, corosig.Then(corosig.Yield(), corosig.Pure(corosig.Ok(2)))),
	}

	f := corosig.Launch(r, corosig.WhenAllSucceed(futures))
	result := f.BlockOn()
	got, ok := corosig.Try(result)
	require.True(t, ok)
	require.Equal(t, []int{1, 2}, got)
}
