// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package corosig

// WhenAll and WhenAllSucceed await a fixed list of already-launched futures
// strictly left to right: futures[0] is awaited to completion before
// futures[1] is awaited, and so on. Each future's body has already run up
// to its first suspension point at [Launch] time, so ordering the awaits
// does not serialize the work — only the order the results are collected.

// WhenAll awaits every future in futures, left to right, and returns their
// Results in the same order regardless of whether any of them failed.
func WhenAll[T any](futures []*Future[T]) Eff[[]Result[T]] {
	results := make([]Result[T], len(futures))
	return whenAllFrom(futures, results, 0)
}

func whenAllFrom[T any](futures []*Future[T], results []Result[T], i int) Eff[[]Result[T]] {
	if i == len(futures) {
		return Pure(results)
	}
	return Bind(futures[i].Await(), func(r Result[T]) Eff[[]Result[T]] {
		results[i] = r
		return whenAllFrom(futures, results, i+1)
	})
}

// WhenAllSucceed awaits every future in futures to completion — none is
// skipped just because an earlier one failed — and then returns the first
// error encountered in argument order, or Ok of every value in order if all
// succeeded. Built on [WhenAll] rather than short-circuiting mid-await,
// matching how the original runtime's when_all_succeed is built on
// when_all: every future is awaited first, and only afterward are the
// completed results scanned for a failure.
func WhenAllSucceed[T any](futures []*Future[T]) Eff[Result[[]T]] {
	return Bind(WhenAll(futures), func(results []Result[T]) Eff[Result[[]T]] {
		values := make([]T, len(results))
		for i, r := range results {
			v, ok := Try(r)
			if !ok {
				return Pure(Fail[[]T](r.Err()))
			}
			values[i] = v
		}
		return Pure(Ok(values))
	})
}
