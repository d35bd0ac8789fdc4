// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package corosig

// Bracket and OnError give coroutine bodies exception-safe resource release
// without exceptions: release always runs, whether use succeeded or not.
// [Use] builds a semaphore hold's acquire/release pairing on Bracket.

// Bracket acquires a resource, runs use, and always runs release — even
// when use's Result is an error — before returning use's Result.
func Bracket[R, A any](
	acquire Cont[Resumed, R],
	release func(R) Cont[Resumed, struct{}],
	use func(R) Cont[Resumed, Result[A]],
) Cont[Resumed, Result[A]] {
	return Bind(acquire, func(resource R) Cont[Resumed, Result[A]] {
		return Bind(use(resource), func(result Result[A]) Cont[Resumed, Result[A]] {
			return Then(release(resource), Return[Resumed](result))
		})
	})
}

// OnError runs cleanup only when body's Result is an error, then passes the
// original Result through unchanged.
func OnError[A any](
	body Cont[Resumed, Result[A]],
	cleanup func(error) Cont[Resumed, struct{}],
) Cont[Resumed, Result[A]] {
	return Bind(body, func(result Result[A]) Cont[Resumed, Result[A]] {
		if !result.IsErr() {
			return Return[Resumed](result)
		}
		return Then(cleanup(result.Err()), Return[Resumed](result))
	})
}
