// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package corosig

// Logger is the injectable logging seam for [Reactor]. It is deliberately
// this narrow — a single printf-style level — so any structured logger can
// satisfy it with a one-line adapter rather than this package importing a
// concrete logging library. A Reactor that never gets a Logger option logs
// nothing.
type Logger interface {
	Errorf(format string, args ...any)
}

type nopLogger struct{}

func (nopLogger) Errorf(string, ...any) {}

// LoggerFunc adapts a plain function to [Logger].
type LoggerFunc func(format string, args ...any)

// Errorf implements Logger.
func (f LoggerFunc) Errorf(format string, args ...any) { f(format, args...) }
