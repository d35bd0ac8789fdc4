// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package corosig

import "sync"

var genericMarkerPool = sync.Pool{
	New: func() any { return new(genericMarker) },
}

// genericMarker is the pooled, type-erased carrier behind every [Perform]
// suspension. Its op and k fields are recovered with a single type
// assertion in effectMarkerResume, keyed by the A that Perform closed over.
type genericMarker struct {
	op     Operation
	resume func(*genericMarker, Resumed) Resumed
	k      any
}

func (m *genericMarker) Op() Operation            { return m.op }
func (m *genericMarker) Resume(v Resumed) Resumed { return m.resume(m, v) }
func (m *genericMarker) release()                 { releaseMarker(m) }

func acquireMarker() *genericMarker {
	return genericMarkerPool.Get().(*genericMarker)
}

func releaseMarker(m *genericMarker) {
	m.op = nil
	m.resume = nil
	m.k = nil
	genericMarkerPool.Put(m)
}
