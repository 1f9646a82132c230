package render

import "sync/atomic"

// SnapshotGuard discards results of asynchronous captures that were
// superseded before they finished. Begin hands out a token; only the
// holder of the latest token may publish.
type SnapshotGuard struct {
	gen atomic.Uint64
}

// Begin starts a new capture, invalidating all earlier ones.
func (g *SnapshotGuard) Begin() uint64 {
	return g.gen.Add(1)
}

// Current reports whether token belongs to the latest capture.
func (g *SnapshotGuard) Current(token uint64) bool {
	return g.gen.Load() == token
}

// Invalidate drops any capture in flight without starting a new one.
func (g *SnapshotGuard) Invalidate() {
	g.gen.Add(1)
}
