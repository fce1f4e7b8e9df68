package pipeline

import "sync"

// Gate serializes runs: the timer and the manual trigger share one Gate, so
// at most one run touches the store at a time. A caller that loses the race
// reports "already running" instead of starting a second pass.
type Gate struct {
	mu sync.Mutex
}

func (g *Gate) TryAcquire() bool { return g.mu.TryLock() }
func (g *Gate) Release()         { g.mu.Unlock() }
