package repositories

import (
	"context"
	"sync"
)

// Unsubscribe tears down a live watch. Calling it more than once is a no-op.
type Unsubscribe func()

// watchGuard serializes snapshot delivery against teardown: once Unsubscribe
// has been called no further update callback starts. The callback itself runs
// outside the lock, so it may unsubscribe its own watch (the hub does exactly
// that when a websocket write fails).
type watchGuard struct {
	mu         sync.Mutex
	closed     bool
	delivering bool
	cancel     context.CancelFunc
}

func newWatchGuard(cancel context.CancelFunc) *watchGuard {
	return &watchGuard{cancel: cancel}
}

func (g *watchGuard) deliver(fn func()) {
	g.mu.Lock()
	if g.closed {
		g.mu.Unlock()
		return
	}
	g.delivering = true
	g.mu.Unlock()

	fn()

	// A stop that arrived mid-delivery left the cancel for us.
	g.mu.Lock()
	g.delivering = false
	var cancel context.CancelFunc
	if g.closed {
		cancel = g.cancel
		g.cancel = nil
	}
	g.mu.Unlock()
	if cancel != nil {
		cancel()
	}
}

func (g *watchGuard) stop() {
	g.mu.Lock()
	if g.closed {
		g.mu.Unlock()
		return
	}
	g.closed = true
	var cancel context.CancelFunc
	if !g.delivering {
		cancel = g.cancel
		g.cancel = nil
	}
	g.mu.Unlock()
	if cancel != nil {
		cancel()
	}
}

func (g *watchGuard) unsubscribe() Unsubscribe {
	return func() { g.stop() }
}
