package services

import (
	"fmt"
	"sync"
)

// inflight allows one outstanding request per operation key.
type inflight struct {
	mu   sync.Mutex
	busy map[string]struct{}
}

func newInflight() *inflight {
	return &inflight{busy: make(map[string]struct{})}
}

func (g *inflight) acquire(key string) (release func(), err error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if _, ok := g.busy[key]; ok {
		return nil, fmt.Errorf("%s: %w", key, ErrInFlight)
	}
	g.busy[key] = struct{}{}

	return func() {
		g.mu.Lock()
		defer g.mu.Unlock()
		delete(g.busy, key)
	}, nil
}
