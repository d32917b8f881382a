package backend

import (
	"context"
	"fmt"
	"sync"

	"github.com/kiosk404/helix/pkg/logger"
)

// Arena tracks the live backends of in-flight search requests. Backends are
// keyed by (user, category, request), so two concurrent searches by the same
// user get disjoint tool sessions.
type Arena struct {
	factory Factory

	mu   sync.Mutex
	open map[Key]Backend
}

// NewArena creates an arena that builds backends with the given factory.
func NewArena(factory Factory) *Arena {
	return &Arena{
		factory: factory,
		open:    make(map[Key]Backend),
	}
}

// Acquire creates and registers a backend for the key.
func (a *Arena) Acquire(ctx context.Context, key Key) (Backend, error) {
	a.mu.Lock()
	if _, ok := a.open[key]; ok {
		a.mu.Unlock()
		return nil, fmt.Errorf("backend %s is already open", key)
	}
	a.mu.Unlock()

	b, err := a.factory(ctx, key)
	if err != nil {
		return nil, err
	}

	a.mu.Lock()
	a.open[key] = b
	a.mu.Unlock()
	return b, nil
}

// Release closes and deregisters the backend for the key. Releasing an
// unknown key is a no-op.
func (a *Arena) Release(key Key) {
	a.mu.Lock()
	b, ok := a.open[key]
	delete(a.open, key)
	a.mu.Unlock()

	if !ok {
		return
	}
	if err := b.Close(); err != nil {
		logger.Warn("[Search] backend %s: close failed: %v", key, err)
	}
}

// Len returns the number of open backends.
func (a *Arena) Len() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.open)
}

// Close releases every open backend. Called on server shutdown.
func (a *Arena) Close() {
	a.mu.Lock()
	open := a.open
	a.open = make(map[Key]Backend)
	a.mu.Unlock()

	for key, b := range open {
		if err := b.Close(); err != nil {
			logger.Warn("[Search] backend %s: close failed: %v", key, err)
		}
	}
}
