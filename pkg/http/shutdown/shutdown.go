// Package shutdown coordinates graceful teardown: shutdown managers (e.g.
// POSIX signals) trigger the registered callbacks in order.
package shutdown

import (
	"sync"

	"github.com/kiosk404/helix/pkg/logger"
)

// Callback is invoked when a shutdown is requested. The argument identifies
// the manager that triggered it.
type Callback interface {
	OnShutdown(manager string) error
}

// Func adapts an ordinary function to the Callback interface.
type Func func(manager string) error

// OnShutdown implements Callback.
func (f Func) OnShutdown(manager string) error {
	return f(manager)
}

// Manager watches for a shutdown condition and reports it.
type Manager interface {
	// Name identifies the manager in logs.
	Name() string

	// Start begins watching; gs.StartShutdown must be called on trigger.
	Start(gs GSInterface) error
}

// GSInterface is the surface managers use to trigger a shutdown.
type GSInterface interface {
	StartShutdown(manager Manager)
}

// GracefulShutdown holds managers and callbacks.
type GracefulShutdown struct {
	mu        sync.Mutex
	callbacks []Callback
	managers  []Manager
	done      chan struct{}
	once      sync.Once
}

// New creates an empty GracefulShutdown.
func New() *GracefulShutdown {
	return &GracefulShutdown{
		done: make(chan struct{}),
	}
}

// AddShutdownManager registers a manager to be started by Start.
func (gs *GracefulShutdown) AddShutdownManager(m Manager) {
	gs.mu.Lock()
	defer gs.mu.Unlock()
	gs.managers = append(gs.managers, m)
}

// AddShutdownCallback registers a callback to run on shutdown.
func (gs *GracefulShutdown) AddShutdownCallback(cb Callback) {
	gs.mu.Lock()
	defer gs.mu.Unlock()
	gs.callbacks = append(gs.callbacks, cb)
}

// Start launches all registered managers.
func (gs *GracefulShutdown) Start() error {
	gs.mu.Lock()
	managers := make([]Manager, len(gs.managers))
	copy(managers, gs.managers)
	gs.mu.Unlock()

	for _, m := range managers {
		if err := m.Start(gs); err != nil {
			return err
		}
	}
	return nil
}

// StartShutdown runs every registered callback, in registration order.
func (gs *GracefulShutdown) StartShutdown(m Manager) {
	gs.once.Do(func() {
		logger.Info("[Shutdown] triggered by %s", m.Name())

		gs.mu.Lock()
		callbacks := make([]Callback, len(gs.callbacks))
		copy(callbacks, gs.callbacks)
		gs.mu.Unlock()

		for _, cb := range callbacks {
			if err := cb.OnShutdown(m.Name()); err != nil {
				logger.Warn("[Shutdown] callback failed: %v", err)
			}
		}
		close(gs.done)
	})
}

// Done is closed once shutdown callbacks have completed.
func (gs *GracefulShutdown) Done() <-chan struct{} {
	return gs.done
}
