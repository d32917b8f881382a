// Package posixsignal provides a shutdown manager that listens for
// SIGINT/SIGTERM.
package posixsignal

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/kiosk404/helix/pkg/http/shutdown"
	"github.com/kiosk404/helix/pkg/utils/safego"
)

// Name identifies this manager in logs.
const Name = "PosixSignalManager"

// PosixSignalManager triggers shutdown on the configured signals.
type PosixSignalManager struct {
	signals []os.Signal
}

// NewPosixSignalManager creates a manager for the given signals,
// defaulting to SIGINT and SIGTERM.
func NewPosixSignalManager(sig ...os.Signal) *PosixSignalManager {
	if len(sig) == 0 {
		sig = []os.Signal{os.Interrupt, syscall.SIGTERM}
	}
	return &PosixSignalManager{signals: sig}
}

// Name implements shutdown.Manager.
func (m *PosixSignalManager) Name() string {
	return Name
}

// Start implements shutdown.Manager.
func (m *PosixSignalManager) Start(gs shutdown.GSInterface) error {
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, m.signals...)

	// Shutdown callbacks are arbitrary teardown code; a panic in one must
	// not kill the process before the remaining callbacks run.
	safego.Go(func() {
		<-ch
		gs.StartShutdown(m)
	})

	return nil
}
