// Package safego runs goroutines that must not take the process down with
// them: panics are recovered and logged with a stack trace.
package safego

import (
	"runtime/debug"

	"github.com/kiosk404/helix/pkg/logger"
)

// Go runs fn in a new goroutine, recovering and logging any panic.
func Go(fn func()) {
	go func() {
		defer func() {
			if r := recover(); r != nil {
				logger.Error("[safego] recovered from panic: %v\n%s", r, debug.Stack())
			}
		}()
		fn()
	}()
}
