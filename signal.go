/*
@Description: Process-wide shutdown signal facility
*/

package rtlink

import (
	"os"
	"os/signal"
	"sync"
	"sync/atomic"
	"syscall"
)

// ShutdownHandler is a process-wide singleton exposing an atomic
// shutdown flag and a list of on-shutdown callbacks, reframing the
// original's SignalHandler singleton (spec.md §9) into Go's
// signal.Notify model. Go delivers OS signals only to the goroutine
// registered via signal.Notify, so RX/TX worker goroutines never
// observe SIGINT/SIGTERM directly and need no explicit masking.
type ShutdownHandler struct {
	running   atomic.Bool
	mu        sync.Mutex
	callbacks []func()
	sigCh     chan os.Signal
	stopOnce  sync.Once
}

var (
	shutdownOnce sync.Once
	shutdown     *ShutdownHandler
)

// DefaultShutdownHandler returns the process-wide singleton, creating
// it on first use.
func DefaultShutdownHandler() *ShutdownHandler {
	shutdownOnce.Do(func() {
		shutdown = &ShutdownHandler{sigCh: make(chan os.Signal, 1)}
		shutdown.running.Store(true)
	})
	return shutdown
}

// Start registers for SIGINT/SIGTERM on the calling (main) goroutine
// and begins watching for delivery.
func (h *ShutdownHandler) Start() {
	signal.Notify(h.sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-h.sigCh
		os.Stderr.WriteString("\nrtlink: received " + sig.String() + ", shutting down\n")
		h.triggerShutdown()
	}()
}

// OnShutdown registers a callback invoked once shutdown is triggered.
func (h *ShutdownHandler) OnShutdown(cb func()) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.callbacks = append(h.callbacks, cb)
}

// Running reports whether the process has not yet been asked to shut
// down. Checked by RX/TX workers after their blocking I/O call
// returns, and by the periodic scheduler's readiness loop.
func (h *ShutdownHandler) Running() bool {
	return h.running.Load()
}

// Trigger requests shutdown programmatically (used by tests and by
// fatal-error paths that must stop the runtime without a real signal).
func (h *ShutdownHandler) Trigger() {
	h.triggerShutdown()
}

func (h *ShutdownHandler) triggerShutdown() {
	h.stopOnce.Do(func() {
		h.running.Store(false)
		h.mu.Lock()
		cbs := append([]func(){}, h.callbacks...)
		h.mu.Unlock()
		for _, cb := range cbs {
			cb()
		}
	})
}
