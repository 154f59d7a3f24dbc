// Package shutdown coordinates graceful process shutdown across any
// number of ShutdownManagers (e.g. a POSIX signal watcher) and any
// number of ordered shutdown callbacks.
package shutdown

import (
	"sync"

	"github.com/kiosk404/vibecraft/pkg/logger"
)

// ShutdownCallback receives the reason a shutdown was triggered.
type ShutdownCallback interface {
	OnShutdown(reason string) error
}

// Func adapts a plain function to ShutdownCallback.
type Func func(reason string) error

func (f Func) OnShutdown(reason string) error { return f(reason) }

// ShutdownManager watches for a trigger (signal, RPC, ...) and invokes
// the supplied callback exactly once when it fires.
type ShutdownManager interface {
	Name() string
	Start(gs *GracefulShutdown) error
}

// GracefulShutdown owns the registered managers and callbacks and runs
// the callbacks, in registration order, the first time any manager
// reports a shutdown request.
type GracefulShutdown struct {
	mu        sync.Mutex
	managers  []ShutdownManager
	callbacks []ShutdownCallback
	once      sync.Once
}

func New() *GracefulShutdown {
	return &GracefulShutdown{}
}

func (gs *GracefulShutdown) AddShutdownManager(m ShutdownManager) {
	gs.mu.Lock()
	defer gs.mu.Unlock()
	gs.managers = append(gs.managers, m)
}

func (gs *GracefulShutdown) AddShutdownCallback(cb ShutdownCallback) {
	gs.mu.Lock()
	defer gs.mu.Unlock()
	gs.callbacks = append(gs.callbacks, cb)
}

// Start launches every registered manager.
func (gs *GracefulShutdown) Start() error {
	gs.mu.Lock()
	managers := append([]ShutdownManager(nil), gs.managers...)
	gs.mu.Unlock()

	for _, m := range managers {
		if err := m.Start(gs); err != nil {
			return err
		}
	}
	return nil
}

// Shutdown runs every registered callback exactly once, in order,
// logging but not aborting on individual callback errors.
func (gs *GracefulShutdown) Shutdown(reason string) {
	gs.once.Do(func() {
		gs.mu.Lock()
		callbacks := append([]ShutdownCallback(nil), gs.callbacks...)
		gs.mu.Unlock()

		logger.Info("shutdown: draining (%s)", reason)
		for _, cb := range callbacks {
			if err := cb.OnShutdown(reason); err != nil {
				logger.Warn("shutdown: callback error: %v", err)
			}
		}
	})
}
