// Package posixsignal implements a shutdown.ShutdownManager that
// triggers a graceful shutdown on SIGINT/SIGTERM.
package posixsignal

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/kiosk404/vibecraft/pkg/http/shutdown"
)

const Name = "posix-signal"

type posixSignalManager struct {
	signals []os.Signal
}

// NewPosixSignalManager watches the given signals, defaulting to
// SIGINT and SIGTERM when none are supplied.
func NewPosixSignalManager(sig ...os.Signal) shutdown.ShutdownManager {
	if len(sig) == 0 {
		sig = []os.Signal{syscall.SIGINT, syscall.SIGTERM}
	}
	return &posixSignalManager{signals: sig}
}

func (p *posixSignalManager) Name() string {
	return Name
}

func (p *posixSignalManager) Start(gs *shutdown.GracefulShutdown) error {
	c := make(chan os.Signal, 1)
	signal.Notify(c, p.signals...)

	go func() {
		sig := <-c
		gs.Shutdown(sig.String())
	}()

	return nil
}
