package vibecraftd

import (
	"time"

	"github.com/kiosk404/vibecraft/internal/vibecraft/bridge"
	"github.com/kiosk404/vibecraft/internal/vibecraft/verrors"
	"github.com/kiosk404/vibecraft/internal/vibecraftd/config"
	"github.com/kiosk404/vibecraft/pkg/logger"
)

// startupProbeWindow bounds how long Run waits for the Bridge to come
// up when bridge.require-at-startup is set.
const startupProbeWindow = 15 * time.Second

// Run builds and runs the daemon until shutdown. The error it returns
// maps to the process exit code in cmd/vibecraftd: nil → 0, config →1,
// bridge-required-but-unreachable → 2.
func Run(cfg *config.Config) error {
	server, err := createAPIServer(cfg)
	if err != nil {
		return err
	}

	if cfg.BridgeOptions.RequireAtStartup {
		if err := awaitBridgeReady(server.bridgeModule.Bridge); err != nil {
			return err
		}
	}

	return server.PrepareRun().Run()
}

// awaitBridgeReady polls the Bridge state for the startup probe window,
// returning a BridgeUnavailable error (exit code 2) if it never reaches
// Ready.
func awaitBridgeReady(br *bridge.Bridge) error {
	deadline := time.Now().Add(startupProbeWindow)
	for time.Now().Before(deadline) {
		if br.State() == bridge.Ready {
			return nil
		}
		time.Sleep(200 * time.Millisecond)
	}
	logger.Error("bridge unreachable within %s and startup requires it", startupProbeWindow)
	return verrors.BridgeUnavailable(nil)
}
