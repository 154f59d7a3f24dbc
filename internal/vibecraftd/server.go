// Package vibecraftd wires the daemon: Bridge, Build Engine, catalog,
// Tool Dispatch Runtime, HTTP diagnostics, and graceful shutdown.
package vibecraftd

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/gin-contrib/pprof"
	"github.com/gin-gonic/gin"
	"github.com/kiosk404/vibecraft/internal/pkg/server"
	"github.com/kiosk404/vibecraft/internal/vibecraft/bridge"
	"github.com/kiosk404/vibecraft/internal/vibecraft/build"
	"github.com/kiosk404/vibecraft/internal/vibecraft/catalog"
	"github.com/kiosk404/vibecraft/internal/vibecraft/dispatch"
	"github.com/kiosk404/vibecraft/internal/vibecraft/sandbox"
	"github.com/kiosk404/vibecraft/internal/vibecraft/sanitizer"
	"github.com/kiosk404/vibecraft/internal/vibecraft/tools"
	"github.com/kiosk404/vibecraft/internal/vibecraftd/config"
	"github.com/kiosk404/vibecraft/pkg/http/shutdown"
	"github.com/kiosk404/vibecraft/pkg/http/shutdown/posixsignal"
	"github.com/kiosk404/vibecraft/pkg/logger"
	mcpserver "github.com/mark3labs/mcp-go/server"
)

type apiServer struct {
	cfg *config.Config
	gs  *shutdown.GracefulShutdown

	genericAPIServer *server.GenericAPIServer

	bridgeModule *bridge.Module
	buildModule  *build.Module
	catalogData  *catalog.Catalog
	runtime      *dispatch.Runtime
	sseServer    *mcpserver.SSEServer
	stdioStopped chan struct{}
}

type preparedAPIServer struct {
	*apiServer
}

func createAPIServer(cfg *config.Config) (*apiServer, error) {
	gs := shutdown.New()
	gs.AddShutdownManager(posixsignal.NewPosixSignalManager())

	genericConfig := server.NewConfig()
	if err := server.ApplyServerRunOptions(cfg.GenericServerRunOptions, genericConfig); err != nil {
		return nil, err
	}
	genericServer, err := genericConfig.Complete().New()
	if err != nil {
		return nil, err
	}

	bridgeCfg := &bridge.ModuleConfig{
		Host:           cfg.BridgeOptions.Host,
		Port:           cfg.BridgeOptions.Port,
		Path:           cfg.BridgeOptions.Path,
		Token:          cfg.BridgeOptions.Token,
		DefaultTimeout: cfg.BridgeOptions.RequestTimeout,
		WorldEditMode:  bridge.WorldEditMode(cfg.BridgeOptions.WorldEditMode),
	}
	bridgeModule, err := bridgeCfg.Complete().New(context.Background())
	if err != nil {
		return nil, err
	}
	logger.Info("[Vibecraftd] Bridge module initialized")
	if cfg.BridgeOptions.VersionDetection {
		logPeerVersion(bridgeModule.Bridge)
	}

	buildCfg := &build.ModuleConfig{
		Policy: policyFromConfig(cfg),
		Quotas: sandbox.Quotas{
			MaxIterations: cfg.SandboxOptions.MaxIterations,
			MaxCommands:   cfg.SandboxOptions.MaxCommands,
			MaxWallClock:  cfg.SandboxOptions.MaxWallClock,
		},
		CommandTimeout: cfg.BridgeOptions.RequestTimeout,
		CommandLogging: cfg.BuildOptions.CommandLogging,
		Coalesce:       cfg.BuildOptions.Coalesce,
	}
	buildModule, err := buildCfg.Complete().New(bridgeModule.Bridge)
	if err != nil {
		return nil, err
	}
	logger.Info("[Vibecraftd] Build Engine module initialized")

	catalogData, err := catalog.Load()
	if err != nil {
		return nil, err
	}
	logger.Info("[Vibecraftd] catalog loaded")

	runtime := dispatch.NewRuntime(&tools.Deps{
		Bridge:  bridgeModule.Bridge,
		Engine:  buildModule.Engine,
		Catalog: catalogData,
		Timeout: cfg.BridgeOptions.RequestTimeout,
	})

	return &apiServer{
		cfg:              cfg,
		gs:               gs,
		genericAPIServer: genericServer,
		bridgeModule:     bridgeModule,
		buildModule:      buildModule,
		catalogData:      catalogData,
		runtime:          runtime,
		stdioStopped:     make(chan struct{}),
	}, nil
}

// logPeerVersion reports the client id and version the peer advertised
// in its handshake, when it is already connected.
func logPeerVersion(br *bridge.Bridge) {
	caps := br.Capabilities()
	id, _ := caps["client_id"].(string)
	version, _ := caps["version"].(string)
	if id == "" && version == "" {
		return
	}
	logger.Info("[Vibecraftd] game client %s version %s", id, version)
}

// policyFromConfig freezes the Sanitizer policy from startup options;
// it is never mutated afterwards.
func policyFromConfig(cfg *config.Config) *sanitizer.Policy {
	p := &sanitizer.Policy{
		SafetyChecksOn:   cfg.SafetyOptions.SafetyChecks,
		DangerousAllowed: cfg.SafetyOptions.DangerousAllowed,
		MaxCommandLength: cfg.SafetyOptions.MaxCommandLength,
	}
	if cfg.SafetyOptions.BuildBoxEnabled {
		p.BuildBox = &sanitizer.Box{
			MinX: cfg.SafetyOptions.BuildBoxMinX, MaxX: cfg.SafetyOptions.BuildBoxMaxX,
			MinY: cfg.SafetyOptions.BuildBoxMinY, MaxY: cfg.SafetyOptions.BuildBoxMaxY,
			MinZ: cfg.SafetyOptions.BuildBoxMinZ, MaxZ: cfg.SafetyOptions.BuildBoxMaxZ,
		}
	}
	return p
}

func (s *apiServer) PrepareRun() preparedAPIServer {
	initRouter(s.genericAPIServer.Engine, s)

	stopWatch := make(chan struct{})
	if s.cfg.RuntimeSettingsFile != "" {
		if err := watchRuntimeSettings(s.cfg.RuntimeSettingsFile, s.buildModule.Engine, stopWatch); err != nil {
			logger.Warn("runtime settings watcher not started: %v", err)
		}
	}

	if s.cfg.TransportOptions.SSE {
		s.sseServer = s.runtime.MountSSE(s.genericAPIServer.Engine,
			s.cfg.GenericServerRunOptions.BindAddress,
			s.cfg.GenericServerRunOptions.BindPort)
	}

	s.gs.AddShutdownCallback(shutdown.Func(func(string) error {
		close(stopWatch)
		if s.sseServer != nil {
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			_ = s.sseServer.Shutdown(ctx)
		}
		if s.bridgeModule != nil {
			_ = s.bridgeModule.Bridge.Close()
		}
		_ = s.buildModule.Close()
		return s.genericAPIServer.Close()
	}))

	return preparedAPIServer{s}
}

func (s preparedAPIServer) Run() error {
	if err := s.gs.Start(); err != nil {
		log.Fatalf("start shutdown manager failed: %s", err.Error())
	}

	if s.cfg.TransportOptions.Stdio {
		go func() {
			defer close(s.stdioStopped)
			if err := s.runtime.ServeStdio(context.Background()); err != nil {
				logger.Warn("stdio transport stopped: %v", err)
			}
		}()
	}

	if s.cfg.TransportOptions.SSE {
		return s.genericAPIServer.Run()
	}

	// stdio-only mode: block until the stream closes, then drain.
	<-s.stdioStopped
	s.gs.Shutdown("stdio stream closed")
	return nil
}

// initRouter registers the diagnostic endpoints next to the SSE
// mount.
func initRouter(engine *gin.Engine, s *apiServer) {
	if s.cfg.GenericServerRunOptions.EnableProfiling {
		pprof.Register(engine)
	}

	engine.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	engine.GET("/status", func(c *gin.Context) {
		weAvailable, weReason := s.bridgeModule.Bridge.Capabilities().WorldEditAvailable()
		c.JSON(http.StatusOK, gin.H{
			"bridge_state":        s.bridgeModule.Bridge.State().String(),
			"pending_requests":    s.bridgeModule.Bridge.PendingCount(),
			"worldedit_mode":      s.cfg.BridgeOptions.WorldEditMode,
			"worldedit_available": weAvailable,
			"worldedit_reason":    weReason,
			"tools":               s.runtime.ToolNames(),
		})
	})
}
