// Package server provides the generic HTTP API server, built on gin,
// that hosts the SSE MCP transport and the diagnostic endpoints.
package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/kiosk404/vibecraft/internal/pkg/options"
	"github.com/kiosk404/vibecraft/pkg/logger"
)

// Config is the not-yet-validated configuration for a GenericAPIServer.
type Config struct {
	BindAddress string
	BindPort    int
	Mode        string
}

type CompletedConfig struct {
	*Config
}

func NewConfig() *Config {
	return &Config{
		BindAddress: "127.0.0.1",
		BindPort:    8787,
		Mode:        gin.ReleaseMode,
	}
}

// Complete fills in defaults not already set.
func (c *Config) Complete() CompletedConfig {
	if c.BindAddress == "" {
		c.BindAddress = "127.0.0.1"
	}
	if c.BindPort == 0 {
		c.BindPort = 8787
	}
	if c.Mode == "" {
		c.Mode = gin.ReleaseMode
	}
	return CompletedConfig{c}
}

// New builds a GenericAPIServer ready to have routes registered on its
// Engine before Run is called.
func (c CompletedConfig) New() (*GenericAPIServer, error) {
	gin.SetMode(c.Mode)
	engine := gin.New()
	engine.Use(gin.Recovery())

	addr := fmt.Sprintf("%s:%d", c.BindAddress, c.BindPort)
	httpServer := &http.Server{
		Addr:              addr,
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	return &GenericAPIServer{
		Engine:     engine,
		httpServer: httpServer,
		addr:       addr,
	}, nil
}

// ApplyServerRunOptions copies an already-validated ServerRunOptions into c.
func ApplyServerRunOptions(o *options.ServerRunOptions, c *Config) error {
	c.BindAddress = o.BindAddress
	c.BindPort = o.BindPort
	c.Mode = o.Mode
	return nil
}

// GenericAPIServer wraps a gin.Engine and the http.Server serving it.
type GenericAPIServer struct {
	Engine     *gin.Engine
	httpServer *http.Server
	addr       string
}

// Run blocks serving HTTP until Close is called.
func (s *GenericAPIServer) Run() error {
	logger.Info("serving HTTP on %s", s.addr)
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Close drains in-flight requests with a bounded grace period, then
// forcibly closes.
func (s *GenericAPIServer) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return s.httpServer.Shutdown(ctx)
}
