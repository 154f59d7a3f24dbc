package bridge

import (
	"context"
	"fmt"
	"time"

	"github.com/kiosk404/vibecraft/pkg/logger"
)

// ModuleConfig is the not-yet-validated configuration for the Bridge module.
type ModuleConfig struct {
	Host           string
	Port           int
	Path           string
	Token          string
	DefaultTimeout time.Duration
	WorldEditMode  WorldEditMode
}

type CompletedModuleConfig struct {
	*ModuleConfig
}

// Complete fills in defaults not already set.
func (c *ModuleConfig) Complete() CompletedModuleConfig {
	if c.Host == "" {
		c.Host = "localhost"
	}
	if c.Port == 0 {
		c.Port = 8766
	}
	if c.Path == "" {
		c.Path = "/vibecraft"
	}
	if c.DefaultTimeout <= 0 {
		c.DefaultTimeout = 30 * time.Second
	}
	if c.WorldEditMode == "" {
		c.WorldEditMode = WorldEditAuto
	}
	return CompletedModuleConfig{c}
}

// Module is the top-level Bridge module.
type Module struct {
	Bridge *Bridge
}

// New creates and starts the Bridge module. A connection failure that
// is not a permanent auth failure is logged, not returned: the Bridge
// keeps retrying in the background and callers observe connection_lost
// until it comes up.
func (c CompletedModuleConfig) New(ctx context.Context) (*Module, error) {
	url := fmt.Sprintf("ws://%s:%d%s", c.Host, c.Port, c.Path)

	br := New(&Config{
		URL:            url,
		Token:          c.Token,
		DefaultTimeout: c.DefaultTimeout,
		WorldEditMode:  c.WorldEditMode,
	})

	if err := br.Start(ctx); err != nil {
		if br.isPermanent() {
			return nil, err
		}
		logger.Warn("bridge: initial connect failed, retrying in background: %v", err)
	}

	return &Module{Bridge: br}, nil
}

// Close releases all resources held by the Bridge module.
func (m *Module) Close() error {
	if m.Bridge != nil {
		return m.Bridge.Close()
	}
	return nil
}
