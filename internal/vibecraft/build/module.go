package build

import (
	"time"

	"github.com/kiosk404/vibecraft/internal/vibecraft/sandbox"
	"github.com/kiosk404/vibecraft/internal/vibecraft/sanitizer"
)

// ModuleConfig is the not-yet-validated configuration for the Build
// Engine module.
type ModuleConfig struct {
	Policy         *sanitizer.Policy
	Quotas         sandbox.Quotas
	CommandTimeout time.Duration
	CommandLogging bool
	Coalesce       bool
}

type CompletedModuleConfig struct {
	*ModuleConfig
}

// Complete fills in defaults not already set.
func (c *ModuleConfig) Complete() CompletedModuleConfig {
	if c.Policy == nil {
		c.Policy = &sanitizer.Policy{
			SafetyChecksOn:   true,
			MaxCommandLength: 1000,
		}
	}
	if c.Quotas == (sandbox.Quotas{}) {
		c.Quotas = sandbox.DefaultQuotas()
	}
	if c.CommandTimeout <= 0 {
		c.CommandTimeout = 30 * time.Second
	}
	return CompletedModuleConfig{c}
}

// Module is the top-level Build Engine module.
type Module struct {
	Engine *Engine
}

// New wires the Engine against the supplied Bridge client.
func (c CompletedModuleConfig) New(bc BridgeClient) (*Module, error) {
	return &Module{
		Engine: NewEngine(bc, &EngineConfig{
			Policy:         c.Policy,
			Quotas:         c.Quotas,
			CommandTimeout: c.CommandTimeout,
			CommandLogging: c.CommandLogging,
			Coalesce:       c.Coalesce,
		}),
	}, nil
}

func (m *Module) Close() error { return nil }
