package sandbox

import "time"

// ModuleConfig is the not-yet-validated configuration for script quotas.
type ModuleConfig struct {
	MaxIterations int
	MaxCommands   int
	MaxWallClock  time.Duration
}

type CompletedModuleConfig struct {
	*ModuleConfig
}

// Complete fills in defaults not already set (default quotas).
func (c *ModuleConfig) Complete() CompletedModuleConfig {
	d := DefaultQuotas()
	if c.MaxIterations <= 0 {
		c.MaxIterations = d.MaxIterations
	}
	if c.MaxCommands <= 0 {
		c.MaxCommands = d.MaxCommands
	}
	if c.MaxWallClock <= 0 {
		c.MaxWallClock = d.MaxWallClock
	}
	return CompletedModuleConfig{c}
}

// Module wraps a fixed Quotas value used to run every script submitted
// through this instance; Run itself holds no other state, since each
// execution gets a fresh interpreter thread.
type Module struct {
	quotas Quotas
}

// New builds the Module. There is nothing to start or fail: unlike the
// Bridge, the sandbox has no background goroutine or outside connection.
func (c CompletedModuleConfig) New() (*Module, error) {
	return &Module{
		quotas: Quotas{
			MaxIterations: c.MaxIterations,
			MaxCommands:   c.MaxCommands,
			MaxWallClock:  c.MaxWallClock,
		},
	}, nil
}

// Close is a no-op, present so Module satisfies the same lifecycle shape
// as every other subsystem module.
func (m *Module) Close() error { return nil }

// Quotas returns the quotas this module was configured with.
func (m *Module) Quotas() Quotas { return m.quotas }
