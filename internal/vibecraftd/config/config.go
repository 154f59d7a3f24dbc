// Package config carries the running configuration of vibecraftd,
// created once from validated options at startup.
package config

import (
	"github.com/kiosk404/vibecraft/internal/vibecraftd/options"
)

// Config is the frozen running configuration of the vibecraftd daemon.
type Config struct {
	*options.Options
}

// CreateConfigFromOptions creates a running configuration instance from
// already-validated options.
func CreateConfigFromOptions(opts *options.Options) (*Config, error) {
	return &Config{opts}, nil
}
