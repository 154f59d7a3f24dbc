// Package options holds cross-cutting option groups shared by more
// than one VibeCraft component.
package options

import (
	"fmt"

	"github.com/spf13/pflag"
)

// ServerRunOptions configures the generic HTTP server that hosts the
// SSE MCP transport and the diagnostic endpoints.
type ServerRunOptions struct {
	BindAddress string `json:"bind-address" mapstructure:"bind-address"`
	BindPort    int    `json:"bind-port"    mapstructure:"bind-port"`
	Mode        string `json:"mode"         mapstructure:"mode"` // gin mode: debug|release|test
	// EnableProfiling mounts the pprof handlers under /debug/pprof on
	// the same engine as the diagnostic endpoints.
	EnableProfiling bool `json:"enable-profiling" mapstructure:"enable-profiling"`
}

func NewServerRunOptions() *ServerRunOptions {
	return &ServerRunOptions{
		BindAddress: "127.0.0.1",
		BindPort:    8787,
		Mode:        "release",
	}
}

func (o *ServerRunOptions) Validate() []error {
	var errs []error
	if o.BindPort < 0 || o.BindPort > 65535 {
		errs = append(errs, fmt.Errorf("serving.bind-port: %d is not a valid port", o.BindPort))
	}
	switch o.Mode {
	case "debug", "release", "test":
	default:
		errs = append(errs, fmt.Errorf("serving.mode: %q must be one of debug|release|test", o.Mode))
	}
	return errs
}

func (o *ServerRunOptions) AddFlags(fs *pflag.FlagSet) {
	fs.StringVar(&o.BindAddress, "serving.bind-address", o.BindAddress, "IP address to serve the SSE MCP transport on.")
	fs.IntVar(&o.BindPort, "serving.bind-port", o.BindPort, "Port to serve the SSE MCP transport on.")
	fs.StringVar(&o.Mode, "serving.mode", o.Mode, "gin engine mode: debug, release, or test.")
	fs.BoolVar(&o.EnableProfiling, "serving.enable-profiling", o.EnableProfiling, "Serve pprof profiles under /debug/pprof.")
}
