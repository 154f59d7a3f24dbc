package options

import (
	"fmt"
	"time"

	"github.com/spf13/pflag"
)

// BuildOptions tune the Build Engine's dispatch pipeline (command
// logging, setblock coalescing).
type BuildOptions struct {
	CommandLogging bool `json:"command-logging" mapstructure:"command-logging"`
	Coalesce       bool `json:"coalesce"        mapstructure:"coalesce"`
}

func NewBuildOptions() *BuildOptions {
	return &BuildOptions{
		CommandLogging: false,
		Coalesce:       true,
	}
}

func (o *BuildOptions) Validate() []error { return nil }

func (o *BuildOptions) AddFlags(fs *pflag.FlagSet) {
	fs.BoolVar(&o.CommandLogging, "build.command-logging", o.CommandLogging, "Log every dispatched command at info level.")
	fs.BoolVar(&o.Coalesce, "build.coalesce", o.Coalesce, "Merge straight runs of identical setblock commands into fill commands.")
}

// SandboxOptions bound a single build-script execution.
type SandboxOptions struct {
	MaxIterations int           `json:"max-iterations" mapstructure:"max-iterations"`
	MaxCommands   int           `json:"max-commands"   mapstructure:"max-commands"`
	MaxWallClock  time.Duration `json:"max-wall-clock" mapstructure:"max-wall-clock"`
}

func NewSandboxOptions() *SandboxOptions {
	return &SandboxOptions{
		MaxIterations: 100_000,
		MaxCommands:   10_000,
		MaxWallClock:  5 * time.Second,
	}
}

func (o *SandboxOptions) Validate() []error {
	var errs []error
	if o.MaxIterations < 1 {
		errs = append(errs, fmt.Errorf("sandbox.max-iterations: must be >= 1, got %d", o.MaxIterations))
	}
	if o.MaxCommands < 1 {
		errs = append(errs, fmt.Errorf("sandbox.max-commands: must be >= 1, got %d", o.MaxCommands))
	}
	if o.MaxWallClock <= 0 {
		errs = append(errs, fmt.Errorf("sandbox.max-wall-clock: must be positive, got %s", o.MaxWallClock))
	}
	return errs
}

func (o *SandboxOptions) AddFlags(fs *pflag.FlagSet) {
	fs.IntVar(&o.MaxIterations, "sandbox.max-iterations", o.MaxIterations, "Aggregate loop iteration quota per script.")
	fs.IntVar(&o.MaxCommands, "sandbox.max-commands", o.MaxCommands, "Maximum commands a script may emit.")
	fs.DurationVar(&o.MaxWallClock, "sandbox.max-wall-clock", o.MaxWallClock, "Wall-clock execution quota per script.")
}

// TransportOptions choose which MCP transports the daemon serves.
type TransportOptions struct {
	Stdio bool `json:"stdio" mapstructure:"stdio"`
	SSE   bool `json:"sse"   mapstructure:"sse"`
}

func NewTransportOptions() *TransportOptions {
	return &TransportOptions{Stdio: true, SSE: true}
}

func (o *TransportOptions) Validate() []error {
	if !o.Stdio && !o.SSE {
		return []error{fmt.Errorf("transport: at least one of stdio and sse must be enabled")}
	}
	return nil
}

func (o *TransportOptions) AddFlags(fs *pflag.FlagSet) {
	fs.BoolVar(&o.Stdio, "transport.stdio", o.Stdio, "Serve MCP over stdio (one JSON object per line).")
	fs.BoolVar(&o.SSE, "transport.sse", o.SSE, "Serve MCP over server-sent events on the generic HTTP server.")
}
