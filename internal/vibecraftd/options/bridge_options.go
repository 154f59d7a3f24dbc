package options

import (
	"fmt"
	"time"

	"github.com/spf13/pflag"
)

// BridgeOptions configures the WebSocket channel to the game-client
// helper (defaults: localhost:8766/vibecraft).
type BridgeOptions struct {
	Host           string        `json:"host"            mapstructure:"host"`
	Port           int           `json:"port"            mapstructure:"port"`
	Path           string        `json:"path"            mapstructure:"path"`
	Token          string        `json:"token"           mapstructure:"token"`
	RequestTimeout time.Duration `json:"request-timeout" mapstructure:"request-timeout"`
	WorldEditMode  string        `json:"worldedit-mode"  mapstructure:"worldedit-mode"`
	// RequireAtStartup makes startup fail (exit code 2) when the peer
	// is unreachable after bounded retry, instead of retrying in the
	// background forever.
	RequireAtStartup bool `json:"require-at-startup" mapstructure:"require-at-startup"`
	// VersionDetection logs the peer's client id and version from the
	// handshake capability map.
	VersionDetection bool `json:"version-detection" mapstructure:"version-detection"`
}

func NewBridgeOptions() *BridgeOptions {
	return &BridgeOptions{
		Host:             "localhost",
		Port:             8766,
		Path:             "/vibecraft",
		RequestTimeout:   30 * time.Second,
		WorldEditMode:    "auto",
		VersionDetection: true,
	}
}

func (o *BridgeOptions) Validate() []error {
	var errs []error
	if o.Port < 1 || o.Port > 65535 {
		errs = append(errs, fmt.Errorf("bridge.port: %d is not a valid port", o.Port))
	}
	if o.RequestTimeout <= 0 {
		errs = append(errs, fmt.Errorf("bridge.request-timeout: must be positive, got %s", o.RequestTimeout))
	}
	switch o.WorldEditMode {
	case "auto", "force", "off":
	default:
		errs = append(errs, fmt.Errorf("bridge.worldedit-mode: %q must be one of auto|force|off", o.WorldEditMode))
	}
	return errs
}

func (o *BridgeOptions) AddFlags(fs *pflag.FlagSet) {
	fs.StringVar(&o.Host, "bridge.host", o.Host, "Host the game-client helper listens on.")
	fs.IntVar(&o.Port, "bridge.port", o.Port, "Port the game-client helper listens on.")
	fs.StringVar(&o.Path, "bridge.path", o.Path, "WebSocket path of the game-client helper.")
	fs.StringVar(&o.Token, "bridge.token", o.Token, "Shared token sent on every Bridge envelope; empty disables auth.")
	fs.DurationVar(&o.RequestTimeout, "bridge.request-timeout", o.RequestTimeout, "Default per-request timeout for Bridge calls.")
	fs.StringVar(&o.WorldEditMode, "bridge.worldedit-mode", o.WorldEditMode, "Large-region command policy: auto, force, or off.")
	fs.BoolVar(&o.RequireAtStartup, "bridge.require-at-startup", o.RequireAtStartup, "Fail startup when the game client is unreachable instead of retrying in the background.")
	fs.BoolVar(&o.VersionDetection, "bridge.version-detection", o.VersionDetection, "Log the peer's client id and version after each handshake.")
}
