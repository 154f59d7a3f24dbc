package options

import (
	"fmt"

	"github.com/spf13/pflag"
)

// SafetyOptions feed the Command Sanitizer's frozen Policy.
// These are never hot-reloaded: the policy binds at process start.
type SafetyOptions struct {
	SafetyChecks     bool `json:"safety-checks"      mapstructure:"checks"`
	DangerousAllowed bool `json:"dangerous-allowed"  mapstructure:"dangerous-allowed"`
	MaxCommandLength int  `json:"max-command-length" mapstructure:"max-command-length"`

	// BuildBox is the optional axis-aligned bounding box of permitted
	// build coordinates, six integers min/max per axis. Enabled only
	// when set explicitly.
	BuildBoxEnabled bool `json:"build-box-enabled" mapstructure:"build-box-enabled"`
	BuildBoxMinX    int  `json:"build-box-min-x"   mapstructure:"build-box-min-x"`
	BuildBoxMinY    int  `json:"build-box-min-y"   mapstructure:"build-box-min-y"`
	BuildBoxMinZ    int  `json:"build-box-min-z"   mapstructure:"build-box-min-z"`
	BuildBoxMaxX    int  `json:"build-box-max-x"   mapstructure:"build-box-max-x"`
	BuildBoxMaxY    int  `json:"build-box-max-y"   mapstructure:"build-box-max-y"`
	BuildBoxMaxZ    int  `json:"build-box-max-z"   mapstructure:"build-box-max-z"`
}

func NewSafetyOptions() *SafetyOptions {
	return &SafetyOptions{
		SafetyChecks:     true,
		DangerousAllowed: false,
		MaxCommandLength: 1000,
	}
}

func (o *SafetyOptions) Validate() []error {
	var errs []error
	if o.MaxCommandLength < 1 {
		errs = append(errs, fmt.Errorf("safety.max-command-length: must be >= 1, got %d", o.MaxCommandLength))
	}
	if o.BuildBoxEnabled {
		if o.BuildBoxMinX > o.BuildBoxMaxX || o.BuildBoxMinY > o.BuildBoxMaxY || o.BuildBoxMinZ > o.BuildBoxMaxZ {
			errs = append(errs, fmt.Errorf("safety.build-box: conflicting bounds, min exceeds max"))
		}
	}
	return errs
}

func (o *SafetyOptions) AddFlags(fs *pflag.FlagSet) {
	fs.BoolVar(&o.SafetyChecks, "safety.checks", o.SafetyChecks, "Syntactic command filtering (quoting, control characters, shell metacharacters).")
	fs.BoolVar(&o.DangerousAllowed, "safety.dangerous-allowed", o.DangerousAllowed, "Allow the closed set of destructive commands (regen, removeabove, op, ...).")
	fs.IntVar(&o.MaxCommandLength, "safety.max-command-length", o.MaxCommandLength, "Maximum accepted command length after trimming.")
	fs.BoolVar(&o.BuildBoxEnabled, "safety.build-box-enabled", o.BuildBoxEnabled, "Restrict build coordinates to the configured bounding box.")
	fs.IntVar(&o.BuildBoxMinX, "safety.build-box-min-x", o.BuildBoxMinX, "Build box minimum x.")
	fs.IntVar(&o.BuildBoxMinY, "safety.build-box-min-y", o.BuildBoxMinY, "Build box minimum y.")
	fs.IntVar(&o.BuildBoxMinZ, "safety.build-box-min-z", o.BuildBoxMinZ, "Build box minimum z.")
	fs.IntVar(&o.BuildBoxMaxX, "safety.build-box-max-x", o.BuildBoxMaxX, "Build box maximum x.")
	fs.IntVar(&o.BuildBoxMaxY, "safety.build-box-max-y", o.BuildBoxMaxY, "Build box maximum y.")
	fs.IntVar(&o.BuildBoxMaxZ, "safety.build-box-max-z", o.BuildBoxMaxZ, "Build box maximum z.")
}
