// Package options aggregates every vibecraftd option group into one
// Options struct with grouped flags and environment binding.
package options

import (
	genericoptions "github.com/kiosk404/vibecraft/internal/pkg/options"
	"github.com/kiosk404/vibecraft/pkg/codec"
	"github.com/kiosk404/vibecraft/pkg/utils/cliflag"
	"github.com/spf13/viper"
)

type Options struct {
	BridgeOptions           *BridgeOptions                   `json:"bridge"    mapstructure:"bridge"`
	SafetyOptions           *SafetyOptions                   `json:"safety"    mapstructure:"safety"`
	SandboxOptions          *SandboxOptions                  `json:"sandbox"   mapstructure:"sandbox"`
	BuildOptions            *BuildOptions                    `json:"build"     mapstructure:"build"`
	TransportOptions        *TransportOptions                `json:"transport" mapstructure:"transport"`
	GenericServerRunOptions *genericoptions.ServerRunOptions `json:"serving"   mapstructure:"serving"`

	// LogFile is where pkg/logger tees its output; empty keeps stderr only.
	LogFile string `json:"log-file" mapstructure:"log-file"`

	// RuntimeSettingsFile, when set, is watched for hot reloads of the
	// non-safety tunables (command logging, per-request timeout).
	RuntimeSettingsFile string `json:"runtime-settings-file" mapstructure:"runtime-settings-file"`
}

func NewOptions() *Options {
	return &Options{
		BridgeOptions:           NewBridgeOptions(),
		SafetyOptions:           NewSafetyOptions(),
		SandboxOptions:          NewSandboxOptions(),
		BuildOptions:            NewBuildOptions(),
		TransportOptions:        NewTransportOptions(),
		GenericServerRunOptions: genericoptions.NewServerRunOptions(),
	}
}

func (o *Options) Flags() (fss cliflag.NamedFlagSets) {
	o.BridgeOptions.AddFlags(fss.FlagSet("bridge"))
	o.SafetyOptions.AddFlags(fss.FlagSet("safety"))
	o.SandboxOptions.AddFlags(fss.FlagSet("sandbox"))
	o.BuildOptions.AddFlags(fss.FlagSet("build"))
	o.TransportOptions.AddFlags(fss.FlagSet("transport"))
	o.GenericServerRunOptions.AddFlags(fss.FlagSet("serving"))
	global := fss.FlagSet("global")
	global.StringVar(&o.LogFile, "log-file", o.LogFile, "Tee log output to this file in addition to stderr.")
	global.StringVar(&o.RuntimeSettingsFile, "runtime-settings-file", o.RuntimeSettingsFile, "Watch this JSON file for hot reloads of non-safety tunables.")
	return fss
}

// Validate collects every group's validation errors; a non-empty result
// is fatal misconfiguration (exit code 1).
func (o *Options) Validate() []error {
	var errs []error
	errs = append(errs, o.BridgeOptions.Validate()...)
	errs = append(errs, o.SafetyOptions.Validate()...)
	errs = append(errs, o.SandboxOptions.Validate()...)
	errs = append(errs, o.BuildOptions.Validate()...)
	errs = append(errs, o.TransportOptions.Validate()...)
	errs = append(errs, o.GenericServerRunOptions.Validate()...)
	return errs
}

// envBindings maps viper keys to the environment variables recognized
// at startup. Flags take precedence over environment.
var envBindings = map[string]string{
	"bridge.host":               "VIBECRAFT_BRIDGE_HOST",
	"bridge.port":               "VIBECRAFT_BRIDGE_PORT",
	"bridge.path":               "VIBECRAFT_BRIDGE_PATH",
	"bridge.token":              "VIBECRAFT_BRIDGE_TOKEN",
	"bridge.request-timeout":    "VIBECRAFT_REQUEST_TIMEOUT",
	"bridge.worldedit-mode":     "VIBECRAFT_WORLDEDIT_MODE",
	"bridge.version-detection":  "VIBECRAFT_VERSION_DETECTION",
	"safety.checks":             "VIBECRAFT_SAFETY_CHECKS",
	"safety.dangerous-allowed":  "VIBECRAFT_DANGEROUS_ALLOWED",
	"safety.max-command-length": "VIBECRAFT_MAX_COMMAND_LENGTH",
	"safety.build-box-enabled":  "VIBECRAFT_BUILD_BOX_ENABLED",
	"safety.build-box-min-x":    "VIBECRAFT_BUILD_BOX_MIN_X",
	"safety.build-box-min-y":    "VIBECRAFT_BUILD_BOX_MIN_Y",
	"safety.build-box-min-z":    "VIBECRAFT_BUILD_BOX_MIN_Z",
	"safety.build-box-max-x":    "VIBECRAFT_BUILD_BOX_MAX_X",
	"safety.build-box-max-y":    "VIBECRAFT_BUILD_BOX_MAX_Y",
	"safety.build-box-max-z":    "VIBECRAFT_BUILD_BOX_MAX_Z",
	"build.command-logging":     "VIBECRAFT_COMMAND_LOGGING",
	"build.coalesce":            "VIBECRAFT_COALESCE",
	"serving.bind-address":      "VIBECRAFT_BIND_ADDRESS",
	"serving.bind-port":         "VIBECRAFT_BIND_PORT",
	"serving.enable-profiling":  "VIBECRAFT_ENABLE_PROFILING",
	"log-file":                  "VIBECRAFT_LOG_FILE",
	"runtime-settings-file":     "VIBECRAFT_RUNTIME_SETTINGS_FILE",
}

// BindEnv registers every recognized environment variable with viper.
// Call once after viper.BindPFlags so flags stay authoritative.
func BindEnv(v *viper.Viper) error {
	for key, env := range envBindings {
		if err := v.BindEnv(key, env); err != nil {
			return err
		}
	}
	return nil
}

// ApplyViper overlays viper-resolved values (environment, config file)
// onto o. Unset keys leave the flag/default values untouched.
func (o *Options) ApplyViper(v *viper.Viper) error {
	return v.Unmarshal(o)
}

func (o *Options) String() string {
	data, _ := codec.Marshal(o)
	return string(data)
}
