// Package build implements the build engine: it normalizes
// a build script, schematic, or raw command list into an ordered
// command stream, sanitizes it atomically, optionally coalesces
// adjacent fills, and dispatches it through the Bridge.
package build

import (
	"context"
	"time"

	"github.com/kiosk404/vibecraft/internal/vibecraft/bridge"
	"github.com/kiosk404/vibecraft/internal/vibecraft/schematic"
)

// BridgeClient is the slice of the Bridge the Build Engine depends on,
// named as an interface so engine tests can run against a fake.
type BridgeClient interface {
	Request(ctx context.Context, msgType bridge.MessageType, payload interface{}, timeout time.Duration) (interface{}, error)
	WorldEditMode() bridge.WorldEditMode
	Capabilities() bridge.Capabilities
}

// Request carries exactly one of Commands, Script, or Schematic;
// PreviewOnly and FailFast are orthogonal options.
type Request struct {
	Commands    []string
	Script      string
	Schematic   *schematic.Schematic
	PreviewOnly bool
	FailFast    bool
	Description string
}

// OutcomeStatus is one of the three terminal states a dispatched
// command can land in.
type OutcomeStatus string

const (
	StatusOK      OutcomeStatus = "ok"
	StatusFailed  OutcomeStatus = "failed"
	StatusSkipped OutcomeStatus = "skipped: preview"
)

// Outcome is one command's result within a Build Result.
type Outcome struct {
	Command string        `json:"command"`
	Status  OutcomeStatus `json:"status"`
	Reason  string        `json:"reason,omitempty"`
}

// Result is the full per-command report plus summary counts.
type Result struct {
	Outcomes  []Outcome `json:"outcomes"`
	Attempted int       `json:"attempted"`
	OK        int       `json:"ok"`
	Failed    int       `json:"failed"`
	Report    string    `json:"report"`
}

// ProgressSink receives cumulative counts after every dispatched
// command.
type ProgressSink func(attempted, ok, failed int)
