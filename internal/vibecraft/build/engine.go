package build

import (
	"context"
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	"github.com/kiosk404/vibecraft/internal/vibecraft/bridge"
	"github.com/kiosk404/vibecraft/internal/vibecraft/sandbox"
	"github.com/kiosk404/vibecraft/internal/vibecraft/sanitizer"
	"github.com/kiosk404/vibecraft/internal/vibecraft/schematic"
	"github.com/kiosk404/vibecraft/internal/vibecraft/verrors"
	"github.com/kiosk404/vibecraft/pkg/logger"
)

// Engine drives the full dispatch pipeline: normalize, sanitize,
// optionally coalesce, then dispatch sequentially through the Bridge.
// Multiple builds may run concurrently; each sequences its own stream
// and the Bridge multiplexes them by request identifier.
type Engine struct {
	bridge   BridgeClient
	policy   *sanitizer.Policy
	quotas   sandbox.Quotas
	coalesce bool

	// Hot-reloadable (non-safety) tunables; everything above is frozen
	// at process start.
	commandTimeout atomic.Int64 // nanoseconds
	commandLogging atomic.Bool
}

// EngineConfig is the Engine's slice of the frozen process Configuration.
type EngineConfig struct {
	Policy         *sanitizer.Policy
	Quotas         sandbox.Quotas
	CommandTimeout time.Duration
	CommandLogging bool
	Coalesce       bool
}

func NewEngine(bc BridgeClient, cfg *EngineConfig) *Engine {
	timeout := cfg.CommandTimeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	quotas := cfg.Quotas
	if quotas == (sandbox.Quotas{}) {
		quotas = sandbox.DefaultQuotas()
	}
	e := &Engine{
		bridge:   bc,
		policy:   cfg.Policy,
		quotas:   quotas,
		coalesce: cfg.Coalesce,
	}
	e.commandTimeout.Store(int64(timeout))
	e.commandLogging.Store(cfg.CommandLogging)
	return e
}

// SetCommandLogging flips per-command logging at runtime; safe to call
// concurrently with in-flight builds.
func (e *Engine) SetCommandLogging(on bool) { e.commandLogging.Store(on) }

// SetCommandTimeout adjusts the per-command dispatch timeout at
// runtime. Non-positive values are ignored.
func (e *Engine) SetCommandTimeout(d time.Duration) {
	if d > 0 {
		e.commandTimeout.Store(int64(d))
	}
}

func (e *Engine) timeout() time.Duration { return time.Duration(e.commandTimeout.Load()) }

// Build accepts a Build Request and produces a Build Result. Sanitizer
// and Sandbox errors abort the entire build before any command is
// dispatched; peer errors during dispatch are recorded per-command and
// dispatch continues unless the request opted into FailFast.
func (e *Engine) Build(ctx context.Context, req *Request, sink ProgressSink) (*Result, error) {
	commands, err := e.normalize(ctx, req)
	if err != nil {
		return nil, err
	}

	for _, cmd := range commands {
		if r := sanitizer.Check(cmd, e.policy); !r.Accepted {
			return nil, verrors.SanitizationRejected(cmd, r.Reason)
		}
	}

	if req.PreviewOnly {
		return previewResult(commands), nil
	}

	if e.coalesce {
		commands = coalesceFills(commands)
	}

	result := &Result{Outcomes: make([]Outcome, 0, len(commands))}
	for _, cmd := range commands {
		outcome := e.dispatchOne(ctx, cmd)
		result.Outcomes = append(result.Outcomes, outcome)
		result.Attempted++
		if outcome.Status == StatusOK {
			result.OK++
		} else {
			result.Failed++
		}

		if sink != nil {
			sink(result.Attempted, result.OK, result.Failed)
		}

		if outcome.Status == StatusFailed && req.FailFast {
			break
		}
	}

	result.Report = fmt.Sprintf("%s: %d attempted, %d ok, %d failed",
		describeOr(req.Description, "build"), result.Attempted, result.OK, result.Failed)
	return result, nil
}

func (e *Engine) normalize(ctx context.Context, req *Request) ([]string, error) {
	switch {
	case req.Script != "":
		commands, logs, err := sandbox.Run(ctx, req.Script, e.quotas)
		if err != nil {
			return nil, err
		}
		for _, line := range logs {
			logger.Debug("build script: %s", line)
		}
		return commands, nil
	case req.Schematic != nil:
		return schematic.Expand(ctx, req.Schematic, &bridgePositioner{bc: e.bridge, timeout: e.timeout()})
	default:
		return req.Commands, nil
	}
}

// dispatchOne sends a single command through the Bridge, enforcing the
// WorldEdit policy on large-region ("//...") commands first.
func (e *Engine) dispatchOne(ctx context.Context, cmd string) Outcome {
	if strings.HasPrefix(cmd, "//") {
		if reason := e.worldEditBlocked(); reason != "" {
			return Outcome{Command: cmd, Status: StatusFailed, Reason: reason}
		}
	}

	if e.commandLogging.Load() {
		logger.Info("dispatch: %s", cmd)
	}

	payload := map[string]interface{}{"command": cmd}
	_, err := e.bridge.Request(ctx, bridge.MessageCommandExecute, payload, e.timeout())
	if err != nil {
		return Outcome{Command: cmd, Status: StatusFailed, Reason: err.Error()}
	}
	return Outcome{Command: cmd, Status: StatusOK}
}

// worldEditBlocked returns a non-empty reason when the active WorldEdit
// mode forbids emitting a large-region command right now.
func (e *Engine) worldEditBlocked() string {
	switch e.bridge.WorldEditMode() {
	case bridge.WorldEditOff:
		return "worldedit mode is off"
	case bridge.WorldEditAuto:
		available, reason := e.bridge.Capabilities().WorldEditAvailable()
		if !available {
			if reason == "" {
				reason = "peer did not advertise it"
			}
			return "worldedit unavailable: " + reason
		}
	}
	return ""
}

func previewResult(commands []string) *Result {
	r := &Result{Outcomes: make([]Outcome, 0, len(commands))}
	for _, cmd := range commands {
		r.Outcomes = append(r.Outcomes, Outcome{Command: cmd, Status: StatusSkipped})
	}
	r.Report = fmt.Sprintf("preview: %d commands, none dispatched", len(commands))
	return r
}

func describeOr(desc, fallback string) string {
	if desc == "" {
		return fallback
	}
	return desc
}

// bridgePositioner adapts the Bridge's player.context call to the
// schematic package's PlayerPositioner, keeping the schematic package
// free of any WebSocket dependency.
type bridgePositioner struct {
	bc      BridgeClient
	timeout time.Duration
}

func (p *bridgePositioner) PlayerPosition(ctx context.Context) (int, int, int, error) {
	result, err := p.bc.Request(ctx, bridge.MessagePlayerContext, map[string]interface{}{"reach": 0}, p.timeout)
	if err != nil {
		return 0, 0, 0, err
	}
	x, y, z, ok := extractIntPosition(result)
	if !ok {
		return 0, 0, 0, verrors.PeerError("player.context result carries no usable position")
	}
	return x, y, z, nil
}

// extractIntPosition digs the player's integer block position out of a
// player.context result, accepting either the dedicated integer triple
// or the floating position truncated.
func extractIntPosition(result interface{}) (x, y, z int, ok bool) {
	m, isMap := result.(map[string]interface{})
	if !isMap {
		return 0, 0, 0, false
	}
	for _, key := range []string{"position_int", "position"} {
		triple, present := m[key].(map[string]interface{})
		if !present {
			continue
		}
		fx, okX := asFloat(triple["x"])
		fy, okY := asFloat(triple["y"])
		fz, okZ := asFloat(triple["z"])
		if okX && okY && okZ {
			return int(fx), int(fy), int(fz), true
		}
	}
	return 0, 0, 0, false
}

func asFloat(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	default:
		return 0, false
	}
}
