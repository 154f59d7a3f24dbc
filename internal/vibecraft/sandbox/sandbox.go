// Package sandbox runs a restricted build script to produce a list of
// command strings. The restricted language is Starlark ("Python in
// Go"): deterministic, no imports by default, no filesystem or network
// access, and already close to the surface we want to allow. A static
// pre-execution check trims it down to that surface precisely, and
// runtime quotas bound iteration, output length, and wall clock.
package sandbox

import (
	"context"
	"fmt"
	"time"

	"github.com/kiosk404/vibecraft/internal/vibecraft/verrors"
	"go.starlark.net/resolve"
	"go.starlark.net/starlark"
	"go.starlark.net/syntax"
)

func init() {
	// Restore the legacy language behavior (top-level for/if/while,
	// global reassignment) that this package's scripts rely on.
	resolve.AllowGlobalReassign = true
}

// Quotas bounds a single script execution.
type Quotas struct {
	MaxIterations int
	MaxCommands   int
	MaxWallClock  time.Duration
}

func DefaultQuotas() Quotas {
	return Quotas{
		MaxIterations: 100_000,
		MaxCommands:   10_000,
		MaxWallClock:  5 * time.Second,
	}
}

// OutputName is the variable a script must bind its command list to.
const OutputName = "commands"

// Run executes source under quotas and returns the produced command
// list, or a SandboxViolation error.
func Run(ctx context.Context, source string, quotas Quotas) ([]string, []string, error) {
	file, err := syntax.Parse("script.star", source, 0)
	if err != nil {
		return nil, nil, verrors.SandboxViolation(fmt.Sprintf("syntax error: %v", err))
	}

	if reason := checkStatic(file); reason != "" {
		return nil, nil, verrors.SandboxViolation(reason)
	}

	runCtx, cancel := context.WithTimeout(ctx, quotas.MaxWallClock)
	defer cancel()

	var logs []string
	thread := &starlark.Thread{
		Print: func(_ *starlark.Thread, msg string) {
			logs = append(logs, msg)
		},
	}

	done := make(chan struct{})
	go func() {
		select {
		case <-runCtx.Done():
			thread.Cancel("wall-clock quota exceeded")
		case <-done:
		}
	}()

	predeclared, counter := predeclaredEnv(quotas.MaxIterations)

	globals, err := starlark.ExecFile(thread, "script.star", source, predeclared)
	close(done)

	if err != nil {
		if counter.exceeded {
			return nil, logs, verrors.SandboxViolation("loop iteration quota exceeded")
		}
		if runCtx.Err() != nil {
			return nil, logs, verrors.SandboxViolation("wall-clock quota exceeded")
		}
		return nil, logs, verrors.SandboxViolation(fmt.Sprintf("runtime error: %v", err))
	}

	commands, err := extractCommands(globals, quotas.MaxCommands)
	if err != nil {
		return nil, logs, err
	}

	return commands, logs, nil
}

func extractCommands(globals starlark.StringDict, maxCommands int) ([]string, error) {
	val, ok := globals[OutputName]
	if !ok {
		return nil, verrors.SandboxViolation(fmt.Sprintf("script must bind a %q list of strings", OutputName))
	}

	list, ok := val.(*starlark.List)
	if !ok {
		return nil, verrors.SandboxViolation(fmt.Sprintf("%q must be a list, got %s", OutputName, val.Type()))
	}

	if list.Len() > maxCommands {
		return nil, verrors.SandboxViolation(fmt.Sprintf("emitted command list length %d exceeds quota %d", list.Len(), maxCommands))
	}

	commands := make([]string, 0, list.Len())
	for i := 0; i < list.Len(); i++ {
		s, ok := starlark.AsString(list.Index(i))
		if !ok {
			return nil, verrors.SandboxViolation(fmt.Sprintf("%q element %d is not a string", OutputName, i))
		}
		commands = append(commands, s)
	}

	return commands, nil
}
