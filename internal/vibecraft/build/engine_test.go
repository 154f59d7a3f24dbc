package build

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/kiosk404/vibecraft/internal/vibecraft/bridge"
	"github.com/kiosk404/vibecraft/internal/vibecraft/sanitizer"
	"github.com/kiosk404/vibecraft/internal/vibecraft/schematic"
	"github.com/kiosk404/vibecraft/internal/vibecraft/verrors"
	"github.com/stretchr/testify/require"
)

// fakeBridge records every Request call and answers from a canned script.
type fakeBridge struct {
	mode     bridge.WorldEditMode
	caps     bridge.Capabilities
	requests []fakeCall
	fail     map[string]string // command -> peer error
	position map[string]interface{}
}

type fakeCall struct {
	msgType bridge.MessageType
	payload interface{}
}

func (f *fakeBridge) Request(_ context.Context, msgType bridge.MessageType, payload interface{}, _ time.Duration) (interface{}, error) {
	f.requests = append(f.requests, fakeCall{msgType: msgType, payload: payload})

	switch msgType {
	case bridge.MessagePlayerContext:
		if f.position == nil {
			return nil, errors.New("no player")
		}
		return f.position, nil
	case bridge.MessageCommandExecute:
		cmd := payload.(map[string]interface{})["command"].(string)
		if reason, bad := f.fail[cmd]; bad {
			return nil, verrors.PeerError(reason)
		}
		return "executed", nil
	default:
		return nil, nil
	}
}

func (f *fakeBridge) WorldEditMode() bridge.WorldEditMode {
	if f.mode == "" {
		return bridge.WorldEditAuto
	}
	return f.mode
}

func (f *fakeBridge) Capabilities() bridge.Capabilities { return f.caps }

func (f *fakeBridge) executed() []string {
	var cmds []string
	for _, call := range f.requests {
		if call.msgType == bridge.MessageCommandExecute {
			cmds = append(cmds, call.payload.(map[string]interface{})["command"].(string))
		}
	}
	return cmds
}

func permissivePolicy() *sanitizer.Policy {
	return &sanitizer.Policy{SafetyChecksOn: true, DangerousAllowed: false, MaxCommandLength: 1000}
}

func newTestEngine(fb *fakeBridge) *Engine {
	return NewEngine(fb, &EngineConfig{Policy: permissivePolicy(), CommandTimeout: time.Second})
}

func TestBuild_SinglePlacement(t *testing.T) {
	fb := &fakeBridge{}
	engine := newTestEngine(fb)

	result, err := engine.Build(context.Background(), &Request{
		Commands: []string{"/setblock 100 64 200 stone"},
	}, nil)
	require.NoError(t, err)

	require.Equal(t, []string{"/setblock 100 64 200 stone"}, fb.executed())
	require.Equal(t, 1, result.Attempted)
	require.Equal(t, 1, result.OK)
	require.Equal(t, 0, result.Failed)
}

func TestBuild_PreviewSendsNothing(t *testing.T) {
	fb := &fakeBridge{}
	engine := newTestEngine(fb)

	result, err := engine.Build(context.Background(), &Request{
		Commands:    []string{"/setblock 100 64 200 stone"},
		PreviewOnly: true,
	}, nil)
	require.NoError(t, err)

	require.Empty(t, fb.requests, "preview must issue zero Bridge calls")
	require.Len(t, result.Outcomes, 1)
	require.Equal(t, StatusSkipped, result.Outcomes[0].Status)
}

func TestBuild_SanitizerRejectionAbortsWholeBuild(t *testing.T) {
	fb := &fakeBridge{}
	engine := newTestEngine(fb)

	_, err := engine.Build(context.Background(), &Request{
		Commands: []string{"/setblock 1 2 3 stone", "//regen"},
	}, nil)

	var verr *verrors.Error
	require.ErrorAs(t, err, &verr)
	require.Equal(t, verrors.KindSanitizationRejected, verr.Kind)
	require.Contains(t, verr.Message, "dangerous operation")
	require.Empty(t, fb.requests, "a rejected build must never reach the Bridge")
}

func TestBuild_BestEffortContinuesPastPeerError(t *testing.T) {
	fb := &fakeBridge{fail: map[string]string{"/setblock 1 1 1 dirt": "chunk not loaded"}}
	engine := newTestEngine(fb)

	result, err := engine.Build(context.Background(), &Request{
		Commands: []string{"/setblock 0 0 0 dirt", "/setblock 1 1 1 dirt", "/setblock 2 2 2 dirt"},
	}, nil)
	require.NoError(t, err)

	require.Equal(t, 3, result.Attempted)
	require.Equal(t, 2, result.OK)
	require.Equal(t, 1, result.Failed)
	require.Contains(t, result.Outcomes[1].Reason, "chunk not loaded")
}

func TestBuild_FailFastStopsAtFirstFailure(t *testing.T) {
	fb := &fakeBridge{fail: map[string]string{"/setblock 0 0 0 dirt": "nope"}}
	engine := newTestEngine(fb)

	result, err := engine.Build(context.Background(), &Request{
		Commands: []string{"/setblock 0 0 0 dirt", "/setblock 1 1 1 dirt"},
		FailFast: true,
	}, nil)
	require.NoError(t, err)

	require.Equal(t, 1, result.Attempted)
	require.Len(t, fb.executed(), 1)
}

func TestBuild_ProgressSinkSeesCumulativeCounts(t *testing.T) {
	fb := &fakeBridge{}
	engine := newTestEngine(fb)

	var attempts []int
	_, err := engine.Build(context.Background(), &Request{
		Commands: []string{"/say a", "/say b", "/say c"},
	}, func(attempted, ok, failed int) {
		attempts = append(attempts, attempted)
	})
	require.NoError(t, err)
	require.Equal(t, []int{1, 2, 3}, attempts)
}

func TestBuild_WorldEditOffBlocksLargeRegionCommands(t *testing.T) {
	fb := &fakeBridge{mode: bridge.WorldEditOff}
	engine := newTestEngine(fb)

	result, err := engine.Build(context.Background(), &Request{
		Commands: []string{"//set stone"},
	}, nil)
	require.NoError(t, err)

	require.Empty(t, fb.executed())
	require.Equal(t, StatusFailed, result.Outcomes[0].Status)
	require.Contains(t, result.Outcomes[0].Reason, "worldedit mode is off")
}

func TestBuild_WorldEditAutoConsultsCapability(t *testing.T) {
	fb := &fakeBridge{
		mode: bridge.WorldEditAuto,
		caps: bridge.Capabilities{"worldedit": map[string]interface{}{"available": false, "reason": "plugin missing"}},
	}
	engine := newTestEngine(fb)

	result, err := engine.Build(context.Background(), &Request{Commands: []string{"//set stone"}}, nil)
	require.NoError(t, err)
	require.Contains(t, result.Outcomes[0].Reason, "plugin missing")

	fb.caps = bridge.Capabilities{"worldedit": true}
	result, err = engine.Build(context.Background(), &Request{Commands: []string{"//set stone"}}, nil)
	require.NoError(t, err)
	require.Equal(t, StatusOK, result.Outcomes[0].Status)
}

func TestBuild_WorldEditForceEmitsRegardless(t *testing.T) {
	fb := &fakeBridge{mode: bridge.WorldEditForce, caps: bridge.Capabilities{}}
	engine := newTestEngine(fb)

	result, err := engine.Build(context.Background(), &Request{Commands: []string{"//set stone"}}, nil)
	require.NoError(t, err)
	require.Equal(t, StatusOK, result.Outcomes[0].Status)
	require.Equal(t, []string{"//set stone"}, fb.executed())
}

func TestBuild_SchematicAnchorResolvedThroughBridge(t *testing.T) {
	fb := &fakeBridge{
		position: map[string]interface{}{
			"position_int": map[string]interface{}{"x": float64(10), "y": float64(64), "z": float64(-5)},
		},
	}
	engine := newTestEngine(fb)

	result, err := engine.Build(context.Background(), &Request{
		Schematic: &schematic.Schematic{
			Anchor:  schematic.Anchor{Player: true},
			Facing:  schematic.North,
			Mode:    schematic.ModeReplace,
			Palette: map[string]string{"S": "stone"},
			Layers:  []schematic.LayerSpec{{YFrom: 0, YTo: 0, RowString: "S"}},
		},
	}, nil)
	require.NoError(t, err)

	require.Equal(t, []string{"/setblock 10 64 -5 stone replace"}, fb.executed())
	require.Equal(t, 1, result.OK)
}

func TestBuild_ScriptThroughSandbox(t *testing.T) {
	fb := &fakeBridge{}
	engine := newTestEngine(fb)

	source := `
commands = []
for i in range(3):
    commands.append("/setblock %d 64 0 stone" % i)
`
	result, err := engine.Build(context.Background(), &Request{Script: source}, nil)
	require.NoError(t, err)
	require.Equal(t, 3, result.OK)
	require.Equal(t, []string{
		"/setblock 0 64 0 stone",
		"/setblock 1 64 0 stone",
		"/setblock 2 64 0 stone",
	}, fb.executed())
}

func TestBuild_SandboxViolationAbortsBuild(t *testing.T) {
	fb := &fakeBridge{}
	engine := newTestEngine(fb)

	_, err := engine.Build(context.Background(), &Request{Script: "import os"}, nil)

	var verr *verrors.Error
	require.ErrorAs(t, err, &verr)
	require.Equal(t, verrors.KindSandboxViolation, verr.Kind)
	require.Empty(t, fb.requests)
}
