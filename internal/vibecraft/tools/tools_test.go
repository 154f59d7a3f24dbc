package tools

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/kiosk404/vibecraft/internal/vibecraft/bridge"
	"github.com/kiosk404/vibecraft/internal/vibecraft/build"
	"github.com/kiosk404/vibecraft/internal/vibecraft/catalog"
	"github.com/kiosk404/vibecraft/internal/vibecraft/sanitizer"
	"github.com/kiosk404/vibecraft/pkg/codec"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/require"
)

// fakeBridge answers every command.execute with success and records
// the calls, enough to drive handlers end to end without a socket.
type fakeBridge struct {
	mode     bridge.WorldEditMode
	caps     bridge.Capabilities
	requests []bridge.MessageType
	results  map[bridge.MessageType]interface{}
}

func (f *fakeBridge) Request(_ context.Context, msgType bridge.MessageType, _ interface{}, _ time.Duration) (interface{}, error) {
	f.requests = append(f.requests, msgType)
	if r, ok := f.results[msgType]; ok {
		return r, nil
	}
	return "executed", nil
}

func (f *fakeBridge) WorldEditMode() bridge.WorldEditMode {
	if f.mode == "" {
		return bridge.WorldEditAuto
	}
	return f.mode
}

func (f *fakeBridge) Capabilities() bridge.Capabilities { return f.caps }

func newTestDeps(t *testing.T, fb *fakeBridge) *Deps {
	t.Helper()

	cat, err := catalog.Load()
	require.NoError(t, err)

	policy := &sanitizer.Policy{SafetyChecksOn: true, MaxCommandLength: 1000}
	engine := build.NewEngine(fb, &build.EngineConfig{Policy: policy, CommandTimeout: time.Second})

	return &Deps{Bridge: fb, Engine: engine, Catalog: cat, Timeout: time.Second}
}

func callReq(name string, args map[string]interface{}) mcp.CallToolRequest {
	req := mcp.CallToolRequest{}
	req.Params.Name = name
	req.Params.Arguments = args
	return req
}

func findTool(t *testing.T, deps *Deps, name string) Tool {
	t.Helper()
	for _, tool := range All(deps) {
		if tool.Def.Name == name {
			return tool
		}
	}
	t.Fatalf("tool %q not registered", name)
	return Tool{}
}

func textOf(t *testing.T, res *mcp.CallToolResult) string {
	t.Helper()
	require.NotEmpty(t, res.Content)
	text, ok := mcp.AsTextContent(res.Content[0])
	require.True(t, ok, "first content block is not text")
	return text.Text
}

func decodeText(t *testing.T, res *mcp.CallToolResult) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, codec.Unmarshal([]byte(textOf(t, res)), &out))
	return out
}

func TestBuildTool_SinglePlacement(t *testing.T) {
	fb := &fakeBridge{}
	deps := newTestDeps(t, fb)
	tool := findTool(t, deps, "build")

	res, err := tool.Handler(context.Background(), callReq("build", map[string]interface{}{
		"commands": []interface{}{"/setblock 100 64 200 stone"},
	}))
	require.NoError(t, err)
	require.False(t, res.IsError)

	out := decodeText(t, res)
	require.EqualValues(t, 1, out["attempted"])
	require.EqualValues(t, 1, out["ok"])
	require.EqualValues(t, 0, out["failed"])
	require.Equal(t, []bridge.MessageType{bridge.MessageCommandExecute}, fb.requests)
}

func TestBuildTool_PreviewIssuesNoBridgeCalls(t *testing.T) {
	fb := &fakeBridge{}
	deps := newTestDeps(t, fb)
	tool := findTool(t, deps, "build")

	res, err := tool.Handler(context.Background(), callReq("build", map[string]interface{}{
		"commands":     []interface{}{"/setblock 100 64 200 stone"},
		"preview_only": true,
	}))
	require.NoError(t, err)
	require.False(t, res.IsError)
	require.Empty(t, fb.requests)
	require.Contains(t, textOf(t, res), "skipped: preview")
}

func TestBuildTool_SanitizerBlockNamesTheRule(t *testing.T) {
	fb := &fakeBridge{}
	deps := newTestDeps(t, fb)
	tool := findTool(t, deps, "build")

	res, err := tool.Handler(context.Background(), callReq("build", map[string]interface{}{
		"commands": []interface{}{"//regen"},
	}))
	require.NoError(t, err)
	require.True(t, res.IsError)
	require.Contains(t, textOf(t, res), "dangerous operation")
	require.Empty(t, fb.requests)
}

func TestBuildTool_ExactlyOneInput(t *testing.T) {
	deps := newTestDeps(t, &fakeBridge{})
	tool := findTool(t, deps, "build")

	res, err := tool.Handler(context.Background(), callReq("build", map[string]interface{}{
		"commands": []interface{}{"/say hi"},
		"script":   "commands = []",
	}))
	require.NoError(t, err)
	require.True(t, res.IsError)
	require.Contains(t, textOf(t, res), "exactly one")
}

func TestBuildTool_SchematicExpansion(t *testing.T) {
	fb := &fakeBridge{}
	deps := newTestDeps(t, fb)
	tool := findTool(t, deps, "build")

	res, err := tool.Handler(context.Background(), callReq("build", map[string]interface{}{
		"schematic": map[string]interface{}{
			"a": []interface{}{float64(100), float64(64), float64(200)},
			"p": map[string]interface{}{"S": "stone_bricks", ".": "air"},
			"l": []interface{}{[]interface{}{float64(0), "S*3|S . S|S*3"}},
		},
	}))
	require.NoError(t, err)
	require.False(t, res.IsError)

	out := decodeText(t, res)
	require.EqualValues(t, 8, out["ok"], "the center cell is air and must be skipped")
}

func TestCommandExecuteTool_Validation(t *testing.T) {
	deps := newTestDeps(t, &fakeBridge{})
	tool := findTool(t, deps, "command_execute")

	res, err := tool.Handler(context.Background(), callReq("command_execute", map[string]interface{}{}))
	require.NoError(t, err)
	require.True(t, res.IsError, "missing required command must fail schema validation")

	res, err = tool.Handler(context.Background(), callReq("command_execute", map[string]interface{}{
		"command": "/say hi", "extra": true,
	}))
	require.NoError(t, err)
	require.True(t, res.IsError, "additionalProperties must be rejected")
}

func TestRegionScanTool_VolumeCap(t *testing.T) {
	fb := &fakeBridge{}
	deps := newTestDeps(t, fb)
	tool := findTool(t, deps, "region_scan")

	res, err := tool.Handler(context.Background(), callReq("region_scan", map[string]interface{}{
		"x1": float64(0), "y1": float64(0), "z1": float64(0),
		"x2": float64(127), "y2": float64(127), "z2": float64(127),
	}))
	require.NoError(t, err)
	require.True(t, res.IsError)
	require.Contains(t, textOf(t, res), "exceeds")
	require.Empty(t, fb.requests, "an over-cap region must never reach the Bridge")

	res, err = tool.Handler(context.Background(), callReq("region_scan", map[string]interface{}{
		"x1": float64(0), "y1": float64(0), "z1": float64(0),
		"x2": float64(63), "y2": float64(63), "z2": float64(63),
	}))
	require.NoError(t, err)
	require.False(t, res.IsError)
	require.Equal(t, []bridge.MessageType{bridge.MessageRegionScan}, fb.requests)
}

func TestSymmetryCheckTool_AxisEnum(t *testing.T) {
	deps := newTestDeps(t, &fakeBridge{})
	tool := findTool(t, deps, "symmetry_check")

	res, err := tool.Handler(context.Background(), callReq("symmetry_check", map[string]interface{}{
		"x1": float64(0), "y1": float64(0), "z1": float64(0),
		"x2": float64(8), "y2": float64(8), "z2": float64(8),
		"axis": "diagonal",
	}))
	require.NoError(t, err)
	require.True(t, res.IsError, "axis outside {x,y,z} must fail schema validation")
}

func TestSurfaceLevelTool_ShapesSingleColumn(t *testing.T) {
	fb := &fakeBridge{results: map[bridge.MessageType]interface{}{
		bridge.MessageRegionHeightmap: map[string]interface{}{
			"heights": []interface{}{[]interface{}{float64(71)}},
			"blocks":  []interface{}{[]interface{}{"grass_block"}},
		},
	}}
	deps := newTestDeps(t, fb)
	tool := findTool(t, deps, "surface_level")

	res, err := tool.Handler(context.Background(), callReq("surface_level", map[string]interface{}{
		"x": float64(10), "z": float64(-4),
	}))
	require.NoError(t, err)

	out := decodeText(t, res)
	require.EqualValues(t, 71, out["y"])
	require.Equal(t, "grass_block", out["block"])
}

func TestLookupTools(t *testing.T) {
	deps := newTestDeps(t, &fakeBridge{})

	patterns := findTool(t, deps, "pattern_lookup")
	res, err := patterns.Handler(context.Background(), callReq("pattern_lookup", nil))
	require.NoError(t, err)
	require.Contains(t, textOf(t, res), "checkerboard")

	res, err = patterns.Handler(context.Background(), callReq("pattern_lookup", map[string]interface{}{
		"name": "no-such-pattern",
	}))
	require.NoError(t, err)
	require.True(t, res.IsError)
	require.True(t, strings.HasPrefix(textOf(t, res), "catalog_miss"))

	templates := findTool(t, deps, "template_lookup")
	res, err = templates.Handler(context.Background(), callReq("template_lookup", map[string]interface{}{
		"name": "small_house", "render_notes": true,
	}))
	require.NoError(t, err)
	out := decodeText(t, res)
	require.Contains(t, out["notes_html"], "<h2>")
}

func TestAllToolsHaveUniqueNames(t *testing.T) {
	deps := newTestDeps(t, &fakeBridge{})
	seen := map[string]bool{}
	for _, tool := range All(deps) {
		require.False(t, seen[tool.Def.Name], "duplicate tool name %q", tool.Def.Name)
		seen[tool.Def.Name] = true
	}
	require.Len(t, seen, 17)
}
