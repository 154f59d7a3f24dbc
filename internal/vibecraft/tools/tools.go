// Package tools implements the concrete handlers for every tool the
// Dispatch Runtime advertises. Handlers are pure with
// respect to process state: they read the frozen Configuration, call
// the Bridge and/or Build Engine, and return a structured result.
package tools

import (
	"context"
	"time"

	"github.com/kiosk404/vibecraft/internal/vibecraft/bridge"
	"github.com/kiosk404/vibecraft/internal/vibecraft/build"
	"github.com/kiosk404/vibecraft/internal/vibecraft/catalog"
	"github.com/kiosk404/vibecraft/pkg/codec"
	"github.com/mark3labs/mcp-go/mcp"
)

// Handler is the signature every tool handler implements; it matches
// the mcp-go server's handler shape so the dispatch layer can register
// it without an adapter.
type Handler func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error)

// Tool pairs an advertised MCP tool definition with its handler.
type Tool struct {
	Def     mcp.Tool
	Handler Handler
}

// Deps is everything a handler may reach for. All fields are wired once
// at startup and read-only afterwards.
type Deps struct {
	Bridge  build.BridgeClient
	Engine  *build.Engine
	Catalog *catalog.Catalog
	Timeout time.Duration
}

func (d *Deps) timeout() time.Duration {
	if d.Timeout <= 0 {
		return 30 * time.Second
	}
	return d.Timeout
}

// All returns the complete tool set in advertisement order.
func All(deps *Deps) []Tool {
	return []Tool{
		commandExecuteTool(deps),
		serverInfoTool(deps),
		playerPositionTool(deps),
		playerContextTool(deps),
		nearbyEntitiesTool(deps),
		surfaceLevelTool(deps),
		regionScanTool(deps),
		heightmapTool(deps),
		paletteAnalyzeTool(deps),
		paletteRegionTool(deps),
		lightAnalyzeTool(deps),
		symmetryCheckTool(deps),
		screenshotTool(deps),
		buildTool(deps),
		patternLookupTool(deps),
		furnitureLookupTool(deps),
		templateLookupTool(deps),
	}
}

// newTool builds a tool definition from a raw JSON schema so the same
// schema document drives both the tools/list advertisement and the
// pre-call structural validation.
func newTool(name, description, schema string) mcp.Tool {
	return mcp.NewToolWithRawSchema(name, description, []byte(schema))
}

// resultJSON shapes a handler's structured result as a JSON text block,
// the form every agent-facing success takes.
func resultJSON(v interface{}) (*mcp.CallToolResult, error) {
	s, err := codec.MarshalToString(v)
	if err != nil {
		return nil, err
	}
	return mcp.NewToolResultText(s), nil
}

// resultErr shapes a handler failure as an MCP tool error; a
// verrors.Error's string form already leads with its typed kind, other
// errors (schema validation, region caps) pass through as plain text.
func resultErr(err error) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultError(err.Error()), nil
}

// bridgeCall issues one Bridge request with the configured per-request
// timeout and hands back the raw result.
func bridgeCall(ctx context.Context, deps *Deps, msgType bridge.MessageType, payload interface{}) (interface{}, error) {
	return deps.Bridge.Request(ctx, msgType, payload, deps.timeout())
}
