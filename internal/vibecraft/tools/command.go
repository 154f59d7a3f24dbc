package tools

import (
	"context"

	"github.com/kiosk404/vibecraft/internal/vibecraft/bridge"
	"github.com/kiosk404/vibecraft/internal/vibecraft/build"
	"github.com/mark3labs/mcp-go/mcp"
)

const commandExecuteSchema = `{
  "type": "object",
  "properties": {
    "command": {
      "type": "string",
      "minLength": 1,
      "description": "A single game command, e.g. /setblock 100 64 200 stone"
    }
  },
  "required": ["command"],
  "additionalProperties": false
}`

// commandExecuteTool sanitizes and dispatches a single raw command. It
// routes through the Build Engine so there is exactly one path that
// enforces the safety policy and the WorldEdit mode.
func commandExecuteTool(deps *Deps) Tool {
	schema := compileSchema("command_execute", commandExecuteSchema)

	return Tool{
		Def: newTool("command_execute",
			"Execute a single game command after safety checks. Returns the dispatch counts, report, and outcome; the game's own execution text is not included.",
			commandExecuteSchema),
		Handler: func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			args := req.GetArguments()
			if err := validateArgs(schema, args); err != nil {
				return resultErr(err)
			}

			result, err := deps.Engine.Build(ctx, &build.Request{
				Commands: []string{argString(args, "command", "")},
			}, nil)
			if err != nil {
				return resultErr(err)
			}
			return resultJSON(map[string]interface{}{
				"attempted": result.Attempted,
				"ok":        result.OK,
				"failed":    result.Failed,
				"report":    result.Report,
				"outcome":   result.Outcomes[0],
			})
		},
	}
}

const serverInfoSchema = `{
  "type": "object",
  "properties": {},
  "additionalProperties": false
}`

// serverInfoTool is a single Bridge call with structured result shaping.
func serverInfoTool(deps *Deps) Tool {
	schema := compileSchema("server_info", serverInfoSchema)

	return Tool{
		Def: newTool("server_info",
			"Fetch basic game server state: player list, time of day, difficulty.",
			serverInfoSchema),
		Handler: func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			if err := validateArgs(schema, req.GetArguments()); err != nil {
				return resultErr(err)
			}
			result, err := bridgeCall(ctx, deps, bridge.MessageServerInfo, struct{}{})
			if err != nil {
				return resultErr(err)
			}
			return resultJSON(result)
		},
	}
}
