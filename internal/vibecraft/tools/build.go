package tools

import (
	"context"
	"fmt"

	"github.com/kiosk404/vibecraft/internal/vibecraft/build"
	"github.com/kiosk404/vibecraft/internal/vibecraft/schematic"
	"github.com/kiosk404/vibecraft/pkg/logger"
	"github.com/mark3labs/mcp-go/mcp"
)

const buildSchema = `{
  "type": "object",
  "properties": {
    "commands": {
      "type": "array",
      "items": { "type": "string" },
      "description": "Raw command list, dispatched in order."
    },
    "script": {
      "type": "string",
      "description": "Restricted build script that must bind a 'commands' list of strings."
    },
    "schematic": {
      "type": "object",
      "description": "Declarative structure: anchor/facing/mode/palette plus layers or shape. Short keys a/f/m/p/l/s accepted."
    },
    "preview_only": {
      "type": "boolean",
      "default": false,
      "description": "Validate and expand without dispatching anything."
    },
    "fail_fast": {
      "type": "boolean",
      "default": false,
      "description": "Stop at the first failed command instead of continuing best-effort."
    },
    "description": {
      "type": "string",
      "description": "Human-readable label for the build, echoed in the report."
    }
  },
  "additionalProperties": false
}`

// buildTool feeds the Build Engine. Exactly one of commands, script, or
// schematic must be supplied.
func buildTool(deps *Deps) Tool {
	schema := compileSchema("build", buildSchema)

	return Tool{
		Def: newTool("build",
			"Run a build from a raw command list, a sandboxed build script, or a declarative schematic. Supports preview mode.",
			buildSchema),
		Handler: func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			args := req.GetArguments()
			if err := validateArgs(schema, args); err != nil {
				return resultErr(err)
			}

			buildReq, err := parseBuildRequest(args)
			if err != nil {
				return resultErr(err)
			}

			result, err := deps.Engine.Build(ctx, buildReq, func(attempted, ok, failed int) {
				logger.Debug("build progress: %d attempted, %d ok, %d failed", attempted, ok, failed)
			})
			if err != nil {
				return resultErr(err)
			}

			return resultJSON(map[string]interface{}{
				"attempted": result.Attempted,
				"ok":        result.OK,
				"failed":    result.Failed,
				"report":    result.Report,
				"outcomes":  result.Outcomes,
			})
		},
	}
}

// parseBuildRequest maps tool arguments onto a Build Request, enforcing
// the exactly-one-input rule the schema alone can't express tersely.
func parseBuildRequest(args map[string]interface{}) (*build.Request, error) {
	commands := argStringList(args, "commands")
	script := argString(args, "script", "")
	schematicRaw := argObject(args, "schematic")

	supplied := 0
	if len(commands) > 0 {
		supplied++
	}
	if script != "" {
		supplied++
	}
	if schematicRaw != nil {
		supplied++
	}
	if supplied != 1 {
		return nil, fmt.Errorf("build needs exactly one of: commands, script, schematic")
	}

	req := &build.Request{
		Commands:    commands,
		Script:      script,
		PreviewOnly: argBool(args, "preview_only", false),
		FailFast:    argBool(args, "fail_fast", false),
		Description: argString(args, "description", ""),
	}

	if schematicRaw != nil {
		s, err := schematic.ParseSchematic(schematicRaw)
		if err != nil {
			return nil, err
		}
		req.Schematic = s
	}

	return req, nil
}
