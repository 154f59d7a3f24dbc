package tools

import (
	"context"

	"github.com/kiosk404/vibecraft/internal/vibecraft/bridge"
	"github.com/kiosk404/vibecraft/internal/vibecraft/verrors"
	"github.com/mark3labs/mcp-go/mcp"
)

const playerPositionSchema = `{
  "type": "object",
  "properties": {},
  "additionalProperties": false
}`

// playerPositionTool returns just the position/rotation slice of the
// full player context, for callers that don't need the ray-cast data.
func playerPositionTool(deps *Deps) Tool {
	schema := compileSchema("player_position", playerPositionSchema)

	return Tool{
		Def: newTool("player_position",
			"Fetch the player's current position (floating and integer block) and rotation.",
			playerPositionSchema),
		Handler: func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			if err := validateArgs(schema, req.GetArguments()); err != nil {
				return resultErr(err)
			}

			result, err := bridgeCall(ctx, deps, bridge.MessagePlayerContext, map[string]interface{}{"reach": 0})
			if err != nil {
				return resultErr(err)
			}

			full, ok := result.(map[string]interface{})
			if !ok {
				return resultErr(verrors.PeerError("player.context returned a non-object result"))
			}
			slim := map[string]interface{}{}
			for _, key := range []string{"position", "position_int", "rotation", "dimension", "on_ground", "flying"} {
				if v, present := full[key]; present {
					slim[key] = v
				}
			}
			return resultJSON(slim)
		},
	}
}

const playerContextSchema = `{
  "type": "object",
  "properties": {
    "reach": {
      "type": "number",
      "minimum": 0,
      "maximum": 64,
      "default": 5,
      "description": "Ray-cast reach distance in blocks for the look target."
    }
  },
  "additionalProperties": false
}`

// playerContextTool is the full player context: position, rotation,
// eye/look data, ray-cast target, held item, game mode, dimension.
func playerContextTool(deps *Deps) Tool {
	schema := compileSchema("player_context", playerContextSchema)

	return Tool{
		Def: newTool("player_context",
			"Fetch the full player context: position, rotation, look vector, ray-cast target block, held item, game mode.",
			playerContextSchema),
		Handler: func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			args := req.GetArguments()
			if err := validateArgs(schema, args); err != nil {
				return resultErr(err)
			}

			payload := map[string]interface{}{"reach": argFloat(args, "reach", 5)}
			result, err := bridgeCall(ctx, deps, bridge.MessagePlayerContext, payload)
			if err != nil {
				return resultErr(err)
			}
			return resultJSON(result)
		},
	}
}

const nearbyEntitiesSchema = `{
  "type": "object",
  "properties": {
    "radius": {
      "type": "number",
      "minimum": 1,
      "maximum": 128,
      "default": 16,
      "description": "Search radius in blocks around the player."
    }
  },
  "additionalProperties": false
}`

func nearbyEntitiesTool(deps *Deps) Tool {
	schema := compileSchema("nearby_entities", nearbyEntitiesSchema)

	return Tool{
		Def: newTool("nearby_entities",
			"List entities near the player with position, type, and name.",
			nearbyEntitiesSchema),
		Handler: func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			args := req.GetArguments()
			if err := validateArgs(schema, args); err != nil {
				return resultErr(err)
			}

			payload := map[string]interface{}{"radius": argFloat(args, "radius", 16)}
			result, err := bridgeCall(ctx, deps, bridge.MessagePlayerEntities, payload)
			if err != nil {
				return resultErr(err)
			}
			return resultJSON(result)
		},
	}
}

const surfaceLevelSchema = `{
  "type": "object",
  "properties": {
    "x": { "type": "integer", "description": "Column x coordinate." },
    "z": { "type": "integer", "description": "Column z coordinate." }
  },
  "required": ["x", "z"],
  "additionalProperties": false
}`

// surfaceLevelTool answers "what is the y of the highest non-air block
// at (x, z)" with a single one-column heightmap call.
func surfaceLevelTool(deps *Deps) Tool {
	schema := compileSchema("surface_level", surfaceLevelSchema)

	return Tool{
		Def: newTool("surface_level",
			"Find the y level of the highest non-air block at a given x,z column.",
			surfaceLevelSchema),
		Handler: func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			args := req.GetArguments()
			if err := validateArgs(schema, args); err != nil {
				return resultErr(err)
			}

			x := argInt(args, "x", 0)
			z := argInt(args, "z", 0)
			payload := map[string]interface{}{"x1": x, "z1": z, "x2": x, "z2": z}
			result, err := bridgeCall(ctx, deps, bridge.MessageRegionHeightmap, payload)
			if err != nil {
				return resultErr(err)
			}

			y, block, ok := singleColumn(result)
			if !ok {
				// Peer shape drifted; hand the raw result through rather
				// than failing a successful call.
				return resultJSON(result)
			}
			return resultJSON(map[string]interface{}{"x": x, "z": z, "y": y, "block": block})
		},
	}
}

// singleColumn digs the sole cell out of a 1x1 heightmap result, which
// arrives as 2D arrays of surface Y and surface block ids.
func singleColumn(result interface{}) (y float64, block string, ok bool) {
	m, isMap := result.(map[string]interface{})
	if !isMap {
		return 0, "", false
	}

	heights, okH := m["heights"].([]interface{})
	if !okH || len(heights) == 0 {
		return 0, "", false
	}
	row, okR := heights[0].([]interface{})
	if !okR || len(row) == 0 {
		return 0, "", false
	}
	y, okY := row[0].(float64)
	if !okY {
		return 0, "", false
	}

	if blocks, okB := m["blocks"].([]interface{}); okB && len(blocks) > 0 {
		if brow, okBR := blocks[0].([]interface{}); okBR && len(brow) > 0 {
			block, _ = brow[0].(string)
		}
	}
	return y, block, true
}
