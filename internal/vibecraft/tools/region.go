package tools

import (
	"context"
	"fmt"
	"time"

	"github.com/kiosk404/vibecraft/internal/vibecraft/bridge"
	"github.com/mark3labs/mcp-go/mcp"
)

// Resource caps enforced peer-side and mirrored here before the call
// goes out.
const (
	maxRegionScanBlocks  = 64 * 64 * 64
	maxHeightmapColumns  = 256 * 256
	maxAnalysisSamples   = 128 * 128 * 128
	maxPaletteRadius     = 64
	regionRequestTimeout = 60 * time.Second // large scans need >= 30s
)

const regionScanSchema = `{
  "type": "object",
  "properties": {
    "x1": { "type": "integer" }, "y1": { "type": "integer" }, "z1": { "type": "integer" },
    "x2": { "type": "integer" }, "y2": { "type": "integer" }, "z2": { "type": "integer" },
    "include_states": {
      "type": "boolean",
      "default": false,
      "description": "Include block state attributes in palette entries."
    }
  },
  "required": ["x1", "y1", "z1", "x2", "y2", "z2"],
  "additionalProperties": false
}`

// regionScanTool returns a Region Snapshot: origin, dimensions, a
// palette of unique block ids, and an RLE block index sequence.
func regionScanTool(deps *Deps) Tool {
	schema := compileSchema("region_scan", regionScanSchema)

	return Tool{
		Def: newTool("region_scan",
			"Scan a rectangular region into a palette plus run-length-encoded block sequence. Limited to 64x64x64 blocks.",
			regionScanSchema),
		Handler: func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			args := req.GetArguments()
			if err := validateArgs(schema, args); err != nil {
				return resultErr(err)
			}

			volume := regionVolume(args)
			if volume > maxRegionScanBlocks {
				return resultErr(fmt.Errorf("region of %d blocks exceeds the %d block scan cap", volume, maxRegionScanBlocks))
			}

			payload := regionPayload(args)
			payload["include_states"] = argBool(args, "include_states", false)
			result, err := deps.Bridge.Request(ctx, bridge.MessageRegionScan, payload, regionRequestTimeout)
			if err != nil {
				return resultErr(err)
			}
			return resultJSON(snapshotStats(result))
		},
	}
}

const heightmapSchema = `{
  "type": "object",
  "properties": {
    "x1": { "type": "integer" }, "z1": { "type": "integer" },
    "x2": { "type": "integer" }, "z2": { "type": "integer" }
  },
  "required": ["x1", "z1", "x2", "z2"],
  "additionalProperties": false
}`

func heightmapTool(deps *Deps) Tool {
	schema := compileSchema("heightmap", heightmapSchema)

	return Tool{
		Def: newTool("heightmap",
			"Fetch surface heights and surface block ids over a rectangle of columns. Limited to 256x256 columns.",
			heightmapSchema),
		Handler: func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			args := req.GetArguments()
			if err := validateArgs(schema, args); err != nil {
				return resultErr(err)
			}

			columns := span(argInt(args, "x1", 0), argInt(args, "x2", 0)) *
				span(argInt(args, "z1", 0), argInt(args, "z2", 0))
			if columns > maxHeightmapColumns {
				return resultErr(fmt.Errorf("heightmap of %d columns exceeds the %d column cap", columns, maxHeightmapColumns))
			}

			payload := map[string]interface{}{
				"x1": argInt(args, "x1", 0), "z1": argInt(args, "z1", 0),
				"x2": argInt(args, "x2", 0), "z2": argInt(args, "z2", 0),
			}
			result, err := deps.Bridge.Request(ctx, bridge.MessageRegionHeightmap, payload, regionRequestTimeout)
			if err != nil {
				return resultErr(err)
			}
			return resultJSON(result)
		},
	}
}

// regionVolume computes the inclusive block count of the region the
// arguments describe.
func regionVolume(args map[string]interface{}) int {
	return span(argInt(args, "x1", 0), argInt(args, "x2", 0)) *
		span(argInt(args, "y1", 0), argInt(args, "y2", 0)) *
		span(argInt(args, "z1", 0), argInt(args, "z2", 0))
}

func regionPayload(args map[string]interface{}) map[string]interface{} {
	return map[string]interface{}{
		"x1": argInt(args, "x1", 0), "y1": argInt(args, "y1", 0), "z1": argInt(args, "z1", 0),
		"x2": argInt(args, "x2", 0), "y2": argInt(args, "y2", 0), "z2": argInt(args, "z2", 0),
	}
}
