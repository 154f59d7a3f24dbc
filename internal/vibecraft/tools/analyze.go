package tools

import (
	"context"
	"fmt"

	"github.com/kiosk404/vibecraft/internal/vibecraft/bridge"
	"github.com/mark3labs/mcp-go/mcp"
)

const paletteAnalyzeSchema = `{
  "type": "object",
  "properties": {
    "x": { "type": "integer" },
    "y": { "type": "integer" },
    "z": { "type": "integer" },
    "radius": {
      "type": "integer",
      "minimum": 1,
      "maximum": 64,
      "default": 16,
      "description": "Sample radius in blocks around the center."
    }
  },
  "required": ["x", "y", "z"],
  "additionalProperties": false
}`

// paletteAnalyzeTool samples the blocks around a point and returns a
// palette histogram, category breakdown, and an inferred style tag.
func paletteAnalyzeTool(deps *Deps) Tool {
	schema := compileSchema("palette_analyze", paletteAnalyzeSchema)

	return Tool{
		Def: newTool("palette_analyze",
			"Analyze the block palette around a point: histogram, category breakdown, inferred style. Radius capped at 64.",
			paletteAnalyzeSchema),
		Handler: func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			args := req.GetArguments()
			if err := validateArgs(schema, args); err != nil {
				return resultErr(err)
			}

			payload := map[string]interface{}{
				"x":      argInt(args, "x", 0),
				"y":      argInt(args, "y", 0),
				"z":      argInt(args, "z", 0),
				"radius": clampInt(argInt(args, "radius", 16), 1, maxPaletteRadius),
			}
			result, err := bridgeCall(ctx, deps, bridge.MessagePaletteAnalyze, payload)
			if err != nil {
				return resultErr(err)
			}
			return resultJSON(result)
		},
	}
}

const paletteRegionSchema = `{
  "type": "object",
  "properties": {
    "x1": { "type": "integer" }, "y1": { "type": "integer" }, "z1": { "type": "integer" },
    "x2": { "type": "integer" }, "y2": { "type": "integer" }, "z2": { "type": "integer" }
  },
  "required": ["x1", "y1", "z1", "x2", "y2", "z2"],
  "additionalProperties": false
}`

func paletteRegionTool(deps *Deps) Tool {
	schema := compileSchema("palette_region", paletteRegionSchema)

	return Tool{
		Def: newTool("palette_region",
			"Palette histogram over an explicit rectangular region.",
			paletteRegionSchema),
		Handler: func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			args := req.GetArguments()
			if err := validateArgs(schema, args); err != nil {
				return resultErr(err)
			}

			volume := regionVolume(args)
			if volume > maxRegionScanBlocks {
				return resultErr(fmt.Errorf("region of %d blocks exceeds the %d block cap", volume, maxRegionScanBlocks))
			}

			result, err := deps.Bridge.Request(ctx, bridge.MessagePaletteRegion, regionPayload(args), regionRequestTimeout)
			if err != nil {
				return resultErr(err)
			}
			return resultJSON(result)
		},
	}
}

const lightAnalyzeSchema = `{
  "type": "object",
  "properties": {
    "x1": { "type": "integer" }, "y1": { "type": "integer" }, "z1": { "type": "integer" },
    "x2": { "type": "integer" }, "y2": { "type": "integer" }, "z2": { "type": "integer" },
    "resolution": {
      "type": "integer",
      "minimum": 1,
      "maximum": 4,
      "default": 1,
      "description": "Sample stride: 1 samples every block, 4 every fourth."
    }
  },
  "required": ["x1", "y1", "z1", "x2", "y2", "z2"],
  "additionalProperties": false
}`

// lightAnalyzeTool reports light distribution, dark spots, and light
// placement suggestions over a region.
func lightAnalyzeTool(deps *Deps) Tool {
	schema := compileSchema("light_analyze", lightAnalyzeSchema)

	return Tool{
		Def: newTool("light_analyze",
			"Analyze light levels over a region: distribution, dark spots, suggested light placements. Capped at 128^3 effective samples.",
			lightAnalyzeSchema),
		Handler: func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			args := req.GetArguments()
			if err := validateArgs(schema, args); err != nil {
				return resultErr(err)
			}

			resolution := clampInt(argInt(args, "resolution", 1), 1, 4)
			samples := effectiveSamples(args, resolution)
			if samples > maxAnalysisSamples {
				return resultErr(fmt.Errorf("%d effective samples exceed the %d sample cap; raise resolution or shrink the region", samples, maxAnalysisSamples))
			}

			payload := regionPayload(args)
			payload["resolution"] = resolution
			result, err := deps.Bridge.Request(ctx, bridge.MessageLightAnalyze, payload, regionRequestTimeout)
			if err != nil {
				return resultErr(err)
			}
			return resultJSON(result)
		},
	}
}

const symmetryCheckSchema = `{
  "type": "object",
  "properties": {
    "x1": { "type": "integer" }, "y1": { "type": "integer" }, "z1": { "type": "integer" },
    "x2": { "type": "integer" }, "y2": { "type": "integer" }, "z2": { "type": "integer" },
    "axis": {
      "type": "string",
      "enum": ["x", "y", "z"],
      "description": "Mirror axis to check the region against."
    },
    "tolerance": {
      "type": "number",
      "minimum": 0,
      "maximum": 1,
      "default": 0,
      "description": "Fraction of mismatching cells tolerated before the verdict flips."
    },
    "resolution": {
      "type": "integer",
      "minimum": 1,
      "maximum": 4,
      "default": 1
    }
  },
  "required": ["x1", "y1", "z1", "x2", "y2", "z2", "axis"],
  "additionalProperties": false
}`

// symmetryCheckTool mirrors the region across an axis and reports
// per-cell mismatches, a score, and a verdict.
func symmetryCheckTool(deps *Deps) Tool {
	schema := compileSchema("symmetry_check", symmetryCheckSchema)

	return Tool{
		Def: newTool("symmetry_check",
			"Check a region for mirror symmetry across x, y, or z: mismatches, score, verdict. Capped at 128^3 effective samples.",
			symmetryCheckSchema),
		Handler: func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			args := req.GetArguments()
			if err := validateArgs(schema, args); err != nil {
				return resultErr(err)
			}

			resolution := clampInt(argInt(args, "resolution", 1), 1, 4)
			samples := effectiveSamples(args, resolution)
			if samples > maxAnalysisSamples {
				return resultErr(fmt.Errorf("%d effective samples exceed the %d sample cap; raise resolution or shrink the region", samples, maxAnalysisSamples))
			}

			payload := regionPayload(args)
			payload["axis"] = argString(args, "axis", "x")
			payload["tolerance"] = argFloat(args, "tolerance", 0)
			payload["resolution"] = resolution
			result, err := deps.Bridge.Request(ctx, bridge.MessageSymmetryCheck, payload, regionRequestTimeout)
			if err != nil {
				return resultErr(err)
			}
			return resultJSON(result)
		},
	}
}

// effectiveSamples is the region volume divided by the sampling stride
// on each axis, rounded up per axis.
func effectiveSamples(args map[string]interface{}, resolution int) int {
	perAxis := func(a, b int) int {
		n := span(a, b)
		return (n + resolution - 1) / resolution
	}
	return perAxis(argInt(args, "x1", 0), argInt(args, "x2", 0)) *
		perAxis(argInt(args, "y1", 0), argInt(args, "y2", 0)) *
		perAxis(argInt(args, "z1", 0), argInt(args, "z2", 0))
}
