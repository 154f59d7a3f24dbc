package tools

import (
	"context"
	"strings"

	"github.com/kiosk404/vibecraft/internal/vibecraft/bridge"
	"github.com/kiosk404/vibecraft/internal/vibecraft/verrors"
	"github.com/kiosk404/vibecraft/pkg/codec"
	"github.com/mark3labs/mcp-go/mcp"
)

const screenshotSchema = `{
  "type": "object",
  "properties": {
    "max_width": {
      "type": "integer",
      "minimum": 64,
      "maximum": 3840,
      "default": 1280
    },
    "max_height": {
      "type": "integer",
      "minimum": 64,
      "maximum": 2160,
      "default": 720
    }
  },
  "additionalProperties": false
}`

// screenshotTool captures the client's current view and returns it as
// an MCP image content block plus a metadata text block.
func screenshotTool(deps *Deps) Tool {
	schema := compileSchema("screenshot", screenshotSchema)

	return Tool{
		Def: newTool("screenshot",
			"Capture a screenshot of the game client's current view, downscaled to fit the given bounds.",
			screenshotSchema),
		Handler: func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			args := req.GetArguments()
			if err := validateArgs(schema, args); err != nil {
				return resultErr(err)
			}

			payload := map[string]interface{}{
				"max_width":  argInt(args, "max_width", 1280),
				"max_height": argInt(args, "max_height", 720),
			}
			result, err := bridgeCall(ctx, deps, bridge.MessageScreenshotCapture, payload)
			if err != nil {
				return resultErr(err)
			}

			m, ok := result.(map[string]interface{})
			if !ok {
				return resultErr(verrors.PeerError("screenshot.capture returned a non-object result"))
			}

			image, _ := m["image"].(string)
			data, mime, ok := splitDataURL(image)
			if !ok {
				return resultErr(verrors.PeerError("screenshot.capture result carries no usable image data"))
			}

			meta := map[string]interface{}{}
			for _, key := range []string{"width", "height", "player_position", "player_rotation"} {
				if v, present := m[key]; present {
					meta[key] = v
				}
			}
			metaJSON, err := codec.MarshalToString(meta)
			if err != nil {
				return nil, err
			}

			return mcp.NewToolResultImage(metaJSON, data, mime), nil
		},
	}
}

// splitDataURL strips a "data:image/png;base64," style prefix, leaving
// the raw base64 payload and the media type. A bare base64 string is
// accepted as PNG.
func splitDataURL(s string) (data, mime string, ok bool) {
	if s == "" {
		return "", "", false
	}
	if !strings.HasPrefix(s, "data:") {
		return s, "image/png", true
	}
	rest := strings.TrimPrefix(s, "data:")
	semi := strings.Index(rest, ";base64,")
	if semi == -1 {
		return "", "", false
	}
	return rest[semi+len(";base64,"):], rest[:semi], true
}
