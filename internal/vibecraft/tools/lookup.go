package tools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
)

// The lookup tools are pure reads against the startup-loaded catalog;
// none of them touch the Bridge.

const patternLookupSchema = `{
  "type": "object",
  "properties": {
    "name": {
      "type": "string",
      "description": "Pattern name; omit to list every available pattern."
    }
  },
  "additionalProperties": false
}`

func patternLookupTool(deps *Deps) Tool {
	schema := compileSchema("pattern_lookup", patternLookupSchema)

	return Tool{
		Def: newTool("pattern_lookup",
			"Look up a surface pattern recipe by name, or list all pattern names.",
			patternLookupSchema),
		Handler: func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			args := req.GetArguments()
			if err := validateArgs(schema, args); err != nil {
				return resultErr(err)
			}

			name := argString(args, "name", "")
			if name == "" {
				return resultJSON(map[string]interface{}{"patterns": deps.Catalog.PatternNames()})
			}

			p, err := deps.Catalog.Pattern(name)
			if err != nil {
				return resultErr(err)
			}
			return resultJSON(p)
		},
	}
}

const furnitureLookupSchema = `{
  "type": "object",
  "properties": {
    "name": {
      "type": "string",
      "description": "Furniture layout name; omit to list every available layout."
    }
  },
  "additionalProperties": false
}`

func furnitureLookupTool(deps *Deps) Tool {
	schema := compileSchema("furniture_lookup", furnitureLookupSchema)

	return Tool{
		Def: newTool("furniture_lookup",
			"Look up a furniture layout by name (relative placement commands), or list all layout names.",
			furnitureLookupSchema),
		Handler: func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			args := req.GetArguments()
			if err := validateArgs(schema, args); err != nil {
				return resultErr(err)
			}

			name := argString(args, "name", "")
			if name == "" {
				return resultJSON(map[string]interface{}{"furniture": deps.Catalog.FurnitureNames()})
			}

			f, err := deps.Catalog.Furniture(name)
			if err != nil {
				return resultErr(err)
			}
			return resultJSON(f)
		},
	}
}

const templateLookupSchema = `{
  "type": "object",
  "properties": {
    "name": {
      "type": "string",
      "description": "Template name; omit to list every available template."
    },
    "render_notes": {
      "type": "boolean",
      "default": false,
      "description": "Render the template's Markdown build notes to HTML in the result."
    }
  },
  "additionalProperties": false
}`

func templateLookupTool(deps *Deps) Tool {
	schema := compileSchema("template_lookup", templateLookupSchema)

	return Tool{
		Def: newTool("template_lookup",
			"Look up a structure template by name (a ready-to-build schematic plus build notes), or list all template names.",
			templateLookupSchema),
		Handler: func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			args := req.GetArguments()
			if err := validateArgs(schema, args); err != nil {
				return resultErr(err)
			}

			name := argString(args, "name", "")
			if name == "" {
				return resultJSON(map[string]interface{}{"templates": deps.Catalog.TemplateNames()})
			}

			t, err := deps.Catalog.Template(name)
			if err != nil {
				return resultErr(err)
			}

			out := map[string]interface{}{
				"name":        t.Name,
				"description": t.Description,
				"schematic":   t.Schematic,
				"notes":       t.Notes,
			}
			if argBool(args, "render_notes", false) {
				out["notes_html"] = t.RenderedNotes()
			}
			return resultJSON(out)
		},
	}
}
