// Package schematic expands a declarative structure description, a
// palette plus layered grids or a shape primitive, into an ordered
// list of placement commands ready for the sanitizer and Build Engine.
// It performs no sanitization and no batching of its own.
package schematic

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/kiosk404/vibecraft/internal/vibecraft/verrors"
)

// Facing is one of the four cardinal rotations applied around the
// anchor's vertical axis.
type Facing string

const (
	North Facing = "north"
	South Facing = "south"
	East  Facing = "east"
	West  Facing = "west"
)

// Mode is passed through to the underlying placement command unchanged.
type Mode string

const (
	ModeReplace Mode = "replace"
	ModeKeep    Mode = "keep"
	ModeDestroy Mode = "destroy"
)

// air is the sentinel a palette symbol normalizes to when it names one
// of the reserved air tokens ".", "_", or a bare space.
const air = ""

var reservedAir = map[string]bool{".": true, "_": true, "": true, " ": true}

// Anchor is either a fixed world coordinate or the token meaning "the
// player's current position", resolved once at expansion start.
type Anchor struct {
	Player  bool
	X, Y, Z int
}

// LayerSpec is one entry of the schematic's explicit layer list, before
// vertical-offset ranges are expanded and before rotation is applied.
type LayerSpec struct {
	// YFrom/YTo is the vertical offset relative to the anchor; a single
	// integer offset has YFrom == YTo.
	YFrom, YTo int

	// Exactly one of Grid or RowString is populated.
	Grid      [][]string
	RowString string
}

// Schematic is the fully parsed declarative structure.
type Schematic struct {
	Anchor  Anchor
	Facing  Facing
	Mode    Mode
	Palette map[string]string
	Layers  []LayerSpec
	// Shape, when non-empty, is an alternative to Layers: a single 3D
	// primitive spec expanded into an implicit layer set.
	Shape string
}

// PlayerPositioner resolves the player's current integer position; the
// Build Engine supplies an adapter over the Bridge so this package stays
// free of any dependency on the WebSocket layer.
type PlayerPositioner interface {
	PlayerPosition(ctx context.Context) (x, y, z int, err error)
}

// ParseSchematic builds a Schematic from a generic decoded-JSON map,
// accepting both the long and short key forms
// (anchor/a, facing/f, mode/m, palette/p, layers/l, shape/s).
func ParseSchematic(raw map[string]interface{}) (*Schematic, error) {
	s := &Schematic{
		Mode:    ModeReplace,
		Facing:  North,
		Palette: map[string]string{},
	}

	if v, ok := firstOf(raw, "anchor", "a"); ok {
		anchor, err := parseAnchor(v)
		if err != nil {
			return nil, err
		}
		s.Anchor = anchor
	} else {
		s.Anchor = Anchor{Player: true}
	}

	if v, ok := firstOf(raw, "facing", "f"); ok {
		f, ok := v.(string)
		if !ok {
			return nil, verrors.SchematicMalformed("facing must be a string")
		}
		facing := Facing(strings.ToLower(f))
		switch facing {
		case North, South, East, West:
			s.Facing = facing
		default:
			return nil, verrors.SchematicMalformed(fmt.Sprintf("unknown facing %q", f))
		}
	}

	if v, ok := firstOf(raw, "mode", "m"); ok {
		m, ok := v.(string)
		if !ok {
			return nil, verrors.SchematicMalformed("mode must be a string")
		}
		mode := Mode(strings.ToLower(m))
		switch mode {
		case ModeReplace, ModeKeep, ModeDestroy:
			s.Mode = mode
		default:
			return nil, verrors.SchematicMalformed(fmt.Sprintf("unknown mode %q", m))
		}
	}

	if v, ok := firstOf(raw, "palette", "p"); ok {
		pm, ok := v.(map[string]interface{})
		if !ok {
			return nil, verrors.SchematicMalformed("palette must be an object")
		}
		for sym, spec := range pm {
			str, ok := spec.(string)
			if !ok {
				return nil, verrors.SchematicMalformed(fmt.Sprintf("palette symbol %q must map to a string", sym))
			}
			s.Palette[sym] = str
		}
	}

	shapeVal, hasShape := firstOf(raw, "shape", "s")
	layersVal, hasLayers := firstOf(raw, "layers", "l")

	if hasShape {
		str, ok := shapeVal.(string)
		if !ok {
			return nil, verrors.SchematicMalformed("shape must be a string")
		}
		s.Shape = str
	}

	if hasLayers {
		list, ok := layersVal.([]interface{})
		if !ok {
			return nil, verrors.SchematicMalformed("layers must be a list")
		}
		for _, entry := range list {
			layer, err := parseLayerEntry(entry)
			if err != nil {
				return nil, err
			}
			s.Layers = append(s.Layers, layer)
		}
	}

	if !hasShape && !hasLayers {
		return nil, verrors.SchematicMalformed("schematic must specify either shape or layers")
	}
	if hasShape && hasLayers {
		return nil, verrors.SchematicMalformed("schematic may not specify both shape and layers")
	}

	return s, nil
}

func firstOf(raw map[string]interface{}, keys ...string) (interface{}, bool) {
	for _, k := range keys {
		if v, ok := raw[k]; ok {
			return v, true
		}
	}
	return nil, false
}

func parseAnchor(v interface{}) (Anchor, error) {
	if s, ok := v.(string); ok {
		low := strings.ToLower(strings.TrimSpace(s))
		if low == "player" || low == "@player" || low == "" {
			return Anchor{Player: true}, nil
		}
		return Anchor{}, verrors.SchematicMalformed(fmt.Sprintf("unrecognized anchor token %q", s))
	}
	if list, ok := v.([]interface{}); ok && len(list) == 3 {
		x, ok1 := asInt(list[0])
		y, ok2 := asInt(list[1])
		z, ok3 := asInt(list[2])
		if !ok1 || !ok2 || !ok3 {
			return Anchor{}, verrors.SchematicMalformed("anchor coordinates must be integers")
		}
		return Anchor{X: x, Y: y, Z: z}, nil
	}
	if m, ok := v.(map[string]interface{}); ok {
		x, ok1 := asInt(m["x"])
		y, ok2 := asInt(m["y"])
		z, ok3 := asInt(m["z"])
		if !ok1 || !ok2 || !ok3 {
			return Anchor{}, verrors.SchematicMalformed("anchor object must have integer x, y, z")
		}
		return Anchor{X: x, Y: y, Z: z}, nil
	}
	return Anchor{}, verrors.SchematicMalformed("anchor must be a coordinate triple or the player token")
}

func asInt(v interface{}) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int64:
		return int(n), true
	case float64:
		return int(n), true
	case string:
		i, err := strconv.Atoi(n)
		return i, err == nil
	default:
		return 0, false
	}
}

func parseLayerEntry(entry interface{}) (LayerSpec, error) {
	pair, ok := entry.([]interface{})
	if !ok || len(pair) != 2 {
		return LayerSpec{}, verrors.SchematicMalformed("layer entry must be a [y_or_range, row_string_or_grid] pair")
	}

	yFrom, yTo, err := parseYRange(pair[0])
	if err != nil {
		return LayerSpec{}, err
	}

	layer := LayerSpec{YFrom: yFrom, YTo: yTo}

	switch body := pair[1].(type) {
	case string:
		layer.RowString = body
	case []interface{}:
		grid, err := toSymbolGrid(body)
		if err != nil {
			return LayerSpec{}, err
		}
		layer.Grid = grid
	default:
		return LayerSpec{}, verrors.SchematicMalformed("layer body must be a row string or an explicit grid")
	}

	return layer, nil
}

func parseYRange(v interface{}) (int, int, error) {
	if i, ok := asInt(v); ok {
		return i, i, nil
	}
	s, ok := v.(string)
	if !ok {
		return 0, 0, verrors.SchematicMalformed("layer y offset must be an integer or a range string")
	}
	parts := strings.SplitN(s, "-", 2)
	if len(parts) != 2 {
		i, err := strconv.Atoi(strings.TrimSpace(s))
		if err != nil {
			return 0, 0, verrors.SchematicMalformed(fmt.Sprintf("ill-formed y offset %q", s))
		}
		return i, i, nil
	}
	from, err1 := strconv.Atoi(strings.TrimSpace(parts[0]))
	to, err2 := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err1 != nil || err2 != nil || to < from {
		return 0, 0, verrors.SchematicMalformed(fmt.Sprintf("ill-formed y range %q", s))
	}
	return from, to, nil
}

func toSymbolGrid(rows []interface{}) ([][]string, error) {
	grid := make([][]string, 0, len(rows))
	width := -1
	for _, r := range rows {
		rowList, ok := r.([]interface{})
		if !ok {
			return nil, verrors.SchematicMalformed("explicit grid rows must be lists of symbols")
		}
		row := make([]string, 0, len(rowList))
		for _, cell := range rowList {
			sym, ok := cell.(string)
			if !ok {
				return nil, verrors.SchematicMalformed("grid cell must be a string symbol")
			}
			row = append(row, sym)
		}
		if width == -1 {
			width = len(row)
		} else if len(row) != width {
			return nil, verrors.SchematicMalformed("grid shape inconsistent: rows have differing lengths")
		}
		grid = append(grid, row)
	}
	return grid, nil
}
