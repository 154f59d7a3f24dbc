package schematic

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/kiosk404/vibecraft/internal/vibecraft/verrors"
)

// expandShape turns a shape primitive spec into the explicit layer
// set it denotes, each layer already a resolved [row][col] symbol grid.
func expandShape(spec string) ([]LayerSpec, error) {
	parts := strings.Split(spec, ":")
	if len(parts) < 2 {
		return nil, verrors.SchematicMalformed(fmt.Sprintf("ill-formed shape spec %q", spec))
	}
	name := parts[0]

	switch name {
	case "fill":
		if len(parts) != 3 {
			return nil, shapeArityErr(spec)
		}
		w, d, err := parseWxD(parts[1])
		if err != nil {
			return nil, err
		}
		return []LayerSpec{{Grid: solidGrid(w, d, parts[2])}}, nil

	case "outline", "walls":
		if len(parts) != 3 {
			return nil, shapeArityErr(spec)
		}
		w, d, err := parseWxD(parts[1])
		if err != nil {
			return nil, err
		}
		return []LayerSpec{{Grid: borderGrid(w, d, parts[2], air)}}, nil

	case "frame":
		if len(parts) != 4 {
			return nil, shapeArityErr(spec)
		}
		w, d, err := parseWxD(parts[1])
		if err != nil {
			return nil, err
		}
		return []LayerSpec{{Grid: borderGrid(w, d, parts[2], parts[3])}}, nil

	case "box":
		if len(parts) != 3 {
			return nil, shapeArityErr(spec)
		}
		w, h, d, err := parseWxHxD(parts[1])
		if err != nil {
			return nil, err
		}
		return boxLayers(w, h, d, parts[2], parts[2]), nil

	case "room":
		if len(parts) != 4 {
			return nil, shapeArityErr(spec)
		}
		w, h, d, err := parseWxHxD(parts[1])
		if err != nil {
			return nil, err
		}
		return boxLayers(w, h, d, parts[2], parts[3]), nil

	default:
		return nil, verrors.SchematicMalformed(fmt.Sprintf("unknown shape primitive %q", name))
	}
}

func shapeArityErr(spec string) error {
	return verrors.SchematicMalformed(fmt.Sprintf("wrong number of fields in shape spec %q", spec))
}

func parseWxD(s string) (w, d int, err error) {
	parts := strings.Split(s, "x")
	if len(parts) != 2 {
		return 0, 0, verrors.SchematicMalformed(fmt.Sprintf("ill-formed dimensions %q, expected WxD", s))
	}
	w, err1 := strconv.Atoi(parts[0])
	d, err2 := strconv.Atoi(parts[1])
	if err1 != nil || err2 != nil || w <= 0 || d <= 0 {
		return 0, 0, verrors.SchematicMalformed(fmt.Sprintf("ill-formed dimensions %q", s))
	}
	return w, d, nil
}

func parseWxHxD(s string) (w, h, d int, err error) {
	parts := strings.Split(s, "x")
	if len(parts) != 3 {
		return 0, 0, 0, verrors.SchematicMalformed(fmt.Sprintf("ill-formed dimensions %q, expected WxHxD", s))
	}
	w, err1 := strconv.Atoi(parts[0])
	h, err2 := strconv.Atoi(parts[1])
	d, err3 := strconv.Atoi(parts[2])
	if err1 != nil || err2 != nil || err3 != nil || w <= 0 || h <= 0 || d <= 0 {
		return 0, 0, 0, verrors.SchematicMalformed(fmt.Sprintf("ill-formed dimensions %q", s))
	}
	return w, h, d, nil
}

func solidGrid(w, d int, sym string) [][]string {
	grid := make([][]string, d)
	for r := range grid {
		row := make([]string, w)
		for c := range row {
			row[c] = sym
		}
		grid[r] = row
	}
	return grid
}

func borderGrid(w, d int, border, interior string) [][]string {
	grid := solidGrid(w, d, interior)
	for c := 0; c < w; c++ {
		grid[0][c] = border
		grid[d-1][c] = border
	}
	for r := 0; r < d; r++ {
		grid[r][0] = border
		grid[r][w-1] = border
	}
	return grid
}

// boxLayers builds the H layers of a box/room primitive: a solid floor,
// hollow walled middle layers, and a solid ceiling.
func boxLayers(w, h, d int, wall, floorAndCeiling string) []LayerSpec {
	layers := make([]LayerSpec, 0, h)
	layers = append(layers, LayerSpec{YFrom: 0, YTo: 0, Grid: solidGrid(w, d, floorAndCeiling)})
	for y := 1; y < h-1; y++ {
		layers = append(layers, LayerSpec{YFrom: y, YTo: y, Grid: borderGrid(w, d, wall, air)})
	}
	if h > 1 {
		layers = append(layers, LayerSpec{YFrom: h - 1, YTo: h - 1, Grid: solidGrid(w, d, floorAndCeiling)})
	}
	return layers
}
