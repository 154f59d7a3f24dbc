package schematic

import (
	"context"
	"fmt"
	"sort"

	"github.com/kiosk404/vibecraft/internal/vibecraft/verrors"
)

type resolvedLayer struct {
	y    int
	grid [][]string
}

// Expand runs the full resolution pipeline and returns an ordered
// list of placement commands, ready for the sanitizer. It performs no
// sanitization and no batching.
func Expand(ctx context.Context, s *Schematic, positioner PlayerPositioner) ([]string, error) {
	anchor, err := resolveAnchor(ctx, s.Anchor, positioner)
	if err != nil {
		return nil, err
	}

	var rawLayers []LayerSpec
	if s.Shape != "" {
		rawLayers, err = expandShape(s.Shape)
		if err != nil {
			return nil, err
		}
	} else {
		rawLayers = s.Layers
	}

	steps := s.Facing.steps()

	resolved := make([]resolvedLayer, 0, len(rawLayers))
	for _, layer := range rawLayers {
		grid, err := materializeGrid(layer)
		if err != nil {
			return nil, err
		}
		grid = rotateGrid(grid, steps)
		for y := layer.YFrom; y <= layer.YTo; y++ {
			resolved = append(resolved, resolvedLayer{y: y, grid: grid})
		}
	}

	sort.SliceStable(resolved, func(i, j int) bool { return resolved[i].y < resolved[j].y })

	var commands []string
	for _, layer := range resolved {
		for row := 0; row < len(layer.grid); row++ {
			for col := 0; col < len(layer.grid[row]); col++ {
				symbol := layer.grid[row][col]
				block, isAir, err := normalizeSymbol(symbol, s.Palette)
				if err != nil {
					return nil, err
				}
				if isAir {
					continue
				}
				block = rotateBlockSpec(block, steps)

				x := anchor.X + col
				y := anchor.Y + layer.y
				z := anchor.Z + row

				commands = append(commands, fmt.Sprintf("/setblock %d %d %d %s %s", x, y, z, block, string(s.Mode)))
			}
		}
	}

	return commands, nil
}

func resolveAnchor(ctx context.Context, a Anchor, positioner PlayerPositioner) (Anchor, error) {
	if !a.Player {
		return a, nil
	}
	if positioner == nil {
		return Anchor{}, verrors.SchematicMalformed("anchor names the player but no player position resolver was supplied")
	}
	x, y, z, err := positioner.PlayerPosition(ctx)
	if err != nil {
		return Anchor{}, err
	}
	return Anchor{X: x, Y: y, Z: z}, nil
}

func materializeGrid(layer LayerSpec) ([][]string, error) {
	if layer.Grid != nil {
		return layer.Grid, nil
	}
	return decodeRowString(layer.RowString)
}

func normalizeSymbol(symbol string, palette map[string]string) (block string, isAir bool, err error) {
	if reservedAir[symbol] {
		return "", true, nil
	}
	spec, ok := palette[symbol]
	if !ok {
		return "", false, verrors.SchematicMalformed(fmt.Sprintf("palette symbol %q is undefined", symbol))
	}
	if reservedAir[spec] {
		return "", true, nil
	}
	return spec, false, nil
}
