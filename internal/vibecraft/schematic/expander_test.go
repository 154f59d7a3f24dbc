package schematic

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestExpand_ExplicitGridOrder(t *testing.T) {
	s := &Schematic{
		Anchor:  Anchor{X: 0, Y: 64, Z: 0},
		Facing:  North,
		Mode:    ModeReplace,
		Palette: map[string]string{"S": "stone"},
		Layers: []LayerSpec{
			{YFrom: 0, YTo: 0, Grid: [][]string{
				{"S", "."},
				{".", "S"},
			}},
		},
	}

	cmds, err := Expand(context.Background(), s, nil)
	require.NoError(t, err)
	require.Equal(t, []string{
		"/setblock 0 64 0 stone replace",
		"/setblock 1 64 1 stone replace",
	}, cmds)
}

func TestExpand_CompactRowString(t *testing.T) {
	s := &Schematic{
		Anchor:  Anchor{X: 10, Y: 70, Z: 10},
		Facing:  North,
		Mode:    ModeReplace,
		Palette: map[string]string{"S": "stone"},
		Layers: []LayerSpec{
			{YFrom: 0, YTo: 0, RowString: "S*3"},
		},
	}

	cmds, err := Expand(context.Background(), s, nil)
	require.NoError(t, err)
	require.Equal(t, []string{
		"/setblock 10 70 10 stone replace",
		"/setblock 11 70 10 stone replace",
		"/setblock 12 70 10 stone replace",
	}, cmds)
}

func TestExpand_VerticalRowRepeat(t *testing.T) {
	s := &Schematic{
		Anchor:  Anchor{},
		Facing:  North,
		Mode:    ModeReplace,
		Palette: map[string]string{"S": "stone"},
		Layers: []LayerSpec{
			{YFrom: 0, YTo: 0, RowString: "S~3"},
		},
	}

	cmds, err := Expand(context.Background(), s, nil)
	require.NoError(t, err)
	require.Len(t, cmds, 3)
	require.Equal(t, "/setblock 0 0 0 stone replace", cmds[0])
	require.Equal(t, "/setblock 0 0 2 stone replace", cmds[2])
}

func TestExpand_YRangeExpandsLayers(t *testing.T) {
	s := &Schematic{
		Anchor:  Anchor{},
		Facing:  North,
		Mode:    ModeReplace,
		Palette: map[string]string{"S": "stone"},
		Layers: []LayerSpec{
			{YFrom: 1, YTo: 3, Grid: [][]string{{"S"}}},
		},
	}

	cmds, err := Expand(context.Background(), s, nil)
	require.NoError(t, err)
	require.Equal(t, []string{
		"/setblock 0 1 0 stone replace",
		"/setblock 0 2 0 stone replace",
		"/setblock 0 3 0 stone replace",
	}, cmds)
}

func TestExpand_RotationEastFourTimesIsIdentity(t *testing.T) {
	base := func(facing Facing) *Schematic {
		return &Schematic{
			Anchor:  Anchor{},
			Facing:  facing,
			Mode:    ModeReplace,
			Palette: map[string]string{"S": "oak_log[axis=x]"},
			Layers: []LayerSpec{
				{YFrom: 0, YTo: 0, Grid: [][]string{
					{"S", "."},
					{".", "S"},
				}},
			},
		}
	}

	identity, err := Expand(context.Background(), base(North), nil)
	require.NoError(t, err)

	// Applying facing "east" as a rotation four times must reproduce the
	// identity sequence; we simulate the four successive 90-degree turns
	// directly against rotateGrid/rotateBlockSpec since a single
	// Schematic only carries one Facing value.
	grid := [][]string{{"oak_log[axis=x]", ""}, {"", "oak_log[axis=x]"}}
	steps := East.steps()
	for i := 0; i < 4; i++ {
		grid = rotateGrid(grid, steps)
		for r := range grid {
			for c := range grid[r] {
				grid[r][c] = rotateBlockSpec(grid[r][c], steps)
			}
		}
	}
	require.Equal(t, [][]string{{"oak_log[axis=x]", ""}, {"", "oak_log[axis=x]"}}, grid)

	north, err := Expand(context.Background(), base(North), nil)
	require.NoError(t, err)
	require.Equal(t, identity, north)
}

func TestExpand_RotationNorthIsIdentity(t *testing.T) {
	s := &Schematic{
		Anchor:  Anchor{},
		Facing:  North,
		Mode:    ModeReplace,
		Palette: map[string]string{"S": "stone"},
		Layers: []LayerSpec{
			{YFrom: 0, YTo: 0, Grid: [][]string{{"S", "."}}},
		},
	}
	grid := rotateGrid(s.Layers[0].Grid, North.steps())
	require.Equal(t, s.Layers[0].Grid, grid)
}

func TestExpand_RotatesFacingAttribute(t *testing.T) {
	s := &Schematic{
		Anchor:  Anchor{},
		Facing:  East,
		Mode:    ModeReplace,
		Palette: map[string]string{"D": "oak_door[facing=north]"},
		Layers: []LayerSpec{
			{YFrom: 0, YTo: 0, Grid: [][]string{{"D"}}},
		},
	}
	cmds, err := Expand(context.Background(), s, nil)
	require.NoError(t, err)
	require.Contains(t, cmds[0], "facing=east")
}

func TestExpand_UndefinedPaletteSymbol(t *testing.T) {
	s := &Schematic{
		Anchor: Anchor{},
		Facing: North,
		Mode:   ModeReplace,
		Layers: []LayerSpec{
			{YFrom: 0, YTo: 0, Grid: [][]string{{"Q"}}},
		},
	}
	_, err := Expand(context.Background(), s, nil)
	require.ErrorContains(t, err, "undefined")
}

func TestExpand_ShapeBox(t *testing.T) {
	s := &Schematic{
		Anchor:  Anchor{},
		Facing:  North,
		Mode:    ModeReplace,
		Palette: map[string]string{"S": "stone"},
		Shape:   "box:3x3x3:S",
	}
	cmds, err := Expand(context.Background(), s, nil)
	require.NoError(t, err)
	// Floor (9) + walled middle ring (8) + ceiling (9) = 26 non-air cells.
	require.Len(t, cmds, 26)
}

func TestExpand_PlayerAnchorRequiresPositioner(t *testing.T) {
	s := &Schematic{
		Anchor: Anchor{Player: true},
		Facing: North,
		Mode:   ModeReplace,
		Layers: []LayerSpec{{YFrom: 0, YTo: 0, Grid: [][]string{{"."}}}},
	}
	_, err := Expand(context.Background(), s, nil)
	require.ErrorContains(t, err, "player")
}

type fakePositioner struct{ x, y, z int }

func (f fakePositioner) PlayerPosition(ctx context.Context) (int, int, int, error) {
	return f.x, f.y, f.z, nil
}

func TestExpand_PlayerAnchorResolved(t *testing.T) {
	s := &Schematic{
		Anchor:  Anchor{Player: true},
		Facing:  North,
		Mode:    ModeReplace,
		Palette: map[string]string{"S": "stone"},
		Layers:  []LayerSpec{{YFrom: 0, YTo: 0, Grid: [][]string{{"S"}}}},
	}
	cmds, err := Expand(context.Background(), s, fakePositioner{x: 5, y: 70, z: -3})
	require.NoError(t, err)
	require.Equal(t, []string{"/setblock 5 70 -3 stone replace"}, cmds)
}

func TestDecodeRowString_InconsistentWidth(t *testing.T) {
	_, err := decodeRowString("S S|S")
	require.ErrorContains(t, err, "inconsistent")
}

func TestParseSchematic_ShortKeyForm(t *testing.T) {
	raw := map[string]interface{}{
		"a": []interface{}{float64(0), float64(64), float64(0)},
		"f": "south",
		"p": map[string]interface{}{"S": "stone"},
		"l": []interface{}{
			[]interface{}{float64(0), "S*2"},
		},
	}
	s, err := ParseSchematic(raw)
	require.NoError(t, err)
	require.Equal(t, South, s.Facing)
	require.Equal(t, "stone", s.Palette["S"])
}

func TestParseSchematic_RejectsBothShapeAndLayers(t *testing.T) {
	raw := map[string]interface{}{
		"shape":  "fill:2x2:S",
		"layers": []interface{}{},
	}
	_, err := ParseSchematic(raw)
	require.Error(t, err)
}
