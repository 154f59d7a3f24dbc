package catalog

import (
	"context"
	"testing"

	"github.com/kiosk404/vibecraft/internal/vibecraft/schematic"
	"github.com/kiosk404/vibecraft/internal/vibecraft/verrors"
	"github.com/stretchr/testify/require"
)

func TestLoad_AllTablesPresent(t *testing.T) {
	c, err := Load()
	require.NoError(t, err)

	require.NotEmpty(t, c.PatternNames())
	require.NotEmpty(t, c.FurnitureNames())
	require.NotEmpty(t, c.TemplateNames())

	b, err := c.Block("stone_bricks")
	require.NoError(t, err)
	require.Equal(t, "stone", b.Category)

	// The prefixed form resolves to the same entry.
	prefixed, err := c.Block("minecraft:stone_bricks")
	require.NoError(t, err)
	require.Equal(t, b, prefixed)
}

func TestLookupMiss(t *testing.T) {
	c, err := Load()
	require.NoError(t, err)

	_, err = c.Pattern("no-such-pattern")
	var verr *verrors.Error
	require.ErrorAs(t, err, &verr)
	require.Equal(t, verrors.KindCatalogMiss, verr.Kind)

	_, err = c.Furniture("no-such-furniture")
	require.ErrorAs(t, err, &verr)

	_, err = c.Template("no-such-template")
	require.ErrorAs(t, err, &verr)
}

// Every shipped template must parse and expand without touching the
// Bridge: anchors may name the player, so expansion uses a fixed stub.
func TestTemplates_ExpandCleanly(t *testing.T) {
	c, err := Load()
	require.NoError(t, err)

	for _, name := range c.TemplateNames() {
		tpl, err := c.Template(name)
		require.NoError(t, err, name)

		s, err := schematic.ParseSchematic(tpl.Schematic)
		require.NoError(t, err, name)

		commands, err := schematic.Expand(context.Background(), s, fixedPosition{})
		require.NoError(t, err, name)
		require.NotEmpty(t, commands, name)
	}
}

func TestTemplate_NotesRenderToHTML(t *testing.T) {
	c, err := Load()
	require.NoError(t, err)

	tpl, err := c.Template("small_house")
	require.NoError(t, err)

	html := tpl.RenderedNotes()
	require.Contains(t, html, "<h2>")
	require.Contains(t, html, "cottage")
}

type fixedPosition struct{}

func (fixedPosition) PlayerPosition(context.Context) (int, int, int, error) {
	return 0, 64, 0, nil
}
