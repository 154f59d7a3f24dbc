// Package catalog holds the static reference data VibeCraft ships with:
// block metadata, surface pattern recipes, furniture layouts, and
// structure templates. Everything is loaded once at startup from
// embedded JSON and thereafter read-only; lookups never touch the
// Bridge.
package catalog

import (
	"embed"
	"fmt"
	"sort"
	"strings"

	"github.com/kiosk404/vibecraft/internal/vibecraft/verrors"
	"github.com/kiosk404/vibecraft/pkg/codec"
	"github.com/russross/blackfriday"
)

//go:embed data/*.json
var dataFS embed.FS

// BlockInfo is one entry of the block catalog.
type BlockInfo struct {
	ID       string   `json:"id"`
	Category string   `json:"category"`
	Tags     []string `json:"tags,omitempty"`
}

// Pattern is a reusable surface pattern: a palette plus a compact
// row-string in the schematic grammar, tiled over a rectangle by the
// caller.
type Pattern struct {
	Name        string            `json:"name"`
	Description string            `json:"description"`
	Palette     map[string]string `json:"palette"`
	Rows        string            `json:"rows"`
}

// Furniture is a small prebuilt arrangement expressed as placement
// commands relative to an origin the caller translates.
type Furniture struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Footprint   [3]int   `json:"footprint"` // width, height, depth
	Commands    []string `json:"commands"`  // relative "/setblock dx dy dz block" lines
}

// Template is a full structure schematic in the compact key form,
// plus optional Markdown build notes rendered on lookup.
type Template struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	Schematic   map[string]interface{} `json:"schematic"`
	Notes       string                 `json:"notes,omitempty"` // Markdown source
}

// RenderedNotes returns the template's build notes rendered from
// Markdown to HTML, or "" when the template carries none.
func (t *Template) RenderedNotes() string {
	if t.Notes == "" {
		return ""
	}
	return string(blackfriday.MarkdownCommon([]byte(t.Notes)))
}

// Catalog is the loaded, immutable data set.
type Catalog struct {
	blocks    map[string]BlockInfo
	patterns  map[string]Pattern
	furniture map[string]Furniture
	templates map[string]Template
}

// Load decodes every embedded data file. It is called once at startup;
// a decode failure is a packaging bug and surfaces as a fatal error.
func Load() (*Catalog, error) {
	c := &Catalog{
		blocks:    map[string]BlockInfo{},
		patterns:  map[string]Pattern{},
		furniture: map[string]Furniture{},
		templates: map[string]Template{},
	}

	var blocks []BlockInfo
	if err := loadFile("data/blocks.json", &blocks); err != nil {
		return nil, err
	}
	for _, b := range blocks {
		c.blocks[b.ID] = b
	}

	var patterns []Pattern
	if err := loadFile("data/patterns.json", &patterns); err != nil {
		return nil, err
	}
	for _, p := range patterns {
		c.patterns[p.Name] = p
	}

	var furniture []Furniture
	if err := loadFile("data/furniture.json", &furniture); err != nil {
		return nil, err
	}
	for _, f := range furniture {
		c.furniture[f.Name] = f
	}

	var templates []Template
	if err := loadFile("data/templates.json", &templates); err != nil {
		return nil, err
	}
	for _, t := range templates {
		c.templates[t.Name] = t
	}

	return c, nil
}

func loadFile(name string, out interface{}) error {
	data, err := dataFS.ReadFile(name)
	if err != nil {
		return fmt.Errorf("catalog: read %s: %w", name, err)
	}
	if err := codec.Unmarshal(data, out); err != nil {
		return fmt.Errorf("catalog: decode %s: %w", name, err)
	}
	return nil
}

// Block returns the catalog entry for a block id, accepting both the
// bare id and the "minecraft:" prefixed form.
func (c *Catalog) Block(id string) (BlockInfo, error) {
	key := strings.TrimPrefix(id, "minecraft:")
	b, ok := c.blocks[key]
	if !ok {
		return BlockInfo{}, verrors.CatalogMiss("block", id)
	}
	return b, nil
}

func (c *Catalog) Pattern(name string) (Pattern, error) {
	p, ok := c.patterns[name]
	if !ok {
		return Pattern{}, verrors.CatalogMiss("pattern", name)
	}
	return p, nil
}

func (c *Catalog) Furniture(name string) (Furniture, error) {
	f, ok := c.furniture[name]
	if !ok {
		return Furniture{}, verrors.CatalogMiss("furniture", name)
	}
	return f, nil
}

func (c *Catalog) Template(name string) (Template, error) {
	t, ok := c.templates[name]
	if !ok {
		return Template{}, verrors.CatalogMiss("template", name)
	}
	return t, nil
}

// PatternNames lists every pattern name in sorted order.
func (c *Catalog) PatternNames() []string { return sortedKeys(c.patterns) }

// FurnitureNames lists every furniture name in sorted order.
func (c *Catalog) FurnitureNames() []string { return sortedKeys(c.furniture) }

// TemplateNames lists every template name in sorted order.
func (c *Catalog) TemplateNames() []string { return sortedKeys(c.templates) }

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
