package gamedata

import "github.com/gdamore/tcell/v2"

// ZoneDef describes a zone archetype.
type ZoneDef struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Glyph       string `json:"glyph"`
	Color       string `json:"color"`
	Description string `json:"description"`
	Underworld  string `json:"underworld"` // How the mirrored zone looks
}

// Key implements Def.
func (z ZoneDef) Key() string { return z.ID }

// GlyphRune returns the glyph as a rune for rendering.
func (z *ZoneDef) GlyphRune() rune {
	return glyphOr(z.Glyph, '.')
}

// TCellColor returns the color as a tcell.Color.
func (z *ZoneDef) TCellColor() tcell.Color {
	return colorOr(z.Color, tcell.ColorWhite)
}

// ZonesFile represents the structure of zones.json.
type ZonesFile struct {
	Zones []ZoneDef `json:"zones"`
}
