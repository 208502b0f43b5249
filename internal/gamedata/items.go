package gamedata

// ItemDef defines a usable item. Bonuses are permanent once used.
type ItemDef struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Glyph       string `json:"glyph"`
	Description string `json:"description"`
	Attack      int    `json:"attack"`
	Defense     int    `json:"defense"`
	Luck        int    `json:"luck"`
	SpawnWeight int    `json:"spawnWeight"` // Relative frequency in Overworld zones
}

// Key implements Def.
func (i ItemDef) Key() string { return i.ID }

// GlyphRune returns the glyph as a rune for rendering.
func (i *ItemDef) GlyphRune() rune {
	return glyphOr(i.Glyph, '*')
}

// ItemsFile represents the structure of items.json.
type ItemsFile struct {
	// NoneWeight is the relative frequency of an Overworld zone without an item.
	NoneWeight int       `json:"noneWeight"`
	Items      []ItemDef `json:"items"`
}
