package gamedata

import "github.com/gdamore/tcell/v2"

// EnemyDef defines an enemy tier loaded from JSON.
type EnemyDef struct {
	ID          string `json:"id"`          // Tier identifier: "weak", "medium" or "boss"
	Name        string `json:"name"`        // Display name (e.g., "Democane")
	Glyph       string `json:"glyph"`       // Single character for rendering
	Color       string `json:"color"`       // Hex color code
	Description string `json:"description"` // Encounter line
	HP          int    `json:"hp"`
	Attack      int    `json:"attack"`
	Defense     int    `json:"defense"`
	ClearChance int    `json:"clearChance"` // Percent chance the enemy leaves its zone when beaten
	Boss        bool   `json:"boss"`        // Defeat ends the session
}

// Key implements Def.
func (e EnemyDef) Key() string { return e.ID }

// GlyphRune returns the glyph as a rune for rendering.
func (e *EnemyDef) GlyphRune() rune {
	return glyphOr(e.Glyph, '?')
}

// TCellColor returns the color as a tcell.Color.
func (e *EnemyDef) TCellColor() tcell.Color {
	return colorOr(e.Color, tcell.ColorRed)
}

// EnemiesFile represents the structure of enemies.json.
type EnemiesFile struct {
	Enemies []EnemyDef `json:"enemies"`
}
