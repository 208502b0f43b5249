package gamedata

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gdamore/tcell/v2"
)

// ParseHexColor converts "#RRGGBB" or "RRGGBB" to a tcell.Color.
func ParseHexColor(hex string) (tcell.Color, error) {
	digits := strings.TrimPrefix(hex, "#")
	if len(digits) != 6 {
		return tcell.ColorDefault, fmt.Errorf("invalid hex color %q: want 6 digits", hex)
	}
	rgb, err := strconv.ParseUint(digits, 16, 32)
	if err != nil {
		return tcell.ColorDefault, fmt.Errorf("invalid hex color %q: %w", hex, err)
	}
	return tcell.NewHexColor(int32(rgb)), nil
}

// colorOr parses hex, falling back when it is empty or malformed.
func colorOr(hex string, fallback tcell.Color) tcell.Color {
	if hex == "" {
		return fallback
	}
	c, err := ParseHexColor(hex)
	if err != nil {
		return fallback
	}
	return c
}

// glyphOr returns the first rune of glyph, or fallback.
func glyphOr(glyph string, fallback rune) rune {
	for _, r := range glyph {
		return r
	}
	return fallback
}
