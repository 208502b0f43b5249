// Package gamedata provides the embedded game catalog: enemy tiers, items,
// zone archetypes, character builds, combat actions and spawn tables.
package gamedata

import "embed"

// dataFS embeds all JSON files from this directory at build time.
//
//go:embed *.json
var dataFS embed.FS
