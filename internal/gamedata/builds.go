package gamedata

// BuildDef defines a character build chosen at setup. Deltas are added to
// the rolled stats; a stat lowered by a build never drops below 1.
type BuildDef struct {
	ID          string `json:"id"`          // Unique identifier (e.g., "offensive")
	Name        string `json:"name"`        // Display name
	Description string `json:"description"` // Menu hint
	Attack      int    `json:"attack"`
	Defense     int    `json:"defense"`
	Luck        int    `json:"luck"`
	Rename      string `json:"rename"` // Non-empty replaces the player's name
	Unique      bool   `json:"unique"` // At most one player per session
}

// Key implements Def.
func (b BuildDef) Key() string { return b.ID }

// BuildsFile represents the structure of builds.json.
type BuildsFile struct {
	Builds []BuildDef `json:"builds"`
}
