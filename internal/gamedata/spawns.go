package gamedata

// SpawnEntry weighs one enemy tier in a spawn table.
type SpawnEntry struct {
	Enemy  string `json:"enemy"`
	Weight int    `json:"weight"`
}

// SpawnsFile represents the structure of spawns.json. Entries are drawn in
// the listed order.
type SpawnsFile struct {
	Overworld  []SpawnEntry `json:"overworld"`
	Underworld []SpawnEntry `json:"underworld"`
}
