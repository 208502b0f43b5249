package gamedata

// =============================================================================
// COMBAT ACTIONS
// =============================================================================
//
// Each player turn in combat picks one action. The rules that differ between
// actions are data:
//
//   hpCost        HP paid up front. The action is refused unless the player
//                 has strictly more HP than the cost.
//   powerPercent  Attack multiplier in percent applied before the d20 roll.
//                 Zero means the action does not strike.
//   defenseBonus  Defense added until the enemy's counter resolves.
//   consumesTurn  False for actions that return to the action menu.
//
// {
//   "id": "power_attack",
//   "name": "Power Attack",
//   "hpCost": 3,
//   "powerPercent": 150,
//   "consumesTurn": true
// }

// ActionDef defines a combat action loaded from JSON.
type ActionDef struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Description  string `json:"description"`
	HPCost       int    `json:"hpCost"`
	PowerPercent int    `json:"powerPercent"`
	DefenseBonus int    `json:"defenseBonus"`
	ConsumesTurn bool   `json:"consumesTurn"`
}

// Key implements Def.
func (a ActionDef) Key() string { return a.ID }

// Strikes reports whether the action deals damage.
func (a *ActionDef) Strikes() bool {
	return a.PowerPercent > 0
}

// ActionsFile represents the structure of actions.json.
type ActionsFile struct {
	Actions []ActionDef `json:"actions"`
}
