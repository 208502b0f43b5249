// Package combat resolves encounters between a player and the enemy
// occupying their zone.
package combat

import (
	"errors"

	"github.com/samdwyer/otherside/internal/gamedata"
	"github.com/samdwyer/otherside/internal/world"
)

// Combatant is the interface for anything that can take part in a fight.
// Both players and enemies implement it.
type Combatant interface {
	GetName() string
	IsAlive() bool
	GetHP() int
	GetMaxHP() int
	GetAttack() int
	GetDefense() int
	TakeDamage(amount int) int // Returns actual damage taken
}

// Fighter is the player side of an encounter.
type Fighter interface {
	Combatant
	SpendHP(cost int) bool // False unless HP is strictly above cost
	HasItems() bool
	Use(slot int, cat *gamedata.Catalog) (*gamedata.ItemDef, error)
}

// Site is the zone an encounter takes place in. The engine reads the enemy
// tier from it and clears the enemy when it leaves.
type Site interface {
	Enemy() world.Enemy
	ClearEnemy()
}

var (
	ErrNotEnoughHP   = errors.New("not enough HP for a power attack")
	ErrNoItems       = errors.New("pack is empty")
	ErrInvalidAction = errors.New("invalid combat action")
	ErrUnknownEnemy  = errors.New("enemy tier missing from catalog")
)

// Rules are the numbers that distinguish the combat actions.
type Rules struct {
	PowerCost    int // HP paid for a power attack
	PowerPercent int // Power attack multiplier, in percent
	DefendBonus  int // Defense added while defending
}

// DefaultRules returns the stock combat numbers.
func DefaultRules() Rules {
	return Rules{PowerCost: 3, PowerPercent: 150, DefendBonus: 5}
}

// RulesFromCatalog reads the combat numbers from the action table, keeping
// the defaults for any action the catalog does not define.
func RulesFromCatalog(cat *gamedata.Catalog) Rules {
	r := DefaultRules()
	if a := cat.Action(ActionPowerAttack.ID()); a != nil {
		r.PowerCost = a.HPCost
		if a.PowerPercent > 0 {
			r.PowerPercent = a.PowerPercent
		}
	}
	if a := cat.Action(ActionDefend.ID()); a != nil {
		r.DefendBonus = a.DefenseBonus
	}
	return r
}

// defaultActions are used for any action the catalog does not define.
func defaultActions() map[Action]gamedata.ActionDef {
	return map[Action]gamedata.ActionDef{
		ActionAttack:      {ID: "attack", Name: "Attack", PowerPercent: 100, ConsumesTurn: true},
		ActionPowerAttack: {ID: "power_attack", Name: "Power Attack", HPCost: 3, PowerPercent: 150, ConsumesTurn: true},
		ActionDefend:      {ID: "defend", Name: "Defend", DefenseBonus: 5, ConsumesTurn: true},
		ActionUseItem:     {ID: "use_item", Name: "Use Item"},
	}
}

// ActionsFromCatalog returns the definition of every combat action, taking
// the catalog's where it has one.
func ActionsFromCatalog(cat *gamedata.Catalog) map[Action]gamedata.ActionDef {
	out := defaultActions()
	for act := range out {
		if def := cat.Action(act.ID()); def != nil {
			out[act] = *def
		}
	}
	return out
}

// Damage is max(0, (attack + attackRoll) - (defense + defenseRoll)).
func Damage(attack, attackRoll, defense, defenseRoll int) int {
	d := (attack + attackRoll) - (defense + defenseRoll)
	if d < 0 {
		return 0
	}
	return d
}

// Scale applies a percent multiplier, rounding down.
func Scale(attack, percent int) int {
	return attack * percent / 100
}
