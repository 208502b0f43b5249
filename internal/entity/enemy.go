package entity

import (
	"github.com/gdamore/tcell/v2"

	"github.com/samdwyer/otherside/internal/gamedata"
	"github.com/samdwyer/otherside/internal/world"
)

// Enemy is the foe of a single encounter. A fresh Enemy is built for every
// fight, so an enemy that lingers in its zone is met again at full HP.
type Enemy struct {
	Def    *gamedata.EnemyDef
	Tier   world.Enemy
	Name   string
	Symbol rune
	HP     int
	MaxHP  int
}

// NewEnemy creates a full-HP enemy of the given tier.
func NewEnemy(tier world.Enemy, def *gamedata.EnemyDef) *Enemy {
	return &Enemy{
		Def:    def,
		Tier:   tier,
		Name:   def.Name,
		Symbol: def.GlyphRune(),
		HP:     def.HP,
		MaxHP:  def.HP,
	}
}

// Color returns the tcell color for this enemy.
func (e *Enemy) Color() tcell.Color {
	return e.Def.TCellColor()
}

// IsBoss reports whether defeating the enemy wins the game.
func (e *Enemy) IsBoss() bool {
	return e.Tier == world.EnemyBoss || e.Def.Boss
}

// ClearChance is the percent chance the enemy leaves its zone once beaten.
func (e *Enemy) ClearChance() int {
	return e.Def.ClearChance
}

// GetName returns the enemy's name.
func (e *Enemy) GetName() string { return e.Name }

// IsAlive returns true if the enemy has HP remaining.
func (e *Enemy) IsAlive() bool { return e.HP > 0 }

// GetHP returns current HP.
func (e *Enemy) GetHP() int { return e.HP }

// GetMaxHP returns maximum HP.
func (e *Enemy) GetMaxHP() int { return e.MaxHP }

// GetAttack returns the enemy's attack power.
func (e *Enemy) GetAttack() int { return e.Def.Attack }

// GetDefense returns the enemy's defense value.
func (e *Enemy) GetDefense() int { return e.Def.Defense }

// TakeDamage reduces HP and returns actual damage taken.
func (e *Enemy) TakeDamage(amount int) int {
	if amount <= 0 {
		return 0
	}
	actual := amount
	if actual > e.HP {
		actual = e.HP
	}
	e.HP -= actual
	return actual
}
