// Package entity provides the players and the enemies they fight.
package entity

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/samdwyer/otherside/internal/dice"
	"github.com/samdwyer/otherside/internal/gamedata"
	"github.com/samdwyer/otherside/internal/world"
)

const (
	// StartingHP is every player's initial and maximum HP.
	StartingHP = 80
	// PackSize is the number of inventory slots.
	PackSize = 3
	// MaxNameLength caps player names, in runes.
	MaxNameLength = 49
)

var (
	ErrPackFull    = errors.New("pack is full")
	ErrEmptySlot   = errors.New("pack slot is empty")
	ErrInvalidSlot = errors.New("invalid pack slot")
	ErrInvalidItem = errors.New("invalid item")
	ErrUnknownItem = errors.New("item missing from catalog")
)

// Player is one adventurer. A player stands in exactly one realm at a time.
type Player struct {
	Name    string
	Build   string // Build ID applied at setup, empty if none
	Attack  int
	Defense int
	Luck    int

	HP, MaxHP int
	Pack      [PackSize]world.Item

	pos world.Position
}

// NewPlayer creates a player with full HP, an empty pack and no position.
func NewPlayer(name string, attack, defense, luck int) *Player {
	return &Player{
		Name:    name,
		Attack:  attack,
		Defense: defense,
		Luck:    luck,
		HP:      StartingHP,
		MaxHP:   StartingHP,
		pos:     world.Nowhere,
	}
}

// RollPlayer creates a player whose attack, defense and luck are each a d20.
func RollPlayer(name string, rng dice.Roller) *Player {
	attack := dice.RollD20(rng)
	defense := dice.RollD20(rng)
	luck := dice.RollD20(rng)
	return NewPlayer(name, attack, defense, luck)
}

// NormalizeName trims raw and caps it at MaxNameLength runes. An empty name
// becomes "Player N" where N is the 1-based slot.
func NormalizeName(raw string, slot int) string {
	name := strings.TrimSpace(raw)
	if name == "" {
		return fmt.Sprintf("Player %d", slot)
	}
	if utf8.RuneCountInString(name) > MaxNameLength {
		name = strings.TrimSpace(string([]rune(name)[:MaxNameLength]))
	}
	return name
}

// ApplyBuild adds the build's deltas. A stat the build lowers is floored at 1.
func (p *Player) ApplyBuild(def *gamedata.BuildDef) {
	if def == nil {
		return
	}
	p.Attack = adjust(p.Attack, def.Attack)
	p.Defense = adjust(p.Defense, def.Defense)
	p.Luck = adjust(p.Luck, def.Luck)
	if def.Rename != "" {
		p.Name = def.Rename
	}
	p.Build = def.ID
}

func adjust(stat, delta int) int {
	stat += delta
	if delta < 0 && stat < 1 {
		return 1
	}
	return stat
}

// =============================================================================
// Pack
// =============================================================================

// PickUp stores item in the first empty slot and returns the slot index.
func (p *Player) PickUp(item world.Item) (int, error) {
	if item == world.ItemNone || !item.Valid() {
		return -1, fmt.Errorf("%w: %d", ErrInvalidItem, item)
	}
	for i, held := range p.Pack {
		if held == world.ItemNone {
			p.Pack[i] = item
			return i, nil
		}
	}
	return -1, ErrPackFull
}

// PackFull reports whether every slot holds an item.
func (p *Player) PackFull() bool {
	for _, held := range p.Pack {
		if held == world.ItemNone {
			return false
		}
	}
	return true
}

// HasItems reports whether any slot holds an item.
func (p *Player) HasItems() bool {
	for _, held := range p.Pack {
		if held != world.ItemNone {
			return true
		}
	}
	return false
}

// Use consumes the item in slot (0-based) and applies its permanent bonuses.
func (p *Player) Use(slot int, cat *gamedata.Catalog) (*gamedata.ItemDef, error) {
	if slot < 0 || slot >= PackSize {
		return nil, fmt.Errorf("%w: %d", ErrInvalidSlot, slot+1)
	}
	item := p.Pack[slot]
	if item == world.ItemNone {
		return nil, fmt.Errorf("%w: %d", ErrEmptySlot, slot+1)
	}
	def := cat.Item(item.ID())
	if def == nil {
		return nil, fmt.Errorf("%w: %s", ErrUnknownItem, item.ID())
	}

	p.Attack += def.Attack
	p.Defense += def.Defense
	p.Luck += def.Luck
	p.Pack[slot] = world.ItemNone
	return def, nil
}

// =============================================================================
// world.Traveler implementation
// =============================================================================

// Position returns the zone the player stands in.
func (p *Player) Position() world.Position { return p.pos }

// SetPosition moves the player.
func (p *Player) SetPosition(pos world.Position) { p.pos = pos }

// GetLuck returns the luck stat.
func (p *Player) GetLuck() int { return p.Luck }

// =============================================================================
// Combatant implementation
// =============================================================================

// GetName returns the player's name.
func (p *Player) GetName() string { return p.Name }

// IsAlive returns true if the player has HP remaining.
func (p *Player) IsAlive() bool { return p.HP > 0 }

// GetHP returns current HP.
func (p *Player) GetHP() int { return p.HP }

// GetMaxHP returns maximum HP.
func (p *Player) GetMaxHP() int { return p.MaxHP }

// GetAttack returns attack stat.
func (p *Player) GetAttack() int { return p.Attack }

// GetDefense returns defense stat.
func (p *Player) GetDefense() int { return p.Defense }

// TakeDamage reduces HP and returns actual damage taken.
func (p *Player) TakeDamage(amount int) int {
	if amount <= 0 {
		return 0
	}
	actual := amount
	if actual > p.HP {
		actual = p.HP
	}
	p.HP -= actual
	return actual
}

// SpendHP pays cost from HP. It fails unless HP is strictly above cost.
func (p *Player) SpendHP(cost int) bool {
	if p.HP <= cost {
		return false
	}
	p.HP -= cost
	return true
}

var _ world.Traveler = (*Player)(nil)
