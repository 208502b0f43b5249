package world

import (
	"fmt"

	"github.com/samdwyer/otherside/internal/dice"
)

// Position references exactly one zone in one realm.
type Position struct {
	Realm Realm
	Zone  ZoneID
}

// Nowhere is the position of a traveler not yet placed on the map.
var Nowhere = Position{Realm: Overworld, Zone: NoZone}

// Placed reports whether the position references a zone.
func (p Position) Placed() bool {
	return p.Zone != NoZone
}

// Traveler is anything that moves through the graph.
type Traveler interface {
	Position() Position
	SetPosition(Position)
	GetLuck() int
}

// Crossing describes a world transition attempt.
type Crossing struct {
	From   Position
	To     Position
	Roll   int
	Rolled bool // only escapes from the Underworld roll
}

// Zone returns the zone at pos.
func (g *Graph) Zone(pos Position) (Zone, bool) {
	z := g.ref(pos)
	if z == nil {
		return Zone{}, false
	}
	return *z, true
}

// Index returns the 1-based position of pos in its sequence, or 0.
func (g *Graph) Index(pos Position) int {
	if g.ref(pos) == nil {
		return 0
	}
	i := 1
	a := &g.realms[pos.Realm]
	for id := a.head; id != NoZone; id = a.zones[id].next {
		if id == pos.Zone {
			return i
		}
		i++
	}
	return 0
}

// Place puts the traveler on the first Overworld zone.
func (g *Graph) Place(t Traveler) error {
	if g.length == 0 {
		return ErrEmptyMap
	}
	t.SetPosition(Position{Realm: Overworld, Zone: g.realms[Overworld].head})
	return nil
}

// Advance moves the traveler one zone forward in its current realm.
func (g *Graph) Advance(t Traveler) error {
	return g.step(t, true)
}

// Retreat moves the traveler one zone back in its current realm.
func (g *Graph) Retreat(t Traveler) error {
	return g.step(t, false)
}

func (g *Graph) step(t Traveler, forward bool) error {
	pos := t.Position()
	z := g.ref(pos)
	if z == nil {
		return ErrNotPlaced
	}
	if z.HasEnemy() {
		return ErrBlocked
	}
	next := z.prev
	if forward {
		next = z.next
	}
	if next == NoZone {
		return ErrEndOfPath
	}
	t.SetPosition(Position{Realm: pos.Realm, Zone: next})
	return nil
}

// CrossWorld moves the traveler to the twin zone in the other realm. Going
// down always succeeds. Escaping up rolls a d20 and succeeds only when the
// roll is below the traveler's luck.
func (g *Graph) CrossWorld(t Traveler) (Crossing, error) {
	pos := t.Position()
	z := g.ref(pos)
	if z == nil {
		return Crossing{From: pos, To: pos}, ErrNotPlaced
	}

	c := Crossing{From: pos, To: pos}
	if pos.Realm == Underworld {
		c.Roll = dice.RollD20(g.rng)
		c.Rolled = true
		if luck := t.GetLuck(); c.Roll >= luck {
			return c, fmt.Errorf("%w: rolled %d against luck %d", ErrEscapeFailed, c.Roll, luck)
		}
	}

	c.To = Position{Realm: pos.Realm.Other(), Zone: z.twin}
	t.SetPosition(c.To)
	return c, nil
}

// HasEnemy reports whether the traveler's zone holds an enemy.
func (g *Graph) HasEnemy(t Traveler) bool {
	z := g.ref(t.Position())
	return z != nil && z.HasEnemy()
}

// TakeItem removes and returns the item lying at pos. Underworld zones never
// hold items.
func (g *Graph) TakeItem(pos Position) (Item, error) {
	z := g.ref(pos)
	if z == nil {
		return ItemNone, ErrNotPlaced
	}
	it := z.Item
	z.Item = ItemNone
	return it, nil
}

// Site is a handle on the enemy slot of one zone.
type Site struct {
	g   *Graph
	pos Position
}

// Site returns a handle on the zone at pos.
func (g *Graph) Site(pos Position) Site {
	return Site{g: g, pos: pos}
}

// Enemy returns the tier occupying the zone.
func (s Site) Enemy() Enemy {
	if z := s.g.ref(s.pos); z != nil {
		return z.Enemy
	}
	return EnemyNone
}

// ClearEnemy removes the enemy from the zone.
func (s Site) ClearEnemy() {
	if z := s.g.ref(s.pos); z != nil {
		z.Enemy = EnemyNone
	}
}

// Realm returns the realm of the zone.
func (s Site) Realm() Realm { return s.pos.Realm }

// Kind returns the archetype of the zone.
func (s Site) Kind() Kind {
	if z := s.g.ref(s.pos); z != nil {
		return z.Kind
	}
	return -1
}

func (g *Graph) ref(pos Position) *Zone {
	if !pos.Realm.Valid() {
		return nil
	}
	return g.realms[pos.Realm].get(pos.Zone)
}
