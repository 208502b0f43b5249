package world

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"

	"github.com/samdwyer/otherside/internal/dice"
	"github.com/samdwyer/otherside/internal/telemetry"
)

const (
	// DefaultMinimum is the smallest map that may be closed.
	DefaultMinimum = 15
	// DefaultCapacity bounds how many zone pairs a graph may hold.
	DefaultCapacity = 1024
)

// EnemyWeight is one entry of an enemy spawn table.
type EnemyWeight struct {
	Enemy  Enemy
	Weight int
}

// ItemWeight is one entry of an item spawn table.
type ItemWeight struct {
	Item   Item
	Weight int
}

// Weights holds the spawn tables used by Generate and InsertAt.
type Weights struct {
	Overworld  []EnemyWeight
	Underworld []EnemyWeight
	Items      []ItemWeight
}

// DefaultWeights returns the stock spawn tables. Overworld entries are listed
// in draw order: none, then medium, then weak.
func DefaultWeights() Weights {
	return Weights{
		Overworld: []EnemyWeight{
			{EnemyNone, 40},
			{EnemyMedium, 30},
			{EnemyWeak, 30},
		},
		Underworld: []EnemyWeight{
			{EnemyNone, 50},
			{EnemyMedium, 50},
		},
		Items: []ItemWeight{
			{ItemNone, 50},
			{ItemBicycle, 15},
			{ItemHellfireShirt, 15},
			{ItemCompass, 10},
			{ItemMetalRiff, 10},
		},
	}
}

// Option configures a Graph.
type Option func(*Graph)

// WithWeights replaces the spawn tables. Empty tables keep the defaults.
func WithWeights(w Weights) Option {
	return func(g *Graph) {
		if total(enemyWeights(w.Overworld)) > 0 {
			g.weights.Overworld = w.Overworld
		}
		if total(enemyWeights(w.Underworld)) > 0 {
			g.weights.Underworld = w.Underworld
		}
		if total(itemWeights(w.Items)) > 0 {
			g.weights.Items = w.Items
		}
	}
}

// WithCapacity bounds the number of zone pairs.
func WithCapacity(n int) Option {
	return func(g *Graph) {
		if n > 0 {
			g.capacity = n
		}
	}
}

// WithMinimum sets the zone count required to close the map.
func WithMinimum(n int) Option {
	return func(g *Graph) {
		if n > 0 {
			g.minimum = n
		}
	}
}

// arena stores one realm's zones. Released slots are recycled through free.
type arena struct {
	zones []Zone
	free  []ZoneID
	head  ZoneID
	tail  ZoneID
}

func newArena() arena {
	return arena{head: NoZone, tail: NoZone}
}

func (a *arena) reset() {
	a.zones = a.zones[:0]
	a.free = a.free[:0]
	a.head = NoZone
	a.tail = NoZone
}

func (a *arena) alloc(z Zone) ZoneID {
	z.prev, z.next, z.twin, z.live = NoZone, NoZone, NoZone, true
	if n := len(a.free); n > 0 {
		id := a.free[n-1]
		a.free = a.free[:n-1]
		a.zones[id] = z
		return id
	}
	a.zones = append(a.zones, z)
	return ZoneID(len(a.zones) - 1)
}

func (a *arena) release(id ZoneID) {
	a.zones[id] = Zone{prev: NoZone, next: NoZone, twin: NoZone}
	a.free = append(a.free, id)
}

func (a *arena) get(id ZoneID) *Zone {
	if id < 0 || int(id) >= len(a.zones) || !a.zones[id].live {
		return nil
	}
	return &a.zones[id]
}

// nth returns the zone at a 1-based position.
func (a *arena) nth(pos int) ZoneID {
	id := a.head
	for i := 1; i < pos && id != NoZone; i++ {
		id = a.zones[id].next
	}
	return id
}

// link inserts id after prev, or at the head when prev is NoZone.
func (a *arena) link(id, prev ZoneID) {
	z := &a.zones[id]
	z.prev = prev
	if prev == NoZone {
		z.next = a.head
		a.head = id
	} else {
		z.next = a.zones[prev].next
		a.zones[prev].next = id
	}
	if z.next == NoZone {
		a.tail = id
	} else {
		a.zones[z.next].prev = id
	}
}

func (a *arena) unlink(id ZoneID) {
	z := a.zones[id]
	if z.prev == NoZone {
		a.head = z.next
	} else {
		a.zones[z.prev].next = z.next
	}
	if z.next == NoZone {
		a.tail = z.prev
	} else {
		a.zones[z.next].prev = z.prev
	}
}

func (a *arena) walk(fn func(*Zone)) {
	for id := a.head; id != NoZone; id = a.zones[id].next {
		fn(&a.zones[id])
	}
}

// Graph holds the Overworld and Underworld sequences. Zone pairs are created
// and destroyed together, so both sequences always have the same length and
// every zone's twin sits at the same position in the other realm.
type Graph struct {
	realms   [realmCount]arena
	length   int
	closed   bool
	minimum  int
	capacity int
	weights  Weights
	rng      dice.Roller
}

// NewGraph creates an empty, open graph.
func NewGraph(rng dice.Roller, opts ...Option) *Graph {
	g := &Graph{
		realms:   [realmCount]arena{newArena(), newArena()},
		minimum:  DefaultMinimum,
		capacity: DefaultCapacity,
		weights:  DefaultWeights(),
		rng:      rng,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Generate discards the current map and builds count random zone pairs with
// exactly one boss in the Underworld.
func (g *Graph) Generate(ctx context.Context, count int) error {
	_, span := telemetry.Tracer("world").Start(ctx, "map.generate")
	defer span.End()

	if g.closed {
		return ErrClosed
	}
	if count < 1 {
		return fmt.Errorf("%w: %d", ErrInvalidCount, count)
	}

	g.reset()
	boss := g.rng.Intn(count)
	for i := 0; i < count; i++ {
		kind := Kind(g.rng.Intn(KindCount))
		enemy := g.drawEnemy(g.weights.Overworld, Overworld)
		item := g.drawItem()
		under := EnemyBoss
		if i != boss {
			under = g.drawEnemy(g.weights.Underworld, Underworld)
		}
		if err := g.addPair(g.length+1, kind, enemy, under, item); err != nil {
			g.reset()
			span.RecordError(err)
			return fmt.Errorf("generate zone %d of %d: %w", i+1, count, err)
		}
	}

	span.SetAttributes(
		attribute.Int("map.zones", g.length),
		attribute.Int("map.boss_position", boss+1),
	)
	return nil
}

// InsertAt creates a zone pair at position (1..Len()+1). The Underworld
// enemy is rolled and is never the boss.
func (g *Graph) InsertAt(position int, kind Kind, enemy Enemy, item Item) error {
	if g.closed {
		return ErrClosed
	}
	if position < 1 || position > g.length+1 {
		return positionError(position, g.length+1)
	}
	if !kind.Valid() {
		return fmt.Errorf("%w: %d", ErrInvalidKind, kind)
	}
	if !enemy.Valid() || !enemy.AllowedIn(Overworld) {
		return fmt.Errorf("%w: %s", ErrInvalidEnemy, enemy)
	}
	if !item.Valid() {
		return fmt.Errorf("%w: %d", ErrInvalidItem, item)
	}
	if g.length >= g.capacity {
		return ErrCapacity
	}
	return g.addPair(position, kind, enemy, g.drawEnemy(g.weights.Underworld, Underworld), item)
}

// DeleteAt removes the zone pair at position (1..Len()).
func (g *Graph) DeleteAt(position int) error {
	if g.closed {
		return ErrClosed
	}
	if g.length == 0 {
		return ErrEmptyMap
	}
	if position < 1 || position > g.length {
		return positionError(position, g.length)
	}

	over, under := &g.realms[Overworld], &g.realms[Underworld]
	oid := over.nth(position)
	uid := over.zones[oid].twin
	over.unlink(oid)
	under.unlink(uid)
	over.release(oid)
	under.release(uid)
	g.length--
	if g.length == 0 {
		g.reset()
	}
	return nil
}

// Close validates the map and forbids further structural changes. On
// failure the map is unchanged and a *ValidationError lists every unmet
// condition.
func (g *Graph) Close(ctx context.Context) error {
	_, span := telemetry.Tracer("world").Start(ctx, "map.close")
	defer span.End()

	if g.closed {
		return ErrClosed
	}
	zones, bosses := g.Count(), g.BossCount()
	span.SetAttributes(
		attribute.Int("map.zones", zones),
		attribute.Int("map.bosses", bosses),
	)
	if zones < g.minimum || bosses != 1 {
		err := &ValidationError{Zones: zones, Bosses: bosses, Minimum: g.minimum}
		span.RecordError(err)
		return err
	}
	g.closed = true
	return nil
}

// Closed reports whether the map has been closed.
func (g *Graph) Closed() bool { return g.closed }

// Minimum returns the zone count required to close the map.
func (g *Graph) Minimum() int { return g.minimum }

// Capacity returns the maximum number of zone pairs.
func (g *Graph) Capacity() int { return g.capacity }

// Len returns the tracked number of zone pairs.
func (g *Graph) Len() int { return g.length }

// Count walks the Overworld sequence.
func (g *Graph) Count() int {
	return g.CountRealm(Overworld)
}

// CountRealm walks one realm's sequence.
func (g *Graph) CountRealm(r Realm) int {
	if !r.Valid() {
		return 0
	}
	n := 0
	g.realms[r].walk(func(*Zone) { n++ })
	return n
}

// BossCount walks the Underworld counting boss zones.
func (g *Graph) BossCount() int {
	n := 0
	g.realms[Underworld].walk(func(z *Zone) {
		if z.Enemy == EnemyBoss {
			n++
		}
	})
	return n
}

// Verify walks both sequences in lockstep and checks that they have the
// tracked length, that every pair is mutually linked, and that back links
// agree with forward links.
func (g *Graph) Verify() error {
	over, under := &g.realms[Overworld], &g.realms[Underworld]
	o, u := over.head, under.head
	oPrev, uPrev := NoZone, NoZone
	n := 0

	for o != NoZone && u != NoZone {
		n++
		if n > g.length {
			return fmt.Errorf("%w: walked past tracked length %d", ErrCorrupt, g.length)
		}
		oz, uz := over.get(o), under.get(u)
		if oz == nil || uz == nil {
			return fmt.Errorf("%w: position %d links a released zone", ErrCorrupt, n)
		}
		if oz.twin != u || uz.twin != o {
			return fmt.Errorf("%w: position %d cross-links are not mutual", ErrCorrupt, n)
		}
		if oz.prev != oPrev || uz.prev != uPrev {
			return fmt.Errorf("%w: position %d back link mismatch", ErrCorrupt, n)
		}
		if oz.Kind != uz.Kind {
			return fmt.Errorf("%w: position %d kinds differ", ErrCorrupt, n)
		}
		if oz.Realm != Overworld || uz.Realm != Underworld || uz.Item != ItemNone {
			return fmt.Errorf("%w: position %d realm data mismatch", ErrCorrupt, n)
		}
		oPrev, uPrev = o, u
		o, u = oz.next, uz.next
	}

	if o != NoZone || u != NoZone {
		return fmt.Errorf("%w: sequences differ in length", ErrCorrupt)
	}
	if n != g.length {
		return fmt.Errorf("%w: tracked length %d, walked %d", ErrCorrupt, g.length, n)
	}
	if over.tail != oPrev || under.tail != uPrev {
		return fmt.Errorf("%w: tail does not match last zone", ErrCorrupt)
	}
	return nil
}

// Pair is a read-only view of the two zones at one position.
type Pair struct {
	Position   int
	Overworld  Zone
	Underworld Zone
}

// ZoneAt returns both zones at position (1..Len()).
func (g *Graph) ZoneAt(position int) (Pair, error) {
	if position < 1 || position > g.length {
		return Pair{}, positionError(position, g.length)
	}
	oid := g.realms[Overworld].nth(position)
	o := g.realms[Overworld].zones[oid]
	return Pair{
		Position:   position,
		Overworld:  o,
		Underworld: g.realms[Underworld].zones[o.twin],
	}, nil
}

// Zones returns an ordered snapshot of one realm's sequence.
func (g *Graph) Zones(r Realm) []Zone {
	if !r.Valid() {
		return nil
	}
	out := make([]Zone, 0, g.length)
	g.realms[r].walk(func(z *Zone) { out = append(out, *z) })
	return out
}

// Head returns the first zone of a realm, or NoZone when the map is empty.
func (g *Graph) Head(r Realm) ZoneID {
	if !r.Valid() {
		return NoZone
	}
	return g.realms[r].head
}

func (g *Graph) reset() {
	g.realms[Overworld].reset()
	g.realms[Underworld].reset()
	g.length = 0
}

// addPair links a new zone pair at position. The caller validates position.
func (g *Graph) addPair(position int, kind Kind, enemy, under Enemy, item Item) error {
	if g.length >= g.capacity {
		return ErrCapacity
	}
	over, und := &g.realms[Overworld], &g.realms[Underworld]

	oPrev, uPrev := NoZone, NoZone
	switch {
	case position == g.length+1:
		oPrev, uPrev = over.tail, und.tail
	case position > 1:
		oPrev = over.nth(position - 1)
		uPrev = over.zones[oPrev].twin
	}

	oid := over.alloc(Zone{Realm: Overworld, Kind: kind, Enemy: enemy, Item: item})
	uid := und.alloc(Zone{Realm: Underworld, Kind: kind, Enemy: under})
	over.zones[oid].twin = uid
	und.zones[uid].twin = oid
	over.link(oid, oPrev)
	und.link(uid, uPrev)
	g.length++
	return nil
}

func (g *Graph) drawEnemy(table []EnemyWeight, r Realm) Enemy {
	e := table[g.rng.WeightedSelect(enemyWeights(table))].Enemy
	if e == EnemyBoss || !e.AllowedIn(r) {
		return EnemyNone
	}
	return e
}

func (g *Graph) drawItem() Item {
	table := g.weights.Items
	it := table[g.rng.WeightedSelect(itemWeights(table))].Item
	if !it.Valid() {
		return ItemNone
	}
	return it
}

func enemyWeights(table []EnemyWeight) []int {
	w := make([]int, len(table))
	for i, e := range table {
		w[i] = e.Weight
	}
	return w
}

func itemWeights(table []ItemWeight) []int {
	w := make([]int, len(table))
	for i, e := range table {
		w[i] = e.Weight
	}
	return w
}

func total(weights []int) int {
	sum := 0
	for _, w := range weights {
		if w < 0 {
			return 0
		}
		sum += w
	}
	return sum
}
