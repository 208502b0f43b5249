package gamedata

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/samdwyer/otherside/internal/world"
)

// Def is implemented by every definition stored in a Registry.
type Def interface {
	Key() string
}

// Registry holds loaded definitions in file order with lookup by ID.
type Registry[T Def] struct {
	all  []T
	byID map[string]int
}

// NewRegistry creates a registry, rejecting empty and duplicate IDs.
func NewRegistry[T Def](defs []T) (*Registry[T], error) {
	r := &Registry[T]{
		all:  defs,
		byID: make(map[string]int, len(defs)),
	}
	for i, d := range defs {
		id := d.Key()
		if id == "" {
			return nil, fmt.Errorf("definition %d has no id", i)
		}
		if _, dup := r.byID[id]; dup {
			return nil, fmt.Errorf("duplicate id %q", id)
		}
		r.byID[id] = i
	}
	return r, nil
}

// GetByID returns the definition with the given ID, or nil if not found.
func (r *Registry[T]) GetByID(id string) *T {
	i, ok := r.byID[id]
	if !ok {
		return nil
	}
	return &r.all[i]
}

// All returns all definitions in file order.
func (r *Registry[T]) All() []T {
	return r.all
}

// Count returns the number of definitions.
func (r *Registry[T]) Count() int {
	return len(r.all)
}

// =============================================================================
// Catalog
// =============================================================================

// Catalog is the full set of game data.
type Catalog struct {
	Enemies *Registry[EnemyDef]
	Items   *Registry[ItemDef]
	Zones   *Registry[ZoneDef]
	Builds  *Registry[BuildDef]
	Actions *Registry[ActionDef]
	Spawns  SpawnsFile

	// ItemNoneWeight is the relative frequency of a zone without an item.
	ItemNoneWeight int
}

// LoadCatalog loads and validates the embedded catalog.
func LoadCatalog() (*Catalog, error) {
	return LoadCatalogFS(dataFS)
}

// MustLoadCatalog loads the embedded catalog, panicking on error.
func MustLoadCatalog() *Catalog {
	c, err := LoadCatalog()
	if err != nil {
		panic(err)
	}
	return c
}

// LoadCatalogFS loads and validates a catalog from fsys.
func LoadCatalogFS(fsys fs.FS) (*Catalog, error) {
	enemies, err := LoadFS[EnemiesFile](fsys, "enemies.json")
	if err != nil {
		return nil, err
	}
	items, err := LoadFS[ItemsFile](fsys, "items.json")
	if err != nil {
		return nil, err
	}
	zones, err := LoadFS[ZonesFile](fsys, "zones.json")
	if err != nil {
		return nil, err
	}
	builds, err := LoadFS[BuildsFile](fsys, "builds.json")
	if err != nil {
		return nil, err
	}
	actions, err := LoadFS[ActionsFile](fsys, "actions.json")
	if err != nil {
		return nil, err
	}
	spawns, err := LoadFS[SpawnsFile](fsys, "spawns.json")
	if err != nil {
		return nil, err
	}

	c := &Catalog{Spawns: spawns, ItemNoneWeight: items.NoneWeight}
	if c.Enemies, err = NewRegistry(enemies.Enemies); err != nil {
		return nil, fmt.Errorf("enemies.json: %w", err)
	}
	if c.Items, err = NewRegistry(items.Items); err != nil {
		return nil, fmt.Errorf("items.json: %w", err)
	}
	if c.Zones, err = NewRegistry(zones.Zones); err != nil {
		return nil, fmt.Errorf("zones.json: %w", err)
	}
	if c.Builds, err = NewRegistry(builds.Builds); err != nil {
		return nil, fmt.Errorf("builds.json: %w", err)
	}
	if c.Actions, err = NewRegistry(actions.Actions); err != nil {
		return nil, fmt.Errorf("actions.json: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// Validate checks cross-file consistency.
func (c *Catalog) Validate() error {
	var errs []error

	bosses := 0
	for _, e := range c.Enemies.All() {
		if e.HP <= 0 {
			errs = append(errs, fmt.Errorf("enemy %q: hp must be positive", e.ID))
		}
		if e.ClearChance < 0 || e.ClearChance > 100 {
			errs = append(errs, fmt.Errorf("enemy %q: clearChance %d not in 0..100", e.ID, e.ClearChance))
		}
		if e.Boss {
			bosses++
		}
	}
	if bosses != 1 {
		errs = append(errs, fmt.Errorf("enemies.json: %d bosses, want 1", bosses))
	}

	// Every value the world can place must resolve to a definition.
	for e := world.EnemyWeak; e <= world.EnemyBoss; e++ {
		def := c.Enemies.GetByID(e.ID())
		switch {
		case def == nil:
			errs = append(errs, fmt.Errorf("enemies.json: missing tier %q", e.ID()))
		case def.Boss != (e == world.EnemyBoss):
			errs = append(errs, fmt.Errorf("enemy %q: only the boss tier may set boss", e.ID()))
		}
	}
	for k := world.Kind(0); k < world.KindCount; k++ {
		if c.Zones.GetByID(k.ID()) == nil {
			errs = append(errs, fmt.Errorf("zones.json: missing archetype %q", k.ID()))
		}
	}
	for i := world.ItemNone + 1; i <= world.ItemKinds; i++ {
		if c.Items.GetByID(i.ID()) == nil {
			errs = append(errs, fmt.Errorf("items.json: missing item %q", i.ID()))
		}
	}

	if c.ItemNoneWeight < 0 {
		errs = append(errs, errors.New("items.json: negative noneWeight"))
	}
	for _, it := range c.Items.All() {
		if it.SpawnWeight < 0 {
			errs = append(errs, fmt.Errorf("item %q: negative spawnWeight", it.ID))
		}
	}

	for name, table := range map[string][]SpawnEntry{
		"overworld":  c.Spawns.Overworld,
		"underworld": c.Spawns.Underworld,
	} {
		total := 0
		for _, s := range table {
			if s.Enemy != "none" && c.Enemies.GetByID(s.Enemy) == nil {
				errs = append(errs, fmt.Errorf("spawns.json %s: unknown enemy %q", name, s.Enemy))
			}
			if s.Weight < 0 {
				errs = append(errs, fmt.Errorf("spawns.json %s: negative weight for %q", name, s.Enemy))
			}
			total += s.Weight
		}
		if total <= 0 {
			errs = append(errs, fmt.Errorf("spawns.json %s: weights must sum above zero", name))
		}
	}

	for _, a := range c.Actions.All() {
		if a.HPCost < 0 || a.PowerPercent < 0 || a.DefenseBonus < 0 {
			errs = append(errs, fmt.Errorf("action %q: negative value", a.ID))
		}
	}

	return errors.Join(errs...)
}

// Enemy returns the enemy tier definition, or nil.
func (c *Catalog) Enemy(id string) *EnemyDef { return c.Enemies.GetByID(id) }

// Item returns the item definition, or nil.
func (c *Catalog) Item(id string) *ItemDef { return c.Items.GetByID(id) }

// Zone returns the zone archetype, or nil.
func (c *Catalog) Zone(id string) *ZoneDef { return c.Zones.GetByID(id) }

// Build returns the build definition, or nil.
func (c *Catalog) Build(id string) *BuildDef { return c.Builds.GetByID(id) }

// Action returns the combat action definition, or nil.
func (c *Catalog) Action(id string) *ActionDef { return c.Actions.GetByID(id) }
