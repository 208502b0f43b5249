// Package world provides the two linked zone sequences players travel through.
package world

// Realm identifies one of the two parallel worlds.
type Realm int

const (
	// Overworld is the ordinary world where items can be found.
	Overworld Realm = iota
	// Underworld is the hazardous mirror dimension where the boss lives.
	Underworld

	realmCount = 2
)

// String returns the realm name.
func (r Realm) String() string {
	switch r {
	case Overworld:
		return "Overworld"
	case Underworld:
		return "Underworld"
	default:
		return "Unknown"
	}
}

// Other returns the opposite realm.
func (r Realm) Other() Realm {
	if r == Overworld {
		return Underworld
	}
	return Overworld
}

// Valid reports whether r names a realm.
func (r Realm) Valid() bool {
	return r == Overworld || r == Underworld
}

// Kind is a zone archetype. Both zones of a pair share the same kind.
type Kind int

const (
	KindForest Kind = iota
	KindSchool
	KindLaboratory
	KindCave
	KindRoad
	KindGarden
	KindSupermarket
	KindPowerPlant
	KindAbandonedDepot
	KindPoliceStation

	// KindCount is the number of archetypes.
	KindCount = 10
)

var kindIDs = [KindCount]string{
	"forest", "school", "laboratory", "cave", "road",
	"garden", "supermarket", "power_plant", "abandoned_depot", "police_station",
}

var kindNames = [KindCount]string{
	"Forest", "School", "Laboratory", "Cave", "Road",
	"Garden", "Supermarket", "Power Plant", "Abandoned Depot", "Police Station",
}

// Valid reports whether k is a known archetype.
func (k Kind) Valid() bool {
	return k >= 0 && k < KindCount
}

// ID returns the data identifier of the archetype.
func (k Kind) ID() string {
	if !k.Valid() {
		return "unknown"
	}
	return kindIDs[k]
}

// String returns the archetype display name.
func (k Kind) String() string {
	if !k.Valid() {
		return "Unknown"
	}
	return kindNames[k]
}

// ParseKind maps a data identifier to a Kind.
func ParseKind(id string) (Kind, bool) {
	for i, v := range kindIDs {
		if v == id {
			return Kind(i), true
		}
	}
	return 0, false
}

// Enemy is the tier of the enemy occupying a zone.
type Enemy int

const (
	EnemyNone Enemy = iota
	EnemyWeak
	EnemyMedium
	// EnemyBoss only appears in the Underworld and only once per map.
	EnemyBoss
)

// Valid reports whether e is a known tier.
func (e Enemy) Valid() bool {
	return e >= EnemyNone && e <= EnemyBoss
}

// ID returns the data identifier of the tier.
func (e Enemy) ID() string {
	switch e {
	case EnemyNone:
		return "none"
	case EnemyWeak:
		return "weak"
	case EnemyMedium:
		return "medium"
	case EnemyBoss:
		return "boss"
	default:
		return "unknown"
	}
}

// String returns the tier name.
func (e Enemy) String() string {
	return e.ID()
}

// ParseEnemy maps a data identifier to an Enemy tier.
func ParseEnemy(id string) (Enemy, bool) {
	for e := EnemyNone; e <= EnemyBoss; e++ {
		if e.ID() == id {
			return e, true
		}
	}
	return EnemyNone, false
}

// AllowedIn reports whether the tier may occupy a zone of the given realm.
func (e Enemy) AllowedIn(r Realm) bool {
	switch e {
	case EnemyNone, EnemyMedium:
		return true
	case EnemyWeak:
		return r == Overworld
	case EnemyBoss:
		return r == Underworld
	default:
		return false
	}
}

// Item is an object lying in an Overworld zone or carried in a pack.
type Item int

const (
	ItemNone Item = iota
	ItemBicycle
	ItemHellfireShirt
	ItemCompass
	ItemMetalRiff

	// ItemKinds is the number of real item kinds (excluding ItemNone).
	ItemKinds = 4
)

var itemIDs = [ItemKinds + 1]string{"none", "bicycle", "hellfire_shirt", "compass", "metal_riff"}

var itemNames = [ItemKinds + 1]string{"Nothing", "Bicycle", "Hellfire Shirt", "Compass", "Metal Riff"}

// Valid reports whether i is ItemNone or a known item kind.
func (i Item) Valid() bool {
	return i >= ItemNone && i <= ItemKinds
}

// ID returns the data identifier of the item.
func (i Item) ID() string {
	if !i.Valid() {
		return "unknown"
	}
	return itemIDs[i]
}

// String returns the item display name.
func (i Item) String() string {
	if !i.Valid() {
		return "Unknown"
	}
	return itemNames[i]
}

// ParseItem maps a data identifier to an Item.
func ParseItem(id string) (Item, bool) {
	for i, v := range itemIDs {
		if v == id {
			return Item(i), true
		}
	}
	return ItemNone, false
}

// ZoneID indexes a zone inside its realm's arena.
type ZoneID int

// NoZone marks a missing link.
const NoZone ZoneID = -1

// Zone is a node in one of the two sequences.
type Zone struct {
	Realm Realm
	Kind  Kind
	Enemy Enemy
	Item  Item // always ItemNone in the Underworld

	prev ZoneID
	next ZoneID
	twin ZoneID
	live bool
}

// HasEnemy reports whether an enemy occupies the zone.
func (z Zone) HasEnemy() bool {
	return z.Enemy != EnemyNone
}

// Prev returns the previous zone in the same realm, or NoZone.
func (z Zone) Prev() ZoneID { return z.prev }

// Next returns the next zone in the same realm, or NoZone.
func (z Zone) Next() ZoneID { return z.next }

// Twin returns the paired zone in the other realm.
func (z Zone) Twin() ZoneID { return z.twin }
