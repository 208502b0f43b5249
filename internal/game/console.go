package game

import (
	"context"
	"fmt"

	"github.com/samdwyer/otherside/internal/combat"
	"github.com/samdwyer/otherside/internal/entity"
	"github.com/samdwyer/otherside/internal/gamedata"
	"github.com/samdwyer/otherside/internal/world"
)

// Console is the only way the game reaches the people playing it.
type Console interface {
	// ReadInt asks for a number. Text that is not a number returns an
	// error with CodeInvalidInput and the game asks again.
	ReadInt(ctx context.Context, p Prompt) (int, error)
	// ReadLine asks for free text, such as a name.
	ReadLine(ctx context.Context, p Prompt) (string, error)
	// Report delivers an outcome.
	Report(e Event)
}

// =============================================================================
// Prompts
// =============================================================================

// PromptKind names the question being asked.
type PromptKind int

const (
	PromptMainMenu PromptKind = iota
	PromptPlayerCount
	PromptPlayerName
	PromptBuild
	PromptMapMenu
	PromptPosition
	PromptZoneKind
	PromptEnemy
	PromptItem
	PromptRealm
	PromptTurnAction
	PromptCombatAction
	PromptPackSlot
)

// String returns the prompt name.
func (k PromptKind) String() string {
	switch k {
	case PromptMainMenu:
		return "main_menu"
	case PromptPlayerCount:
		return "player_count"
	case PromptPlayerName:
		return "player_name"
	case PromptBuild:
		return "build"
	case PromptMapMenu:
		return "map_menu"
	case PromptPosition:
		return "position"
	case PromptZoneKind:
		return "zone_kind"
	case PromptEnemy:
		return "enemy"
	case PromptItem:
		return "item"
	case PromptRealm:
		return "realm"
	case PromptTurnAction:
		return "turn_action"
	case PromptCombatAction:
		return "combat_action"
	case PromptPackSlot:
		return "pack_slot"
	default:
		return "unknown"
	}
}

// Option is one labeled choice of a menu.
type Option struct {
	Value    int
	Label    string
	Disabled bool
}

// Prompt describes a question and the answers it accepts.
type Prompt struct {
	Kind     PromptKind
	Min, Max int
	Options  []Option

	// Player is the player being asked, or the default name when asking
	// for a name.
	Player string
	// Combat is set while a fight is under way.
	Combat *combat.Snapshot
}

// Check validates an answer against the range and the disabled options.
func (p Prompt) Check(n int) error {
	if n < p.Min || n > p.Max {
		return invalidInput(fmt.Sprintf("choose a number from %d to %d", p.Min, p.Max))
	}
	for _, o := range p.Options {
		if o.Value == n && o.Disabled {
			return invalidOperation(fmt.Sprintf("%s is not available", o.Label), nil)
		}
	}
	return nil
}

func menuPrompt(kind PromptKind, labels ...string) Prompt {
	p := Prompt{Kind: kind, Min: 1, Max: len(labels)}
	for i, l := range labels {
		p.Options = append(p.Options, Option{Value: i + 1, Label: l})
	}
	return p
}

// ask reads numbers until one passes p.Check. Rejected answers are
// reported and asked again; any other console error is returned.
func ask(ctx context.Context, con Console, p Prompt) (int, error) {
	for {
		if err := ctx.Err(); err != nil {
			return 0, err
		}
		n, err := con.ReadInt(ctx, p)
		if err == nil {
			err = p.Check(n)
		}
		switch CodeOf(err) {
		case "":
			if err != nil {
				return 0, err
			}
			return n, nil
		case CodeInvalidInput:
			con.Report(Event{Kind: EventInvalidInput, Err: err})
		default:
			con.Report(Event{Kind: EventRejected, Err: err})
		}
	}
}

// =============================================================================
// Choices
// =============================================================================

// MenuChoice is an entry of the main menu.
type MenuChoice int

const (
	MenuSetup MenuChoice = iota + 1
	MenuPlay
	MenuQuit
	MenuCredits
)

// MapChoice is an entry of the map editor menu.
type MapChoice int

const (
	MapGenerate MapChoice = iota + 1
	MapInsert
	MapDelete
	MapView
	MapViewZone
	MapClose
)

// TurnAction is an entry of the turn menu.
type TurnAction int

const (
	ActionAdvance TurnAction = iota + 1
	ActionRetreat
	ActionCrossWorld
	ActionFight
	ActionInfo
	ActionViewZone
	ActionPickUp
	ActionUseItem
	ActionPass
)

// String returns the action name.
func (a TurnAction) String() string {
	switch a {
	case ActionAdvance:
		return "advance"
	case ActionRetreat:
		return "retreat"
	case ActionCrossWorld:
		return "cross_world"
	case ActionFight:
		return "fight"
	case ActionInfo:
		return "info"
	case ActionViewZone:
		return "view_zone"
	case ActionPickUp:
		return "pick_up"
	case ActionUseItem:
		return "use_item"
	case ActionPass:
		return "pass"
	default:
		return "unknown"
	}
}

func parseRange(n, lo, hi int, what string) error {
	if n < lo || n > hi {
		return invalidInput(fmt.Sprintf("%s must be from %d to %d, got %d", what, lo, hi, n))
	}
	return nil
}

// ParseMenuChoice maps 1..4 to a main menu entry.
func ParseMenuChoice(n int) (MenuChoice, error) {
	if err := parseRange(n, int(MenuSetup), int(MenuCredits), "menu choice"); err != nil {
		return 0, err
	}
	return MenuChoice(n), nil
}

// ParseMapChoice maps 1..6 to a map editor entry.
func ParseMapChoice(n int) (MapChoice, error) {
	if err := parseRange(n, int(MapGenerate), int(MapClose), "map choice"); err != nil {
		return 0, err
	}
	return MapChoice(n), nil
}

// ParseTurnAction maps 1..9 to a turn action.
func ParseTurnAction(n int) (TurnAction, error) {
	if err := parseRange(n, int(ActionAdvance), int(ActionPass), "action"); err != nil {
		return 0, err
	}
	return TurnAction(n), nil
}

// ParseCombatAction maps 1..4 to a combat action.
func ParseCombatAction(n int) (combat.Action, error) {
	if err := parseRange(n, 1, 4, "combat action"); err != nil {
		return 0, err
	}
	return combat.Action(n - 1), nil
}

// ParsePackSlot maps 1..PackSize to a 0-based slot.
func ParsePackSlot(n int) (int, error) {
	if err := parseRange(n, 1, entity.PackSize, "pack slot"); err != nil {
		return 0, err
	}
	return n - 1, nil
}

// ParseRealm maps 1 to the Overworld and 2 to the Underworld.
func ParseRealm(n int) (world.Realm, error) {
	if err := parseRange(n, 1, 2, "realm"); err != nil {
		return 0, err
	}
	return world.Realm(n - 1), nil
}

// ParseKind maps 0..9 to a zone archetype.
func ParseKind(n int) (world.Kind, error) {
	if err := parseRange(n, 0, world.KindCount-1, "zone kind"); err != nil {
		return 0, err
	}
	return world.Kind(n), nil
}

// ParseEnemy maps 0..2 to an Overworld enemy tier.
func ParseEnemy(n int) (world.Enemy, error) {
	if err := parseRange(n, int(world.EnemyNone), int(world.EnemyMedium), "enemy"); err != nil {
		return 0, err
	}
	return world.Enemy(n), nil
}

// ParseItem maps 0..4 to an item kind.
func ParseItem(n int) (world.Item, error) {
	if err := parseRange(n, int(world.ItemNone), world.ItemKinds, "item"); err != nil {
		return 0, err
	}
	return world.Item(n), nil
}

// =============================================================================
// Events
// =============================================================================

// EventKind classifies what a console is told.
type EventKind int

const (
	EventInvalidInput EventKind = iota
	EventRejected
	EventSetupStart
	EventPlayerJoined
	EventMapGenerated
	EventZoneInserted
	EventZoneDeleted
	EventMapView
	EventZoneView
	EventMapInvalid
	EventMapClosed
	EventAdventureStart
	EventRoundStart
	EventTurnStart
	EventMoved
	EventHazard
	EventCrossed
	EventEscapeFailed
	EventPlayerInfo
	EventZoneInfo
	EventItemTaken
	EventItemUsed
	EventCombat
	EventEliminated
	EventPassed
	EventVictory
	EventGameOver
	EventCredits
	EventFarewell
)

// String returns the event name.
func (k EventKind) String() string {
	if k < 0 || int(k) >= len(eventNames) {
		return "unknown"
	}
	return eventNames[k]
}

var eventNames = [...]string{
	"invalid_input", "rejected", "setup_start", "player_joined",
	"map_generated", "zone_inserted", "zone_deleted", "map_view", "zone_view",
	"map_invalid", "map_closed", "adventure_start", "round_start", "turn_start",
	"moved", "hazard", "crossed", "escape_failed", "player_info", "zone_info",
	"item_taken", "item_used", "combat", "eliminated", "passed", "victory",
	"game_over", "credits", "farewell",
}

// PlayerView is a copy of a player's state for display.
type PlayerView struct {
	Slot     int // 0-based roster slot
	Name     string
	Build    string
	Realm    world.Realm
	Position int // 1-based, 0 when off the map
	Attack   int
	Defense  int
	Luck     int
	HP       int
	MaxHP    int
	Pack     [entity.PackSize]world.Item
}

// Event reports one outcome. Only the fields relevant to Kind are set.
type Event struct {
	Kind    EventKind
	Session string
	Round   int

	Player PlayerView
	Lineup []PlayerView // Round order, or the roster at setup

	Position int
	Count    int
	Realm    world.Realm
	Zone     world.Zone
	Pair     world.Pair
	Zones    []world.Zone
	Crossing world.Crossing

	Item    world.Item
	ItemDef *gamedata.ItemDef
	Slot    int

	Combat *combat.Event
	Scores Scores
	Err    error
}
